package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/psq-lab/psiquo/pkg/domain/model"
	"github.com/psq-lab/psiquo/pkg/domain/types"
)

type evidenceRepository struct {
	mu       sync.RWMutex
	evidence map[types.EvidenceID]*model.Evidence
}

func newEvidenceRepository() *evidenceRepository {
	return &evidenceRepository{
		evidence: make(map[types.EvidenceID]*model.Evidence),
	}
}

func copyEvidence(e *model.Evidence) *model.Evidence {
	copied := *e
	return &copied
}

func (r *evidenceRepository) Create(ctx context.Context, evidence *model.Evidence) (*model.Evidence, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyEvidence(evidence)
	if created.ID == "" {
		created.ID = types.NewEvidenceID()
	}
	created.CreatedAt = time.Now().UTC()
	r.evidence[created.ID] = created
	return copyEvidence(created), nil
}

func (r *evidenceRepository) Get(ctx context.Context, id types.EvidenceID) (*model.Evidence, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	evidence, exists := r.evidence[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "evidence not found", goerr.V("id", id))
	}
	return copyEvidence(evidence), nil
}

func (r *evidenceRepository) ListByCompany(ctx context.Context, companyID types.CompanyID) ([]*model.Evidence, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]*model.Evidence, 0)
	for _, ev := range r.evidence {
		if ev.CompanyID == companyID {
			items = append(items, copyEvidence(ev))
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (r *evidenceRepository) Delete(ctx context.Context, id types.EvidenceID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.evidence[id]; !exists {
		return goerr.Wrap(ErrNotFound, "evidence not found", goerr.V("id", id))
	}
	delete(r.evidence, id)
	return nil
}
