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

type riskRepository struct {
	mu    sync.RWMutex
	risks map[types.RiskID]*model.Risk
}

func newRiskRepository() *riskRepository {
	return &riskRepository{
		risks: make(map[types.RiskID]*model.Risk),
	}
}

func copyRisk(r *model.Risk) *model.Risk {
	copied := *r
	return &copied
}

func (r *riskRepository) ReplaceForSectors(ctx context.Context, sectorIDs []types.SectorID, risks []*model.Risk) ([]*model.Risk, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sectorSet := make(map[types.SectorID]bool, len(sectorIDs))
	for _, id := range sectorIDs {
		sectorSet[id] = true
	}

	// Delete and recreate under one lock so no reader sees the gap
	for id, risk := range r.risks {
		if sectorSet[risk.SectorID] {
			delete(r.risks, id)
		}
	}

	now := time.Now().UTC()
	created := make([]*model.Risk, 0, len(risks))
	for _, risk := range risks {
		c := copyRisk(risk)
		if c.ID == "" {
			c.ID = types.NewRiskID()
		}
		c.CreatedAt = now
		c.UpdatedAt = now
		r.risks[c.ID] = c
		created = append(created, copyRisk(c))
	}

	return created, nil
}

func (r *riskRepository) Get(ctx context.Context, id types.RiskID) (*model.Risk, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	risk, exists := r.risks[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "risk not found", goerr.V("id", id))
	}
	return copyRisk(risk), nil
}

func (r *riskRepository) ListBySectors(ctx context.Context, sectorIDs []types.SectorID) ([]*model.Risk, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sectorSet := make(map[types.SectorID]bool, len(sectorIDs))
	for _, id := range sectorIDs {
		sectorSet[id] = true
	}

	risks := make([]*model.Risk, 0)
	for _, risk := range r.risks {
		if sectorSet[risk.SectorID] {
			risks = append(risks, copyRisk(risk))
		}
	}
	sort.Slice(risks, func(i, j int) bool {
		if risks[i].SectorID != risks[j].SectorID {
			return risks[i].SectorID < risks[j].SectorID
		}
		return risks[i].Category < risks[j].Category
	})
	return risks, nil
}

func (r *riskRepository) Update(ctx context.Context, risk *model.Risk) (*model.Risk, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.risks[risk.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "risk not found", goerr.V("id", risk.ID))
	}

	updated := copyRisk(risk)
	updated.SectorID = existing.SectorID
	updated.Category = existing.Category
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	r.risks[updated.ID] = updated
	return copyRisk(updated), nil
}
