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

type planRepository struct {
	mu    sync.RWMutex
	plans map[types.PlanID]*model.ActionPlan
}

func newPlanRepository() *planRepository {
	return &planRepository{
		plans: make(map[types.PlanID]*model.ActionPlan),
	}
}

func copyPlan(p *model.ActionPlan) *model.ActionPlan {
	copied := *p
	return &copied
}

func (r *planRepository) Create(ctx context.Context, plan *model.ActionPlan) (*model.ActionPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyPlan(plan)
	if created.ID == "" {
		created.ID = types.NewPlanID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now
	r.plans[created.ID] = created
	return copyPlan(created), nil
}

func (r *planRepository) Get(ctx context.Context, id types.PlanID) (*model.ActionPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plan, exists := r.plans[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "action plan not found", goerr.V("id", id))
	}
	return copyPlan(plan), nil
}

func (r *planRepository) ListByRisks(ctx context.Context, riskIDs []types.RiskID) ([]*model.ActionPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	riskSet := make(map[types.RiskID]bool, len(riskIDs))
	for _, id := range riskIDs {
		riskSet[id] = true
	}

	plans := make([]*model.ActionPlan, 0)
	for _, plan := range r.plans {
		if riskSet[plan.RiskID] {
			plans = append(plans, copyPlan(plan))
		}
	}
	sort.Slice(plans, func(i, j int) bool {
		return plans[i].CreatedAt.Before(plans[j].CreatedAt)
	})
	return plans, nil
}

func (r *planRepository) Update(ctx context.Context, plan *model.ActionPlan) (*model.ActionPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.plans[plan.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "action plan not found", goerr.V("id", plan.ID))
	}

	updated := copyPlan(plan)
	updated.RiskID = existing.RiskID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	r.plans[updated.ID] = updated
	return copyPlan(updated), nil
}

func (r *planRepository) Delete(ctx context.Context, id types.PlanID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.plans[id]; !exists {
		return goerr.Wrap(ErrNotFound, "action plan not found", goerr.V("id", id))
	}
	delete(r.plans, id)
	return nil
}
