package interfaces

import (
	"context"

	"github.com/psq-lab/psiquo/pkg/domain/model"
	"github.com/psq-lab/psiquo/pkg/domain/types"
)

type RiskRepository interface {
	// ReplaceForSectors deletes every risk belonging to the given sectors
	// and creates the staged set in one all-or-nothing operation. A reader
	// must never observe the deletion without the creation.
	ReplaceForSectors(ctx context.Context, sectorIDs []types.SectorID, risks []*model.Risk) ([]*model.Risk, error)

	// Get retrieves a risk by ID
	Get(ctx context.Context, id types.RiskID) (*model.Risk, error)

	// ListBySectors retrieves all risks of the given sectors
	ListBySectors(ctx context.Context, sectorIDs []types.SectorID) ([]*model.Risk, error)

	// Update updates an existing risk
	Update(ctx context.Context, risk *model.Risk) (*model.Risk, error)
}

type PlanRepository interface {
	// Create creates a new action plan
	Create(ctx context.Context, plan *model.ActionPlan) (*model.ActionPlan, error)

	// Get retrieves an action plan by ID
	Get(ctx context.Context, id types.PlanID) (*model.ActionPlan, error)

	// ListByRisks retrieves the plans of the given risks ordered by creation
	ListByRisks(ctx context.Context, riskIDs []types.RiskID) ([]*model.ActionPlan, error)

	// Update updates an existing action plan
	Update(ctx context.Context, plan *model.ActionPlan) (*model.ActionPlan, error)

	// Delete deletes an action plan by ID
	Delete(ctx context.Context, id types.PlanID) error
}
