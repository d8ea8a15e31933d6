package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/psq-lab/psiquo/pkg/domain/model"
	"github.com/psq-lab/psiquo/pkg/domain/types"
)

// Field minimums of a 5W2H plan
const (
	minPlanTextLen = 10 // what, why, how
	minPlanWhoLen  = 3
)

// CreatePlanInput carries a new 5W2H action plan
type CreatePlanInput struct {
	RiskID  types.RiskID
	What    string
	Why     string
	Who     string
	Where   string
	When    time.Time
	How     string
	HowMuch float64
}

// CreatePlan attaches a new action plan to a risk of the company
func (uc *UseCases) CreatePlan(ctx context.Context, companyID types.CompanyID, input *CreatePlanInput) (*model.ActionPlan, error) {
	if err := validatePlanFields(input.What, input.Why, input.Who, input.How, input.When, input.HowMuch); err != nil {
		return nil, err
	}

	if _, err := uc.riskOwnedBy(ctx, companyID, input.RiskID); err != nil {
		return nil, err
	}

	plan, err := uc.repo.Plan().Create(ctx, &model.ActionPlan{
		RiskID:  input.RiskID,
		What:    strings.TrimSpace(input.What),
		Why:     strings.TrimSpace(input.Why),
		Who:     strings.TrimSpace(input.Who),
		Where:   strings.TrimSpace(input.Where),
		When:    input.When,
		How:     strings.TrimSpace(input.How),
		HowMuch: input.HowMuch,
		Status:  types.ActionStatusNotStarted,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create plan", goerr.V(types.RiskIDKey, input.RiskID))
	}
	return plan, nil
}

// ListPlans returns the action plans of all risks of the company
func (uc *UseCases) ListPlans(ctx context.Context, companyID types.CompanyID) ([]*model.ActionPlan, error) {
	risks, err := uc.ListRisks(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if len(risks) == 0 {
		return []*model.ActionPlan{}, nil
	}

	riskIDs := make([]types.RiskID, 0, len(risks))
	for _, risk := range risks {
		riskIDs = append(riskIDs, risk.ID)
	}

	plans, err := uc.repo.Plan().ListByRisks(ctx, riskIDs)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list plans", goerr.V(types.CompanyIDKey, companyID))
	}
	return plans, nil
}

// UpdatePlan applies a partial update to an action plan of the company.
// Submitted fields are revalidated with the same minimums as creation.
func (uc *UseCases) UpdatePlan(ctx context.Context, companyID types.CompanyID, planID types.PlanID, patch *model.ActionPlanPatch) (*model.ActionPlan, error) {
	plan, err := uc.planOwnedBy(ctx, companyID, planID)
	if err != nil {
		return nil, err
	}

	if patch.What != nil {
		plan.What = strings.TrimSpace(*patch.What)
	}
	if patch.Why != nil {
		plan.Why = strings.TrimSpace(*patch.Why)
	}
	if patch.Who != nil {
		plan.Who = strings.TrimSpace(*patch.Who)
	}
	if patch.Where != nil {
		plan.Where = strings.TrimSpace(*patch.Where)
	}
	if patch.When != nil {
		plan.When = *patch.When
	}
	if patch.How != nil {
		plan.How = strings.TrimSpace(*patch.How)
	}
	if patch.HowMuch != nil {
		plan.HowMuch = *patch.HowMuch
	}
	if patch.Status != nil {
		if !patch.Status.IsValid() {
			return nil, goerr.New("invalid action status",
				goerr.T(types.ErrTagValidation), goerr.V("status", *patch.Status))
		}
		plan.Status = *patch.Status
	}

	if err := validatePlanFields(plan.What, plan.Why, plan.Who, plan.How, plan.When, plan.HowMuch); err != nil {
		return nil, err
	}

	updated, err := uc.repo.Plan().Update(ctx, plan)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update plan", goerr.V(types.PlanIDKey, planID))
	}
	return updated, nil
}

// DeletePlan removes an action plan of the company
func (uc *UseCases) DeletePlan(ctx context.Context, companyID types.CompanyID, planID types.PlanID) error {
	if _, err := uc.planOwnedBy(ctx, companyID, planID); err != nil {
		return err
	}

	if err := uc.repo.Plan().Delete(ctx, planID); err != nil {
		return goerr.Wrap(err, "failed to delete plan", goerr.V(types.PlanIDKey, planID))
	}
	return nil
}

// planOwnedBy resolves a plan and verifies its risk belongs to the company
func (uc *UseCases) planOwnedBy(ctx context.Context, companyID types.CompanyID, planID types.PlanID) (*model.ActionPlan, error) {
	plan, err := uc.repo.Plan().Get(ctx, planID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get plan", goerr.V(types.PlanIDKey, planID))
	}

	if _, err := uc.riskOwnedBy(ctx, companyID, plan.RiskID); err != nil {
		return nil, goerr.New("action plan not found",
			goerr.T(types.ErrTagNotFound),
			goerr.V(types.PlanIDKey, planID), goerr.V(types.CompanyIDKey, companyID))
	}
	return plan, nil
}

func validatePlanFields(what, why, who, how string, when time.Time, howMuch float64) error {
	if len(strings.TrimSpace(what)) < minPlanTextLen {
		return goerr.New("plan 'what' must have at least 10 characters",
			goerr.T(types.ErrTagValidation), goerr.V("field", "what"))
	}
	if len(strings.TrimSpace(why)) < minPlanTextLen {
		return goerr.New("plan 'why' must have at least 10 characters",
			goerr.T(types.ErrTagValidation), goerr.V("field", "why"))
	}
	if len(strings.TrimSpace(who)) < minPlanWhoLen {
		return goerr.New("plan 'who' must have at least 3 characters",
			goerr.T(types.ErrTagValidation), goerr.V("field", "who"))
	}
	if len(strings.TrimSpace(how)) < minPlanTextLen {
		return goerr.New("plan 'how' must have at least 10 characters",
			goerr.T(types.ErrTagValidation), goerr.V("field", "how"))
	}
	if when.IsZero() {
		return goerr.New("plan 'when' is required",
			goerr.T(types.ErrTagValidation), goerr.V("field", "when"))
	}
	if howMuch < 0 {
		return goerr.New("plan 'how much' must not be negative",
			goerr.T(types.ErrTagValidation), goerr.V("field", "how_much"))
	}
	return nil
}
