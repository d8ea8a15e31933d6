package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/psq-lab/psiquo/pkg/domain/model"
	"github.com/psq-lab/psiquo/pkg/domain/types"
	"github.com/psq-lab/psiquo/pkg/usecase"
)

// companyWithRisk prepares a company whose assessment produced risk records
func companyWithRisk(t *testing.T, uc *usecase.UseCases) (*model.Company, *model.Risk) {
	t.Helper()

	ctx := context.Background()
	company, sectors := registerCompany(t, uc, "Production")
	answerAll(t, uc, company, sectors[0], 1, 5)

	risks, err := uc.RegenerateAssessment(ctx, company.ID)
	gt.NoError(t, err).Required()
	gt.Array(t, risks).Length(5)
	return company, risks[0]
}

func validPlanInput(riskID types.RiskID) *usecase.CreatePlanInput {
	return &usecase.CreatePlanInput{
		RiskID:  riskID,
		What:    "rebalance the production schedule",
		Why:     "reduce overload in the production line",
		Who:     "HR team",
		Where:   "Production floor",
		When:    time.Now().UTC().Add(30 * 24 * time.Hour),
		How:     "hire two additional operators",
		HowMuch: 12000,
	}
}

func TestCreatePlan(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a plan in not started status", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		company, risk := companyWithRisk(t, uc)

		plan, err := uc.CreatePlan(ctx, company.ID, validPlanInput(risk.ID))
		gt.NoError(t, err).Required()
		gt.Value(t, plan.RiskID).Equal(risk.ID)
		gt.Value(t, plan.Status).Equal(types.ActionStatusNotStarted)
		gt.String(t, plan.ID.String()).NotEqual("")
	})

	t.Run("rejects short descriptive fields", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		company, risk := companyWithRisk(t, uc)

		cases := map[string]func(*usecase.CreatePlanInput){
			"what":  func(in *usecase.CreatePlanInput) { in.What = "too short" },
			"why":   func(in *usecase.CreatePlanInput) { in.Why = "because" },
			"who":   func(in *usecase.CreatePlanInput) { in.Who = "me" },
			"how":   func(in *usecase.CreatePlanInput) { in.How = "somehow" },
			"when":  func(in *usecase.CreatePlanInput) { in.When = time.Time{} },
			"money": func(in *usecase.CreatePlanInput) { in.HowMuch = -1 },
		}
		for name, mutate := range cases {
			t.Run(name, func(t *testing.T) {
				input := validPlanInput(risk.ID)
				mutate(input)

				_, err := uc.CreatePlan(ctx, company.ID, input)
				gt.Error(t, err)
				gt.Bool(t, goerr.HasTag(err, types.ErrTagValidation)).True()
			})
		}
	})

	t.Run("where is optional", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		company, risk := companyWithRisk(t, uc)

		input := validPlanInput(risk.ID)
		input.Where = ""

		_, err := uc.CreatePlan(ctx, company.ID, input)
		gt.NoError(t, err)
	})

	t.Run("zero cost is allowed", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		company, risk := companyWithRisk(t, uc)

		input := validPlanInput(risk.ID)
		input.HowMuch = 0

		_, err := uc.CreatePlan(ctx, company.ID, input)
		gt.NoError(t, err)
	})

	t.Run("another company's risk is reported as not found", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		_, risk := companyWithRisk(t, uc)
		other, _ := registerOtherCompany(t, uc)

		_, err := uc.CreatePlan(ctx, other.ID, validPlanInput(risk.ID))
		gt.Error(t, err)
		gt.Bool(t, goerr.HasTag(err, types.ErrTagNotFound)).True()
	})
}

func TestListPlans(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the plans of all risks of the company", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		company, risk := companyWithRisk(t, uc)

		_, err := uc.CreatePlan(ctx, company.ID, validPlanInput(risk.ID))
		gt.NoError(t, err).Required()

		plans, err := uc.ListPlans(ctx, company.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, plans).Length(1)
	})

	t.Run("company without risks has no plans", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		company, _ := registerCompany(t, uc, "Production")

		plans, err := uc.ListPlans(ctx, company.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, plans).Length(0)
	})
}

func TestUpdatePlan(t *testing.T) {
	ctx := context.Background()

	strPtr := func(s string) *string { return &s }

	t.Run("applies only the submitted fields", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		company, risk := companyWithRisk(t, uc)

		plan, err := uc.CreatePlan(ctx, company.ID, validPlanInput(risk.ID))
		gt.NoError(t, err).Required()

		status := types.ActionStatusInProgress
		updated, err := uc.UpdatePlan(ctx, company.ID, plan.ID, &model.ActionPlanPatch{
			What:   strPtr("bring in a third production shift"),
			Status: &status,
		})
		gt.NoError(t, err).Required()
		gt.Value(t, updated.What).Equal("bring in a third production shift")
		gt.Value(t, updated.Status).Equal(types.ActionStatusInProgress)
		gt.Value(t, updated.Why).Equal(plan.Why)
		gt.Value(t, updated.Who).Equal(plan.Who)
	})

	t.Run("revalidates patched fields with creation minimums", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		company, risk := companyWithRisk(t, uc)

		plan, err := uc.CreatePlan(ctx, company.ID, validPlanInput(risk.ID))
		gt.NoError(t, err).Required()

		_, err = uc.UpdatePlan(ctx, company.ID, plan.ID, &model.ActionPlanPatch{
			What: strPtr("shorter"),
		})
		gt.Error(t, err)
		gt.Bool(t, goerr.HasTag(err, types.ErrTagValidation)).True()
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		company, risk := companyWithRisk(t, uc)

		plan, err := uc.CreatePlan(ctx, company.ID, validPlanInput(risk.ID))
		gt.NoError(t, err).Required()

		bogus := types.ActionStatus("paused")
		_, err = uc.UpdatePlan(ctx, company.ID, plan.ID, &model.ActionPlanPatch{
			Status: &bogus,
		})
		gt.Error(t, err)
		gt.Bool(t, goerr.HasTag(err, types.ErrTagValidation)).True()
	})

	t.Run("another company's plan is reported as not found", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		company, risk := companyWithRisk(t, uc)
		other, _ := registerOtherCompany(t, uc)

		plan, err := uc.CreatePlan(ctx, company.ID, validPlanInput(risk.ID))
		gt.NoError(t, err).Required()

		_, err = uc.UpdatePlan(ctx, other.ID, plan.ID, &model.ActionPlanPatch{
			What: strPtr("bring in a third production shift"),
		})
		gt.Error(t, err)
		gt.Bool(t, goerr.HasTag(err, types.ErrTagNotFound)).True()
	})
}

func TestDeletePlan(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the plan", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		company, risk := companyWithRisk(t, uc)

		plan, err := uc.CreatePlan(ctx, company.ID, validPlanInput(risk.ID))
		gt.NoError(t, err).Required()

		gt.NoError(t, uc.DeletePlan(ctx, company.ID, plan.ID))

		plans, err := uc.ListPlans(ctx, company.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, plans).Length(0)
	})

	t.Run("another company's plan is reported as not found", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		company, risk := companyWithRisk(t, uc)
		other, _ := registerOtherCompany(t, uc)

		plan, err := uc.CreatePlan(ctx, company.ID, validPlanInput(risk.ID))
		gt.NoError(t, err).Required()

		err = uc.DeletePlan(ctx, other.ID, plan.ID)
		gt.Error(t, err)
		gt.Bool(t, goerr.HasTag(err, types.ErrTagNotFound)).True()
	})
}
