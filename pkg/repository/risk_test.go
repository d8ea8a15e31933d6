package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/psq-lab/psiquo/pkg/domain/interfaces"
	"github.com/psq-lab/psiquo/pkg/domain/model"
	"github.com/psq-lab/psiquo/pkg/domain/types"
)

func runRiskRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("ReplaceForSectors swaps the full risk set", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, sectors := createCompany(t, repo, "Production")
		sectorID := sectors[0].ID

		first := createRisk(t, repo, sectorID)

		replaced, err := repo.Risk().ReplaceForSectors(ctx, []types.SectorID{sectorID}, []*model.Risk{
			{
				SectorID:       sectorID,
				Category:       "working_conditions",
				Description:    "Working conditions risk",
				Probability:    types.LevelMedium,
				Severity:       types.LevelMedium,
				Classification: types.ClassificationMedium,
			},
		})
		gt.NoError(t, err).Required()
		gt.Array(t, replaced).Length(1)

		// The previous generation is gone entirely
		_, err = repo.Risk().Get(ctx, first.ID)
		gt.Error(t, err)

		current, err := repo.Risk().ListBySectors(ctx, []types.SectorID{sectorID})
		gt.NoError(t, err).Required()
		gt.Array(t, current).Length(1)
		gt.Value(t, current[0].Category).Equal(types.CategoryID("working_conditions"))
	})

	t.Run("ReplaceForSectors with empty set clears risks", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, sectors := createCompany(t, repo, "Production")
		createRisk(t, repo, sectors[0].ID)

		replaced, err := repo.Risk().ReplaceForSectors(ctx, []types.SectorID{sectors[0].ID}, nil)
		gt.NoError(t, err).Required()
		gt.Array(t, replaced).Length(0)

		current, err := repo.Risk().ListBySectors(ctx, []types.SectorID{sectors[0].ID})
		gt.NoError(t, err).Required()
		gt.Array(t, current).Length(0)
	})

	t.Run("ReplaceForSectors keeps other sectors untouched", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, sectors := createCompany(t, repo, "Production", "Logistics")
		kept := createRisk(t, repo, sectors[1].ID)

		_, err := repo.Risk().ReplaceForSectors(ctx, []types.SectorID{sectors[0].ID}, nil)
		gt.NoError(t, err).Required()

		retrieved, err := repo.Risk().Get(ctx, kept.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, retrieved.SectorID).Equal(sectors[1].ID)
	})

	t.Run("Update preserves sector and category", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, sectors := createCompany(t, repo, "Production")
		risk := createRisk(t, repo, sectors[0].ID)

		risk.Probability = types.LevelLow
		risk.Severity = types.LevelLow
		risk.Classification = types.ClassificationLow
		risk.Justification = "mitigated by the new shift schedule"
		risk.SectorID = types.NewSectorID() // must be ignored
		risk.Category = "violence_harassment"

		updated, err := repo.Risk().Update(ctx, risk)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.SectorID).Equal(sectors[0].ID)
		gt.Value(t, updated.Category).Equal(types.CategoryID("work_organization"))
		gt.Value(t, updated.Probability).Equal(types.LevelLow)
		gt.Value(t, updated.Justification).Equal("mitigated by the new shift schedule")
	})

	t.Run("Update of unknown risk fails", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Risk().Update(ctx, &model.Risk{
			ID:             types.NewRiskID(),
			Probability:    types.LevelLow,
			Severity:       types.LevelLow,
			Classification: types.ClassificationLow,
		})
		gt.Error(t, err)
	})
}

func runPlanRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	newPlan := func(riskID types.RiskID, what string) *model.ActionPlan {
		return &model.ActionPlan{
			RiskID:  riskID,
			What:    what,
			Why:     "reduce overload in the production line",
			Who:     "HR team",
			When:    time.Now().UTC().Add(30 * 24 * time.Hour),
			How:     "hire two additional operators",
			HowMuch: 12000,
			Status:  types.ActionStatusNotStarted,
		}
	}

	t.Run("Create assigns identity and timestamps", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, sectors := createCompany(t, repo, "Production")
		risk := createRisk(t, repo, sectors[0].ID)

		plan, err := repo.Plan().Create(ctx, newPlan(risk.ID, "rebalance the production schedule"))
		gt.NoError(t, err).Required()
		gt.String(t, plan.ID.String()).NotEqual("")
		gt.Bool(t, plan.CreatedAt.IsZero()).False()
		gt.Value(t, plan.RiskID).Equal(risk.ID)
	})

	t.Run("ListByRisks returns plans in creation order", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, sectors := createCompany(t, repo, "Production")
		risk := createRisk(t, repo, sectors[0].ID)

		for _, what := range []string{"first remediation step", "second remediation step"} {
			_, err := repo.Plan().Create(ctx, newPlan(risk.ID, what))
			gt.NoError(t, err).Required()
		}

		plans, err := repo.Plan().ListByRisks(ctx, []types.RiskID{risk.ID})
		gt.NoError(t, err).Required()
		gt.Array(t, plans).Length(2)
		gt.Value(t, plans[0].What).Equal("first remediation step")
		gt.Value(t, plans[1].What).Equal("second remediation step")
	})

	t.Run("Update preserves risk linkage", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, sectors := createCompany(t, repo, "Production")
		risk := createRisk(t, repo, sectors[0].ID)

		plan, err := repo.Plan().Create(ctx, newPlan(risk.ID, "rebalance the production schedule"))
		gt.NoError(t, err).Required()

		plan.Status = types.ActionStatusInProgress
		plan.RiskID = types.NewRiskID() // must be ignored

		updated, err := repo.Plan().Update(ctx, plan)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.RiskID).Equal(risk.ID)
		gt.Value(t, updated.Status).Equal(types.ActionStatusInProgress)
	})

	t.Run("Delete removes the plan", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, sectors := createCompany(t, repo, "Production")
		risk := createRisk(t, repo, sectors[0].ID)

		plan, err := repo.Plan().Create(ctx, newPlan(risk.ID, "rebalance the production schedule"))
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Plan().Delete(ctx, plan.ID))

		_, err = repo.Plan().Get(ctx, plan.ID)
		gt.Error(t, err)

		gt.Error(t, repo.Plan().Delete(ctx, plan.ID))
	})
}

func TestMemoryRiskRepository(t *testing.T) {
	runRiskRepositoryTest(t, newMemoryRepository)
}

func TestFirestoreRiskRepository(t *testing.T) {
	runRiskRepositoryTest(t, newFirestoreRepository)
}

func TestMemoryPlanRepository(t *testing.T) {
	runPlanRepositoryTest(t, newMemoryRepository)
}

func TestFirestorePlanRepository(t *testing.T) {
	runPlanRepositoryTest(t, newFirestoreRepository)
}
