package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/psq-lab/psiquo/pkg/domain/model"
	"github.com/psq-lab/psiquo/pkg/repository/memory"
	"github.com/psq-lab/psiquo/pkg/service/blob"
	"github.com/psq-lab/psiquo/pkg/service/render"
	"github.com/psq-lab/psiquo/pkg/usecase"
)

// newTestUseCases wires the usecases against the in-memory backends with
// the built-in questionnaire already seeded.
func newTestUseCases(t *testing.T) (*usecase.UseCases, *blob.Memory) {
	t.Helper()

	repo := memory.New()
	t.Cleanup(func() {
		_ = repo.Close()
	})

	store := blob.NewMemory()
	renderer, err := render.NewHTML()
	gt.NoError(t, err).Required()

	uc := usecase.New(repo,
		usecase.WithBlobStorage(store),
		usecase.WithRenderer(renderer),
	)

	ctx := context.Background()
	for _, seed := range uc.AssessmentConfig().Questions {
		_, err := repo.Question().UpsertByOrder(ctx, &model.Question{
			Category: seed.Category,
			Order:    seed.Order,
			Text:     seed.Text,
			Active:   true,
		})
		gt.NoError(t, err).Required()
	}

	return uc, store
}

// registerCompany creates a company with the given sector names through the
// public registration path.
func registerCompany(t *testing.T, uc *usecase.UseCases, sectorNames ...string) (*model.Company, []*model.Sector) {
	t.Helper()

	sectors := make([]usecase.SectorInput, 0, len(sectorNames))
	for _, name := range sectorNames {
		sectors = append(sectors, usecase.SectorInput{Name: name, Headcount: 10})
	}

	company, created, err := uc.RegisterCompany(context.Background(), &usecase.RegisterCompanyInput{
		Name:      "Acme Industries",
		TaxID:     "11.222.333/0001-81",
		Headcount: 120,
		Sectors:   sectors,
	})
	gt.NoError(t, err).Required()
	return company, created
}

// registerOtherCompany creates a second company used by ownership checks
func registerOtherCompany(t *testing.T, uc *usecase.UseCases) (*model.Company, []*model.Sector) {
	t.Helper()

	company, sectors, err := uc.RegisterCompany(context.Background(), &usecase.RegisterCompanyInput{
		Name:      "Beta Corp",
		TaxID:     "11444777000161",
		Headcount: 30,
		Sectors:   []usecase.SectorInput{{Name: "Sales", Headcount: 30}},
	})
	gt.NoError(t, err).Required()
	return company, sectors
}

// answerAll submits one answer per active question for the sector. Positive
// scale questions get positiveValue, the rest get negativeValue.
func answerAll(t *testing.T, uc *usecase.UseCases, company *model.Company, sector *model.Sector, positiveValue, negativeValue int) {
	t.Helper()

	ctx := context.Background()
	questions, err := uc.ListQuestions(ctx)
	gt.NoError(t, err).Required()
	gt.Array(t, questions).Length(15)

	positive := uc.AssessmentConfig().PositiveOrders
	for _, q := range questions {
		value := negativeValue
		if positive[q.Order] {
			value = positiveValue
		}
		_, err := uc.SubmitAnswer(ctx, company.ID, sector.ID, q.ID, value)
		gt.NoError(t, err).Required()
	}
}
