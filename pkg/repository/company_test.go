package repository_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/psq-lab/psiquo/pkg/domain/interfaces"
	"github.com/psq-lab/psiquo/pkg/domain/model"
	"github.com/psq-lab/psiquo/pkg/domain/types"
)

func runCompanyRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create persists company and sectors together", func(t *testing.T) {
		repo := newRepo(t)

		company, sectors := createCompany(t, repo, "Production", "Logistics")

		gt.String(t, company.ID.String()).NotEqual("")
		gt.Bool(t, company.CreatedAt.IsZero()).False()

		for _, sector := range sectors {
			gt.Value(t, sector.CompanyID).Equal(company.ID)
			gt.String(t, sector.ID.String()).NotEqual("")
		}
	})

	t.Run("Get retrieves existing company", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		company, _ := createCompany(t, repo, "Production")

		retrieved, err := repo.Company().Get(ctx, company.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, retrieved.Name).Equal("Acme Industries")
		gt.Value(t, retrieved.TaxID).Equal("11222333000181")
		gt.Value(t, retrieved.Headcount).Equal(120)
	})

	t.Run("Get returns not found for unknown company", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Company().Get(ctx, types.NewCompanyID())
		gt.Error(t, err)
	})

	t.Run("ListSectors scopes sectors to their company", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		companyA, _ := createCompany(t, repo, "Production", "Logistics")

		companyB, err := repo.Company().Create(ctx, &model.Company{
			Name:      "Beta Corp",
			TaxID:     "11444777000161",
			Headcount: 30,
		}, []*model.Sector{{Name: "Sales"}})
		gt.NoError(t, err).Required()

		sectorsA, err := repo.Company().ListSectors(ctx, companyA.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, sectorsA).Length(2)

		sectorsB, err := repo.Company().ListSectors(ctx, companyB.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, sectorsB).Length(1)
		gt.Value(t, sectorsB[0].Name).Equal("Sales")
	})

	t.Run("GetSector retrieves a single sector", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		company, sectors := createCompany(t, repo, "Production")

		sector, err := repo.Company().GetSector(ctx, sectors[0].ID)
		gt.NoError(t, err).Required()
		gt.Value(t, sector.CompanyID).Equal(company.ID)
		gt.Value(t, sector.Name).Equal("Production")
	})
}

func TestMemoryCompanyRepository(t *testing.T) {
	runCompanyRepositoryTest(t, newMemoryRepository)
}

func TestFirestoreCompanyRepository(t *testing.T) {
	runCompanyRepositoryTest(t, newFirestoreRepository)
}
