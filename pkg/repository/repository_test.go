package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/psq-lab/psiquo/pkg/domain/interfaces"
	"github.com/psq-lab/psiquo/pkg/domain/model"
	"github.com/psq-lab/psiquo/pkg/domain/types"
	"github.com/psq-lab/psiquo/pkg/repository/firestore"
	"github.com/psq-lab/psiquo/pkg/repository/memory"
)

func newMemoryRepository(t *testing.T) interfaces.Repository {
	t.Helper()
	return memory.New()
}

func newFirestoreRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}
	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")

	ctx := context.Background()
	prefix := fmt.Sprintf("test_%d", time.Now().UnixNano())
	repo, err := firestore.New(ctx, projectID, databaseID, firestore.WithCollectionPrefix(prefix))
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		gt.NoError(t, repo.Close())
	})
	return repo
}

// createCompany persists a company with the given sector names and returns
// it with its stored sectors
func createCompany(t *testing.T, repo interfaces.Repository, sectorNames ...string) (*model.Company, []*model.Sector) {
	t.Helper()
	ctx := context.Background()

	sectors := make([]*model.Sector, 0, len(sectorNames))
	for _, name := range sectorNames {
		sectors = append(sectors, &model.Sector{Name: name})
	}

	company, err := repo.Company().Create(ctx, &model.Company{
		Name:      "Acme Industries",
		TaxID:     "11222333000181",
		Headcount: 120,
	}, sectors)
	gt.NoError(t, err).Required()

	stored, err := repo.Company().ListSectors(ctx, company.ID)
	gt.NoError(t, err).Required()
	gt.Array(t, stored).Length(len(sectorNames))

	return company, stored
}

func createRisk(t *testing.T, repo interfaces.Repository, sectorID types.SectorID) *model.Risk {
	t.Helper()
	ctx := context.Background()

	created, err := repo.Risk().ReplaceForSectors(ctx, []types.SectorID{sectorID}, []*model.Risk{
		{
			SectorID:       sectorID,
			Category:       "work_organization",
			Description:    "Work organization risk",
			Probability:    types.LevelHigh,
			Severity:       types.LevelHigh,
			Classification: types.ClassificationHigh,
		},
	})
	gt.NoError(t, err).Required()
	gt.Array(t, created).Length(1)
	return created[0]
}
