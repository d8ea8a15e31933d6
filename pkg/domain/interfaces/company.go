package interfaces

import (
	"context"

	"github.com/psq-lab/psiquo/pkg/domain/model"
	"github.com/psq-lab/psiquo/pkg/domain/types"
)

type CompanyRepository interface {
	// Create persists a company together with its sectors atomically
	Create(ctx context.Context, company *model.Company, sectors []*model.Sector) (*model.Company, error)

	// Get retrieves a company by ID
	Get(ctx context.Context, id types.CompanyID) (*model.Company, error)

	// ListSectors retrieves all sectors of a company ordered by creation time
	ListSectors(ctx context.Context, companyID types.CompanyID) ([]*model.Sector, error)

	// GetSector retrieves a single sector by ID
	GetSector(ctx context.Context, id types.SectorID) (*model.Sector, error)
}
