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

type companyRepository struct {
	mu        sync.RWMutex
	companies map[types.CompanyID]*model.Company
	sectors   map[types.SectorID]*model.Sector
}

func newCompanyRepository() *companyRepository {
	return &companyRepository{
		companies: make(map[types.CompanyID]*model.Company),
		sectors:   make(map[types.SectorID]*model.Sector),
	}
}

func copyCompany(c *model.Company) *model.Company {
	copied := *c
	return &copied
}

func copySector(s *model.Sector) *model.Sector {
	copied := *s
	return &copied
}

func (r *companyRepository) Create(ctx context.Context, company *model.Company, sectors []*model.Sector) (*model.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyCompany(company)
	if created.ID == "" {
		created.ID = types.NewCompanyID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now
	r.companies[created.ID] = created

	for _, sector := range sectors {
		s := copySector(sector)
		if s.ID == "" {
			s.ID = types.NewSectorID()
		}
		s.CompanyID = created.ID
		s.CreatedAt = now
		r.sectors[s.ID] = s
	}

	return copyCompany(created), nil
}

func (r *companyRepository) Get(ctx context.Context, id types.CompanyID) (*model.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	company, exists := r.companies[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "company not found", goerr.V("id", id))
	}
	return copyCompany(company), nil
}

func (r *companyRepository) ListSectors(ctx context.Context, companyID types.CompanyID) ([]*model.Sector, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sectors := make([]*model.Sector, 0)
	for _, sector := range r.sectors {
		if sector.CompanyID == companyID {
			sectors = append(sectors, copySector(sector))
		}
	}
	sort.Slice(sectors, func(i, j int) bool {
		if sectors[i].CreatedAt.Equal(sectors[j].CreatedAt) {
			return sectors[i].Name < sectors[j].Name
		}
		return sectors[i].CreatedAt.Before(sectors[j].CreatedAt)
	})
	return sectors, nil
}

func (r *companyRepository) GetSector(ctx context.Context, id types.SectorID) (*model.Sector, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sector, exists := r.sectors[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "sector not found", goerr.V("id", id))
	}
	return copySector(sector), nil
}
