package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/psq-lab/psiquo/pkg/domain/model"
	"github.com/psq-lab/psiquo/pkg/domain/types"
)

// sectorsOf loads the sectors of a company and indexes them by ID
func (uc *UseCases) sectorsOf(ctx context.Context, companyID types.CompanyID) ([]*model.Sector, map[types.SectorID]*model.Sector, error) {
	sectors, err := uc.repo.Company().ListSectors(ctx, companyID)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to load sectors", goerr.V(types.CompanyIDKey, companyID))
	}

	byID := make(map[types.SectorID]*model.Sector, len(sectors))
	for _, s := range sectors {
		byID[s.ID] = s
	}
	return sectors, byID, nil
}

// riskOwnedBy resolves a risk and verifies it belongs to the company. A
// risk of another tenant is reported as not found, never as forbidden.
func (uc *UseCases) riskOwnedBy(ctx context.Context, companyID types.CompanyID, riskID types.RiskID) (*model.Risk, error) {
	risk, err := uc.repo.Risk().Get(ctx, riskID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get risk", goerr.V(types.RiskIDKey, riskID))
	}

	_, byID, err := uc.sectorsOf(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if _, owned := byID[risk.SectorID]; !owned {
		return nil, goerr.New("risk not found",
			goerr.T(types.ErrTagNotFound),
			goerr.V(types.RiskIDKey, riskID), goerr.V(types.CompanyIDKey, companyID))
	}

	return risk, nil
}

// sectorOwnedBy resolves a sector and verifies it belongs to the company
func (uc *UseCases) sectorOwnedBy(ctx context.Context, companyID types.CompanyID, sectorID types.SectorID) (*model.Sector, error) {
	sector, err := uc.repo.Company().GetSector(ctx, sectorID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get sector", goerr.V(types.SectorIDKey, sectorID))
	}
	if sector.CompanyID != companyID {
		return nil, goerr.New("sector not found",
			goerr.T(types.ErrTagNotFound),
			goerr.V(types.SectorIDKey, sectorID), goerr.V(types.CompanyIDKey, companyID))
	}
	return sector, nil
}

func sectorIDs(sectors []*model.Sector) []types.SectorID {
	ids := make([]types.SectorID, 0, len(sectors))
	for _, s := range sectors {
		ids = append(ids, s.ID)
	}
	return ids
}
