package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/psq-lab/psiquo/pkg/domain/model"
	"github.com/psq-lab/psiquo/pkg/domain/types"
)

// RegisterCompanyInput carries the company registration request
type RegisterCompanyInput struct {
	Name      string
	TaxID     string
	Headcount int
	Sectors   []SectorInput
}

// SectorInput is one sector of a registration request
type SectorInput struct {
	Name      string
	Headcount int
}

// RegisterCompany creates a company together with its sectors. The tax ID
// must be a structurally valid CNPJ; at least one sector is required.
func (uc *UseCases) RegisterCompany(ctx context.Context, input *RegisterCompanyInput) (*model.Company, []*model.Sector, error) {
	name := strings.TrimSpace(input.Name)
	if len(name) < 2 {
		return nil, nil, goerr.New("company name must have at least 2 characters",
			goerr.T(types.ErrTagValidation), goerr.V("field", "name"))
	}

	taxID := normalizeTaxID(input.TaxID)
	if !validCNPJ(taxID) {
		return nil, nil, goerr.New("invalid tax ID",
			goerr.T(types.ErrTagValidation), goerr.V("field", "tax_id"))
	}

	if input.Headcount <= 0 {
		return nil, nil, goerr.New("headcount must be positive",
			goerr.T(types.ErrTagValidation), goerr.V("field", "headcount"))
	}

	if len(input.Sectors) == 0 {
		return nil, nil, goerr.New("at least one sector is required",
			goerr.T(types.ErrTagValidation), goerr.V("field", "sectors"))
	}

	companyID := types.NewCompanyID()
	company := &model.Company{
		ID:        companyID,
		Name:      name,
		TaxID:     taxID,
		Headcount: input.Headcount,
	}

	sectors := make([]*model.Sector, 0, len(input.Sectors))
	for _, s := range input.Sectors {
		sectorName := strings.TrimSpace(s.Name)
		if sectorName == "" {
			return nil, nil, goerr.New("sector name is required",
				goerr.T(types.ErrTagValidation), goerr.V("field", "sectors.name"))
		}
		if s.Headcount < 0 {
			return nil, nil, goerr.New("sector headcount must not be negative",
				goerr.T(types.ErrTagValidation), goerr.V("field", "sectors.headcount"))
		}
		sectors = append(sectors, &model.Sector{
			ID:        types.NewSectorID(),
			CompanyID: companyID,
			Name:      sectorName,
			Headcount: s.Headcount,
		})
	}

	created, err := uc.repo.Company().Create(ctx, company, sectors)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to register company")
	}

	stored, err := uc.repo.Company().ListSectors(ctx, created.ID)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to load sectors",
			goerr.V(types.CompanyIDKey, created.ID))
	}

	return created, stored, nil
}

// GetCompany retrieves a company with its sectors
func (uc *UseCases) GetCompany(ctx context.Context, id types.CompanyID) (*model.Company, []*model.Sector, error) {
	company, err := uc.repo.Company().Get(ctx, id)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to get company", goerr.V(types.CompanyIDKey, id))
	}

	sectors, err := uc.repo.Company().ListSectors(ctx, id)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to load sectors", goerr.V(types.CompanyIDKey, id))
	}

	return company, sectors, nil
}

// normalizeTaxID strips the usual CNPJ punctuation
func normalizeTaxID(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// validCNPJ verifies length, rejects repeated-digit sequences and checks
// both verification digits of a Brazilian CNPJ.
func validCNPJ(s string) bool {
	if len(s) != 14 {
		return false
	}

	digits := make([]int, 14)
	same := true
	for i, r := range s {
		if r < '0' || r > '9' {
			return false
		}
		digits[i] = int(r - '0')
		if digits[i] != digits[0] {
			same = false
		}
	}
	if same {
		return false
	}

	weights1 := []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	if digits[12] != cnpjCheckDigit(digits[:12], weights1) {
		return false
	}

	weights2 := []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	return digits[13] == cnpjCheckDigit(digits[:13], weights2)
}

func cnpjCheckDigit(digits, weights []int) int {
	var sum int
	for i, d := range digits {
		sum += d * weights[i]
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}
