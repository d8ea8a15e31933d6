package model

import (
	"time"

	"github.com/psq-lab/psiquo/pkg/domain/types"
)

// Company is the tenant of the assessment. All risk, plan, evidence and
// report data is scoped to exactly one company.
type Company struct {
	ID        types.CompanyID
	Name      string
	TaxID     string // CNPJ, digits only
	Headcount int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Sector is an organizational subdivision answering its own questionnaire
type Sector struct {
	ID        types.SectorID
	CompanyID types.CompanyID
	Name      string
	Headcount int // 0 means not informed
	CreatedAt time.Time
}
