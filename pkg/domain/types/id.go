package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// CompanyID identifies a company (tenant)
type CompanyID string

// NewCompanyID generates a new random CompanyID
func NewCompanyID() CompanyID {
	return CompanyID(uuid.NewString())
}

// Validate checks if the CompanyID is a valid UUID
func (x CompanyID) Validate() error {
	if _, err := uuid.Parse(string(x)); err != nil {
		return goerr.Wrap(err, "invalid company ID", goerr.V("id", x), goerr.T(ErrTagValidation))
	}
	return nil
}

// String returns the string representation of CompanyID
func (x CompanyID) String() string {
	return string(x)
}

// SectorID identifies a sector within a company
type SectorID string

// NewSectorID generates a new random SectorID
func NewSectorID() SectorID {
	return SectorID(uuid.NewString())
}

// Validate checks if the SectorID is a valid UUID
func (x SectorID) Validate() error {
	if _, err := uuid.Parse(string(x)); err != nil {
		return goerr.Wrap(err, "invalid sector ID", goerr.V("id", x), goerr.T(ErrTagValidation))
	}
	return nil
}

// String returns the string representation of SectorID
func (x SectorID) String() string {
	return string(x)
}

// QuestionID identifies a questionnaire question
type QuestionID string

// NewQuestionID generates a new random QuestionID
func NewQuestionID() QuestionID {
	return QuestionID(uuid.NewString())
}

// String returns the string representation of QuestionID
func (x QuestionID) String() string {
	return string(x)
}

// RiskID identifies a generated risk record
type RiskID string

// NewRiskID generates a new random RiskID
func NewRiskID() RiskID {
	return RiskID(uuid.NewString())
}

// Validate checks if the RiskID is a valid UUID
func (x RiskID) Validate() error {
	if _, err := uuid.Parse(string(x)); err != nil {
		return goerr.Wrap(err, "invalid risk ID", goerr.V("id", x), goerr.T(ErrTagValidation))
	}
	return nil
}

// String returns the string representation of RiskID
func (x RiskID) String() string {
	return string(x)
}

// PlanID identifies a 5W2H action plan
type PlanID string

// NewPlanID generates a new random PlanID
func NewPlanID() PlanID {
	return PlanID(uuid.NewString())
}

// String returns the string representation of PlanID
func (x PlanID) String() string {
	return string(x)
}

// ReportID identifies a generated report
type ReportID string

// NewReportID generates a new random ReportID
func NewReportID() ReportID {
	return ReportID(uuid.NewString())
}

// String returns the string representation of ReportID
func (x ReportID) String() string {
	return string(x)
}

// EvidenceID identifies an uploaded evidence record
type EvidenceID string

// NewEvidenceID generates a new random EvidenceID
func NewEvidenceID() EvidenceID {
	return EvidenceID(uuid.NewString())
}

// String returns the string representation of EvidenceID
func (x EvidenceID) String() string {
	return string(x)
}
