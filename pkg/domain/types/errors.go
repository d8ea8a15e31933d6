package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify failures across the whole service. Every error that
// crosses the usecase boundary carries exactly one of these tags so that
// callers (HTTP layer, CLI) can map it to a stable behavior without parsing
// messages.
var (
	// ErrTagValidation marks malformed or out-of-range input. The error
	// carries field-level detail via goerr values.
	ErrTagValidation = goerr.NewTag("validation")

	// ErrTagNotFound marks a missing entity or an ownership mismatch. The
	// two cases are deliberately indistinguishable so that tenants cannot
	// probe for other tenants' data.
	ErrTagNotFound = goerr.NewTag("not_found")

	// ErrTagPrecondition marks an unmet business rule, e.g. regenerating an
	// assessment for a company without sectors.
	ErrTagPrecondition = goerr.NewTag("precondition")

	// ErrTagConflict marks an invalid state transition, e.g. archiving an
	// already archived report.
	ErrTagConflict = goerr.NewTag("conflict")

	// ErrTagStorage marks a failure of an external blob store or renderer.
	ErrTagStorage = goerr.NewTag("storage")
)

// Keys for structured error values
const (
	CompanyIDKey  = "company_id"
	SectorIDKey   = "sector_id"
	RiskIDKey     = "risk_id"
	PlanIDKey     = "plan_id"
	ReportIDKey   = "report_id"
	EvidenceIDKey = "evidence_id"
	IncompleteKey = "incomplete_count"
)
