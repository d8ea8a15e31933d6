package types

import "github.com/m-mizutani/goerr/v2"

// ReportStatus represents the lifecycle state of a generated report. The
// only permitted transition is Generated → Archived.
type ReportStatus string

const (
	ReportStatusDraft     ReportStatus = "draft"
	ReportStatusGenerated ReportStatus = "generated"
	ReportStatusArchived  ReportStatus = "archived"
)

// IsValid checks if the report status is valid
func (s ReportStatus) IsValid() bool {
	switch s {
	case ReportStatusDraft, ReportStatusGenerated, ReportStatusArchived:
		return true
	default:
		return false
	}
}

// CanArchive reports whether a report in this status may transition to
// Archived. Archiving an archived report is a conflict, not a no-op.
func (s ReportStatus) CanArchive() bool {
	return s == ReportStatusGenerated
}

// String returns the string representation of the report status
func (s ReportStatus) String() string {
	return string(s)
}

// ParseReportStatus parses a string into a ReportStatus
func ParseReportStatus(s string) (ReportStatus, error) {
	status := ReportStatus(s)
	if !status.IsValid() {
		return "", goerr.New("invalid report status", goerr.V("status", s), goerr.T(ErrTagValidation))
	}
	return status, nil
}
