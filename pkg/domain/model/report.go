package model

import (
	"time"

	"github.com/psq-lab/psiquo/pkg/domain/types"
)

// Report is a generated assessment document. The snapshot is embedded at
// generation time and never mutated afterwards; only the status field
// transitions, and only from Generated to Archived.
type Report struct {
	ID          types.ReportID
	CompanyID   types.CompanyID
	Responsible string
	Version     string
	Status      types.ReportStatus
	BlobKey     string // rendered artifact in blob storage
	GeneratedAt time.Time
	Snapshot    ReportSnapshot
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ReportSnapshot is the full data handed to the renderer. It embeds every
// risk (any classification, for transparency) with justification and action
// plans, plus the evidence list and summary counters.
type ReportSnapshot struct {
	Company     ReportCompany
	Responsible string
	Version     string
	GeneratedAt time.Time
	Summary     ReportSummary
	Risks       []ReportRisk
	Evidence    []ReportEvidence
}

// ReportCompany is the company identity embedded in a snapshot
type ReportCompany struct {
	Name      string
	TaxID     string
	Headcount int
}

// ReportSummary holds the counters shown on the report cover
type ReportSummary struct {
	TotalRisks       int
	ByClassification map[types.Classification]int
	ByActionStatus   map[types.ActionStatus]int
}

// ReportRisk is one risk entry of a snapshot with its nested plans
type ReportRisk struct {
	Sector         string
	Description    string
	Probability    types.Level
	Severity       types.Level
	Classification types.Classification
	Justification  string
	Plans          []ReportPlan
}

// ReportPlan is one 5W2H entry of a snapshot
type ReportPlan struct {
	What    string
	Why     string
	Who     string
	Where   string
	When    time.Time
	How     string
	HowMuch float64
	Status  types.ActionStatus
}

// ReportEvidence is one evidence entry of a snapshot
type ReportEvidence struct {
	Label      string
	MediaType  string
	UploadedAt time.Time
}
