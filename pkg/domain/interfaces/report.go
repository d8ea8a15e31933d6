package interfaces

import (
	"context"

	"github.com/psq-lab/psiquo/pkg/domain/model"
	"github.com/psq-lab/psiquo/pkg/domain/types"
)

type ReportRepository interface {
	// Create persists a new report with its embedded snapshot
	Create(ctx context.Context, report *model.Report) (*model.Report, error)

	// Get retrieves a report by ID
	Get(ctx context.Context, id types.ReportID) (*model.Report, error)

	// ListByCompany retrieves the reports of a company, newest first
	ListByCompany(ctx context.Context, companyID types.CompanyID) ([]*model.Report, error)

	// UpdateStatus transitions the status of a report. The embedded
	// snapshot is never touched.
	UpdateStatus(ctx context.Context, id types.ReportID, status types.ReportStatus) (*model.Report, error)
}

type EvidenceRepository interface {
	// Create persists an evidence record
	Create(ctx context.Context, evidence *model.Evidence) (*model.Evidence, error)

	// Get retrieves an evidence record by ID
	Get(ctx context.Context, id types.EvidenceID) (*model.Evidence, error)

	// ListByCompany retrieves the evidence of a company, newest first
	ListByCompany(ctx context.Context, companyID types.CompanyID) ([]*model.Evidence, error)

	// Delete deletes an evidence record by ID
	Delete(ctx context.Context, id types.EvidenceID) error
}
