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

type reportRepository struct {
	mu      sync.RWMutex
	reports map[types.ReportID]*model.Report
}

func newReportRepository() *reportRepository {
	return &reportRepository{
		reports: make(map[types.ReportID]*model.Report),
	}
}

func copyReport(r *model.Report) *model.Report {
	copied := *r
	copied.Snapshot.Risks = append([]model.ReportRisk(nil), r.Snapshot.Risks...)
	copied.Snapshot.Evidence = append([]model.ReportEvidence(nil), r.Snapshot.Evidence...)
	return &copied
}

func (r *reportRepository) Create(ctx context.Context, report *model.Report) (*model.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyReport(report)
	if created.ID == "" {
		created.ID = types.NewReportID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now
	r.reports[created.ID] = created
	return copyReport(created), nil
}

func (r *reportRepository) Get(ctx context.Context, id types.ReportID) (*model.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	report, exists := r.reports[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "report not found", goerr.V("id", id))
	}
	return copyReport(report), nil
}

func (r *reportRepository) ListByCompany(ctx context.Context, companyID types.CompanyID) ([]*model.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reports := make([]*model.Report, 0)
	for _, report := range r.reports {
		if report.CompanyID == companyID {
			reports = append(reports, copyReport(report))
		}
	}
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})
	return reports, nil
}

func (r *reportRepository) UpdateStatus(ctx context.Context, id types.ReportID, status types.ReportStatus) (*model.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.reports[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "report not found", goerr.V("id", id))
	}

	existing.Status = status
	existing.UpdatedAt = time.Now().UTC()
	return copyReport(existing), nil
}
