package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/psq-lab/psiquo/pkg/domain/model"
	"github.com/psq-lab/psiquo/pkg/domain/types"
	"github.com/psq-lab/psiquo/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

const (
	defaultReportVersion = "1.0"
	minReportResponsible = 3
)

// GenerateReportInput carries a report generation request
type GenerateReportInput struct {
	Responsible string
	Version     string
}

// GenerateReport snapshots the company's full assessment state, renders
// the document, stores the artifact and persists the report record. Every
// risk is embedded regardless of classification.
func (uc *UseCases) GenerateReport(ctx context.Context, companyID types.CompanyID, input *GenerateReportInput) (*model.Report, error) {
	responsible := strings.TrimSpace(input.Responsible)
	if len(responsible) < minReportResponsible {
		return nil, goerr.New("report responsible must have at least 3 characters",
			goerr.T(types.ErrTagValidation), goerr.V("field", "responsible"))
	}
	version := strings.TrimSpace(input.Version)
	if version == "" {
		version = defaultReportVersion
	}

	unlock := uc.companyLocks.Lock(companyID)
	defer unlock()

	company, err := uc.repo.Company().Get(ctx, companyID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get company", goerr.V(types.CompanyIDKey, companyID))
	}

	sectors, sectorByID, err := uc.sectorsOf(ctx, companyID)
	if err != nil {
		return nil, err
	}

	var risks []*model.Risk
	var evidence []*model.Evidence

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if len(sectors) == 0 {
			return nil
		}
		var err error
		risks, err = uc.repo.Risk().ListBySectors(egCtx, sectorIDs(sectors))
		if err != nil {
			return goerr.Wrap(err, "failed to list risks", goerr.V(types.CompanyIDKey, companyID))
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		evidence, err = uc.repo.Evidence().ListByCompany(egCtx, companyID)
		if err != nil {
			return goerr.Wrap(err, "failed to list evidence", goerr.V(types.CompanyIDKey, companyID))
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var plans []*model.ActionPlan
	if len(risks) > 0 {
		riskIDs := make([]types.RiskID, 0, len(risks))
		for _, risk := range risks {
			riskIDs = append(riskIDs, risk.ID)
		}
		plans, err = uc.repo.Plan().ListByRisks(ctx, riskIDs)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list plans", goerr.V(types.CompanyIDKey, companyID))
		}
	}

	generatedAt := time.Now().UTC()
	snapshot := buildSnapshot(company, sectorByID, risks, plans, evidence, responsible, version, generatedAt)

	artifact, err := uc.renderer.Render(ctx, snapshot)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to render report",
			goerr.T(types.ErrTagStorage), goerr.V(types.CompanyIDKey, companyID))
	}

	key := reportBlobKey(companyID, artifact)
	if err := uc.blob.Store(ctx, key, artifact, uc.renderer.ContentType()); err != nil {
		return nil, goerr.Wrap(err, "failed to store report artifact", goerr.V("key", key))
	}

	report, err := uc.repo.Report().Create(ctx, &model.Report{
		CompanyID:   companyID,
		Responsible: responsible,
		Version:     version,
		Status:      types.ReportStatusGenerated,
		BlobKey:     key,
		GeneratedAt: generatedAt,
		Snapshot:    *snapshot,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create report", goerr.V(types.CompanyIDKey, companyID))
	}

	logging.From(ctx).Info("report generated",
		"company_id", companyID,
		"report_id", report.ID,
		"risks", snapshot.Summary.TotalRisks,
	)

	return report, nil
}

// ListReports returns the reports of the company, newest first
func (uc *UseCases) ListReports(ctx context.Context, companyID types.CompanyID) ([]*model.Report, error) {
	reports, err := uc.repo.Report().ListByCompany(ctx, companyID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list reports", goerr.V(types.CompanyIDKey, companyID))
	}
	return reports, nil
}

// DownloadReport returns a report record together with its rendered
// artifact and content type
func (uc *UseCases) DownloadReport(ctx context.Context, companyID types.CompanyID, id types.ReportID) (*model.Report, []byte, string, error) {
	report, err := uc.reportOwnedBy(ctx, companyID, id)
	if err != nil {
		return nil, nil, "", err
	}

	artifact, err := uc.blob.Fetch(ctx, report.BlobKey)
	if err != nil {
		return nil, nil, "", goerr.Wrap(err, "failed to fetch report artifact", goerr.V("key", report.BlobKey))
	}
	return report, artifact, uc.renderer.ContentType(), nil
}

// ArchiveReport transitions a generated report to archived. Archiving any
// other status is a conflict; the snapshot and artifact stay untouched.
func (uc *UseCases) ArchiveReport(ctx context.Context, companyID types.CompanyID, id types.ReportID) (*model.Report, error) {
	report, err := uc.reportOwnedBy(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	if !report.Status.CanArchive() {
		return nil, goerr.New("report cannot be archived in its current status",
			goerr.T(types.ErrTagConflict),
			goerr.V(types.ReportIDKey, id), goerr.V("status", report.Status))
	}

	updated, err := uc.repo.Report().UpdateStatus(ctx, id, types.ReportStatusArchived)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to archive report", goerr.V(types.ReportIDKey, id))
	}
	return updated, nil
}

func (uc *UseCases) reportOwnedBy(ctx context.Context, companyID types.CompanyID, id types.ReportID) (*model.Report, error) {
	report, err := uc.repo.Report().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get report", goerr.V(types.ReportIDKey, id))
	}
	if report.CompanyID != companyID {
		return nil, goerr.New("report not found",
			goerr.T(types.ErrTagNotFound),
			goerr.V(types.ReportIDKey, id), goerr.V(types.CompanyIDKey, companyID))
	}
	return report, nil
}

func buildSnapshot(
	company *model.Company,
	sectorByID map[types.SectorID]*model.Sector,
	risks []*model.Risk,
	plans []*model.ActionPlan,
	evidence []*model.Evidence,
	responsible, version string,
	generatedAt time.Time,
) *model.ReportSnapshot {
	plansByRisk := make(map[types.RiskID][]model.ReportPlan)
	byActionStatus := make(map[types.ActionStatus]int)
	for _, plan := range plans {
		plansByRisk[plan.RiskID] = append(plansByRisk[plan.RiskID], model.ReportPlan{
			What:    plan.What,
			Why:     plan.Why,
			Who:     plan.Who,
			Where:   plan.Where,
			When:    plan.When,
			How:     plan.How,
			HowMuch: plan.HowMuch,
			Status:  plan.Status,
		})
		byActionStatus[plan.Status]++
	}

	byClassification := make(map[types.Classification]int)
	reportRisks := make([]model.ReportRisk, 0, len(risks))
	for _, risk := range risks {
		byClassification[risk.Classification]++

		sectorName := risk.SectorID.String()
		if sector, ok := sectorByID[risk.SectorID]; ok {
			sectorName = sector.Name
		}

		reportRisks = append(reportRisks, model.ReportRisk{
			Sector:         sectorName,
			Description:    risk.Description,
			Probability:    risk.Probability,
			Severity:       risk.Severity,
			Classification: risk.Classification,
			Justification:  risk.Justification,
			Plans:          plansByRisk[risk.ID],
		})
	}

	reportEvidence := make([]model.ReportEvidence, 0, len(evidence))
	for _, ev := range evidence {
		reportEvidence = append(reportEvidence, model.ReportEvidence{
			Label:      ev.Label,
			MediaType:  ev.MediaType,
			UploadedAt: ev.CreatedAt,
		})
	}

	return &model.ReportSnapshot{
		Company: model.ReportCompany{
			Name:      company.Name,
			TaxID:     company.TaxID,
			Headcount: company.Headcount,
		},
		Responsible: responsible,
		Version:     version,
		GeneratedAt: generatedAt,
		Summary: model.ReportSummary{
			TotalRisks:       len(risks),
			ByClassification: byClassification,
			ByActionStatus:   byActionStatus,
		},
		Risks:    reportRisks,
		Evidence: reportEvidence,
	}
}

func reportBlobKey(companyID types.CompanyID, artifact []byte) string {
	sum := sha256.Sum256(artifact)
	return "reports/" + companyID.String() + "/" + hex.EncodeToString(sum[:])
}
