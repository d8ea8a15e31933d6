package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/psq-lab/psiquo/pkg/domain/model"
	"github.com/psq-lab/psiquo/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type reportDocument struct {
	ID          string           `firestore:"id"`
	CompanyID   string           `firestore:"company_id"`
	Responsible string           `firestore:"responsible"`
	Version     string           `firestore:"version"`
	Status      string           `firestore:"status"`
	BlobKey     string           `firestore:"blob_key"`
	GeneratedAt time.Time        `firestore:"generated_at"`
	Snapshot    snapshotDocument `firestore:"snapshot"`
	CreatedAt   time.Time        `firestore:"created_at"`
	UpdatedAt   time.Time        `firestore:"updated_at"`
}

type snapshotDocument struct {
	CompanyName      string                 `firestore:"company_name"`
	CompanyTaxID     string                 `firestore:"company_tax_id"`
	CompanyHeadcount int                    `firestore:"company_headcount"`
	Responsible      string                 `firestore:"responsible"`
	Version          string                 `firestore:"version"`
	GeneratedAt      time.Time              `firestore:"generated_at"`
	TotalRisks       int                    `firestore:"total_risks"`
	ByClassification map[string]int         `firestore:"by_classification"`
	ByActionStatus   map[string]int         `firestore:"by_action_status"`
	Risks            []snapshotRiskDocument `firestore:"risks"`
	Evidence         []snapshotEvidenceDoc  `firestore:"evidence"`
}

type snapshotRiskDocument struct {
	Sector         string                 `firestore:"sector"`
	Description    string                 `firestore:"description"`
	Probability    string                 `firestore:"probability"`
	Severity       string                 `firestore:"severity"`
	Classification string                 `firestore:"classification"`
	Justification  string                 `firestore:"justification"`
	Plans          []snapshotPlanDocument `firestore:"plans"`
}

type snapshotPlanDocument struct {
	What    string    `firestore:"what"`
	Why     string    `firestore:"why"`
	Who     string    `firestore:"who"`
	Where   string    `firestore:"where"`
	When    time.Time `firestore:"when"`
	How     string    `firestore:"how"`
	HowMuch float64   `firestore:"how_much"`
	Status  string    `firestore:"status"`
}

type snapshotEvidenceDoc struct {
	Label      string    `firestore:"label"`
	MediaType  string    `firestore:"media_type"`
	UploadedAt time.Time `firestore:"uploaded_at"`
}

type reportRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newReportRepository(client *firestore.Client) *reportRepository {
	return &reportRepository{client: client}
}

func (r *reportRepository) reports() string {
	return prefixed(r.collectionPrefix, "reports")
}

func (r *reportRepository) Create(ctx context.Context, report *model.Report) (*model.Report, error) {
	now := time.Now().UTC()
	id := report.ID
	if id == "" {
		id = types.NewReportID()
	}
	doc := reportToDoc(report)
	doc.ID = id.String()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.client.Collection(r.reports()).Doc(doc.ID).Create(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create report", goerr.V("id", doc.ID))
	}
	return reportFromDoc(doc), nil
}

func (r *reportRepository) Get(ctx context.Context, id types.ReportID) (*model.Report, error) {
	doc, err := r.client.Collection(r.reports()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "report not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get report", goerr.V("id", id))
	}

	var rd reportDocument
	if err := doc.DataTo(&rd); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal report", goerr.V("id", id))
	}
	return reportFromDoc(&rd), nil
}

func (r *reportRepository) ListByCompany(ctx context.Context, companyID types.CompanyID) ([]*model.Report, error) {
	iter := r.client.Collection(r.reports()).
		Where("company_id", "==", companyID.String()).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var reports []*model.Report
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate reports", goerr.V("company_id", companyID))
		}

		var rd reportDocument
		if err := doc.DataTo(&rd); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal report")
		}
		reports = append(reports, reportFromDoc(&rd))
	}

	return reports, nil
}

// UpdateStatus touches only the status and updated_at fields; the embedded
// snapshot stays as written at generation time
func (r *reportRepository) UpdateStatus(ctx context.Context, id types.ReportID, reportStatus types.ReportStatus) (*model.Report, error) {
	docRef := r.client.Collection(r.reports()).Doc(id.String())

	var result reportDocument
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(ErrNotFound, "report not found", goerr.V("id", id))
			}
			return goerr.Wrap(err, "failed to read report", goerr.V("id", id))
		}

		if err := doc.DataTo(&result); err != nil {
			return goerr.Wrap(err, "failed to unmarshal report")
		}

		result.Status = reportStatus.String()
		result.UpdatedAt = time.Now().UTC()

		return tx.Update(docRef, []firestore.Update{
			{Path: "status", Value: result.Status},
			{Path: "updated_at", Value: result.UpdatedAt},
		})
	})
	if err != nil {
		return nil, err
	}

	return reportFromDoc(&result), nil
}

func reportToDoc(report *model.Report) *reportDocument {
	snap := report.Snapshot

	byClass := make(map[string]int, len(snap.Summary.ByClassification))
	for k, v := range snap.Summary.ByClassification {
		byClass[k.String()] = v
	}
	byStatus := make(map[string]int, len(snap.Summary.ByActionStatus))
	for k, v := range snap.Summary.ByActionStatus {
		byStatus[k.String()] = v
	}

	risks := make([]snapshotRiskDocument, 0, len(snap.Risks))
	for _, risk := range snap.Risks {
		plans := make([]snapshotPlanDocument, 0, len(risk.Plans))
		for _, plan := range risk.Plans {
			plans = append(plans, snapshotPlanDocument{
				What:    plan.What,
				Why:     plan.Why,
				Who:     plan.Who,
				Where:   plan.Where,
				When:    plan.When,
				How:     plan.How,
				HowMuch: plan.HowMuch,
				Status:  plan.Status.String(),
			})
		}
		risks = append(risks, snapshotRiskDocument{
			Sector:         risk.Sector,
			Description:    risk.Description,
			Probability:    risk.Probability.String(),
			Severity:       risk.Severity.String(),
			Classification: risk.Classification.String(),
			Justification:  risk.Justification,
			Plans:          plans,
		})
	}

	evidence := make([]snapshotEvidenceDoc, 0, len(snap.Evidence))
	for _, ev := range snap.Evidence {
		evidence = append(evidence, snapshotEvidenceDoc{
			Label:      ev.Label,
			MediaType:  ev.MediaType,
			UploadedAt: ev.UploadedAt,
		})
	}

	return &reportDocument{
		ID:          report.ID.String(),
		CompanyID:   report.CompanyID.String(),
		Responsible: report.Responsible,
		Version:     report.Version,
		Status:      report.Status.String(),
		BlobKey:     report.BlobKey,
		GeneratedAt: report.GeneratedAt,
		Snapshot: snapshotDocument{
			CompanyName:      snap.Company.Name,
			CompanyTaxID:     snap.Company.TaxID,
			CompanyHeadcount: snap.Company.Headcount,
			Responsible:      snap.Responsible,
			Version:          snap.Version,
			GeneratedAt:      snap.GeneratedAt,
			TotalRisks:       snap.Summary.TotalRisks,
			ByClassification: byClass,
			ByActionStatus:   byStatus,
			Risks:            risks,
			Evidence:         evidence,
		},
	}
}

func reportFromDoc(rd *reportDocument) *model.Report {
	byClass := make(map[types.Classification]int, len(rd.Snapshot.ByClassification))
	for k, v := range rd.Snapshot.ByClassification {
		byClass[types.Classification(k)] = v
	}
	byStatus := make(map[types.ActionStatus]int, len(rd.Snapshot.ByActionStatus))
	for k, v := range rd.Snapshot.ByActionStatus {
		byStatus[types.ActionStatus(k)] = v
	}

	risks := make([]model.ReportRisk, 0, len(rd.Snapshot.Risks))
	for _, risk := range rd.Snapshot.Risks {
		plans := make([]model.ReportPlan, 0, len(risk.Plans))
		for _, plan := range risk.Plans {
			plans = append(plans, model.ReportPlan{
				What:    plan.What,
				Why:     plan.Why,
				Who:     plan.Who,
				Where:   plan.Where,
				When:    plan.When,
				How:     plan.How,
				HowMuch: plan.HowMuch,
				Status:  types.ActionStatus(plan.Status),
			})
		}
		risks = append(risks, model.ReportRisk{
			Sector:         risk.Sector,
			Description:    risk.Description,
			Probability:    types.Level(risk.Probability),
			Severity:       types.Level(risk.Severity),
			Classification: types.Classification(risk.Classification),
			Justification:  risk.Justification,
			Plans:          plans,
		})
	}

	evidence := make([]model.ReportEvidence, 0, len(rd.Snapshot.Evidence))
	for _, ev := range rd.Snapshot.Evidence {
		evidence = append(evidence, model.ReportEvidence{
			Label:      ev.Label,
			MediaType:  ev.MediaType,
			UploadedAt: ev.UploadedAt,
		})
	}

	return &model.Report{
		ID:          types.ReportID(rd.ID),
		CompanyID:   types.CompanyID(rd.CompanyID),
		Responsible: rd.Responsible,
		Version:     rd.Version,
		Status:      types.ReportStatus(rd.Status),
		BlobKey:     rd.BlobKey,
		GeneratedAt: rd.GeneratedAt,
		Snapshot: model.ReportSnapshot{
			Company: model.ReportCompany{
				Name:      rd.Snapshot.CompanyName,
				TaxID:     rd.Snapshot.CompanyTaxID,
				Headcount: rd.Snapshot.CompanyHeadcount,
			},
			Responsible: rd.Snapshot.Responsible,
			Version:     rd.Snapshot.Version,
			GeneratedAt: rd.Snapshot.GeneratedAt,
			Summary: model.ReportSummary{
				TotalRisks:       rd.Snapshot.TotalRisks,
				ByClassification: byClass,
				ByActionStatus:   byStatus,
			},
			Risks:    risks,
			Evidence: evidence,
		},
		CreatedAt: rd.CreatedAt,
		UpdatedAt: rd.UpdatedAt,
	}
}
