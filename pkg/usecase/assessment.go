package usecase

import (
	"context"
	"strings"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/psq-lab/psiquo/pkg/domain/model"
	"github.com/psq-lab/psiquo/pkg/domain/types"
	"github.com/psq-lab/psiquo/pkg/service/scoring"
	"github.com/psq-lab/psiquo/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

// minJustificationLen is the shortest justification accepted as complete
// during evaluation approval
const minJustificationLen = 20

// RegenerateAssessment scores every sector of the company from its current
// answers and replaces the stored risk set in one atomic step. Existing
// risk records of the company, including edited justifications, are
// discarded. Categories classified Low produce no record.
func (uc *UseCases) RegenerateAssessment(ctx context.Context, companyID types.CompanyID) ([]*model.Risk, error) {
	unlock := uc.companyLocks.Lock(companyID)
	defer unlock()

	if _, err := uc.repo.Company().Get(ctx, companyID); err != nil {
		return nil, goerr.Wrap(err, "failed to get company", goerr.V(types.CompanyIDKey, companyID))
	}

	sectors, _, err := uc.sectorsOf(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if len(sectors) == 0 {
		return nil, goerr.New("company has no sectors to assess",
			goerr.T(types.ErrTagPrecondition), goerr.V(types.CompanyIDKey, companyID))
	}

	questions, err := uc.repo.Question().ListActive(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list questions")
	}
	orderOf := make(map[types.QuestionID]int, len(questions))
	for _, q := range questions {
		orderOf[q.ID] = q.Order
	}

	var mu sync.Mutex
	staged := make([]*model.Risk, 0)

	eg, egCtx := errgroup.WithContext(ctx)
	for _, sector := range sectors {
		eg.Go(func() error {
			answers, err := uc.repo.Answer().ListBySector(egCtx, sector.ID)
			if err != nil {
				return goerr.Wrap(err, "failed to list answers", goerr.V(types.SectorIDKey, sector.ID))
			}

			scored := make([]model.ScoredAnswer, 0, len(answers))
			for _, ans := range answers {
				order, known := orderOf[ans.QuestionID]
				if !known {
					// Answer to a retired question, excluded from scoring
					continue
				}
				scored = append(scored, model.ScoredAnswer{Value: ans.Value, Order: order})
			}

			results := uc.scoring.ScoreSector(scored)

			mu.Lock()
			defer mu.Unlock()
			for _, result := range results {
				if !result.Classification.RequiresRecord() {
					continue
				}
				staged = append(staged, &model.Risk{
					SectorID:       sector.ID,
					Category:       result.Category,
					Description:    uc.cfg.Description(result.Category),
					Probability:    result.Probability,
					Severity:       result.Severity,
					Classification: result.Classification,
				})
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	created, err := uc.repo.Risk().ReplaceForSectors(ctx, sectorIDs(sectors), staged)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to replace risks", goerr.V(types.CompanyIDKey, companyID))
	}

	logging.From(ctx).Info("assessment regenerated",
		"company_id", companyID,
		"sectors", len(sectors),
		"risks", len(created),
	)

	return created, nil
}

// ListRisks returns the current risk records of the company
func (uc *UseCases) ListRisks(ctx context.Context, companyID types.CompanyID) ([]*model.Risk, error) {
	sectors, _, err := uc.sectorsOf(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if len(sectors) == 0 {
		return []*model.Risk{}, nil
	}

	risks, err := uc.repo.Risk().ListBySectors(ctx, sectorIDs(sectors))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list risks", goerr.V(types.CompanyIDKey, companyID))
	}
	return risks, nil
}

// UpdateRiskInput carries a manual risk revision
type UpdateRiskInput struct {
	Probability   string
	Severity      string
	Justification string
}

// UpdateRisk revises the levels and justification of one risk record. The
// classification is always recomputed from the submitted levels; a client
// cannot set it directly.
func (uc *UseCases) UpdateRisk(ctx context.Context, companyID types.CompanyID, riskID types.RiskID, input *UpdateRiskInput) (*model.Risk, error) {
	probability, err := types.ParseLevel(input.Probability)
	if err != nil {
		return nil, err
	}
	severity, err := types.ParseLevel(input.Severity)
	if err != nil {
		return nil, err
	}

	unlock := uc.companyLocks.Lock(companyID)
	defer unlock()

	risk, err := uc.riskOwnedBy(ctx, companyID, riskID)
	if err != nil {
		return nil, err
	}

	risk.Probability = probability
	risk.Severity = severity
	risk.Classification = scoring.Classify(probability, severity)
	risk.Justification = strings.TrimSpace(input.Justification)

	updated, err := uc.repo.Risk().Update(ctx, risk)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update risk", goerr.V(types.RiskIDKey, riskID))
	}
	return updated, nil
}

// ApprovalResult reports the outcome of an evaluation approval check
type ApprovalResult struct {
	Approved   bool
	TotalRisks int
	Incomplete int
}

// ApproveEvaluation verifies that every risk record of the company carries
// a justification of at least 20 characters. The check is stateless: no
// flag is persisted, a later edit simply changes the next outcome.
func (uc *UseCases) ApproveEvaluation(ctx context.Context, companyID types.CompanyID) (*ApprovalResult, error) {
	unlock := uc.companyLocks.Lock(companyID)
	defer unlock()

	risks, err := uc.ListRisks(ctx, companyID)
	if err != nil {
		return nil, err
	}

	var incomplete int
	for _, risk := range risks {
		if len(strings.TrimSpace(risk.Justification)) < minJustificationLen {
			incomplete++
		}
	}

	result := &ApprovalResult{
		Approved:   incomplete == 0,
		TotalRisks: len(risks),
		Incomplete: incomplete,
	}
	if incomplete > 0 {
		return result, goerr.New("evaluation has risks without sufficient justification",
			goerr.T(types.ErrTagPrecondition),
			goerr.V(types.CompanyIDKey, companyID),
			goerr.V(types.IncompleteKey, incomplete))
	}

	return result, nil
}
