package memory

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/psq-lab/psiquo/pkg/domain/interfaces"
	"github.com/psq-lab/psiquo/pkg/domain/model/auth"
	"github.com/psq-lab/psiquo/pkg/domain/types"
)

// ErrNotFound is the sentinel wrapped by every missing-entity failure of
// this backend
var ErrNotFound = goerr.New("not found", goerr.T(types.ErrTagNotFound))

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory is the in-memory repository backend used for development and tests
type Memory struct {
	company  *companyRepository
	question *questionRepository
	answer   *answerRepository
	risk     *riskRepository
	plan     *planRepository
	evidence *evidenceRepository
	report   *reportRepository
	tokens   *tokenStore
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		company:  newCompanyRepository(),
		question: newQuestionRepository(),
		answer:   newAnswerRepository(),
		risk:     newRiskRepository(),
		plan:     newPlanRepository(),
		evidence: newEvidenceRepository(),
		report:   newReportRepository(),
		tokens:   newTokenStore(),
	}
}

func (m *Memory) Company() interfaces.CompanyRepository {
	return m.company
}

func (m *Memory) Question() interfaces.QuestionRepository {
	return m.question
}

func (m *Memory) Answer() interfaces.AnswerRepository {
	return m.answer
}

func (m *Memory) Risk() interfaces.RiskRepository {
	return m.risk
}

func (m *Memory) Plan() interfaces.PlanRepository {
	return m.plan
}

func (m *Memory) Evidence() interfaces.EvidenceRepository {
	return m.evidence
}

func (m *Memory) Report() interfaces.ReportRepository {
	return m.report
}

func (m *Memory) PutToken(ctx context.Context, token *auth.Token) error {
	return m.tokens.put(token)
}

func (m *Memory) GetToken(ctx context.Context, tokenID auth.TokenID) (*auth.Token, error) {
	return m.tokens.get(tokenID)
}

func (m *Memory) DeleteToken(ctx context.Context, tokenID auth.TokenID) error {
	return m.tokens.delete(tokenID)
}

func (m *Memory) Close() error {
	return nil
}
