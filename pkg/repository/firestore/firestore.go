package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/psq-lab/psiquo/pkg/domain/interfaces"
	"github.com/psq-lab/psiquo/pkg/domain/model/auth"
	"github.com/psq-lab/psiquo/pkg/domain/types"
)

// ErrNotFound is the sentinel wrapped by every missing-entity failure of
// this backend
var ErrNotFound = goerr.New("not found", goerr.T(types.ErrTagNotFound))

// Firestore is the production repository backend
type Firestore struct {
	client   *firestore.Client
	company  *companyRepository
	question *questionRepository
	answer   *answerRepository
	risk     *riskRepository
	plan     *planRepository
	evidence *evidenceRepository
	report   *reportRepository
	tokens   *tokenRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix prefixes every collection name, used to isolate
// parallel deployments sharing one database
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.company.collectionPrefix = prefix
		f.question.collectionPrefix = prefix
		f.answer.collectionPrefix = prefix
		f.risk.collectionPrefix = prefix
		f.plan.collectionPrefix = prefix
		f.evidence.collectionPrefix = prefix
		f.report.collectionPrefix = prefix
		f.tokens.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client", goerr.V("projectID", projectID))
	}

	f := &Firestore{
		client:   client,
		company:  newCompanyRepository(client),
		question: newQuestionRepository(client),
		answer:   newAnswerRepository(client),
		risk:     newRiskRepository(client),
		plan:     newPlanRepository(client),
		evidence: newEvidenceRepository(client),
		report:   newReportRepository(client),
		tokens:   newTokenRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Company() interfaces.CompanyRepository {
	return f.company
}

func (f *Firestore) Question() interfaces.QuestionRepository {
	return f.question
}

func (f *Firestore) Answer() interfaces.AnswerRepository {
	return f.answer
}

func (f *Firestore) Risk() interfaces.RiskRepository {
	return f.risk
}

func (f *Firestore) Plan() interfaces.PlanRepository {
	return f.plan
}

func (f *Firestore) Evidence() interfaces.EvidenceRepository {
	return f.evidence
}

func (f *Firestore) Report() interfaces.ReportRepository {
	return f.report
}

func (f *Firestore) PutToken(ctx context.Context, token *auth.Token) error {
	return f.tokens.Put(ctx, token)
}

func (f *Firestore) GetToken(ctx context.Context, tokenID auth.TokenID) (*auth.Token, error) {
	return f.tokens.Get(ctx, tokenID)
}

func (f *Firestore) DeleteToken(ctx context.Context, tokenID auth.TokenID) error {
	return f.tokens.Delete(ctx, tokenID)
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

func prefixed(prefix, name string) string {
	if prefix != "" {
		return prefix + "_" + name
	}
	return name
}
