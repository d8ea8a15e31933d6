package interfaces

import (
	"context"

	"github.com/psq-lab/psiquo/pkg/domain/model/auth"
)

// Repository defines the interface for data persistence
type Repository interface {
	Company() CompanyRepository
	Question() QuestionRepository
	Answer() AnswerRepository
	Risk() RiskRepository
	Plan() PlanRepository
	Evidence() EvidenceRepository
	Report() ReportRepository

	// Auth methods
	PutToken(ctx context.Context, token *auth.Token) error
	GetToken(ctx context.Context, tokenID auth.TokenID) (*auth.Token, error)
	DeleteToken(ctx context.Context, tokenID auth.TokenID) error

	Close() error
}
