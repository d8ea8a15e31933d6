package interfaces

import (
	"context"

	"github.com/psq-lab/psiquo/pkg/domain/model"
	"github.com/psq-lab/psiquo/pkg/domain/types"
)

type QuestionRepository interface {
	// UpsertByOrder inserts or updates a question keyed by its ordinal
	// position. Used by the seeding command; idempotent.
	UpsertByOrder(ctx context.Context, question *model.Question) (*model.Question, error)

	// Get retrieves a question by ID
	Get(ctx context.Context, id types.QuestionID) (*model.Question, error)

	// ListActive retrieves all active questions ordered by position
	ListActive(ctx context.Context) ([]*model.Question, error)
}

type AnswerRepository interface {
	// Upsert stores an answer keyed by (sector, question); last write wins
	Upsert(ctx context.Context, answer *model.Answer) (*model.Answer, error)

	// ListBySector retrieves all answers of one sector
	ListBySector(ctx context.Context, sectorID types.SectorID) ([]*model.Answer, error)
}
