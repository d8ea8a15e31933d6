package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/google/uuid"
	"github.com/psq-lab/psiquo/pkg/domain/model"
	"github.com/psq-lab/psiquo/pkg/domain/types"
)

type questionRepository struct {
	mu        sync.RWMutex
	questions map[types.QuestionID]*model.Question
	byOrder   map[int]types.QuestionID
}

func newQuestionRepository() *questionRepository {
	return &questionRepository{
		questions: make(map[types.QuestionID]*model.Question),
		byOrder:   make(map[int]types.QuestionID),
	}
}

func copyQuestion(q *model.Question) *model.Question {
	copied := *q
	return &copied
}

func (r *questionRepository) UpsertByOrder(ctx context.Context, question *model.Question) (*model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, exists := r.byOrder[question.Order]; exists {
		existing := r.questions[id]
		existing.Text = question.Text
		existing.Category = question.Category
		existing.Active = question.Active
		return copyQuestion(existing), nil
	}

	created := copyQuestion(question)
	if created.ID == "" {
		created.ID = types.NewQuestionID()
	}
	created.CreatedAt = time.Now().UTC()
	r.questions[created.ID] = created
	r.byOrder[created.Order] = created.ID
	return copyQuestion(created), nil
}

func (r *questionRepository) Get(ctx context.Context, id types.QuestionID) (*model.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	question, exists := r.questions[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "question not found", goerr.V("id", id))
	}
	return copyQuestion(question), nil
}

func (r *questionRepository) ListActive(ctx context.Context) ([]*model.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	questions := make([]*model.Question, 0, len(r.questions))
	for _, q := range r.questions {
		if q.Active {
			questions = append(questions, copyQuestion(q))
		}
	}
	sort.Slice(questions, func(i, j int) bool {
		return questions[i].Order < questions[j].Order
	})
	return questions, nil
}

type answerKey struct {
	sectorID   types.SectorID
	questionID types.QuestionID
}

type answerRepository struct {
	mu      sync.RWMutex
	answers map[answerKey]*model.Answer
}

func newAnswerRepository() *answerRepository {
	return &answerRepository{
		answers: make(map[answerKey]*model.Answer),
	}
}

func copyAnswer(a *model.Answer) *model.Answer {
	copied := *a
	return &copied
}

func (r *answerRepository) Upsert(ctx context.Context, answer *model.Answer) (*model.Answer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	key := answerKey{sectorID: answer.SectorID, questionID: answer.QuestionID}

	if existing, exists := r.answers[key]; exists {
		existing.Value = answer.Value
		existing.UpdatedAt = now
		return copyAnswer(existing), nil
	}

	created := copyAnswer(answer)
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	created.CreatedAt = now
	created.UpdatedAt = now
	r.answers[key] = created
	return copyAnswer(created), nil
}

func (r *answerRepository) ListBySector(ctx context.Context, sectorID types.SectorID) ([]*model.Answer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	answers := make([]*model.Answer, 0)
	for key, answer := range r.answers {
		if key.sectorID == sectorID {
			answers = append(answers, copyAnswer(answer))
		}
	}
	sort.Slice(answers, func(i, j int) bool {
		return answers[i].CreatedAt.Before(answers[j].CreatedAt)
	})
	return answers, nil
}
