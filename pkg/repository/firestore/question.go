package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/google/uuid"
	"github.com/psq-lab/psiquo/pkg/domain/model"
	"github.com/psq-lab/psiquo/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type questionDocument struct {
	ID        string    `firestore:"id"`
	Category  string    `firestore:"category"`
	Order     int       `firestore:"order"`
	Text      string    `firestore:"text"`
	Active    bool      `firestore:"active"`
	CreatedAt time.Time `firestore:"created_at"`
}

type questionRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newQuestionRepository(client *firestore.Client) *questionRepository {
	return &questionRepository{client: client}
}

func (r *questionRepository) questions() string {
	return prefixed(r.collectionPrefix, "questions")
}

// UpsertByOrder uses the ordinal position as document key, so re-seeding
// never duplicates a question. ID and CreatedAt survive updates.
func (r *questionRepository) UpsertByOrder(ctx context.Context, question *model.Question) (*model.Question, error) {
	docRef := r.client.Collection(r.questions()).Doc(fmt.Sprintf("order-%d", question.Order))

	var result questionDocument
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil && status.Code(err) != codes.NotFound {
			return goerr.Wrap(err, "failed to read question", goerr.V("order", question.Order))
		}

		if err == nil {
			if err := doc.DataTo(&result); err != nil {
				return goerr.Wrap(err, "failed to unmarshal question")
			}
			result.Text = question.Text
			result.Category = question.Category.String()
			result.Active = question.Active
		} else {
			id := question.ID
			if id == "" {
				id = types.QuestionID(uuid.NewString())
			}
			result = questionDocument{
				ID:        id.String(),
				Category:  question.Category.String(),
				Order:     question.Order,
				Text:      question.Text,
				Active:    question.Active,
				CreatedAt: time.Now().UTC(),
			}
		}

		return tx.Set(docRef, &result)
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to upsert question", goerr.V("order", question.Order))
	}

	return questionFromDoc(&result), nil
}

func (r *questionRepository) Get(ctx context.Context, id types.QuestionID) (*model.Question, error) {
	iter := r.client.Collection(r.questions()).Where("id", "==", id.String()).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(ErrNotFound, "question not found", goerr.V("id", id))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get question", goerr.V("id", id))
	}

	var qd questionDocument
	if err := doc.DataTo(&qd); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal question", goerr.V("id", id))
	}
	return questionFromDoc(&qd), nil
}

func (r *questionRepository) ListActive(ctx context.Context) ([]*model.Question, error) {
	iter := r.client.Collection(r.questions()).
		Where("active", "==", true).
		OrderBy("order", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var questions []*model.Question
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate questions")
		}

		var qd questionDocument
		if err := doc.DataTo(&qd); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal question")
		}
		questions = append(questions, questionFromDoc(&qd))
	}

	return questions, nil
}

func questionFromDoc(qd *questionDocument) *model.Question {
	return &model.Question{
		ID:        types.QuestionID(qd.ID),
		Category:  types.CategoryID(qd.Category),
		Order:     qd.Order,
		Text:      qd.Text,
		Active:    qd.Active,
		CreatedAt: qd.CreatedAt,
	}
}
