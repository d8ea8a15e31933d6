package firestore

import (
	"context"
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

type answerDocument struct {
	ID         string    `firestore:"id"`
	SectorID   string    `firestore:"sector_id"`
	QuestionID string    `firestore:"question_id"`
	Value      int       `firestore:"value"`
	CreatedAt  time.Time `firestore:"created_at"`
	UpdatedAt  time.Time `firestore:"updated_at"`
}

type answerRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAnswerRepository(client *firestore.Client) *answerRepository {
	return &answerRepository{client: client}
}

func (r *answerRepository) answers() string {
	return prefixed(r.collectionPrefix, "answers")
}

// Upsert keys the document by (sector, question), which makes the
// last-write-wins semantics a plain Set
func (r *answerRepository) Upsert(ctx context.Context, answer *model.Answer) (*model.Answer, error) {
	docID := answer.SectorID.String() + "_" + answer.QuestionID.String()
	docRef := r.client.Collection(r.answers()).Doc(docID)

	var result answerDocument
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		now := time.Now().UTC()

		doc, err := tx.Get(docRef)
		if err != nil && status.Code(err) != codes.NotFound {
			return goerr.Wrap(err, "failed to read answer")
		}

		if err == nil {
			if err := doc.DataTo(&result); err != nil {
				return goerr.Wrap(err, "failed to unmarshal answer")
			}
			result.Value = answer.Value
			result.UpdatedAt = now
		} else {
			result = answerDocument{
				ID:         uuid.NewString(),
				SectorID:   answer.SectorID.String(),
				QuestionID: answer.QuestionID.String(),
				Value:      answer.Value,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
		}

		return tx.Set(docRef, &result)
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to upsert answer",
			goerr.V("sector_id", answer.SectorID), goerr.V("question_id", answer.QuestionID))
	}

	return answerFromDoc(&result), nil
}

func (r *answerRepository) ListBySector(ctx context.Context, sectorID types.SectorID) ([]*model.Answer, error) {
	iter := r.client.Collection(r.answers()).
		Where("sector_id", "==", sectorID.String()).
		Documents(ctx)
	defer iter.Stop()

	var answers []*model.Answer
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate answers", goerr.V("sector_id", sectorID))
		}

		var ad answerDocument
		if err := doc.DataTo(&ad); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal answer")
		}
		answers = append(answers, answerFromDoc(&ad))
	}

	return answers, nil
}

func answerFromDoc(ad *answerDocument) *model.Answer {
	return &model.Answer{
		ID:         ad.ID,
		SectorID:   types.SectorID(ad.SectorID),
		QuestionID: types.QuestionID(ad.QuestionID),
		Value:      ad.Value,
		CreatedAt:  ad.CreatedAt,
		UpdatedAt:  ad.UpdatedAt,
	}
}
