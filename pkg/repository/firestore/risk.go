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

// Firestore caps disjunctions in a single query
const sectorChunkSize = 10

type riskDocument struct {
	ID             string    `firestore:"id"`
	SectorID       string    `firestore:"sector_id"`
	Category       string    `firestore:"category"`
	Description    string    `firestore:"description"`
	Probability    string    `firestore:"probability"`
	Severity       string    `firestore:"severity"`
	Classification string    `firestore:"classification"`
	Justification  string    `firestore:"justification"`
	CreatedAt      time.Time `firestore:"created_at"`
	UpdatedAt      time.Time `firestore:"updated_at"`
}

type riskRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newRiskRepository(client *firestore.Client) *riskRepository {
	return &riskRepository{client: client}
}

func (r *riskRepository) risks() string {
	return prefixed(r.collectionPrefix, "risks")
}

// ReplaceForSectors deletes the current risk set of the given sectors and
// writes the staged set inside one transaction, so concurrent readers see
// either the old set or the new one, never the gap between.
func (r *riskRepository) ReplaceForSectors(ctx context.Context, sectorIDs []types.SectorID, risks []*model.Risk) ([]*model.Risk, error) {
	now := time.Now().UTC()
	docs := make([]*riskDocument, 0, len(risks))
	for _, risk := range risks {
		id := risk.ID
		if id == "" {
			id = types.NewRiskID()
		}
		docs = append(docs, &riskDocument{
			ID:             id.String(),
			SectorID:       risk.SectorID.String(),
			Category:       risk.Category.String(),
			Description:    risk.Description,
			Probability:    risk.Probability.String(),
			Severity:       risk.Severity.String(),
			Classification: risk.Classification.String(),
			Justification:  risk.Justification,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		// All reads first: collect the refs of every existing risk
		var stale []*firestore.DocumentRef
		for chunk := range chunkStrings(sectorIDStrings(sectorIDs), sectorChunkSize) {
			iter := tx.Documents(r.client.Collection(r.risks()).Where("sector_id", "in", chunk))
			for {
				doc, err := iter.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					return goerr.Wrap(err, "failed to query existing risks")
				}
				stale = append(stale, doc.Ref)
			}
		}

		for _, ref := range stale {
			if err := tx.Delete(ref); err != nil {
				return goerr.Wrap(err, "failed to delete risk")
			}
		}
		for _, doc := range docs {
			if err := tx.Create(r.client.Collection(r.risks()).Doc(doc.ID), doc); err != nil {
				return goerr.Wrap(err, "failed to create risk", goerr.V("id", doc.ID))
			}
		}
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to replace risks")
	}

	created := make([]*model.Risk, 0, len(docs))
	for _, doc := range docs {
		created = append(created, riskFromDoc(doc))
	}
	return created, nil
}

func (r *riskRepository) Get(ctx context.Context, id types.RiskID) (*model.Risk, error) {
	doc, err := r.client.Collection(r.risks()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "risk not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get risk", goerr.V("id", id))
	}

	var rd riskDocument
	if err := doc.DataTo(&rd); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal risk", goerr.V("id", id))
	}
	return riskFromDoc(&rd), nil
}

func (r *riskRepository) ListBySectors(ctx context.Context, sectorIDs []types.SectorID) ([]*model.Risk, error) {
	var risks []*model.Risk
	for chunk := range chunkStrings(sectorIDStrings(sectorIDs), sectorChunkSize) {
		iter := r.client.Collection(r.risks()).
			Where("sector_id", "in", chunk).
			Documents(ctx)

		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				iter.Stop()
				return nil, goerr.Wrap(err, "failed to iterate risks")
			}

			var rd riskDocument
			if err := doc.DataTo(&rd); err != nil {
				iter.Stop()
				return nil, goerr.Wrap(err, "failed to unmarshal risk")
			}
			risks = append(risks, riskFromDoc(&rd))
		}
		iter.Stop()
	}

	return risks, nil
}

func (r *riskRepository) Update(ctx context.Context, risk *model.Risk) (*model.Risk, error) {
	docRef := r.client.Collection(r.risks()).Doc(risk.ID.String())

	var result riskDocument
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(ErrNotFound, "risk not found", goerr.V("id", risk.ID))
			}
			return goerr.Wrap(err, "failed to read risk", goerr.V("id", risk.ID))
		}

		if err := doc.DataTo(&result); err != nil {
			return goerr.Wrap(err, "failed to unmarshal risk")
		}

		result.Probability = risk.Probability.String()
		result.Severity = risk.Severity.String()
		result.Classification = risk.Classification.String()
		result.Justification = risk.Justification
		result.UpdatedAt = time.Now().UTC()

		return tx.Set(docRef, &result)
	})
	if err != nil {
		return nil, err
	}

	return riskFromDoc(&result), nil
}

func riskFromDoc(rd *riskDocument) *model.Risk {
	return &model.Risk{
		ID:             types.RiskID(rd.ID),
		SectorID:       types.SectorID(rd.SectorID),
		Category:       types.CategoryID(rd.Category),
		Description:    rd.Description,
		Probability:    types.Level(rd.Probability),
		Severity:       types.Level(rd.Severity),
		Classification: types.Classification(rd.Classification),
		Justification:  rd.Justification,
		CreatedAt:      rd.CreatedAt,
		UpdatedAt:      rd.UpdatedAt,
	}
}

func sectorIDStrings(ids []types.SectorID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

// chunkStrings yields slices of at most size elements
func chunkStrings(values []string, size int) func(func([]string) bool) {
	return func(yield func([]string) bool) {
		for start := 0; start < len(values); start += size {
			end := min(start+size, len(values))
			if !yield(values[start:end]) {
				return
			}
		}
	}
}
