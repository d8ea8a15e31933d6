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

type evidenceDocument struct {
	ID        string    `firestore:"id"`
	CompanyID string    `firestore:"company_id"`
	Label     string    `firestore:"label"`
	MediaType string    `firestore:"media_type"`
	BlobKey   string    `firestore:"blob_key"`
	SizeKB    int       `firestore:"size_kb"`
	CreatedAt time.Time `firestore:"created_at"`
}

type evidenceRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newEvidenceRepository(client *firestore.Client) *evidenceRepository {
	return &evidenceRepository{client: client}
}

func (r *evidenceRepository) evidence() string {
	return prefixed(r.collectionPrefix, "evidence")
}

func (r *evidenceRepository) Create(ctx context.Context, evidence *model.Evidence) (*model.Evidence, error) {
	id := evidence.ID
	if id == "" {
		id = types.NewEvidenceID()
	}
	doc := &evidenceDocument{
		ID:        id.String(),
		CompanyID: evidence.CompanyID.String(),
		Label:     evidence.Label,
		MediaType: evidence.MediaType,
		BlobKey:   evidence.BlobKey,
		SizeKB:    evidence.SizeKB,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := r.client.Collection(r.evidence()).Doc(doc.ID).Create(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create evidence", goerr.V("id", doc.ID))
	}
	return evidenceFromDoc(doc), nil
}

func (r *evidenceRepository) Get(ctx context.Context, id types.EvidenceID) (*model.Evidence, error) {
	doc, err := r.client.Collection(r.evidence()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "evidence not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get evidence", goerr.V("id", id))
	}

	var ed evidenceDocument
	if err := doc.DataTo(&ed); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal evidence", goerr.V("id", id))
	}
	return evidenceFromDoc(&ed), nil
}

func (r *evidenceRepository) ListByCompany(ctx context.Context, companyID types.CompanyID) ([]*model.Evidence, error) {
	iter := r.client.Collection(r.evidence()).
		Where("company_id", "==", companyID.String()).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var items []*model.Evidence
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate evidence", goerr.V("company_id", companyID))
		}

		var ed evidenceDocument
		if err := doc.DataTo(&ed); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal evidence")
		}
		items = append(items, evidenceFromDoc(&ed))
	}

	return items, nil
}

func (r *evidenceRepository) Delete(ctx context.Context, id types.EvidenceID) error {
	docRef := r.client.Collection(r.evidence()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "evidence not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get evidence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete evidence", goerr.V("id", id))
	}
	return nil
}

func evidenceFromDoc(ed *evidenceDocument) *model.Evidence {
	return &model.Evidence{
		ID:        types.EvidenceID(ed.ID),
		CompanyID: types.CompanyID(ed.CompanyID),
		Label:     ed.Label,
		MediaType: ed.MediaType,
		BlobKey:   ed.BlobKey,
		SizeKB:    ed.SizeKB,
		CreatedAt: ed.CreatedAt,
	}
}
