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

type companyDocument struct {
	ID        string    `firestore:"id"`
	Name      string    `firestore:"name"`
	TaxID     string    `firestore:"tax_id"`
	Headcount int       `firestore:"headcount"`
	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

type sectorDocument struct {
	ID        string    `firestore:"id"`
	CompanyID string    `firestore:"company_id"`
	Name      string    `firestore:"name"`
	Headcount int       `firestore:"headcount"`
	CreatedAt time.Time `firestore:"created_at"`
}

type companyRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newCompanyRepository(client *firestore.Client) *companyRepository {
	return &companyRepository{client: client}
}

func (r *companyRepository) companies() string {
	return prefixed(r.collectionPrefix, "companies")
}

func (r *companyRepository) sectors() string {
	return prefixed(r.collectionPrefix, "sectors")
}

func (r *companyRepository) Create(ctx context.Context, company *model.Company, sectors []*model.Sector) (*model.Company, error) {
	now := time.Now().UTC()

	id := company.ID
	if id == "" {
		id = types.NewCompanyID()
	}
	doc := &companyDocument{
		ID:        id.String(),
		Name:      company.Name,
		TaxID:     company.TaxID,
		Headcount: company.Headcount,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Company and sectors land in one atomic batch
	batch := r.client.BulkWriter(ctx)
	if _, err := batch.Create(r.client.Collection(r.companies()).Doc(doc.ID), doc); err != nil {
		return nil, goerr.Wrap(err, "failed to stage company", goerr.V("id", doc.ID))
	}
	for _, sector := range sectors {
		sid := sector.ID
		if sid == "" {
			sid = types.NewSectorID()
		}
		sdoc := &sectorDocument{
			ID:        sid.String(),
			CompanyID: doc.ID,
			Name:      sector.Name,
			Headcount: sector.Headcount,
			CreatedAt: now,
		}
		if _, err := batch.Create(r.client.Collection(r.sectors()).Doc(sdoc.ID), sdoc); err != nil {
			return nil, goerr.Wrap(err, "failed to stage sector", goerr.V("id", sdoc.ID))
		}
	}
	batch.End()

	return &model.Company{
		ID:        types.CompanyID(doc.ID),
		Name:      doc.Name,
		TaxID:     doc.TaxID,
		Headcount: doc.Headcount,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

func (r *companyRepository) Get(ctx context.Context, id types.CompanyID) (*model.Company, error) {
	doc, err := r.client.Collection(r.companies()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "company not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get company", goerr.V("id", id))
	}

	var cd companyDocument
	if err := doc.DataTo(&cd); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal company", goerr.V("id", id))
	}

	return &model.Company{
		ID:        types.CompanyID(cd.ID),
		Name:      cd.Name,
		TaxID:     cd.TaxID,
		Headcount: cd.Headcount,
		CreatedAt: cd.CreatedAt,
		UpdatedAt: cd.UpdatedAt,
	}, nil
}

func (r *companyRepository) ListSectors(ctx context.Context, companyID types.CompanyID) ([]*model.Sector, error) {
	iter := r.client.Collection(r.sectors()).
		Where("company_id", "==", companyID.String()).
		OrderBy("created_at", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var sectors []*model.Sector
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate sectors", goerr.V("company_id", companyID))
		}

		var sd sectorDocument
		if err := doc.DataTo(&sd); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal sector")
		}
		sectors = append(sectors, sectorFromDoc(&sd))
	}

	return sectors, nil
}

func (r *companyRepository) GetSector(ctx context.Context, id types.SectorID) (*model.Sector, error) {
	doc, err := r.client.Collection(r.sectors()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "sector not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get sector", goerr.V("id", id))
	}

	var sd sectorDocument
	if err := doc.DataTo(&sd); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal sector", goerr.V("id", id))
	}
	return sectorFromDoc(&sd), nil
}

func sectorFromDoc(sd *sectorDocument) *model.Sector {
	return &model.Sector{
		ID:        types.SectorID(sd.ID),
		CompanyID: types.CompanyID(sd.CompanyID),
		Name:      sd.Name,
		Headcount: sd.Headcount,
		CreatedAt: sd.CreatedAt,
	}
}
