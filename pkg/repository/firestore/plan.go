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

type planDocument struct {
	ID        string    `firestore:"id"`
	RiskID    string    `firestore:"risk_id"`
	What      string    `firestore:"what"`
	Why       string    `firestore:"why"`
	Who       string    `firestore:"who"`
	Where     string    `firestore:"where"`
	When      time.Time `firestore:"when"`
	How       string    `firestore:"how"`
	HowMuch   float64   `firestore:"how_much"`
	Status    string    `firestore:"status"`
	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

type planRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newPlanRepository(client *firestore.Client) *planRepository {
	return &planRepository{client: client}
}

func (r *planRepository) plans() string {
	return prefixed(r.collectionPrefix, "plans")
}

func (r *planRepository) Create(ctx context.Context, plan *model.ActionPlan) (*model.ActionPlan, error) {
	now := time.Now().UTC()
	id := plan.ID
	if id == "" {
		id = types.NewPlanID()
	}
	doc := &planDocument{
		ID:        id.String(),
		RiskID:    plan.RiskID.String(),
		What:      plan.What,
		Why:       plan.Why,
		Who:       plan.Who,
		Where:     plan.Where,
		When:      plan.When,
		How:       plan.How,
		HowMuch:   plan.HowMuch,
		Status:    plan.Status.String(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.client.Collection(r.plans()).Doc(doc.ID).Create(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create action plan", goerr.V("id", doc.ID))
	}
	return planFromDoc(doc), nil
}

func (r *planRepository) Get(ctx context.Context, id types.PlanID) (*model.ActionPlan, error) {
	doc, err := r.client.Collection(r.plans()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "action plan not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get action plan", goerr.V("id", id))
	}

	var pd planDocument
	if err := doc.DataTo(&pd); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal action plan", goerr.V("id", id))
	}
	return planFromDoc(&pd), nil
}

func (r *planRepository) ListByRisks(ctx context.Context, riskIDs []types.RiskID) ([]*model.ActionPlan, error) {
	ids := make([]string, len(riskIDs))
	for i, id := range riskIDs {
		ids[i] = id.String()
	}

	var plans []*model.ActionPlan
	for chunk := range chunkStrings(ids, sectorChunkSize) {
		iter := r.client.Collection(r.plans()).
			Where("risk_id", "in", chunk).
			OrderBy("created_at", firestore.Asc).
			Documents(ctx)

		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				iter.Stop()
				return nil, goerr.Wrap(err, "failed to iterate action plans")
			}

			var pd planDocument
			if err := doc.DataTo(&pd); err != nil {
				iter.Stop()
				return nil, goerr.Wrap(err, "failed to unmarshal action plan")
			}
			plans = append(plans, planFromDoc(&pd))
		}
		iter.Stop()
	}

	return plans, nil
}

func (r *planRepository) Update(ctx context.Context, plan *model.ActionPlan) (*model.ActionPlan, error) {
	docRef := r.client.Collection(r.plans()).Doc(plan.ID.String())

	var result planDocument
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(ErrNotFound, "action plan not found", goerr.V("id", plan.ID))
			}
			return goerr.Wrap(err, "failed to read action plan", goerr.V("id", plan.ID))
		}

		if err := doc.DataTo(&result); err != nil {
			return goerr.Wrap(err, "failed to unmarshal action plan")
		}

		result.What = plan.What
		result.Why = plan.Why
		result.Who = plan.Who
		result.Where = plan.Where
		result.When = plan.When
		result.How = plan.How
		result.HowMuch = plan.HowMuch
		result.Status = plan.Status.String()
		result.UpdatedAt = time.Now().UTC()

		return tx.Set(docRef, &result)
	})
	if err != nil {
		return nil, err
	}

	return planFromDoc(&result), nil
}

func (r *planRepository) Delete(ctx context.Context, id types.PlanID) error {
	docRef := r.client.Collection(r.plans()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "action plan not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get action plan", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete action plan", goerr.V("id", id))
	}
	return nil
}

func planFromDoc(pd *planDocument) *model.ActionPlan {
	return &model.ActionPlan{
		ID:        types.PlanID(pd.ID),
		RiskID:    types.RiskID(pd.RiskID),
		What:      pd.What,
		Why:       pd.Why,
		Who:       pd.Who,
		Where:     pd.Where,
		When:      pd.When,
		How:       pd.How,
		HowMuch:   pd.HowMuch,
		Status:    types.ActionStatus(pd.Status),
		CreatedAt: pd.CreatedAt,
		UpdatedAt: pd.UpdatedAt,
	}
}
