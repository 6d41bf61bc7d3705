package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type investmentDocument struct {
	ID                 string    `firestore:"id"`
	Name               string    `firestore:"name"`
	Cost               float64   `firestore:"cost"`
	Effectiveness      float64   `firestore:"effectiveness"`
	ImplementationTime float64   `firestore:"implementation_time"`
	Lifecycle          float64   `firestore:"lifecycle"`
	CreatedAt          time.Time `firestore:"created_at"`
	UpdatedAt          time.Time `firestore:"updated_at"`
}

func toInvestmentDocument(i *model.SecurityInvestment) *investmentDocument {
	return &investmentDocument{
		ID:                 string(i.ID),
		Name:               i.Name,
		Cost:               i.Cost,
		Effectiveness:      i.Effectiveness,
		ImplementationTime: i.ImplementationTime,
		Lifecycle:          i.Lifecycle,
		CreatedAt:          i.CreatedAt,
		UpdatedAt:          i.UpdatedAt,
	}
}

func (d *investmentDocument) toModel() *model.SecurityInvestment {
	return &model.SecurityInvestment{
		ID:                 model.InvestmentID(d.ID),
		Name:               d.Name,
		Cost:               d.Cost,
		Effectiveness:      d.Effectiveness,
		ImplementationTime: d.ImplementationTime,
		Lifecycle:          d.Lifecycle,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}

type investmentRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newInvestmentRepository(client *firestore.Client) *investmentRepository {
	return &investmentRepository{
		client: client,
	}
}

func (r *investmentRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(CollectionName(r.collectionPrefix, InvestmentsCollection))
}

func (r *investmentRepository) Create(ctx context.Context, investment *model.SecurityInvestment) (*model.SecurityInvestment, error) {
	created := investment.Clone()
	if created.ID == "" {
		created.ID = model.NewInvestmentID()
	}
	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now

	if _, err := r.collection().Doc(string(created.ID)).Create(ctx, toInvestmentDocument(created)); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, goerr.Wrap(ErrAlreadyExists, "investment already exists", goerr.V("id", created.ID))
		}
		return nil, goerr.Wrap(err, "failed to create investment", goerr.V("id", created.ID))
	}

	return created, nil
}

func (r *investmentRepository) Get(ctx context.Context, id model.InvestmentID) (*model.SecurityInvestment, error) {
	doc, err := r.collection().Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "investment not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get investment", goerr.V("id", id))
	}

	var investmentDoc investmentDocument
	if err := doc.DataTo(&investmentDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal investment", goerr.V("id", id))
	}
	return investmentDoc.toModel(), nil
}

func (r *investmentRepository) GetMany(ctx context.Context, ids []model.InvestmentID) ([]*model.SecurityInvestment, error) {
	if len(ids) == 0 {
		return []*model.SecurityInvestment{}, nil
	}

	refs := make([]*firestore.DocumentRef, len(ids))
	for i, id := range ids {
		refs[i] = r.collection().Doc(string(id))
	}

	docs, err := r.client.GetAll(ctx, refs)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get investments", goerr.V("ids", ids))
	}

	investments := make([]*model.SecurityInvestment, 0, len(docs))
	for i, doc := range docs {
		if !doc.Exists() {
			return nil, goerr.Wrap(ErrNotFound, "investment not found", goerr.V("id", ids[i]))
		}
		var investmentDoc investmentDocument
		if err := doc.DataTo(&investmentDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal investment", goerr.V("id", ids[i]))
		}
		investments = append(investments, investmentDoc.toModel())
	}
	return investments, nil
}

func (r *investmentRepository) List(ctx context.Context) ([]*model.SecurityInvestment, error) {
	iter := r.collection().OrderBy(firestore.DocumentID, firestore.Asc).Documents(ctx)
	defer iter.Stop()

	investments := []*model.SecurityInvestment{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate investments")
		}

		var investmentDoc investmentDocument
		if err := doc.DataTo(&investmentDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal investment", goerr.V("id", doc.Ref.ID))
		}
		investments = append(investments, investmentDoc.toModel())
	}
	return investments, nil
}

func (r *investmentRepository) Update(ctx context.Context, investment *model.SecurityInvestment) (*model.SecurityInvestment, error) {
	docRef := r.collection().Doc(string(investment.ID))

	var updated *model.SecurityInvestment
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(ErrNotFound, "investment not found", goerr.V("id", investment.ID))
			}
			return goerr.Wrap(err, "failed to get investment", goerr.V("id", investment.ID))
		}

		var existing investmentDocument
		if err := doc.DataTo(&existing); err != nil {
			return goerr.Wrap(err, "failed to unmarshal investment", goerr.V("id", investment.ID))
		}

		updated = investment.Clone()
		updated.CreatedAt = existing.CreatedAt
		updated.UpdatedAt = time.Now().UTC()
		return tx.Set(docRef, toInvestmentDocument(updated))
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update investment", goerr.V("id", investment.ID))
	}

	return updated, nil
}

func (r *investmentRepository) Delete(ctx context.Context, id model.InvestmentID) error {
	docRef := r.collection().Doc(string(id))

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "investment not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get investment", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete investment", goerr.V("id", id))
	}
	return nil
}
