package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type profileDocument struct {
	ID            string    `firestore:"id"`
	Name          string    `firestore:"name"`
	Description   string    `firestore:"description"`
	Category      string    `firestore:"category"`
	Probability   float64   `firestore:"probability"`
	Impact        float64   `firestore:"impact"`
	RiskScore     float64   `firestore:"risk_score"`
	ThreatActor   string    `firestore:"threat_actor"`
	Vulnerability string    `firestore:"vulnerability"`
	BusinessUnit  string    `firestore:"business_unit"`
	CreatedAt     time.Time `firestore:"created_at"`
	UpdatedAt     time.Time `firestore:"updated_at"`
}

func toProfileDocument(p *model.RiskProfile) *profileDocument {
	return &profileDocument{
		ID:            string(p.ID),
		Name:          p.Name,
		Description:   p.Description,
		Category:      string(p.Category),
		Probability:   p.Probability,
		Impact:        p.Impact,
		RiskScore:     p.RiskScore,
		ThreatActor:   p.ThreatActor,
		Vulnerability: p.Vulnerability,
		BusinessUnit:  p.BusinessUnit,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (d *profileDocument) toModel() *model.RiskProfile {
	return &model.RiskProfile{
		ID:            model.ProfileID(d.ID),
		Name:          d.Name,
		Description:   d.Description,
		Category:      types.CategoryID(d.Category),
		Probability:   d.Probability,
		Impact:        d.Impact,
		RiskScore:     d.RiskScore,
		ThreatActor:   d.ThreatActor,
		Vulnerability: d.Vulnerability,
		BusinessUnit:  d.BusinessUnit,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

type profileRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newProfileRepository(client *firestore.Client) *profileRepository {
	return &profileRepository{
		client: client,
	}
}

func (r *profileRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(CollectionName(r.collectionPrefix, ProfilesCollection))
}

func (r *profileRepository) Create(ctx context.Context, profile *model.RiskProfile) (*model.RiskProfile, error) {
	created := profile.Clone()
	if created.ID == "" {
		created.ID = model.NewProfileID()
	}
	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now

	if _, err := r.collection().Doc(string(created.ID)).Create(ctx, toProfileDocument(created)); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, goerr.Wrap(ErrAlreadyExists, "profile already exists", goerr.V("id", created.ID))
		}
		return nil, goerr.Wrap(err, "failed to create profile", goerr.V("id", created.ID))
	}

	return created, nil
}

func (r *profileRepository) Get(ctx context.Context, id model.ProfileID) (*model.RiskProfile, error) {
	doc, err := r.collection().Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "profile not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get profile", goerr.V("id", id))
	}

	var profileDoc profileDocument
	if err := doc.DataTo(&profileDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal profile", goerr.V("id", id))
	}
	return profileDoc.toModel(), nil
}

func (r *profileRepository) List(ctx context.Context) ([]*model.RiskProfile, error) {
	return r.query(ctx, r.collection().OrderBy(firestore.DocumentID, firestore.Asc))
}

func (r *profileRepository) ListByCategory(ctx context.Context, category types.CategoryID) ([]*model.RiskProfile, error) {
	q := r.collection().
		Where("category", "==", string(category)).
		OrderBy("updated_at", firestore.Desc)
	return r.query(ctx, q)
}

func (r *profileRepository) query(ctx context.Context, q firestore.Query) ([]*model.RiskProfile, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	profiles := []*model.RiskProfile{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate profiles")
		}

		var profileDoc profileDocument
		if err := doc.DataTo(&profileDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal profile", goerr.V("id", doc.Ref.ID))
		}
		profiles = append(profiles, profileDoc.toModel())
	}

	return profiles, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *model.RiskProfile) (*model.RiskProfile, error) {
	docRef := r.collection().Doc(string(profile.ID))

	var updated *model.RiskProfile
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(ErrNotFound, "profile not found", goerr.V("id", profile.ID))
			}
			return goerr.Wrap(err, "failed to get profile", goerr.V("id", profile.ID))
		}

		var existing profileDocument
		if err := doc.DataTo(&existing); err != nil {
			return goerr.Wrap(err, "failed to unmarshal profile", goerr.V("id", profile.ID))
		}

		updated = profile.Clone()
		updated.CreatedAt = existing.CreatedAt
		updated.UpdatedAt = time.Now().UTC()
		return tx.Set(docRef, toProfileDocument(updated))
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update profile", goerr.V("id", profile.ID))
	}

	return updated, nil
}

func (r *profileRepository) Delete(ctx context.Context, id model.ProfileID) error {
	docRef := r.collection().Doc(string(id))

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "profile not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get profile", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete profile", goerr.V("id", id))
	}
	return nil
}
