package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
)

type profileRepository struct {
	mu       sync.RWMutex
	profiles map[model.ProfileID]*model.RiskProfile
}

func newProfileRepository() *profileRepository {
	return &profileRepository{
		profiles: make(map[model.ProfileID]*model.RiskProfile),
	}
}

func (r *profileRepository) Create(ctx context.Context, profile *model.RiskProfile) (*model.RiskProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := profile.Clone()
	if created.ID == "" {
		created.ID = model.NewProfileID()
	}
	if _, exists := r.profiles[created.ID]; exists {
		return nil, goerr.Wrap(ErrAlreadyExists, "profile already exists", goerr.V("id", created.ID))
	}

	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now

	r.profiles[created.ID] = created
	return created.Clone(), nil
}

func (r *profileRepository) Get(ctx context.Context, id model.ProfileID) (*model.RiskProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, exists := r.profiles[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "profile not found", goerr.V("id", id))
	}

	// Return a copy to prevent external modification
	return profile.Clone(), nil
}

func (r *profileRepository) List(ctx context.Context) ([]*model.RiskProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profiles := make([]*model.RiskProfile, 0, len(r.profiles))
	for _, profile := range r.profiles {
		profiles = append(profiles, profile.Clone())
	}
	slices.SortFunc(profiles, func(a, b *model.RiskProfile) int {
		return strings.Compare(string(a.ID), string(b.ID))
	})

	return profiles, nil
}

func (r *profileRepository) ListByCategory(ctx context.Context, category types.CategoryID) ([]*model.RiskProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var profiles []*model.RiskProfile
	for _, profile := range r.profiles {
		if profile.Category == category {
			profiles = append(profiles, profile.Clone())
		}
	}
	slices.SortFunc(profiles, func(a, b *model.RiskProfile) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})

	return profiles, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *model.RiskProfile) (*model.RiskProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.profiles[profile.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "profile not found", goerr.V("id", profile.ID))
	}

	updated := profile.Clone()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.profiles[updated.ID] = updated
	return updated.Clone(), nil
}

func (r *profileRepository) Delete(ctx context.Context, id model.ProfileID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.profiles[id]; !exists {
		return goerr.Wrap(ErrNotFound, "profile not found", goerr.V("id", id))
	}

	delete(r.profiles, id)
	return nil
}
