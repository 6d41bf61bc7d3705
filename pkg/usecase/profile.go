package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/interfaces"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
	"github.com/secmon-lab/riskquant/pkg/utils/logging"
)

type ProfileUseCase struct {
	repo      interfaces.Repository
	impactCap float64
}

func NewProfileUseCase(repo interfaces.Repository, impactCap float64) *ProfileUseCase {
	return &ProfileUseCase{
		repo:      repo,
		impactCap: impactCap,
	}
}

// prepare validates the profile and recomputes its risk score. The stored
// score is always derived, never taken from the caller.
func (uc *ProfileUseCase) prepare(profile *model.RiskProfile) (*model.RiskProfile, error) {
	if profile == nil {
		return nil, goerr.Wrap(ErrInvalidInput, "profile is required")
	}
	if profile.ID != "" {
		if err := types.ValidateSlug("profile", string(profile.ID)); err != nil {
			return nil, invalidInput(err, "invalid profile ID")
		}
	}
	if err := profile.Validate(); err != nil {
		return nil, invalidInput(err, "invalid profile")
	}

	prepared := profile.Clone()
	prepared.RiskScore = model.RiskScoreWithCap(prepared.Probability, prepared.Impact, uc.impactCap)
	return prepared, nil
}

func (uc *ProfileUseCase) CreateProfile(ctx context.Context, profile *model.RiskProfile) (*model.RiskProfile, error) {
	prepared, err := uc.prepare(profile)
	if err != nil {
		return nil, err
	}

	created, err := uc.repo.Profile().Create(ctx, prepared)
	if err != nil {
		return nil, repositoryError(err, "failed to create profile", ProfileIDKey, prepared.ID)
	}

	logging.From(ctx).Info("risk profile created",
		"id", created.ID,
		"risk_score", created.RiskScore,
	)
	return created, nil
}

func (uc *ProfileUseCase) GetProfile(ctx context.Context, id model.ProfileID) (*model.RiskProfile, error) {
	profile, err := uc.repo.Profile().Get(ctx, id)
	if err != nil {
		return nil, repositoryError(err, "failed to get profile", ProfileIDKey, id)
	}
	return profile, nil
}

// ListProfiles lists every profile, or only those of category when it is set
func (uc *ProfileUseCase) ListProfiles(ctx context.Context, category types.CategoryID) ([]*model.RiskProfile, error) {
	if category == "" {
		profiles, err := uc.repo.Profile().List(ctx)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list profiles")
		}
		return profiles, nil
	}

	if err := category.Validate(); err != nil {
		return nil, invalidInput(err, "invalid category")
	}
	profiles, err := uc.repo.Profile().ListByCategory(ctx, category)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list profiles", goerr.V("category", category))
	}
	return profiles, nil
}

func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, profile *model.RiskProfile) (*model.RiskProfile, error) {
	if profile == nil || profile.ID == "" {
		return nil, goerr.Wrap(ErrInvalidInput, "profile ID is required")
	}
	prepared, err := uc.prepare(profile)
	if err != nil {
		return nil, err
	}

	updated, err := uc.repo.Profile().Update(ctx, prepared)
	if err != nil {
		return nil, repositoryError(err, "failed to update profile", ProfileIDKey, prepared.ID)
	}
	return updated, nil
}

func (uc *ProfileUseCase) DeleteProfile(ctx context.Context, id model.ProfileID) error {
	if err := uc.repo.Profile().Delete(ctx, id); err != nil {
		return repositoryError(err, "failed to delete profile", ProfileIDKey, id)
	}
	logging.From(ctx).Info("risk profile deleted", "id", id)
	return nil
}
