package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/utils/logging"
)

// SeedResult counts what Seed wrote
type SeedResult struct {
	ProfilesCreated    int
	ProfilesUpdated    int
	InvestmentsCreated int
	InvestmentsUpdated int
}

// Seed upserts profiles and investments, typically loaded from a workbook.
// Records are matched by ID, so seeding the same workbook twice is a no-op
// apart from timestamps.
func (uc *UseCases) Seed(ctx context.Context, profiles []*model.RiskProfile, investments []*model.SecurityInvestment) (*SeedResult, error) {
	result := &SeedResult{}

	for _, profile := range profiles {
		if profile.ID == "" {
			return nil, goerr.Wrap(ErrInvalidInput, "seeded profile needs an ID", goerr.V("name", profile.Name))
		}
		_, err := uc.Profile.GetProfile(ctx, profile.ID)
		switch {
		case err == nil:
			if _, err := uc.Profile.UpdateProfile(ctx, profile); err != nil {
				return nil, err
			}
			result.ProfilesUpdated++
		case errors.Is(err, ErrNotFound):
			if _, err := uc.Profile.CreateProfile(ctx, profile); err != nil {
				return nil, err
			}
			result.ProfilesCreated++
		default:
			return nil, err
		}
	}

	for _, investment := range investments {
		if investment.ID == "" {
			return nil, goerr.Wrap(ErrInvalidInput, "seeded investment needs an ID", goerr.V("name", investment.Name))
		}
		_, err := uc.Investment.GetInvestment(ctx, investment.ID)
		switch {
		case err == nil:
			if _, err := uc.Investment.UpdateInvestment(ctx, investment); err != nil {
				return nil, err
			}
			result.InvestmentsUpdated++
		case errors.Is(err, ErrNotFound):
			if _, err := uc.Investment.CreateInvestment(ctx, investment); err != nil {
				return nil, err
			}
			result.InvestmentsCreated++
		default:
			return nil, err
		}
	}

	logging.From(ctx).Info("workbook seeded",
		"profiles_created", result.ProfilesCreated,
		"profiles_updated", result.ProfilesUpdated,
		"investments_created", result.InvestmentsCreated,
		"investments_updated", result.InvestmentsUpdated,
	)
	return result, nil
}
