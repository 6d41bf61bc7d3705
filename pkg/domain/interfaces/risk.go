package interfaces

import (
	"context"

	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
)

type ProfileRepository interface {
	// Create stores a new profile. An empty ID is replaced by a generated one.
	Create(ctx context.Context, profile *model.RiskProfile) (*model.RiskProfile, error)

	// Get retrieves a profile by ID
	Get(ctx context.Context, id model.ProfileID) (*model.RiskProfile, error)

	// List retrieves all profiles ordered by ID
	List(ctx context.Context) ([]*model.RiskProfile, error)

	// ListByCategory retrieves profiles of one category, most recently updated first
	ListByCategory(ctx context.Context, category types.CategoryID) ([]*model.RiskProfile, error)

	// Update replaces an existing profile
	Update(ctx context.Context, profile *model.RiskProfile) (*model.RiskProfile, error)

	// Delete deletes a profile by ID
	Delete(ctx context.Context, id model.ProfileID) error
}
