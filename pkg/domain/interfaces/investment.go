package interfaces

import (
	"context"

	"github.com/secmon-lab/riskquant/pkg/domain/model"
)

type InvestmentRepository interface {
	// Create stores a new investment. An empty ID is replaced by a generated one.
	Create(ctx context.Context, investment *model.SecurityInvestment) (*model.SecurityInvestment, error)

	// Get retrieves an investment by ID
	Get(ctx context.Context, id model.InvestmentID) (*model.SecurityInvestment, error)

	// GetMany retrieves investments in the order of ids. Any missing ID is an error.
	GetMany(ctx context.Context, ids []model.InvestmentID) ([]*model.SecurityInvestment, error)

	// List retrieves all investments ordered by ID
	List(ctx context.Context) ([]*model.SecurityInvestment, error)

	// Update replaces an existing investment
	Update(ctx context.Context, investment *model.SecurityInvestment) (*model.SecurityInvestment, error)

	// Delete deletes an investment by ID
	Delete(ctx context.Context, id model.InvestmentID) error
}
