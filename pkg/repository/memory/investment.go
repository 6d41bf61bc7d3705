package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
)

type investmentRepository struct {
	mu          sync.RWMutex
	investments map[model.InvestmentID]*model.SecurityInvestment
}

func newInvestmentRepository() *investmentRepository {
	return &investmentRepository{
		investments: make(map[model.InvestmentID]*model.SecurityInvestment),
	}
}

func (r *investmentRepository) Create(ctx context.Context, investment *model.SecurityInvestment) (*model.SecurityInvestment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := investment.Clone()
	if created.ID == "" {
		created.ID = model.NewInvestmentID()
	}
	if _, exists := r.investments[created.ID]; exists {
		return nil, goerr.Wrap(ErrAlreadyExists, "investment already exists", goerr.V("id", created.ID))
	}

	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now

	r.investments[created.ID] = created
	return created.Clone(), nil
}

func (r *investmentRepository) Get(ctx context.Context, id model.InvestmentID) (*model.SecurityInvestment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	investment, exists := r.investments[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "investment not found", goerr.V("id", id))
	}
	return investment.Clone(), nil
}

func (r *investmentRepository) GetMany(ctx context.Context, ids []model.InvestmentID) ([]*model.SecurityInvestment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	investments := make([]*model.SecurityInvestment, 0, len(ids))
	for _, id := range ids {
		investment, exists := r.investments[id]
		if !exists {
			return nil, goerr.Wrap(ErrNotFound, "investment not found", goerr.V("id", id))
		}
		investments = append(investments, investment.Clone())
	}
	return investments, nil
}

func (r *investmentRepository) List(ctx context.Context) ([]*model.SecurityInvestment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	investments := make([]*model.SecurityInvestment, 0, len(r.investments))
	for _, investment := range r.investments {
		investments = append(investments, investment.Clone())
	}
	slices.SortFunc(investments, func(a, b *model.SecurityInvestment) int {
		return strings.Compare(string(a.ID), string(b.ID))
	})
	return investments, nil
}

func (r *investmentRepository) Update(ctx context.Context, investment *model.SecurityInvestment) (*model.SecurityInvestment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.investments[investment.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "investment not found", goerr.V("id", investment.ID))
	}

	updated := investment.Clone()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.investments[updated.ID] = updated
	return updated.Clone(), nil
}

func (r *investmentRepository) Delete(ctx context.Context, id model.InvestmentID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.investments[id]; !exists {
		return goerr.Wrap(ErrNotFound, "investment not found", goerr.V("id", id))
	}

	delete(r.investments, id)
	return nil
}
