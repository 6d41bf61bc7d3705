package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/interfaces"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
)

type InvestmentUseCase struct {
	repo interfaces.Repository
}

func NewInvestmentUseCase(repo interfaces.Repository) *InvestmentUseCase {
	return &InvestmentUseCase{repo: repo}
}

func validateInvestment(investment *model.SecurityInvestment) error {
	if investment == nil {
		return goerr.Wrap(ErrInvalidInput, "investment is required")
	}
	if investment.ID != "" {
		if err := types.ValidateSlug("investment", string(investment.ID)); err != nil {
			return invalidInput(err, "invalid investment ID")
		}
	}
	if err := investment.Validate(); err != nil {
		return invalidInput(err, "invalid investment")
	}
	return nil
}

func (uc *InvestmentUseCase) CreateInvestment(ctx context.Context, investment *model.SecurityInvestment) (*model.SecurityInvestment, error) {
	if err := validateInvestment(investment); err != nil {
		return nil, err
	}

	created, err := uc.repo.Investment().Create(ctx, investment)
	if err != nil {
		return nil, repositoryError(err, "failed to create investment", InvestmentIDKey, investment.ID)
	}
	return created, nil
}

func (uc *InvestmentUseCase) GetInvestment(ctx context.Context, id model.InvestmentID) (*model.SecurityInvestment, error) {
	investment, err := uc.repo.Investment().Get(ctx, id)
	if err != nil {
		return nil, repositoryError(err, "failed to get investment", InvestmentIDKey, id)
	}
	return investment, nil
}

func (uc *InvestmentUseCase) ListInvestments(ctx context.Context) ([]*model.SecurityInvestment, error) {
	investments, err := uc.repo.Investment().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list investments")
	}
	return investments, nil
}

func (uc *InvestmentUseCase) UpdateInvestment(ctx context.Context, investment *model.SecurityInvestment) (*model.SecurityInvestment, error) {
	if investment == nil || investment.ID == "" {
		return nil, goerr.Wrap(ErrInvalidInput, "investment ID is required")
	}
	if err := validateInvestment(investment); err != nil {
		return nil, err
	}

	updated, err := uc.repo.Investment().Update(ctx, investment)
	if err != nil {
		return nil, repositoryError(err, "failed to update investment", InvestmentIDKey, investment.ID)
	}
	return updated, nil
}

func (uc *InvestmentUseCase) DeleteInvestment(ctx context.Context, id model.InvestmentID) error {
	if err := uc.repo.Investment().Delete(ctx, id); err != nil {
		return repositoryError(err, "failed to delete investment", InvestmentIDKey, id)
	}
	return nil
}
