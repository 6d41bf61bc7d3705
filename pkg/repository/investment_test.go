package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskquant/pkg/domain/interfaces"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
)

func runInvestmentRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	newInvestment := func(name string) *model.SecurityInvestment {
		return &model.SecurityInvestment{
			Name:               name,
			Cost:               50000,
			Effectiveness:      0.3,
			ImplementationTime: 3,
			Lifecycle:          3,
		}
	}

	t.Run("Create and Get", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Investment().Create(ctx, newInvestment("EDR"))
		gt.NoError(t, err).Required()
		gt.Value(t, created.ID == "").Equal(false)
		gt.Bool(t, created.CreatedAt.IsZero()).False()

		got, err := repo.Investment().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Name).Equal("EDR")
		gt.Value(t, got.Cost).Equal(50000.0)
		gt.Value(t, got.Effectiveness).Equal(0.3)
		gt.Value(t, got.ImplementationTime).Equal(3.0)
		gt.Value(t, got.Lifecycle).Equal(3.0)
	})

	t.Run("Get returns not found for missing investment", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Investment().Get(context.Background(), model.InvestmentID(uniqueID("missing")))
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("GetMany keeps the requested order", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		a, err := repo.Investment().Create(ctx, newInvestment("a"))
		gt.NoError(t, err).Required()
		b, err := repo.Investment().Create(ctx, newInvestment("b"))
		gt.NoError(t, err).Required()

		got, err := repo.Investment().GetMany(ctx, []model.InvestmentID{b.ID, a.ID})
		gt.NoError(t, err).Required()
		gt.A(t, got).Length(2)
		gt.Value(t, got[0].Name).Equal("b")
		gt.Value(t, got[1].Name).Equal("a")

		_, err = repo.Investment().GetMany(ctx, []model.InvestmentID{a.ID, model.InvestmentID(uniqueID("missing"))})
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()

		empty, err := repo.Investment().GetMany(ctx, nil)
		gt.NoError(t, err)
		gt.A(t, empty).Length(0)
	})

	t.Run("List orders by ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for _, id := range []string{"waf", "edr", "mfa"} {
			inv := newInvestment(id)
			inv.ID = model.InvestmentID(id)
			_, err := repo.Investment().Create(ctx, inv)
			gt.NoError(t, err).Required()
		}

		got, err := repo.Investment().List(ctx)
		gt.NoError(t, err).Required()
		gt.A(t, got).Length(3)
		gt.Value(t, got[0].ID).Equal(model.InvestmentID("edr"))
		gt.Value(t, got[1].ID).Equal(model.InvestmentID("mfa"))
		gt.Value(t, got[2].ID).Equal(model.InvestmentID("waf"))
	})

	t.Run("Update and Delete", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Investment().Create(ctx, newInvestment("SIEM"))
		gt.NoError(t, err).Required()

		created.Cost = 80000
		updated, err := repo.Investment().Update(ctx, created)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Cost).Equal(80000.0)

		gt.NoError(t, repo.Investment().Delete(ctx, created.ID)).Required()
		_, err = repo.Investment().Get(ctx, created.ID)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()

		_, err = repo.Investment().Update(ctx, created)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})
}

func TestMemoryInvestmentRepository(t *testing.T) {
	runInvestmentRepositoryTest(t, newMemoryRepository)
}

func TestFirestoreInvestmentRepository(t *testing.T) {
	runInvestmentRepositoryTest(t, newFirestoreRepository)
}
