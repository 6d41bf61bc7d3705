package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskquant/pkg/domain/interfaces"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
)

func runProfileRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create assigns ID and timestamps", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Profile().Create(ctx, &model.RiskProfile{
			Name:        "Ransomware",
			Category:    "malware",
			Probability: 0.35,
			Impact:      750000,
			RiskScore:   1.85,
		})
		gt.NoError(t, err).Required()
		gt.Value(t, created.ID == "").Equal(false)
		gt.Value(t, created.Name).Equal("Ransomware")
		gt.Value(t, created.Probability).Equal(0.35)
		gt.Bool(t, created.CreatedAt.IsZero()).False()
		gt.Bool(t, created.UpdatedAt.IsZero()).False()
	})

	t.Run("Create keeps a given ID and rejects duplicates", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		id := model.ProfileID(uniqueID("phishing"))

		created, err := repo.Profile().Create(ctx, &model.RiskProfile{ID: id, Name: "Phishing"})
		gt.NoError(t, err).Required()
		gt.Value(t, created.ID).Equal(id)

		_, err = repo.Profile().Create(ctx, &model.RiskProfile{ID: id, Name: "Phishing again"})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, interfaces.ErrAlreadyExists)).True()
	})

	t.Run("Get retrieves existing profile", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Profile().Create(ctx, &model.RiskProfile{
			Name:          "Insider",
			Description:   "Data theft by employees",
			Category:      "insider",
			Probability:   0.1,
			Impact:        2_000_000,
			ThreatActor:   "employee",
			Vulnerability: "excess privileges",
			BusinessUnit:  "finance",
		})
		gt.NoError(t, err).Required()

		got, err := repo.Profile().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Name).Equal("Insider")
		gt.Value(t, got.Description).Equal("Data theft by employees")
		gt.Value(t, got.Category).Equal(types.CategoryID("insider"))
		gt.Value(t, got.Impact).Equal(2_000_000.0)
		gt.Value(t, got.ThreatActor).Equal("employee")
		gt.Value(t, got.Vulnerability).Equal("excess privileges")
		gt.Value(t, got.BusinessUnit).Equal("finance")
	})

	t.Run("Get returns not found for missing profile", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Profile().Get(context.Background(), model.ProfileID(uniqueID("missing")))
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("returned profiles are copies", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Profile().Create(ctx, &model.RiskProfile{Name: "DDoS", Probability: 0.2})
		gt.NoError(t, err).Required()
		created.Probability = 0.9

		got, err := repo.Profile().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Probability).Equal(0.2)
	})

	t.Run("List returns all profiles ordered by ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for _, name := range []string{"c", "a", "b"} {
			_, err := repo.Profile().Create(ctx, &model.RiskProfile{ID: model.ProfileID(name), Name: name})
			gt.NoError(t, err).Required()
		}

		profiles, err := repo.Profile().List(ctx)
		gt.NoError(t, err).Required()
		gt.A(t, profiles).Length(3)
		gt.Value(t, profiles[0].ID).Equal(model.ProfileID("a"))
		gt.Value(t, profiles[2].ID).Equal(model.ProfileID("c"))
	})

	t.Run("ListByCategory filters and orders by update time", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		older, err := repo.Profile().Create(ctx, &model.RiskProfile{Name: "older", Category: "cloud"})
		gt.NoError(t, err).Required()
		time.Sleep(5 * time.Millisecond)
		newer, err := repo.Profile().Create(ctx, &model.RiskProfile{Name: "newer", Category: "cloud"})
		gt.NoError(t, err).Required()
		_, err = repo.Profile().Create(ctx, &model.RiskProfile{Name: "other", Category: "network"})
		gt.NoError(t, err).Required()

		profiles, err := repo.Profile().ListByCategory(ctx, "cloud")
		gt.NoError(t, err).Required()
		gt.A(t, profiles).Length(2)
		gt.Value(t, profiles[0].ID).Equal(newer.ID)
		gt.Value(t, profiles[1].ID).Equal(older.ID)
	})

	t.Run("Update replaces fields and keeps CreatedAt", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Profile().Create(ctx, &model.RiskProfile{Name: "Supply chain", Probability: 0.1})
		gt.NoError(t, err).Required()
		time.Sleep(5 * time.Millisecond)

		created.Name = "Supply chain compromise"
		created.Probability = 0.25
		updated, err := repo.Profile().Update(ctx, created)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Name).Equal("Supply chain compromise")
		gt.Value(t, updated.Probability).Equal(0.25)
		gt.Bool(t, updated.CreatedAt.Equal(created.CreatedAt)).True()
		gt.Bool(t, updated.UpdatedAt.After(created.UpdatedAt)).True()
	})

	t.Run("Update returns not found for missing profile", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Profile().Update(context.Background(), &model.RiskProfile{ID: model.ProfileID(uniqueID("missing")), Name: "x"})
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("Delete removes profile", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Profile().Create(ctx, &model.RiskProfile{Name: "Temporary"})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Profile().Delete(ctx, created.ID)).Required()

		_, err = repo.Profile().Get(ctx, created.ID)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()

		err = repo.Profile().Delete(ctx, created.ID)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})
}

func TestMemoryProfileRepository(t *testing.T) {
	runProfileRepositoryTest(t, newMemoryRepository)
}

func TestFirestoreProfileRepository(t *testing.T) {
	runProfileRepositoryTest(t, newFirestoreRepository)
}
