package model_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
)

func TestSimulationSettings(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		gt.NoError(t, model.DefaultSimulationSettings().Validate())
		gt.NoError(t, model.SimulationSettings{}.WithDefaults().Validate())
	})

	t.Run("WithDefaults keeps explicit values", func(t *testing.T) {
		s := model.SimulationSettings{Iterations: 500, Seed: 9}.WithDefaults()
		gt.Value(t, s.Iterations).Equal(500)
		gt.Value(t, s.Seed).Equal(uint64(9))
		gt.Value(t, s.ConfidenceLevel).Equal(0.95)
	})

	t.Run("Override replaces only non-zero fields", func(t *testing.T) {
		base := model.DefaultSimulationSettings()
		got := base.Override(model.SimulationSettings{ImpactVariance: model.Variance(0.3), Seed: 1})
		probability, impact := got.Variances()
		gt.Value(t, impact).Equal(0.3)
		gt.Value(t, probability).Equal(0.10)
		gt.Value(t, got.Seed).Equal(uint64(1))
		gt.Value(t, got.Iterations).Equal(base.Iterations)
	})

	t.Run("zero variance overrides the default", func(t *testing.T) {
		got := model.SimulationSettings{
			ProbabilityVariance: model.Variance(0),
			ImpactVariance:      model.Variance(0),
		}.WithDefaults()
		gt.NoError(t, got.Validate())

		probability, impact := got.Variances()
		gt.Value(t, probability).Equal(0.0)
		gt.Value(t, impact).Equal(0.0)
	})

	t.Run("Override does not share variance pointers", func(t *testing.T) {
		o := model.SimulationSettings{ImpactVariance: model.Variance(0.2)}
		got := model.DefaultSimulationSettings().Override(o)
		*o.ImpactVariance = 0.9
		_, impact := got.Variances()
		gt.Value(t, impact).Equal(0.2)
	})

	t.Run("unset variance is invalid", func(t *testing.T) {
		s := model.DefaultSimulationSettings()
		s.ProbabilityVariance = nil
		gt.Bool(t, errors.Is(s.Validate(), model.ErrOutOfRange)).True()
	})

	tests := []struct {
		name   string
		modify func(*model.SimulationSettings)
	}{
		{name: "negative iterations", modify: func(s *model.SimulationSettings) { s.Iterations = -1 }},
		{name: "too many iterations", modify: func(s *model.SimulationSettings) { s.Iterations = model.MaxIterations + 1 }},
		{name: "variance above one", modify: func(s *model.SimulationSettings) { s.ImpactVariance = model.Variance(1.5) }},
		{name: "confidence of one", modify: func(s *model.SimulationSettings) { s.ConfidenceLevel = 1 }},
		{name: "negative percentile", modify: func(s *model.SimulationSettings) { s.VaRPercentile = -0.1 }},
		{name: "negative cap", modify: func(s *model.SimulationSettings) { s.ImpactCap = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := model.DefaultSimulationSettings()
			tt.modify(&s)
			err := s.Validate()
			gt.Error(t, err)
			gt.Bool(t, errors.Is(err, model.ErrOutOfRange)).True()
		})
	}
}
