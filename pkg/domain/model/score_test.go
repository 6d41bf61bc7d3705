package model_test

import (
	"math"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
)

func TestRiskScore(t *testing.T) {
	tests := []struct {
		name        string
		probability float64
		impact      float64
		want        float64
	}{
		{name: "reference profile", probability: 0.35, impact: 750000, want: 1.85},
		{name: "saturated", probability: 1, impact: 50_000_000, want: 10},
		{name: "zero risk clamps to minimum", probability: 0, impact: 0, want: 1},
		{name: "impact at cap", probability: 0.5, impact: model.DefaultImpactCap, want: 8},
		{name: "probability above one clamps to maximum", probability: 3, impact: model.DefaultImpactCap, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := model.RiskScore(tt.probability, tt.impact)
			gt.Bool(t, math.Abs(got-tt.want) < 1e-9).True()
		})
	}
}

func TestRiskScore_StaysInScale(t *testing.T) {
	for p := 0.0; p <= 1.0; p += 0.05 {
		for _, impact := range []float64{0, 1, 1e3, 1e6, 1e7, 1e12, math.MaxFloat64, math.Inf(1)} {
			score := model.RiskScore(p, impact)
			gt.Number(t, score).GreaterOrEqual(model.MinRiskScore)
			gt.Number(t, score).LessOrEqual(model.MaxRiskScore)
		}
	}
}

func TestRiskScoreWithCap(t *testing.T) {
	t.Run("custom cap changes normalisation", func(t *testing.T) {
		got := model.RiskScoreWithCap(0.5, 1_000_000, 1_000_000)
		gt.Bool(t, math.Abs(got-8) < 1e-9).True()
	})

	t.Run("non-positive cap falls back to default", func(t *testing.T) {
		gt.Value(t, model.RiskScoreWithCap(0.35, 750000, 0)).Equal(model.RiskScore(0.35, 750000))
	})
}
