package model

import "github.com/secmon-lab/riskquant/pkg/utils/numeric"

const (
	// DefaultImpactCap is the monetary impact that maps to a fully saturated
	// impact component of the risk score.
	DefaultImpactCap = 10_000_000.0

	MinRiskScore = 1.0
	MaxRiskScore = 10.0

	probabilityWeight = 0.4
	impactWeight      = 0.6
)

// RiskScore returns the 1-10 weighted score of a probability and monetary
// impact, normalising impact by DefaultImpactCap.
//
// This is not the 1-25 likelihood x impact matrix score used by qualitative
// registers; the two scales must not be mixed.
func RiskScore(probability, impact float64) float64 {
	return RiskScoreWithCap(probability, impact, DefaultImpactCap)
}

// RiskScoreWithCap is RiskScore with an explicit impact normalisation cap.
// A non-positive cap falls back to DefaultImpactCap.
func RiskScoreWithCap(probability, impact, impactCap float64) float64 {
	if impactCap <= 0 {
		impactCap = DefaultImpactCap
	}

	// Inputs are not clamped here: what-if overrides may carry out of range
	// values and only the final score is bounded.
	normalized := min(impact/impactCap, 1)
	score := (probability*probabilityWeight + normalized*impactWeight) * 10

	return numeric.Clamp(score, MinRiskScore, MaxRiskScore)
}
