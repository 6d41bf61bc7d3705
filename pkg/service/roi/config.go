// Package roi evaluates security investments against a RiskProfile: single
// and combined ROI, cost-benefit tables, recommendations and the
// effectiveness needed to reach a target risk score.
package roi

import "github.com/secmon-lab/riskquant/pkg/domain/model"

// DefaultSearchIterations is the number of bisection steps of RequiredEffectiveness
const DefaultSearchIterations = 20

// CostEstimator estimates the investment needed to apply effectiveness to profile
type CostEstimator func(profile *model.RiskProfile, effectiveness float64) float64

// LinearCostEstimate is a placeholder cost curve: impact * effectiveness * 0.1.
// It is not calibrated against real spending data.
func LinearCostEstimate(profile *model.RiskProfile, effectiveness float64) float64 {
	return profile.Impact * effectiveness * 0.1
}

type Config struct {
	ImpactCap        float64
	SearchIterations int
	CostEstimator    CostEstimator
}

type Option func(*Config)

// WithImpactCap sets the monetary cap used to normalise impact in the risk score
func WithImpactCap(impactCap float64) Option {
	return func(c *Config) {
		c.ImpactCap = impactCap
	}
}

// WithSearchIterations sets the number of bisection steps
func WithSearchIterations(n int) Option {
	return func(c *Config) {
		c.SearchIterations = n
	}
}

// WithCostEstimator replaces LinearCostEstimate. nil keeps the default.
func WithCostEstimator(estimator CostEstimator) Option {
	return func(c *Config) {
		if estimator != nil {
			c.CostEstimator = estimator
		}
	}
}

func newConfig(opts ...Option) *Config {
	cfg := &Config{
		ImpactCap:        model.DefaultImpactCap,
		SearchIterations: DefaultSearchIterations,
		CostEstimator:    LinearCostEstimate,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
