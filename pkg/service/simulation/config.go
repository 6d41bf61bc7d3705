// Package simulation evaluates uncertain risk outcomes of a RiskProfile:
// Monte Carlo sampling, what-if overrides, sensitivity sweeps, threat level
// scenarios, and the statistics derived from a batch of results.
//
// Every function is a pure computation over its arguments. Nothing is cached
// and no input is mutated, so functions may be called concurrently.
package simulation

import (
	"time"

	"github.com/secmon-lab/riskquant/pkg/domain/interfaces"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
)

const (
	DefaultIterations          = 10000
	DefaultProbabilityVariance = 0.10
	DefaultImpactVariance      = 0.15
	DefaultConfidenceLevel     = 0.95
	DefaultVaRPercentile       = 0.05
)

// Config holds per-call settings. Use the With* options to override defaults.
type Config struct {
	Iterations          int
	ProbabilityVariance float64
	ImpactVariance      float64
	ImpactCap           float64
	Sampler             interfaces.Sampler
}

type Option func(*Config)

// WithIterations sets the number of Monte Carlo runs
func WithIterations(n int) Option {
	return func(c *Config) {
		c.Iterations = n
	}
}

// WithVariance sets the relative variance factors of probability and impact
func WithVariance(probability, impact float64) Option {
	return func(c *Config) {
		c.ProbabilityVariance = probability
		c.ImpactVariance = impact
	}
}

// WithImpactCap sets the monetary cap used to normalise impact in the risk score
func WithImpactCap(impactCap float64) Option {
	return func(c *Config) {
		c.ImpactCap = impactCap
	}
}

// WithSampler injects the random source. nil keeps the default.
func WithSampler(sampler interfaces.Sampler) Option {
	return func(c *Config) {
		if sampler != nil {
			c.Sampler = sampler
		}
	}
}

func newConfig(opts ...Option) *Config {
	cfg := &Config{
		Iterations:          DefaultIterations,
		ProbabilityVariance: DefaultProbabilityVariance,
		ImpactVariance:      DefaultImpactVariance,
		ImpactCap:           model.DefaultImpactCap,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (c *Config) sampler() interfaces.Sampler {
	if c.Sampler == nil {
		c.Sampler = NewSampler(uint64(time.Now().UnixNano()))
	}
	return c.Sampler
}

func (c *Config) score(probability, impact float64) float64 {
	return model.RiskScoreWithCap(probability, impact, c.ImpactCap)
}
