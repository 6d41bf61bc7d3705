package simulation

import (
	"fmt"

	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/utils/numeric"
)

// MonteCarlo draws cfg.Iterations perturbed copies of profile. Each run moves
// probability and impact by a uniform relative variance, clamps probability to
// [0,1] and impact to >= 0, and scores the clamped pair.
//
// Results are in simulation order ("Simulation 1", "Simulation 2", ...) and
// carry no confidence interval; use ConfidenceIntervals to attach one.
func MonteCarlo(profile *model.RiskProfile, opts ...Option) []*model.SimulationResult {
	cfg := newConfig(opts...)
	if cfg.Iterations <= 0 {
		return []*model.SimulationResult{}
	}

	sampler := cfg.sampler()
	results := make([]*model.SimulationResult, 0, cfg.Iterations)
	for i := 0; i < cfg.Iterations; i++ {
		probabilityDelta := sampler.Uniform(-cfg.ProbabilityVariance, cfg.ProbabilityVariance)
		impactDelta := sampler.Uniform(-cfg.ImpactVariance, cfg.ImpactVariance)

		probability := numeric.Unit(profile.Probability + profile.Probability*probabilityDelta)
		impact := numeric.NonNegative(profile.Impact + profile.Impact*impactDelta)

		results = append(results, &model.SimulationResult{
			ScenarioName:        fmt.Sprintf("Simulation %d", i+1),
			Probability:         probability,
			Impact:              impact,
			ExpectedLoss:        probability * impact,
			RiskScore:           cfg.score(probability, impact),
			SensitivityAnalysis: map[string]float64{},
		})
	}

	return results
}
