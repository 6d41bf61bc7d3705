package simulation

import (
	"fmt"

	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
)

// WhatIf evaluates each change independently against the original profile,
// in input order. Override values are used as given, without clamping.
// A change naming an unknown parameter evaluates the unchanged baseline.
func WhatIf(profile *model.RiskProfile, changes []model.WhatIfChange, opts ...Option) []*model.SimulationResult {
	cfg := newConfig(opts...)

	results := make([]*model.SimulationResult, 0, len(changes))
	for _, change := range changes {
		probability, impact := override(profile, change.Parameter, change.NewValue)
		results = append(results, evaluate(cfg, change.Description, probability, impact, map[string]float64{}))
	}
	return results
}

// Sensitivity sweeps each parameter over steps+1 evenly spaced values from
// Range.Low to Range.High inclusive, overriding only that parameter on the
// baseline. Parameters are not crossed; output is in parameter order, then
// step order. A parameter with steps <= 0 yields one row at Range.Low.
func Sensitivity(profile *model.RiskProfile, params []model.SensitivityParameter, opts ...Option) []*model.SimulationResult {
	cfg := newConfig(opts...)

	var results []*model.SimulationResult
	for _, param := range params {
		steps := max(param.Steps, 0)
		stepSize := 0.0
		if steps > 0 {
			stepSize = (param.Range.High - param.Range.Low) / float64(steps)
		}

		for i := 0; i <= steps; i++ {
			value := param.Range.Low + stepSize*float64(i)
			if i == steps && steps > 0 {
				// land exactly on the upper bound regardless of accumulated error
				value = param.Range.High
			}

			probability, impact := override(profile, param.Name, value)
			name := fmt.Sprintf("%s = %.2f", param.Name, value)
			results = append(results, evaluate(cfg, name, probability, impact, map[string]float64{
				param.Name.String(): value,
			}))
		}
	}

	if results == nil {
		return []*model.SimulationResult{}
	}
	return results
}

func override(profile *model.RiskProfile, param types.Parameter, value float64) (probability, impact float64) {
	probability, impact = profile.Probability, profile.Impact
	switch param {
	case types.ParameterProbability:
		probability = value
	case types.ParameterImpact:
		impact = value
	}
	return probability, impact
}

func evaluate(cfg *Config, name string, probability, impact float64, sensitivity map[string]float64) *model.SimulationResult {
	return &model.SimulationResult{
		ScenarioName:        name,
		Probability:         probability,
		Impact:              impact,
		ExpectedLoss:        probability * impact,
		RiskScore:           cfg.score(probability, impact),
		SensitivityAnalysis: sensitivity,
	}
}
