package simulation

import (
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
	"github.com/secmon-lab/riskquant/pkg/utils/numeric"
)

// ThreatMultipliers scale probability and impact for a threat level
type ThreatMultipliers struct {
	Probability float64
	Impact      float64
}

var threatMultipliers = map[types.ThreatLevel]ThreatMultipliers{
	types.ThreatLevelLow:      {Probability: 0.8, Impact: 0.9},
	types.ThreatLevelMedium:   {Probability: 1.0, Impact: 1.0},
	types.ThreatLevelHigh:     {Probability: 1.3, Impact: 1.2},
	types.ThreatLevelCritical: {Probability: 1.6, Impact: 1.5},
}

// MultipliersFor returns the multipliers of level. Unknown levels use the
// neutral medium multipliers.
func MultipliersFor(level types.ThreatLevel) ThreatMultipliers {
	if m, ok := threatMultipliers[level]; ok {
		return m
	}
	return threatMultipliers[types.ThreatLevelMedium]
}

// ThreatScenario scales profile by the multipliers of level and returns the
// new clamped profile with its result, labelled "Threat Level: <Level>".
// The input profile is not modified.
func ThreatScenario(profile *model.RiskProfile, level types.ThreatLevel, opts ...Option) *model.ThreatScenario {
	cfg := newConfig(opts...)
	m := MultipliersFor(level)

	scaled := profile.Clone()
	scaled.Probability = numeric.Unit(profile.Probability * m.Probability)
	scaled.Impact = numeric.NonNegative(profile.Impact * m.Impact)
	scaled.RiskScore = cfg.score(scaled.Probability, scaled.Impact)

	return &model.ThreatScenario{
		Level:   level,
		Profile: scaled,
		Result:  evaluate(cfg, "Threat Level: "+level.Title(), scaled.Probability, scaled.Impact, map[string]float64{}),
	}
}

// ThreatScenarios evaluates every threat level in ascending severity
func ThreatScenarios(profile *model.RiskProfile, opts ...Option) []*model.ThreatScenario {
	levels := types.AllThreatLevels()
	out := make([]*model.ThreatScenario, len(levels))
	for i, level := range levels {
		out[i] = ThreatScenario(profile, level, opts...)
	}
	return out
}
