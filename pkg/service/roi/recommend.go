package roi

import (
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
	"github.com/secmon-lab/riskquant/pkg/utils/numeric"
)

// Recommend picks one investment by criterion: highest ROI, shortest payback
// or largest risk reduction, the first one on ties. Unlike Optimal it does not
// filter out negative returns. nil means investments is empty; an unknown
// criterion is treated as types.CriterionROI.
func Recommend(profile *model.RiskProfile, investments []*model.SecurityInvestment, criterion types.Criterion) *model.ROICalculation {
	better := func(a, b *model.ROICalculation) bool { return a.ROI > b.ROI }
	switch criterion {
	case types.CriterionPayback:
		better = func(a, b *model.ROICalculation) bool { return a.PaybackPeriod < b.PaybackPeriod }
	case types.CriterionRiskReduction:
		better = func(a, b *model.ROICalculation) bool { return a.RiskReduction > b.RiskReduction }
	}

	var best *model.ROICalculation
	for _, calc := range CalculateAll(profile, investments) {
		if best == nil || better(calc, best) {
			best = calc
		}
	}
	return best
}

// RequiredEffectiveness bisects effectiveness over [0,1] for the smallest
// value whose mitigated risk score is at or below target. A profile already
// at or below target needs 0. Feasible is false when no tested value reached
// the target, in which case the required effectiveness is 0 as well.
func RequiredEffectiveness(profile *model.RiskProfile, target float64, opts ...Option) *model.EffectivenessTarget {
	cfg := newConfig(opts...)
	probability := numeric.Unit(profile.Probability)
	impact := numeric.NonNegative(profile.Impact)
	scoreAt := func(effectiveness float64) float64 {
		return model.RiskScoreWithCap(probability*(1-effectiveness), impact, cfg.ImpactCap)
	}

	current := scoreAt(0)
	result := &model.EffectivenessTarget{
		TargetRiskScore:    target,
		CurrentRiskScore:   current,
		MitigatedRiskScore: current,
	}
	if current <= target {
		result.Feasible = true
		return result
	}

	lo, hi := 0.0, 1.0
	for range cfg.SearchIterations {
		mid := (lo + hi) / 2
		if score := scoreAt(mid); score <= target {
			result.RequiredEffectiveness = mid
			result.MitigatedRiskScore = score
			result.Feasible = true
			hi = mid
		} else {
			lo = mid
		}
	}

	result.EstimatedInvestment = cfg.CostEstimator(profile, result.RequiredEffectiveness)
	return result
}
