package roi

import (
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/utils/numeric"
)

// Calculate evaluates one investment against profile. Effectiveness reduces
// probability; the resulting annual drop in expected loss is both the risk
// reduction and the cost avoidance.
//
// Payback and breakeven are model.Never when the annual net benefit is not
// positive. A zero total cost yields a non-finite ROI; callers are expected
// to reject such investments beforehand.
//
// Probability and effectiveness are clamped to [0,1] and impact to >= 0
// before any value is derived.
func Calculate(profile *model.RiskProfile, investment *model.SecurityInvestment) *model.ROICalculation {
	probability := numeric.Unit(profile.Probability)
	impact := numeric.NonNegative(profile.Impact)
	effectiveness := numeric.Unit(investment.Effectiveness)

	original := probability * impact
	mitigated := probability * (1 - effectiveness) * impact
	reduction := original - mitigated

	totalCost := investment.TotalCost()
	netBenefit := reduction*investment.Lifecycle - totalCost

	payback, breakeven := model.Never, model.Never
	if annual := reduction - investment.Cost; annual > 0 {
		payback = model.Years(totalCost / (annual * investment.Lifecycle))
		breakeven = model.Years(investment.Cost / annual)
	}

	return &model.ROICalculation{
		Investment:    investment,
		RiskReduction: reduction,
		CostAvoidance: reduction,
		NetBenefit:    netBenefit,
		ROI:           netBenefit / totalCost * 100,
		PaybackPeriod: payback,
		BreakevenTime: breakeven,
	}
}

// CalculateAll maps Calculate over investments in input order
func CalculateAll(profile *model.RiskProfile, investments []*model.SecurityInvestment) []*model.ROICalculation {
	out := make([]*model.ROICalculation, len(investments))
	for i, inv := range investments {
		out[i] = Calculate(profile, inv)
	}
	return out
}

// Optimal returns the calculation with the highest positive ROI, the first
// one on ties. nil means no investment pays off.
func Optimal(profile *model.RiskProfile, investments []*model.SecurityInvestment) *model.ROICalculation {
	var best *model.ROICalculation
	for _, calc := range CalculateAll(profile, investments) {
		if calc.ROI <= 0 {
			continue
		}
		if best == nil || calc.ROI > best.ROI {
			best = calc
		}
	}
	return best
}

// CumulativeEffectiveness compounds effectiveness as independent layers:
// each layer removes its share of the probability left by the previous ones.
// Each layer is clamped to [0,1], so the result stays within [0,1].
func CumulativeEffectiveness(investments []*model.SecurityInvestment) float64 {
	var cumulative float64
	for _, inv := range investments {
		cumulative += numeric.Unit(inv.Effectiveness) * (1 - cumulative)
	}
	return cumulative
}

// Combined evaluates investments as one synthetic investment with summed
// cost, cumulative effectiveness, the longest implementation time and the
// shortest lifecycle. It returns nil for an empty list.
func Combined(profile *model.RiskProfile, investments []*model.SecurityInvestment) *model.CombinedROI {
	if len(investments) == 0 {
		return nil
	}

	cumulative := CumulativeEffectiveness(investments)
	combined := &model.SecurityInvestment{
		Name:               "Combined Investment",
		Effectiveness:      cumulative,
		ImplementationTime: investments[0].ImplementationTime,
		Lifecycle:          investments[0].Lifecycle,
	}
	for _, inv := range investments {
		combined.Cost += inv.Cost
		combined.ImplementationTime = max(combined.ImplementationTime, inv.ImplementationTime)
		combined.Lifecycle = min(combined.Lifecycle, inv.Lifecycle)
	}

	return &model.CombinedROI{
		Investments:             investments,
		CumulativeEffectiveness: cumulative,
		Combined:                combined,
		Calculation:             Calculate(profile, combined),
	}
}

// CostBenefit returns one row per investment, in input order
func CostBenefit(profile *model.RiskProfile, investments []*model.SecurityInvestment) []*model.CostBenefit {
	out := make([]*model.CostBenefit, len(investments))
	for i, inv := range investments {
		calc := Calculate(profile, inv)
		benefit := calc.RiskReduction * inv.Lifecycle
		cost := inv.TotalCost()
		out[i] = &model.CostBenefit{
			Investment:   inv,
			TotalBenefit: benefit,
			TotalCost:    cost,
			NetBenefit:   benefit - cost,
			Ratio:        benefit / cost,
		}
	}
	return out
}
