package model

import (
	"encoding/json"
	"math"
	"strconv"
)

// Years is a duration in years that may be infinite when an investment never
// pays for itself. Infinite values print as "N/A" and marshal to JSON null.
type Years float64

// Never is the infinite duration
var Never = Years(math.Inf(1))

// IsInf reports whether the duration is infinite
func (y Years) IsInf() bool {
	return math.IsInf(float64(y), 0)
}

func (y Years) String() string {
	if y.IsInf() || math.IsNaN(float64(y)) {
		return "N/A"
	}
	return strconv.FormatFloat(float64(y), 'f', 2, 64)
}

func (y Years) MarshalJSON() ([]byte, error) {
	if y.IsInf() || math.IsNaN(float64(y)) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(y))
}

func (y *Years) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*y = Never
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*y = Years(v)
	return nil
}

// ROICalculation is the financial evaluation of one investment against a profile
type ROICalculation struct {
	Investment *SecurityInvestment `json:"investment"`
	// RiskReduction is the annual reduction of expected loss
	RiskReduction float64 `json:"riskReduction"`
	// CostAvoidance equals RiskReduction, reported as annual cost avoided
	CostAvoidance float64 `json:"costAvoidance"`
	NetBenefit    float64 `json:"netBenefit"`
	// ROI is a percentage
	ROI           float64 `json:"roi"`
	PaybackPeriod Years   `json:"paybackPeriod"`
	BreakevenTime Years   `json:"breakevenTime"`
}

// CombinedROI evaluates several investments as independent layers
type CombinedROI struct {
	Investments             []*SecurityInvestment `json:"investments"`
	CumulativeEffectiveness float64               `json:"cumulativeEffectiveness"`
	Combined                *SecurityInvestment   `json:"combined"`
	Calculation             *ROICalculation       `json:"calculation"`
}

// CostBenefit is one row of a cost-benefit table
type CostBenefit struct {
	Investment   *SecurityInvestment `json:"investment"`
	TotalBenefit float64             `json:"totalBenefit"`
	TotalCost    float64             `json:"totalCost"`
	NetBenefit   float64             `json:"netBenefit"`
	Ratio        float64             `json:"ratio"`
}

// EffectivenessTarget is the result of searching for the effectiveness that
// brings a profile down to a target risk score
type EffectivenessTarget struct {
	TargetRiskScore       float64 `json:"targetRiskScore"`
	CurrentRiskScore      float64 `json:"currentRiskScore"`
	RequiredEffectiveness float64 `json:"requiredEffectiveness"`
	// MitigatedRiskScore is the score at RequiredEffectiveness
	MitigatedRiskScore float64 `json:"mitigatedRiskScore"`
	// EstimatedInvestment comes from a placeholder cost heuristic, see roi.LinearCostEstimate
	EstimatedInvestment float64 `json:"estimatedInvestment"`
	Feasible            bool    `json:"feasible"`
}
