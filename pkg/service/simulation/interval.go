package simulation

import (
	"maps"

	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/utils/numeric"
)

// ExpectedLossInterval returns the population level [low, high] interval of
// expected loss at confidenceLevel. The bounds are order statistics at
// floor(alpha/2 * n) and floor((1-alpha/2) * n); an out of range index reads 0.
func ExpectedLossInterval(results []*model.SimulationResult, confidenceLevel float64) model.Interval {
	losses := numeric.Sorted(expectedLosses(results))
	n := len(losses)
	alpha := 1 - confidenceLevel

	return model.Interval{
		Low:  numeric.At(losses, numeric.FloorIndex(n, alpha/2)),
		High: numeric.At(losses, numeric.FloorIndex(n, 1-alpha/2)),
	}
}

// ConfidenceIntervals returns copies of results, in their original order,
// each carrying the same batch-wide expected loss interval.
//
// The interval describes the whole batch, not the parameters of an
// individual row.
func ConfidenceIntervals(results []*model.SimulationResult, confidenceLevel float64) []*model.SimulationResult {
	interval := ExpectedLossInterval(results, confidenceLevel)

	out := make([]*model.SimulationResult, len(results))
	for i, r := range results {
		copied := *r
		ci := interval
		copied.ConfidenceInterval = &ci
		copied.SensitivityAnalysis = maps.Clone(r.SensitivityAnalysis)
		out[i] = &copied
	}
	return out
}

func expectedLosses(results []*model.SimulationResult) []float64 {
	losses := make([]float64, len(results))
	for i, r := range results {
		losses[i] = r.ExpectedLoss
	}
	return losses
}
