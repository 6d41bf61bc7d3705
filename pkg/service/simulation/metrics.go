package simulation

import (
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/utils/numeric"
)

// Metrics summarises a result batch. Value-at-Risk at percentile is the
// expected loss order statistic at floor(n * percentile); Expected Shortfall
// is the mean of the sorted losses up to and including that index.
func Metrics(results []*model.SimulationResult, percentile float64) *model.RiskMetrics {
	n := len(results)
	losses := make([]float64, n)
	probabilities := make([]float64, n)
	impacts := make([]float64, n)
	scores := make([]float64, n)
	for i, r := range results {
		losses[i] = r.ExpectedLoss
		probabilities[i] = r.Probability
		impacts[i] = r.Impact
		scores[i] = r.RiskScore
	}

	sorted := numeric.Sorted(losses)
	cutoff := numeric.FloorIndex(n, percentile)

	var shortfall float64
	if cutoff >= 0 && n > 0 {
		shortfall = numeric.Mean(sorted[:min(cutoff, n-1)+1])
	}

	return &model.RiskMetrics{
		Count:             n,
		ExpectedLoss:      toSeriesStats(numeric.Summarize(losses)),
		Probability:       toSeriesStats(numeric.Summarize(probabilities)),
		Impact:            toSeriesStats(numeric.Summarize(impacts)),
		RiskScore:         toSeriesStats(numeric.Summarize(scores)),
		Percentile:        percentile,
		ValueAtRisk:       numeric.At(sorted, cutoff),
		ExpectedShortfall: shortfall,
	}
}

// Histogram buckets expected loss into bins equal-width ranges between the
// batch minimum and maximum. The maximum falls into the last bin. A batch
// whose losses are all equal yields a single bin.
func Histogram(results []*model.SimulationResult, bins int) []model.HistogramBin {
	if len(results) == 0 || bins <= 0 {
		return []model.HistogramBin{}
	}

	summary := numeric.Summarize(expectedLosses(results))
	lo, hi := summary.Min, summary.Max
	if lo == hi {
		return []model.HistogramBin{{Lower: lo, Upper: hi, Count: len(results)}}
	}

	width := (hi - lo) / float64(bins)
	out := make([]model.HistogramBin, bins)
	for i := range out {
		out[i].Lower = lo + width*float64(i)
		out[i].Upper = lo + width*float64(i+1)
	}
	out[bins-1].Upper = hi

	for _, r := range results {
		idx := min(int((r.ExpectedLoss-lo)/width), bins-1)
		out[idx].Count++
	}
	return out
}

func toSeriesStats(s numeric.Summary) model.SeriesStats {
	return model.SeriesStats{
		Mean:   s.Mean,
		Median: s.Median,
		StdDev: s.StdDev,
		Min:    s.Min,
		Max:    s.Max,
	}
}
