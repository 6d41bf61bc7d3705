// Package numeric holds the small float helpers shared by the simulation and
// ROI engines: clamping, order statistics and series summaries.
package numeric

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Clamp limits v to [lo, hi]. NaN is returned as lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Unit clamps v to [0, 1]
func Unit(v float64) float64 {
	return Clamp(v, 0, 1)
}

// NonNegative clamps v to [0, +Inf)
func NonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

// Sorted returns an ascending copy of values
func Sorted(values []float64) []float64 {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	return sorted
}

// At returns sorted[idx], or 0 when idx is out of range
func At(sorted []float64, idx int) float64 {
	if idx < 0 || idx >= len(sorted) {
		return 0
	}
	return sorted[idx]
}

// FloorIndex returns floor(n * p) as an index
func FloorIndex(n int, p float64) int {
	return int(math.Floor(float64(n) * p))
}

// Median of an ascending series. An even count averages the two middle values.
func Median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Mean returns the arithmetic mean, 0 for an empty series
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// Summary is the five number description of a series
type Summary struct {
	Mean   float64
	Median float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summarize computes mean, median, population standard deviation, min and max.
// An empty series yields a zero Summary.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}

	sorted := Sorted(values)
	mean, std := stat.PopMeanStdDev(sorted, nil)

	return Summary{
		Mean:   mean,
		Median: Median(sorted),
		StdDev: std,
		Min:    floats.Min(sorted),
		Max:    floats.Max(sorted),
	}
}
