package model

import "github.com/m-mizutani/goerr/v2"

// SimulationSettings are the analysis defaults of a deployment. Zero values
// are filled by WithDefaults. The variances are pointers because 0 is a valid
// setting (a deterministic run); nil means unset.
type SimulationSettings struct {
	Iterations          int      `json:"iterations" toml:"iterations"`
	ProbabilityVariance *float64 `json:"probabilityVariance,omitempty" toml:"probability_variance"`
	ImpactVariance      *float64 `json:"impactVariance,omitempty" toml:"impact_variance"`
	ConfidenceLevel     float64  `json:"confidenceLevel" toml:"confidence_level"`
	VaRPercentile       float64  `json:"varPercentile" toml:"var_percentile"`
	ImpactCap           float64  `json:"impactCap" toml:"impact_cap"`
	// Seed makes Monte Carlo runs reproducible. 0 seeds from the clock.
	Seed uint64 `json:"seed" toml:"seed"`
}

// MaxIterations bounds the Monte Carlo runs a single request may ask for
const MaxIterations = 1_000_000

// DefaultSimulationSettings mirrors the engine defaults
func DefaultSimulationSettings() SimulationSettings {
	return SimulationSettings{
		Iterations:          10000,
		ProbabilityVariance: Variance(0.10),
		ImpactVariance:      Variance(0.15),
		ConfidenceLevel:     0.95,
		VaRPercentile:       0.05,
		ImpactCap:           DefaultImpactCap,
	}
}

// Variance returns a variance setting for SimulationSettings
func Variance(v float64) *float64 {
	return &v
}

// Variances returns the probability and impact variances. Unset values are 0.
func (s SimulationSettings) Variances() (probability, impact float64) {
	if s.ProbabilityVariance != nil {
		probability = *s.ProbabilityVariance
	}
	if s.ImpactVariance != nil {
		impact = *s.ImpactVariance
	}
	return probability, impact
}

// Override returns a copy of s where every non-zero field of o, and every
// non-nil variance of o, replaces the corresponding field of s
func (s SimulationSettings) Override(o SimulationSettings) SimulationSettings {
	if o.Iterations != 0 {
		s.Iterations = o.Iterations
	}
	if o.ProbabilityVariance != nil {
		s.ProbabilityVariance = Variance(*o.ProbabilityVariance)
	}
	if o.ImpactVariance != nil {
		s.ImpactVariance = Variance(*o.ImpactVariance)
	}
	if o.ConfidenceLevel != 0 {
		s.ConfidenceLevel = o.ConfidenceLevel
	}
	if o.VaRPercentile != 0 {
		s.VaRPercentile = o.VaRPercentile
	}
	if o.ImpactCap != 0 {
		s.ImpactCap = o.ImpactCap
	}
	if o.Seed != 0 {
		s.Seed = o.Seed
	}
	return s
}

// WithDefaults returns a copy where every zero field takes its default
func (s SimulationSettings) WithDefaults() SimulationSettings {
	return DefaultSimulationSettings().Override(s)
}

func (s SimulationSettings) Validate() error {
	if s.Iterations <= 0 || s.Iterations > MaxIterations {
		return goerr.Wrap(ErrOutOfRange, "iterations must be between 1 and the maximum",
			goerr.V(FieldNameKey, "iterations"), goerr.V(FieldValueKey, s.Iterations), goerr.V("max", MaxIterations))
	}
	for name, v := range map[string]*float64{
		"probability_variance": s.ProbabilityVariance,
		"impact_variance":      s.ImpactVariance,
	} {
		if v == nil {
			return goerr.Wrap(ErrOutOfRange, "variance is not set", goerr.V(FieldNameKey, name))
		}
		if !isFinite(*v) || *v < 0 || *v > 1 {
			return goerr.Wrap(ErrOutOfRange, "variance must be between 0 and 1",
				goerr.V(FieldNameKey, name), goerr.V(FieldValueKey, *v))
		}
	}
	for name, v := range map[string]float64{
		"confidence_level": s.ConfidenceLevel,
		"var_percentile":   s.VaRPercentile,
	} {
		if !isFinite(v) || v <= 0 || v >= 1 {
			return goerr.Wrap(ErrOutOfRange, "value must be strictly between 0 and 1",
				goerr.V(FieldNameKey, name), goerr.V(FieldValueKey, v))
		}
	}
	if !isFinite(s.ImpactCap) || s.ImpactCap <= 0 {
		return goerr.Wrap(ErrOutOfRange, "impact cap must be positive",
			goerr.V(FieldNameKey, "impact_cap"), goerr.V(FieldValueKey, s.ImpactCap))
	}
	return nil
}
