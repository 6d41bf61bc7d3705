package model

import (
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
)

// Interval is a [low, high] pair. It is serialised as a two element array.
type Interval struct {
	Low  float64
	High float64
}

func (i Interval) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{i.Low, i.High})
}

func (i *Interval) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return goerr.Wrap(err, "failed to unmarshal interval")
	}
	if len(pair) != 2 {
		return goerr.New("interval must have exactly two elements", goerr.V("length", len(pair)))
	}
	i.Low, i.High = pair[0], pair[1]
	return nil
}

// SimulationResult is one scenario outcome. Results are never mutated after
// creation; operations that attach data return new values.
type SimulationResult struct {
	ScenarioName string  `json:"scenarioName"`
	Probability  float64 `json:"probability"`
	Impact       float64 `json:"impact"`
	ExpectedLoss float64 `json:"expectedLoss"`
	RiskScore    float64 `json:"riskScore"`
	// ConfidenceInterval is the batch-wide expected loss interval. It is the
	// same for every result of one batch and nil until attached.
	ConfidenceInterval *Interval `json:"confidenceInterval,omitempty"`
	// SensitivityAnalysis maps the swept parameter to the value used for this row
	SensitivityAnalysis map[string]float64 `json:"sensitivityAnalysis"`
}

// WhatIfChange overrides one field of the baseline profile
type WhatIfChange struct {
	Parameter   types.Parameter `json:"parameter"`
	NewValue    float64         `json:"newValue"`
	Description string          `json:"description"`
}

// SensitivityParameter describes one parameter sweep over [Range.Low, Range.High]
type SensitivityParameter struct {
	Name  types.Parameter `json:"name"`
	Range Interval        `json:"range"`
	Steps int             `json:"steps"`
}

// SeriesStats summarises one numeric series of a result batch
type SeriesStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"stdDev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// RiskMetrics aggregates a result batch, including tail statistics of the
// expected loss distribution
type RiskMetrics struct {
	Count             int         `json:"count"`
	ExpectedLoss      SeriesStats `json:"expectedLoss"`
	Probability       SeriesStats `json:"probability"`
	Impact            SeriesStats `json:"impact"`
	RiskScore         SeriesStats `json:"riskScore"`
	Percentile        float64     `json:"percentile"`
	ValueAtRisk       float64     `json:"valueAtRisk"`
	ExpectedShortfall float64     `json:"expectedShortfall"`
}

// ThreatScenario is a profile re-evaluated under a threat level
type ThreatScenario struct {
	Level   types.ThreatLevel `json:"level"`
	Profile *RiskProfile      `json:"profile"`
	Result  *SimulationResult `json:"result"`
}

// HistogramBin counts results whose expected loss falls in [Lower, Upper)
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}
