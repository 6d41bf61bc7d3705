package model

import (
	"time"

	"github.com/google/uuid"
)

// ReportID is a UUID-based identifier for RiskReport
type ReportID string

// NewReportID generates a new UUID v4 ReportID
func NewReportID() ReportID {
	return ReportID(uuid.New().String())
}

// RiskReport bundles everything a dashboard or document generator renders
// for one profile
type RiskReport struct {
	ID                 ReportID             `json:"id"`
	GeneratedAt        time.Time            `json:"generatedAt"`
	Profile            *RiskProfile         `json:"profile"`
	Iterations         int                  `json:"iterations"`
	ConfidenceLevel    float64              `json:"confidenceLevel"`
	// ImpactCap is the normalisation cap every risk score in the report uses
	ImpactCap          float64              `json:"impactCap"`
	ConfidenceInterval *Interval            `json:"confidenceInterval,omitempty"`
	Metrics            *RiskMetrics         `json:"metrics"`
	Histogram          []HistogramBin       `json:"histogram"`
	Threats            []*ThreatScenario    `json:"threats"`
	Investments        []*ROICalculation    `json:"investments"`
	Optimal            *ROICalculation      `json:"optimal,omitempty"`
	Combined           *CombinedROI         `json:"combined,omitempty"`
	CostBenefit        []*CostBenefit       `json:"costBenefit"`
	Target             *EffectivenessTarget `json:"target,omitempty"`
}

// PortfolioEntry is the Monte Carlo summary of one profile in a portfolio view
type PortfolioEntry struct {
	Profile *RiskProfile `json:"profile"`
	Metrics *RiskMetrics `json:"metrics"`
}
