package types

import "github.com/m-mizutani/goerr/v2"

// Criterion selects how a single investment is recommended out of several
type Criterion string

const (
	// CriterionROI picks the highest ROI percentage
	CriterionROI Criterion = "roi"
	// CriterionPayback picks the shortest payback period
	CriterionPayback Criterion = "payback"
	// CriterionRiskReduction picks the largest annual risk reduction
	CriterionRiskReduction Criterion = "risk_reduction"
)

// AllCriteria returns all valid recommendation criteria
func AllCriteria() []Criterion {
	return []Criterion{
		CriterionROI,
		CriterionPayback,
		CriterionRiskReduction,
	}
}

// IsValid checks if the criterion is valid
func (c Criterion) IsValid() bool {
	switch c {
	case CriterionROI, CriterionPayback, CriterionRiskReduction:
		return true
	default:
		return false
	}
}

// String returns the string representation of the criterion
func (c Criterion) String() string {
	return string(c)
}

// ParseCriterion parses a string into a Criterion. Empty defaults to CriterionROI.
func ParseCriterion(s string) (Criterion, error) {
	if s == "" {
		return CriterionROI, nil
	}
	c := Criterion(s)
	if !c.IsValid() {
		return "", goerr.New("invalid recommendation criterion", goerr.V("criterion", s))
	}
	return c, nil
}
