package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// ThreatLevel is the qualitative threat environment applied to a risk profile
type ThreatLevel string

const (
	ThreatLevelLow      ThreatLevel = "low"
	ThreatLevelMedium   ThreatLevel = "medium"
	ThreatLevelHigh     ThreatLevel = "high"
	ThreatLevelCritical ThreatLevel = "critical"
)

// AllThreatLevels returns all valid threat levels in ascending severity
func AllThreatLevels() []ThreatLevel {
	return []ThreatLevel{
		ThreatLevelLow,
		ThreatLevelMedium,
		ThreatLevelHigh,
		ThreatLevelCritical,
	}
}

// IsValid checks if the threat level is valid
func (l ThreatLevel) IsValid() bool {
	switch l {
	case ThreatLevelLow,
		ThreatLevelMedium,
		ThreatLevelHigh,
		ThreatLevelCritical:
		return true
	default:
		return false
	}
}

// Title returns the capitalised label, e.g. "Critical"
func (l ThreatLevel) Title() string {
	if l == "" {
		return ""
	}
	return strings.ToUpper(string(l[:1])) + string(l[1:])
}

// String returns the string representation of the threat level
func (l ThreatLevel) String() string {
	return string(l)
}

// ParseThreatLevel parses a case-insensitive string into a ThreatLevel
func ParseThreatLevel(s string) (ThreatLevel, error) {
	level := ThreatLevel(strings.ToLower(strings.TrimSpace(s)))
	if !level.IsValid() {
		return "", goerr.New("invalid threat level", goerr.V("level", s))
	}
	return level, nil
}
