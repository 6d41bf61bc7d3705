package model

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
)

// ProfileID identifies a RiskProfile. Workbook profiles use slugs, profiles
// created through the API get a UUID.
type ProfileID string

// NewProfileID generates a new UUID v4 ProfileID
func NewProfileID() ProfileID {
	return ProfileID(uuid.New().String())
}

// RiskProfile is the unit of analysis for the simulation and ROI engines.
// Descriptive fields are carried through but never read by the numeric code.
type RiskProfile struct {
	ID            ProfileID        `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description,omitempty"`
	Category      types.CategoryID `json:"category,omitempty"`
	Probability   float64          `json:"probability"`
	Impact        float64          `json:"impact"`
	RiskScore     float64          `json:"riskScore"`
	ThreatActor   string           `json:"threatActor,omitempty"`
	Vulnerability string           `json:"vulnerability,omitempty"`
	BusinessUnit  string           `json:"businessUnit,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// ExpectedLoss returns probability x impact
func (p *RiskProfile) ExpectedLoss() float64 {
	return p.Probability * p.Impact
}

// Clone returns a copy of the profile. Derived profiles are always built from
// a clone so that the caller's profile is never mutated.
func (p *RiskProfile) Clone() *RiskProfile {
	if p == nil {
		return nil
	}
	copied := *p
	return &copied
}

// Validate checks the profile at the application boundary. The engines do
// not call it; they clamp instead.
func (p *RiskProfile) Validate() error {
	if p.Name == "" {
		return goerr.Wrap(ErrMissingRequired, "profile name is required",
			goerr.V(ProfileIDKey, p.ID), goerr.V(FieldNameKey, "name"))
	}
	if err := p.Category.Validate(); err != nil {
		return goerr.Wrap(ErrInvalidProfile, "invalid category",
			goerr.V(ProfileIDKey, p.ID), goerr.V(FieldValueKey, p.Category))
	}
	if !isFinite(p.Probability) || p.Probability < 0 || p.Probability > 1 {
		return goerr.Wrap(ErrOutOfRange, "probability must be between 0 and 1",
			goerr.V(ProfileIDKey, p.ID), goerr.V(FieldNameKey, "probability"), goerr.V(FieldValueKey, p.Probability))
	}
	if !isFinite(p.Impact) || p.Impact < 0 {
		return goerr.Wrap(ErrOutOfRange, "impact must be a non-negative amount",
			goerr.V(ProfileIDKey, p.ID), goerr.V(FieldNameKey, "impact"), goerr.V(FieldValueKey, p.Impact))
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
