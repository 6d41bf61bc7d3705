package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// InvestmentID identifies a SecurityInvestment
type InvestmentID string

// NewInvestmentID generates a new UUID v4 InvestmentID
func NewInvestmentID() InvestmentID {
	return InvestmentID(uuid.New().String())
}

// SecurityInvestment is a candidate control evaluated against a risk profile
type SecurityInvestment struct {
	ID   InvestmentID `json:"id"`
	Name string       `json:"name"`
	// Cost is the annual monetary outlay
	Cost float64 `json:"cost"`
	// Effectiveness is the fractional probability reduction, 0..1
	Effectiveness float64 `json:"effectiveness"`
	// ImplementationTime in months, informational only
	ImplementationTime float64 `json:"implementationTime"`
	// Lifecycle in years over which cost and benefit are amortised
	Lifecycle float64   `json:"lifecycle"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TotalCost returns cost x lifecycle
func (i *SecurityInvestment) TotalCost() float64 {
	return i.Cost * i.Lifecycle
}

// Clone returns a copy of the investment
func (i *SecurityInvestment) Clone() *SecurityInvestment {
	if i == nil {
		return nil
	}
	copied := *i
	return &copied
}

// Validate checks the investment at the application boundary. A zero total
// cost is rejected here because it makes the ROI percentage non-finite.
func (i *SecurityInvestment) Validate() error {
	if i.Name == "" {
		return goerr.Wrap(ErrMissingRequired, "investment name is required",
			goerr.V(InvestmentIDKey, i.ID), goerr.V(FieldNameKey, "name"))
	}
	if !isFinite(i.Cost) || i.Cost < 0 {
		return goerr.Wrap(ErrOutOfRange, "cost must be a non-negative amount",
			goerr.V(InvestmentIDKey, i.ID), goerr.V(FieldNameKey, "cost"), goerr.V(FieldValueKey, i.Cost))
	}
	if !isFinite(i.Effectiveness) || i.Effectiveness < 0 || i.Effectiveness > 1 {
		return goerr.Wrap(ErrOutOfRange, "effectiveness must be between 0 and 1",
			goerr.V(InvestmentIDKey, i.ID), goerr.V(FieldNameKey, "effectiveness"), goerr.V(FieldValueKey, i.Effectiveness))
	}
	if !isFinite(i.ImplementationTime) || i.ImplementationTime < 0 {
		return goerr.Wrap(ErrOutOfRange, "implementation time must not be negative",
			goerr.V(InvestmentIDKey, i.ID), goerr.V(FieldNameKey, "implementationTime"), goerr.V(FieldValueKey, i.ImplementationTime))
	}
	if !isFinite(i.Lifecycle) || i.Lifecycle <= 0 {
		return goerr.Wrap(ErrOutOfRange, "lifecycle must be positive",
			goerr.V(InvestmentIDKey, i.ID), goerr.V(FieldNameKey, "lifecycle"), goerr.V(FieldValueKey, i.Lifecycle))
	}
	if i.TotalCost() <= 0 {
		return goerr.Wrap(ErrInvalidInvestment, "total cost over the lifecycle must be positive",
			goerr.V(InvestmentIDKey, i.ID), goerr.V(FieldValueKey, i.TotalCost()))
	}
	return nil
}
