package model

import "github.com/m-mizutani/goerr/v2"

// Validation errors
var (
	ErrInvalidProfile    = goerr.New("invalid risk profile")
	ErrInvalidInvestment = goerr.New("invalid security investment")
	ErrMissingRequired   = goerr.New("required field is missing")
	ErrOutOfRange        = goerr.New("value is out of range")
)

// Context keys for error values
const (
	ProfileIDKey    = "profile_id"
	InvestmentIDKey = "investment_id"
	FieldNameKey    = "field"
	FieldValueKey   = "value"
)
