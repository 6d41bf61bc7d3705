package usecase

import (
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/interfaces"
)

// Sentinel errors for use case layer
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrAlreadyExists = errors.New("already exists")

	// ErrExportDisabled means no report writer was configured
	ErrExportDisabled = errors.New("report export is not configured")
)

// Context keys for error values
const (
	ProfileIDKey    = "profile_id"
	InvestmentIDKey = "investment_id"
	ParameterKey    = "parameter"
	ThreatLevelKey  = "threat_level"
	CriterionKey    = "criterion"
	ReasonKey       = "reason"
)

// repositoryError translates backend sentinels into use case sentinels
func repositoryError(err error, msg string, key string, id any) error {
	switch {
	case errors.Is(err, interfaces.ErrNotFound):
		return goerr.Wrap(ErrNotFound, msg, goerr.V(key, id))
	case errors.Is(err, interfaces.ErrAlreadyExists):
		return goerr.Wrap(ErrAlreadyExists, msg, goerr.V(key, id))
	default:
		return goerr.Wrap(err, msg, goerr.V(key, id))
	}
}

// invalidInput wraps a validation failure so that it matches ErrInvalidInput
func invalidInput(err error, msg string) error {
	return goerr.Wrap(ErrInvalidInput, msg, goerr.V(ReasonKey, err.Error()))
}
