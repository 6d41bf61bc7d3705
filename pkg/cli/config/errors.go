package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrWorkbookNotFound      = goerr.New("workbook file not found")
	ErrInvalidWorkbook       = goerr.New("invalid workbook")
	ErrDuplicateProfileID    = goerr.New("duplicate profile ID")
	ErrDuplicateInvestmentID = goerr.New("duplicate investment ID")
	ErrInvalidSimulation     = goerr.New("invalid simulation settings")
	ErrInvalidBackend        = goerr.New("invalid repository backend")
	ErrMissingProjectID      = goerr.New("firestore project ID is required")
	ErrInvalidLogLevel       = goerr.New("invalid log level")
	ErrInvalidLogFormat      = goerr.New("invalid log format")
)

// Context keys for error values
const (
	WorkbookPathKey = "workbook_path"
	ProfileIDKey    = "profile_id"
	InvestmentIDKey = "investment_id"
	ProfileIndexKey = "profile_index"
	InvestIndexKey  = "investment_index"
	BackendKey      = "backend"
)
