package interfaces

import "github.com/m-mizutani/goerr/v2"

// Repository implementations wrap these so that callers can match them with
// errors.Is regardless of the backend.
var (
	ErrNotFound      = goerr.New("record not found")
	ErrAlreadyExists = goerr.New("record already exists")
)
