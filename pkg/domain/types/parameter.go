package types

import "github.com/m-mizutani/goerr/v2"

// Parameter names a risk profile field that what-if and sensitivity analysis can override
type Parameter string

const (
	ParameterProbability Parameter = "probability"
	ParameterImpact      Parameter = "impact"
)

// IsValid checks if the parameter is valid
func (p Parameter) IsValid() bool {
	switch p {
	case ParameterProbability, ParameterImpact:
		return true
	default:
		return false
	}
}

// String returns the string representation of the parameter
func (p Parameter) String() string {
	return string(p)
}

// ParseParameter parses a string into a Parameter
func ParseParameter(s string) (Parameter, error) {
	p := Parameter(s)
	if !p.IsValid() {
		return "", goerr.New("invalid parameter", goerr.V("parameter", s))
	}
	return p, nil
}
