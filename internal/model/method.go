package model

import "fmt"

// Method identifies the regression method used for the local conic fit.
//
// Design decision: We use a string-typed enum rather than iota constants
// because the method name travels through CLI flags, YAML config, and JSON
// reports; a self-describing string avoids a mapping layer at each boundary.
type Method string

const (
	// MethodOLS is the ordinary least squares fit with the closed-form
	// normal-equations solve and the residual-variance covariance.
	MethodOLS Method = "ols"

	// MethodRobust is iteratively reweighted least squares with the Tukey
	// biweight bounded-influence weight function. It resists gross head
	// outliers (miscoded wells, transcription errors) that would drag an
	// ordinary fit.
	MethodRobust Method = "robust"
)

// ParseMethod converts a method name to a Method.
// It returns ErrUnknownMethod wrapped with the offending name, so the
// failure happens at the configuration boundary before any computation.
func ParseMethod(name string) (Method, error) {
	switch Method(name) {
	case MethodOLS, MethodRobust:
		return Method(name), nil
	default:
		return "", fmt.Errorf("%w: %q (supported: %s, %s)", ErrUnknownMethod, name, MethodOLS, MethodRobust)
	}
}

// String returns the method name.
func (m Method) String() string { return string(m) }
