package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is returned when the schema itself is missing or is not a mapping.
	// It is never aggregated with per-variable failures.
	//nolint:staticcheck // message is part of the public contract.
	ErrInvalidConfig = errors.New("Invalid configuration object")

	// ErrConfigNotFound is returned by Load when the schema file does not exist.
	ErrConfigNotFound = errors.New("config file not found")
)

// FieldError represents a single variable validation failure.
type FieldError struct {
	Key    string // Variable name
	Reason string // Human-readable reason for failure
}

// missingReason marks presence failures, which render without the colon.
const missingReason = "is required"

func (e *FieldError) Error() string {
	if e.Reason == missingReason {
		return fmt.Sprintf("%s %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Key, e.Reason)
}

// Missing reports whether the variable failed because it was absent.
func (e *FieldError) Missing() bool {
	return e.Reason == missingReason
}

// ValidationError aggregates every variable failure of a single validation pass,
// in schema declaration order.
type ValidationError struct {
	Fields []*FieldError
}

// Error returns the primary message so the error reads well on a single line.
func (e *ValidationError) Error() string {
	return e.Primary()
}

// Primary returns the first failure message.
func (e *ValidationError) Primary() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return e.Fields[0].Error()
}

// Errors returns every failure message in order.
func (e *ValidationError) Errors() []string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Error()
	}
	return msgs
}

// Unwrap exposes the individual field errors to errors.Is and errors.As.
func (e *ValidationError) Unwrap() []error {
	errs := make([]error, len(e.Fields))
	for i, f := range e.Fields {
		errs[i] = f
	}
	return errs
}

// ValidationErrors returns all failure messages if err is (or wraps) a *ValidationError.
// Otherwise returns nil.
func ValidationErrors(err error) []string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Errors()
	}
	return nil
}
