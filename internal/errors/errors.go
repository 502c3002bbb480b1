// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrInvalidOptionType = errors.New("invalid option type")
	ErrConfigInvalid     = errors.New("invalid configuration")
)

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// PremiumRangeError reports an observed premium outside the range attainable
// within the solver's volatility bracket.
type PremiumRangeError struct {
	Observed   float64
	MinPremium float64
	MaxPremium float64
}

func (e *PremiumRangeError) Error() string {
	return fmt.Sprintf("premium %.6f outside attainable range [%.6f, %.6f]", e.Observed, e.MinPremium, e.MaxPremium)
}

// NewPremiumRangeError creates a new PremiumRangeError.
func NewPremiumRangeError(observed, minPremium, maxPremium float64) *PremiumRangeError {
	return &PremiumRangeError{
		Observed:   observed,
		MinPremium: minPremium,
		MaxPremium: maxPremium,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
