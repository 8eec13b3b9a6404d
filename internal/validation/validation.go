package validation

import (
	"fmt"
	"strings"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Required checks that value is not blank
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return ValidationError{Field: field, Message: field + " is required"}
	}
	return nil
}

// ValidateProblemID checks that an attempt names the problem it belongs to
func ValidateProblemID(problemID string) error {
	return Required("problem_id", problemID)
}

// ValidateMinutes checks that a duration in minutes is not negative
func ValidateMinutes(field string, minutes int) error {
	if minutes < 0 {
		return ValidationError{Field: field, Message: "must not be negative"}
	}
	return nil
}

// OneOf checks that value is one of allowed
func OneOf(field, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return ValidationError{
		Field:   field,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
	}
}

// First returns the first non-nil error
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
