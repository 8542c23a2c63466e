package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator for struct validation with
// readable error formatting.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator instance.
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate performs validation on the provided struct and returns any
// validation errors.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return NewValidationError(validationErrors)
	}
	// Non-struct inputs and other invalid uses
	return err
}

// ValidationError wraps field-level validation failures with better messages.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
	Value   any
}

// NewValidationError converts validator.ValidationErrors into a ValidationError.
func NewValidationError(errs validator.ValidationErrors) *ValidationError {
	fieldErrors := make([]FieldError, 0, len(errs))
	for _, fe := range errs {
		fieldErrors = append(fieldErrors, FieldError{
			Field:   fe.Field(),
			Message: messageForTag(fe),
			Value:   fe.Value(),
		})
	}
	return &ValidationError{Errors: fieldErrors}
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "ip":
		return "must be a valid IP address"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
