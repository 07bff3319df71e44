package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/deppfellow/go-catalog/internal/errs"
	"github.com/go-playground/validator/v10"
)

// Validatable is implemented by payload types that know how to validate themselves.
//
// Typical pattern:
// - Define a payload struct with validator tags (`validate:"required,max=255"`)
// - Implement Validate() error that runs validator.Struct(payload)
// - Return validator.ValidationErrors (or CustomValidationErrors for custom cases)
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue for a specific field.
// This is used for rules that cannot be expressed via validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// Error is returned by Check when a payload is invalid.
type Error struct {
	Message string
	Fields  []errs.FieldError
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}

	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Error)
	}
	return e.Message + ": " + strings.Join(parts, "; ")
}

// Check validates v and returns *Error describing every failed field,
// or nil when v is valid.
func Check(v Validatable) error {
	err := v.Validate()
	if err == nil {
		return nil
	}

	msg, fieldErrors := extractValidationError(err)
	return &Error{Message: msg, Fields: fieldErrors}
}

const failedMessage = "Validation failed"

func extractValidationError(err error) (string, []errs.FieldError) {
	var custom CustomValidationErrors
	if errors.As(err, &custom) {
		fields := make([]errs.FieldError, 0, len(custom))
		for _, c := range custom {
			fields = append(fields, errs.FieldError{Field: c.Field, Error: c.Message})
		}
		return failedMessage, fields
	}

	var tagErrors validator.ValidationErrors
	if !errors.As(err, &tagErrors) {
		return err.Error(), nil
	}

	fields := make([]errs.FieldError, 0, len(tagErrors))
	for _, fe := range tagErrors {
		fields = append(fields, errs.FieldError{
			Field: strings.ToLower(fe.Field()),
			Error: fieldMessage(fe),
		})
	}
	return failedMessage, fields
}

// fieldMessage renders one failed tag. min and max count characters for
// strings and compare values otherwise.
func fieldMessage(fe validator.FieldError) string {
	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters"
	}

	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param() + unit
	case "max":
		return "must not exceed " + fe.Param() + unit
	case "oneof":
		return "must be one of: " + fe.Param()
	case "uuid":
		return "must be a valid UUID"
	case "hostname_port":
		return "must be a host:port address"
	}

	if fe.Param() != "" {
		return fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param())
	}
	return "failed " + fe.Tag()
}
