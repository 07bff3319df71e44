package validation

import (
	"errors"
	"testing"

	"github.com/deppfellow/go-catalog/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `validate:"required"`
	Code  string `validate:"min=3"`
	Count int    `validate:"max=10"`
	Kind  string `validate:"oneof=a b"`
}

func (p payload) Validate() error {
	return validator.New().Struct(p)
}

type validateFunc func() error

func (f validateFunc) Validate() error { return f() }

func TestCheckTagErrors(t *testing.T) {
	err := Check(payload{Code: "ab", Count: 11, Kind: "c"})

	var validationErr *Error
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Validation failed", validationErr.Message)
	assert.ElementsMatch(t, []errs.FieldError{
		{Field: "name", Error: "is required"},
		{Field: "code", Error: "must be at least 3 characters"},
		{Field: "count", Error: "must not exceed 10"},
		{Field: "kind", Error: "must be one of: a b"},
	}, validationErr.Fields)
	assert.Contains(t, err.Error(), "name is required")
}

func TestCheckValid(t *testing.T) {
	assert.NoError(t, Check(payload{Name: "x", Code: "abc", Count: 1, Kind: "a"}))
}

func TestCheckCustomErrors(t *testing.T) {
	err := Check(validateFunc(func() error {
		return CustomValidationErrors{{Field: "price", Message: "must be zero or positive"}}
	}))

	var validationErr *Error
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []errs.FieldError{{Field: "price", Error: "must be zero or positive"}}, validationErr.Fields)
}

func TestCheckOtherError(t *testing.T) {
	err := Check(validateFunc(func() error { return errors.New("boom") }))

	var validationErr *Error
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "boom", err.Error())
	assert.Empty(t, validationErr.Fields)
}
