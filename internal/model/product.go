package model

import (
	"errors"
	"time"

	"github.com/deppfellow/go-catalog/internal/validation"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ErrProductNotFound is returned by stores and services when the requested
// product id does not exist.
var ErrProductNotFound = errors.New("product not found")

// Product is the read model of a catalog item.
//
// Example JSON:
//
//	{"id":"7","name":"Widget","description":"","price":"9.99", ...}
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CreateProductModel is the body of POST /items.
type CreateProductModel struct {
	Name        string          `json:"name" validate:"required,max=255"`
	Description string          `json:"description" validate:"max=2000"`
	Price       decimal.Decimal `json:"price"`
}

// Validate implements validation.Validatable.
func (m CreateProductModel) Validate() error {
	return validatePayload(m, m.Price)
}

// UpdateProductModel is the body of PUT /items/:id. It replaces every
// mutable field of the product.
type UpdateProductModel struct {
	Name        string          `json:"name" validate:"required,max=255"`
	Description string          `json:"description" validate:"max=2000"`
	Price       decimal.Decimal `json:"price"`
}

// Validate runs tag validation and the price rule.
func (m UpdateProductModel) Validate() error {
	return validatePayload(m, m.Price)
}

var validate = validator.New()

func validatePayload(payload any, price decimal.Decimal) error {
	if err := validate.Struct(payload); err != nil {
		return err
	}
	if price.IsNegative() {
		return validation.CustomValidationErrors{
			{Field: "price", Message: "must be zero or positive"},
		}
	}
	return nil
}
