// Package service contains the two CQRS capabilities.
//
// Queries is the read side and Commands is the write side. The HTTP
// handlers only know these interfaces; ProductQueries and
// ProductCommands are the implementations backed by the repositories.
package service

import (
	"context"

	"github.com/deppfellow/go-catalog/internal/model"
	"github.com/rs/zerolog"
)

// Queries reads products.
type Queries interface {
	AllProducts(ctx context.Context) ([]model.Product, error)
	ProductByID(ctx context.Context, id string) (*model.Product, error)
}

// Commands mutates products.
type Commands interface {
	CreateProduct(ctx context.Context, payload model.CreateProductModel) (*model.Product, error)
	UpdateProduct(ctx context.Context, id string, payload model.UpdateProductModel) (*model.Product, error)
	DeleteProductByID(ctx context.Context, id string) (DeleteResult, error)
}

// DeleteResult is the outcome of a delete that did not fail.
type DeleteResult int

const (
	// DeleteResultUnknown is the zero value and is never returned with a nil error.
	DeleteResultUnknown DeleteResult = iota
	// DeleteResultDeleted means the product existed and was removed.
	DeleteResultDeleted
	// DeleteResultNotFound means no product had the id.
	DeleteResultNotFound
)

func (r DeleteResult) String() string {
	switch r {
	case DeleteResultDeleted:
		return "deleted"
	case DeleteResultNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// loggerFor prefers the request-scoped logger stored in ctx by the HTTP
// middleware and falls back to the service logger.
func loggerFor(ctx context.Context, fallback *zerolog.Logger) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return fallback
}
