package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/deppfellow/go-catalog/internal/lib/job"
	"github.com/deppfellow/go-catalog/internal/model"
	"github.com/deppfellow/go-catalog/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ProductWriter is the write side of the product store.
type ProductWriter interface {
	Insert(ctx context.Context, p model.Product) (*model.Product, error)
	Update(ctx context.Context, p model.Product) (*model.Product, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// CacheInvalidator drops stale read-side cache entries.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, id string) error
}

// EventPublisher announces committed product changes.
type EventPublisher interface {
	PublishProductChanged(ctx context.Context, p job.ProductChangedPayload) error
}

// ProductCommands implements Commands.
//
// After a successful write the cached copy is invalidated and a
// product:changed event is published. Both are best effort: the write
// has already been committed, so their failures are only logged.
type ProductCommands struct {
	store  ProductWriter
	cache  CacheInvalidator
	events EventPublisher
	logger *zerolog.Logger

	now   func() time.Time
	newID func() string
}

func NewProductCommands(store ProductWriter, cache CacheInvalidator, events EventPublisher, logger *zerolog.Logger) *ProductCommands {
	return &ProductCommands{
		store:  store,
		cache:  cache,
		events: events,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  func() string { return uuid.NewString() },
	}
}

func (c *ProductCommands) CreateProduct(ctx context.Context, payload model.CreateProductModel) (*model.Product, error) {
	if err := validation.Check(payload); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	now := c.now()
	product, err := c.store.Insert(ctx, model.Product{
		ID:          c.newID(),
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	c.afterWrite(ctx, product.ID, job.ChangeCreated)
	return product, nil
}

func (c *ProductCommands) UpdateProduct(ctx context.Context, id string, payload model.UpdateProductModel) (*model.Product, error) {
	if err := validation.Check(payload); err != nil {
		return nil, fmt.Errorf("update product %s: %w", id, err)
	}

	product, err := c.store.Update(ctx, model.Product{
		ID:          id,
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		UpdatedAt:   c.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("update product %s: %w", id, err)
	}

	c.afterWrite(ctx, product.ID, job.ChangeUpdated)
	return product, nil
}

func (c *ProductCommands) DeleteProductByID(ctx context.Context, id string) (DeleteResult, error) {
	deleted, err := c.store.Delete(ctx, id)
	if errors.Is(err, model.ErrProductNotFound) {
		return DeleteResultNotFound, nil
	}
	if err != nil {
		return DeleteResultUnknown, fmt.Errorf("delete product %s: %w", id, err)
	}
	if !deleted {
		return DeleteResultNotFound, nil
	}

	c.afterWrite(ctx, id, job.ChangeDeleted)
	return DeleteResultDeleted, nil
}

func (c *ProductCommands) afterWrite(ctx context.Context, id string, kind job.ChangeKind) {
	logger := loggerFor(ctx, c.logger).With().Str("product_id", id).Str("kind", string(kind)).Logger()

	if err := c.cache.Invalidate(ctx, id); err != nil {
		logger.Warn().Err(err).Msg("product cache invalidation failed")
	}

	if c.events == nil {
		return
	}
	err := c.events.PublishProductChanged(ctx, job.ProductChangedPayload{
		ProductID:  id,
		Kind:       kind,
		OccurredAt: c.now(),
	})
	if err != nil {
		logger.Warn().Err(err).Msg("publishing product change failed")
	}
}
