package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/go-catalog/internal/model"
	"github.com/deppfellow/go-catalog/internal/repository"
	"github.com/rs/zerolog"
)

// ProductReader is the read side of the product store.
type ProductReader interface {
	List(ctx context.Context) ([]model.Product, error)
	GetByID(ctx context.Context, id string) (*model.Product, error)
}

// ReadCache is a read-through cache in front of ProductReader.
//
// Generation is read before the store is queried and handed back to
// Set/SetAll, which skip the write when an invalidation happened in
// between.
type ReadCache interface {
	Get(ctx context.Context, id string) (*model.Product, bool, error)
	Set(ctx context.Context, p *model.Product, gen int64) error
	GetAll(ctx context.Context) ([]model.Product, bool, error)
	SetAll(ctx context.Context, products []model.Product, gen int64) error
	Generation(ctx context.Context) (int64, error)
}

// ProductQueries implements Queries.
//
// Cache failures are logged and never fail a query.
type ProductQueries struct {
	store  ProductReader
	cache  ReadCache
	logger *zerolog.Logger
}

func NewProductQueries(store ProductReader, cache ReadCache, logger *zerolog.Logger) *ProductQueries {
	return &ProductQueries{store: store, cache: cache, logger: logger}
}

func (q *ProductQueries) AllProducts(ctx context.Context) ([]model.Product, error) {
	if products, ok, err := q.cache.GetAll(ctx); err != nil {
		loggerFor(ctx, q.logger).Warn().Err(err).Msg("product list cache read failed")
	} else if ok {
		return products, nil
	}

	gen, genErr := q.cache.Generation(ctx)

	products, err := q.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	if genErr != nil {
		loggerFor(ctx, q.logger).Warn().Err(genErr).Msg("product cache generation read failed")
		return products, nil
	}
	q.logCacheWrite(ctx, q.cache.SetAll(ctx, products, gen), "")
	return products, nil
}

func (q *ProductQueries) ProductByID(ctx context.Context, id string) (*model.Product, error) {
	if product, ok, err := q.cache.Get(ctx, id); err != nil {
		loggerFor(ctx, q.logger).Warn().Err(err).Str("product_id", id).Msg("product cache read failed")
	} else if ok {
		return product, nil
	}

	gen, genErr := q.cache.Generation(ctx)

	product, err := q.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}

	if genErr != nil {
		loggerFor(ctx, q.logger).Warn().Err(genErr).Str("product_id", id).Msg("product cache generation read failed")
		return product, nil
	}
	q.logCacheWrite(ctx, q.cache.Set(ctx, product, gen), id)
	return product, nil
}

func (q *ProductQueries) logCacheWrite(ctx context.Context, err error, id string) {
	if err == nil {
		return
	}

	logger := loggerFor(ctx, q.logger)
	event := logger.Warn()
	if errors.Is(err, repository.ErrStaleCacheWrite) {
		event = logger.Debug()
	}
	if id != "" {
		event = event.Str("product_id", id)
	}
	event.Err(err).Msg("product cache write skipped")
}
