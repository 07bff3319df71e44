package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/deppfellow/go-catalog/internal/model"
	pkgerrors "github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	productKeyPrefix = "catalog:product:"
	productListKey   = "catalog:products"
	generationKey    = "catalog:products:generation"
)

// ProductCache keeps JSON copies of products in Redis for the query side.
//
// Every Invalidate bumps a generation counter. A reader takes the
// generation before loading from the store and passes it to Set/SetAll;
// the write is dropped when the generation moved in between, so a row
// read before a concurrent update never outlives that update's
// invalidation.
//
// A nil *ProductCache, a nil client or a zero TTL turns every method into
// a miss / no-op so the query service can run without Redis.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

// ErrStaleCacheWrite reports a cache write skipped because the products
// were invalidated after the value was read from the store.
var ErrStaleCacheWrite = errors.New("product cache: stale write skipped")

func NewProductCache(client *redis.Client, ttl time.Duration) *ProductCache {
	return &ProductCache{client: client, ttl: ttl}
}

func (c *ProductCache) enabled() bool {
	return c != nil && c.client != nil && c.ttl > 0
}

// Get returns (nil, false, nil) on a cache miss.
func (c *ProductCache) Get(ctx context.Context, id string) (*model.Product, bool, error) {
	var p model.Product
	ok, err := c.get(ctx, productKeyPrefix+id, &p)
	if !ok || err != nil {
		return nil, false, err
	}
	return &p, true, nil
}

// Generation returns the current invalidation generation.
func (c *ProductCache) Generation(ctx context.Context) (int64, error) {
	if !c.enabled() {
		return 0, nil
	}

	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, pkgerrors.Wrap(err, "read cache generation")
	}
	return gen, nil
}

// Set caches p unless the generation is no longer gen.
func (c *ProductCache) Set(ctx context.Context, p *model.Product, gen int64) error {
	return c.set(ctx, productKeyPrefix+p.ID, p, gen)
}

func (c *ProductCache) GetAll(ctx context.Context) ([]model.Product, bool, error) {
	var products []model.Product
	ok, err := c.get(ctx, productListKey, &products)
	if !ok || err != nil {
		return nil, false, err
	}
	return products, true, nil
}

func (c *ProductCache) SetAll(ctx context.Context, products []model.Product, gen int64) error {
	return c.set(ctx, productListKey, products, gen)
}

// Invalidate bumps the generation and drops the entry for id and the
// cached list in one transaction.
func (c *ProductCache) Invalidate(ctx context.Context, id string) error {
	if !c.enabled() {
		return nil
	}

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey)
		pipe.Del(ctx, productKeyPrefix+id, productListKey)
		return nil
	})
	if err != nil {
		return pkgerrors.Wrap(err, "invalidate product cache")
	}
	return nil
}

func (c *ProductCache) get(ctx context.Context, key string, dst any) (bool, error) {
	if !c.enabled() {
		return false, nil
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, pkgerrors.Wrapf(err, "read cache key %s", key)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return false, pkgerrors.Wrapf(err, "decode cache key %s", key)
	}
	return true, nil
}

// set writes value under key inside WATCH on the generation key, so an
// Invalidate racing with this write aborts it.
func (c *ProductCache) set(ctx context.Context, key string, value any, gen int64) error {
	if !c.enabled() {
		return nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return pkgerrors.Wrapf(err, "encode cache key %s", key)
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, generationKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != gen {
			return ErrStaleCacheWrite
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, raw, c.ttl)
			return nil
		})
		return err
	}, generationKey)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrStaleCacheWrite), errors.Is(err, redis.TxFailedErr):
		return ErrStaleCacheWrite
	default:
		return pkgerrors.Wrapf(err, "write cache key %s", key)
	}
}
