package product

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "product:"

// CachedRepository is a read-through Redis cache in front of another
// Repository. Only single-product lookups are cached; writes invalidate.
// Redis failures are logged and the call falls through to the backing store.
type CachedRepository struct {
	next   Repository
	client redis.Cmdable
	ttl    time.Duration
	log    *slog.Logger
}

func NewCachedRepository(next Repository, client redis.Cmdable, ttl time.Duration, log *slog.Logger) *CachedRepository {
	if log == nil {
		log = slog.Default()
	}
	return &CachedRepository{next: next, client: client, ttl: ttl, log: log}
}

func (r *CachedRepository) List(ctx context.Context) ([]Product, error) {
	return r.next.List(ctx)
}

func (r *CachedRepository) GetByID(ctx context.Context, id string) (Product, error) {
	key := cacheKeyPrefix + id

	b, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var p Product
		if uerr := json.Unmarshal(b, &p); uerr == nil {
			return p, nil
		}
		r.log.Warn("product cache entry unreadable", slog.String("key", key))
	case !errors.Is(err, redis.Nil):
		r.log.Warn("product cache get failed", slog.String("key", key), slog.Any("err", err))
	}

	p, err := r.next.GetByID(ctx, id)
	if err != nil {
		return Product{}, err
	}

	if b, err := json.Marshal(p); err == nil {
		if err := r.client.Set(ctx, key, b, r.ttl).Err(); err != nil {
			r.log.Warn("product cache set failed", slog.String("key", key), slog.Any("err", err))
		}
	}
	return p, nil
}

func (r *CachedRepository) Count(ctx context.Context) (int, error) {
	return r.next.Count(ctx)
}

func (r *CachedRepository) BulkInsert(ctx context.Context, products []Product) (int, error) {
	n, err := r.next.BulkInsert(ctx, products)
	if err != nil {
		return 0, err
	}
	keys := make([]string, 0, len(products))
	for _, p := range products {
		keys = append(keys, cacheKeyPrefix+p.ID)
	}
	r.invalidate(ctx, keys...)
	return n, nil
}

func (r *CachedRepository) Delete(ctx context.Context, id string) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, cacheKeyPrefix+id)
	return nil
}

func (r *CachedRepository) invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.log.Warn("product cache invalidate failed", slog.Int("keys", len(keys)), slog.Any("err", err))
	}
}
