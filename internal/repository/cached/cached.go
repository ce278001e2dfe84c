package cached

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ahmedwebmail/online-shop/internal/domain"
	"github.com/ahmedwebmail/online-shop/internal/repository"
)

// Repository decorates a ResourceRepository with a Redis read-through cache
// on slug lookups. Cache failures never fail the request; the call falls
// through to the underlying store.
type Repository[T any, P domain.DocumentPtr[T]] struct {
	inner  repository.ResourceRepository[T, P]
	client *redis.Client
	kind   string
	ttl    time.Duration
	logger *slog.Logger
}

// New wraps inner with slug-keyed caching.
func New[T any, P domain.DocumentPtr[T]](
	inner repository.ResourceRepository[T, P],
	client *redis.Client,
	kind string,
	ttl time.Duration,
	logger *slog.Logger,
) *Repository[T, P] {
	return &Repository[T, P]{
		inner:  inner,
		client: client,
		kind:   kind,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *Repository[T, P]) key(slug string) string {
	return fmt.Sprintf("catalog:%s:slug:%s", r.kind, slug)
}

// Insert delegates to the store. Nothing is cached eagerly.
func (r *Repository[T, P]) Insert(ctx context.Context, doc P) error {
	return r.inner.Insert(ctx, doc)
}

// FindBySlug serves from cache when possible, falling back to the store and
// populating the cache on a hit there.
func (r *Repository[T, P]) FindBySlug(ctx context.Context, slug string) (P, error) {
	data, err := r.client.Get(ctx, r.key(slug)).Bytes()
	if err == nil {
		var doc T
		if unmarshalErr := json.Unmarshal(data, &doc); unmarshalErr == nil {
			return P(&doc), nil
		}
		// Corrupt entry; drop it and fall through.
		r.client.Del(ctx, r.key(slug))
	} else if err != redis.Nil {
		r.logger.WarnContext(ctx, "cache read failed",
			slog.String("kind", r.kind),
			slog.String("slug", slug),
			slog.String("error", err.Error()),
		)
	}

	doc, err := r.inner.FindBySlug(ctx, slug)
	if err != nil {
		return doc, err
	}

	if data, marshalErr := json.Marshal(doc); marshalErr == nil {
		if setErr := r.client.Set(ctx, r.key(slug), data, r.ttl).Err(); setErr != nil {
			r.logger.WarnContext(ctx, "cache write failed",
				slog.String("kind", r.kind),
				slog.String("slug", slug),
				slog.String("error", setErr.Error()),
			)
		}
	}
	return doc, nil
}

// FindAll always hits the store; list results are not cached.
func (r *Repository[T, P]) FindAll(ctx context.Context) ([]T, error) {
	return r.inner.FindAll(ctx)
}

// Rename delegates to the store and invalidates both the old and new slug keys.
func (r *Repository[T, P]) Rename(ctx context.Context, slug, newName, newSlug string) (bool, error) {
	matched, err := r.inner.Rename(ctx, slug, newName, newSlug)
	if err != nil || !matched {
		return matched, err
	}
	r.invalidate(ctx, slug, newSlug)
	return true, nil
}

// DeleteBySlug delegates to the store and invalidates the slug key.
func (r *Repository[T, P]) DeleteBySlug(ctx context.Context, slug string) (bool, error) {
	deleted, err := r.inner.DeleteBySlug(ctx, slug)
	if err != nil || !deleted {
		return deleted, err
	}
	r.invalidate(ctx, slug)
	return true, nil
}

func (r *Repository[T, P]) invalidate(ctx context.Context, slugs ...string) {
	keys := make([]string, len(slugs))
	for i, s := range slugs {
		keys[i] = r.key(s)
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.logger.WarnContext(ctx, "cache invalidation failed",
			slog.String("kind", r.kind),
			slog.String("error", err.Error()),
		)
	}
}
