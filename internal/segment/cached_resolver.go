package segment

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"cart-offer/internal/cache"
)

const cacheKeyPrefix = "segment:"

// CachedResolver is a read-through cache in front of another Resolver.
// Only successful lookups are stored.
type CachedResolver struct {
	next   Resolver
	cache  cache.Cache
	ttl    time.Duration
	logger zerolog.Logger
}

// NewCachedResolver wraps next with c. A zero ttl caches entries indefinitely.
func NewCachedResolver(next Resolver, c cache.Cache, ttl time.Duration, logger zerolog.Logger) *CachedResolver {
	return &CachedResolver{
		next:   next,
		cache:  c,
		ttl:    ttl,
		logger: logger.With().Str("component", "segment-cache").Logger(),
	}
}

// Lookup returns the cached segment or asks the wrapped resolver.
// Cache failures degrade to a direct lookup.
func (r *CachedResolver) Lookup(ctx context.Context, userID int64) (string, error) {
	key := cacheKey(userID)

	cached, err := r.cache.Get(ctx, key)
	switch {
	case err == nil && len(cached) > 0:
		return string(cached), nil
	case err != nil && !errors.Is(err, cache.ErrNotFound):
		r.logger.Warn().Err(err).Str("key", key).Msg("segment cache read failed")
	}

	seg, err := r.next.Lookup(ctx, userID)
	if err != nil {
		return "", err
	}

	if err := r.cache.Set(ctx, key, []byte(seg), r.ttl); err != nil {
		r.logger.Warn().Err(err).Str("key", key).Msg("segment cache write failed")
	}

	return seg, nil
}

func cacheKey(userID int64) string {
	return cacheKeyPrefix + strconv.FormatInt(userID, 10)
}
