package geocode

import (
	"context"
	"log"
	"strings"
	"time"
)

type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// CachingGeocoder memoizes successful resolutions so repeated postings for
// the same city skip the provider. Failures are never cached.
type CachingGeocoder struct {
	inner  Geocoder
	cache  Cache
	ttl    time.Duration
	logger *log.Logger
}

func NewCachingGeocoder(inner Geocoder, cache Cache, ttl time.Duration, logger *log.Logger) *CachingGeocoder {
	return &CachingGeocoder{inner: inner, cache: cache, ttl: ttl, logger: logger}
}

func (g *CachingGeocoder) Resolve(ctx context.Context, cityText string) (Result, error) {
	if g == nil || g.inner == nil {
		return Result{}, ErrUnavailable
	}

	key := cacheKey(cityText)
	if g.cache != nil {
		var cached Result
		hit, err := g.cache.GetJSON(ctx, key, &cached)
		if err == nil && hit {
			if g.logger != nil {
				g.logger.Printf("[Geocode] cache HIT key=%s", key)
			}
			return cached, nil
		}
	}

	res, err := g.inner.Resolve(ctx, cityText)
	if err != nil {
		return Result{}, err
	}

	if g.cache != nil {
		_ = g.cache.SetJSON(ctx, key, res, g.ttl)
	}
	return res, nil
}

func cacheKey(cityText string) string {
	return "geocode:" + strings.ToLower(strings.TrimSpace(cityText))
}

var _ Geocoder = (*CachingGeocoder)(nil)
