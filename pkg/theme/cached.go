package theme

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/tilestack/pkg/cache"
	"github.com/matzehuels/tilestack/pkg/observability"
	"github.com/matzehuels/tilestack/pkg/tileset"
)

// CachedCatalog serves themes from a cache before falling back to the
// wrapped catalog. Cache failures never fail a lookup; the theme is read
// from the wrapped catalog instead.
type CachedCatalog struct {
	inner Catalog
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedCatalog wraps inner with c. A nil cache disables caching.
func NewCachedCatalog(inner Catalog, c cache.Cache, ttl time.Duration) *CachedCatalog {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &CachedCatalog{inner: inner, cache: c, ttl: ttl}
}

// IDs delegates to the wrapped catalog; listings are not cached.
func (c *CachedCatalog) IDs(ctx context.Context) ([]string, error) {
	return c.inner.IDs(ctx)
}

// Theme returns the cached theme for id, loading and storing it on a miss.
func (c *CachedCatalog) Theme(ctx context.Context, id string) (*tileset.Theme, error) {
	key := cache.ThemeKey(id)
	hooks := observability.Cache()

	if data, hit, err := c.cache.Get(ctx, key); err == nil && hit {
		var t tileset.Theme
		if json.Unmarshal(data, &t) == nil {
			hooks.OnCacheHit(ctx, "theme")
			return &t, nil
		}
	}
	hooks.OnCacheMiss(ctx, "theme")

	t, err := c.inner.Theme(ctx, id)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(t); err == nil {
		if c.cache.Set(ctx, key, data, c.ttl) == nil {
			hooks.OnCacheSet(ctx, "theme", len(data))
		}
	}
	return t, nil
}

// Invalidate drops the cached copy of id.
func (c *CachedCatalog) Invalidate(ctx context.Context, id string) error {
	return c.cache.Delete(ctx, cache.ThemeKey(id))
}

var _ Catalog = (*CachedCatalog)(nil)
