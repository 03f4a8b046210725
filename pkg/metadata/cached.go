package metadata

import (
	"context"
	"os"

	json "github.com/goccy/go-json"

	"github.com/matzehuels/cargorecipe/pkg/cache"
	"github.com/matzehuels/cargorecipe/pkg/manifest"
)

// Cached wraps a Resolver with a cache.
type Cached struct {
	Resolver Resolver
	Cache    cache.Cache
	Keyer    cache.Keyer
}

// NewCached wraps r. A nil cache disables caching and a nil keyer means
// [cache.DefaultKeyer].
func NewCached(r Resolver, c cache.Cache, k cache.Keyer) *Cached {
	if c == nil {
		c = cache.NewNullCache()
	}
	if k == nil {
		k = cache.NewDefaultKeyer()
	}
	return &Cached{Resolver: r, Cache: c, Keyer: k}
}

// Resolve implements Resolver.
func (c *Cached) Resolve(ctx context.Context, req Request) (*Graph, error) {
	g, _, err := c.ResolveWithCacheInfo(ctx, req)
	return g, err
}

// ResolveWithCacheInfo resolves req and reports whether the result came from
// the cache. Workspaces without a Cargo.lock are never cached.
func (c *Cached) ResolveWithCacheInfo(ctx context.Context, req Request) (*Graph, bool, error) {
	key, ok := c.key(req)

	if ok && !req.Refresh {
		if data, hit, err := c.Cache.Get(ctx, key); err == nil && hit {
			var g Graph
			if err := json.Unmarshal(data, &g); err == nil {
				return &g, true, nil
			}
		}
	}

	g, err := c.Resolver.Resolve(ctx, req)
	if err != nil {
		return nil, false, err
	}

	if ok {
		if data, err := json.Marshal(g); err == nil {
			_ = c.Cache.Set(ctx, key, data, cache.DefaultTTL)
		}
	}
	return g, false, nil
}

// key returns the cache key for req, or false when the workspace has no
// lock file or its manifest can't be read.
func (c *Cached) key(req Request) (string, bool) {
	manifestData, err := os.ReadFile(req.ManifestPath)
	if err != nil {
		return "", false
	}
	lock, err := os.ReadFile(manifest.LockPath(req.ManifestPath))
	if err != nil {
		return "", false
	}
	return c.Keyer.MetadataKey(cache.MetadataKeyOpts{
		ManifestPath: req.ManifestPath,
		ManifestHash: cache.Hash(manifestData),
		LockHash:     cache.Hash(lock),
		AllFeatures:  req.AllFeatures,
		ToolVersion:  req.ToolVersion,
	}), true
}

var _ Resolver = (*Cached)(nil)
