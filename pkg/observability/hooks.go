// Package observability provides hooks for metrics, tracing, and logging.
//
// Instrumentation is optional and has no backend dependency. Consumers
// register hooks at startup and receive events about recipe generation
// and cache operations.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRecipeHooks(&myRecipeHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Recipe().OnResolveStart(ctx, manifest)
//	// ... run cargo metadata ...
//	observability.Recipe().OnResolveComplete(ctx, manifest, nodes, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Recipe Hooks
// =============================================================================

// RecipeHooks receives events from recipe generation.
type RecipeHooks interface {
	// Resolve events
	OnResolveStart(ctx context.Context, manifest string)
	OnResolveComplete(ctx context.Context, manifest string, nodes int, duration time.Duration, err error)

	// OnClassifyMiss records a package ID the classifier could not handle.
	OnClassifyMiss(ctx context.Context, strategy, id string, err error)

	// OnEmit records the size of an emitted recipe.
	OnEmit(ctx context.Context, crates, git, paths int)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopRecipeHooks is a no-op implementation of RecipeHooks.
type NoopRecipeHooks struct{}

func (NoopRecipeHooks) OnResolveStart(context.Context, string) {}
func (NoopRecipeHooks) OnResolveComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopRecipeHooks) OnClassifyMiss(context.Context, string, string, error) {}
func (NoopRecipeHooks) OnEmit(context.Context, int, int, int)                 {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	recipeHooks RecipeHooks = NoopRecipeHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetRecipeHooks registers custom recipe hooks.
// Call once at startup before generating any recipe.
func SetRecipeHooks(h RecipeHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		recipeHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// Call once at startup before any cache operation.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Recipe returns the registered recipe hooks.
func Recipe() RecipeHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return recipeHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// Mostly useful in tests.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	recipeHooks = NoopRecipeHooks{}
	cacheHooks = NoopCacheHooks{}
}
