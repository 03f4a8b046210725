package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cargorecipe/pkg/cache"
	"github.com/matzehuels/cargorecipe/pkg/manifest"
	"github.com/matzehuels/cargorecipe/pkg/metadata"
	"github.com/matzehuels/cargorecipe/pkg/observability"
	"github.com/matzehuels/cargorecipe/pkg/pkgid"
	"github.com/matzehuels/cargorecipe/pkg/recipe"
)

// Runner executes runs with caching.
//
// The Runner holds no per-run state, so one Runner can serve several runs.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Commands runs cargo. Nil means metadata.ExecRunner.
	Commands metadata.CommandRunner

	// Cargo is the cargo binary. Empty means $CARGO or "cargo".
	Cargo string
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Run generates the descriptor collection for opts.ManifestPath.
// Classification misses are recorded in the result; every other failure is
// returned as an error.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	m, err := manifest.Load(opts.ManifestPath)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("loaded manifest", "path", m.Path, "package", m.Package.Name, "workspace", m.IsWorkspace())

	result := &Result{}
	c := r.Cache
	specCapable := false
	if opts.Strategy.NeedsDetection() || !isNull(c) {
		v, err := metadata.DetectVersion(ctx, r.commands(), r.cargo())
		switch {
		case err == nil:
			result.CargoVersion = v.String()
			specCapable = metadata.SupportsPackageIDSpec(v)
			r.Logger.Debug("detected cargo", "version", result.CargoVersion, "package_id_spec", specCapable)
		case opts.Strategy.NeedsDetection():
			return nil, err
		default:
			r.Logger.Debug("cargo version unknown, skipping cache", "error", err)
			c = cache.NewNullCache()
		}
	}

	resolver := metadata.NewCached(metadata.NewCargo(r.cargo(), r.commands(), r.Logger), c, r.Keyer)
	g, hit, err := resolver.ResolveWithCacheInfo(ctx, metadata.Request{
		ManifestPath: opts.ManifestPath,
		AllFeatures:  opts.AllFeatures,
		Refresh:      opts.Refresh,
		ToolVersion:  result.CargoVersion,
	})
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("resolved dependencies", "nodes", len(g.Nodes), "cached", hit)

	cl := pkgid.Select(opts.Strategy, specCapable)
	hooks := observability.Recipe()
	col := recipe.Collect(g.IDs(), cl, func(miss recipe.Miss) {
		hooks.OnClassifyMiss(ctx, cl.Name(), miss.ID, miss.Err)
	})
	hooks.OnEmit(ctx, col.Crates.Len(), col.Git.Len(), len(col.Paths))

	result.Collection = col
	result.Strategy = cl.Name()
	result.Stats = Stats{
		Nodes:    len(g.Nodes),
		Crates:   col.Crates.Len(),
		Git:      col.Git.Len(),
		Paths:    len(col.Paths),
		Misses:   len(col.Misses),
		Duration: time.Since(start),
		CacheHit: hit,
	}
	return result, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) commands() metadata.CommandRunner {
	if r.Commands == nil {
		return metadata.ExecRunner{}
	}
	return r.Commands
}

func (r *Runner) cargo() string {
	if r.Cargo == "" {
		return metadata.CargoBinary()
	}
	return r.Cargo
}

func isNull(c cache.Cache) bool {
	_, ok := c.(*cache.NullCache)
	return ok
}
