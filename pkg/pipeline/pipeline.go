// Package pipeline turns a cargo workspace into a BitBake recipe fragment.
//
// A run has four steps:
//
//  1. Check the manifest
//  2. Detect the cargo version, when the strategy or the cache key needs it
//  3. Resolve the dependency graph with cargo metadata (cached)
//  4. Classify every package ID and collect the descriptors
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Run(ctx, pipeline.Options{
//	    ManifestPath: "Cargo.toml",
//	    AllFeatures:  true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, m := range result.Collection.Misses {
//	    logger.Warnf("[not handled] %s: %v", m.Annotation, m.Err)
//	}
//	out, err := result.Recipe()
package pipeline

import (
	"bytes"
	"time"

	"github.com/matzehuels/cargorecipe/pkg/errors"
	"github.com/matzehuels/cargorecipe/pkg/pkgid"
	"github.com/matzehuels/cargorecipe/pkg/recipe"
)

// Options configures one run.
type Options struct {
	// ManifestPath is the Cargo.toml to generate a recipe for.
	ManifestPath string `json:"manifest_path"`

	// Strategy selects the package ID classifier. Empty means auto.
	Strategy pkgid.Strategy `json:"strategy,omitempty"`

	// AllFeatures passes --all-features to cargo metadata.
	AllFeatures bool `json:"all_features"`

	// Refresh ignores cached metadata.
	Refresh bool `json:"refresh,omitempty"`
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// Safe to call more than once.
func (o *Options) ValidateAndSetDefaults() error {
	if err := errors.ValidateManifestPath(o.ManifestPath); err != nil {
		return err
	}
	s, err := pkgid.ParseStrategy(string(o.Strategy))
	if err != nil {
		return err
	}
	o.Strategy = s
	return nil
}

// Result contains the outputs of a run.
type Result struct {
	// Collection holds the classified descriptors and misses.
	Collection *recipe.Collection

	// Strategy is the classifier that was used ("structured" or "legacy").
	Strategy string

	// CargoVersion is the detected cargo version, if detection ran.
	CargoVersion string

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains run statistics.
type Stats struct {
	Nodes    int
	Crates   int
	Git      int
	Paths    int
	Misses   int
	Duration time.Duration
	CacheHit bool
}

// Recipe renders the collection as a BitBake fragment.
func (r *Result) Recipe() ([]byte, error) {
	var buf bytes.Buffer
	if err := recipe.NewEmitter(&buf).Emit(r.Collection); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
