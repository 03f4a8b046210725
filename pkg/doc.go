// Package pkg provides the libraries behind cargorecipe.
//
// # Overview
//
// cargorecipe turns the resolved dependency graph of a cargo workspace into
// the SRC_URI, SRCREV and EXTRA_OECARGO_PATHS entries of a BitBake recipe.
// The pkg directory is organized into three areas:
//
//  1. Domain logic ([pkgid], [recipe])
//  2. Resolution ([manifest], [metadata], [cache])
//  3. Orchestration ([pipeline])
//
// # Architecture
//
// The typical data flow:
//
//	Cargo.toml
//	     ↓
//	[manifest] package (precheck)
//	     ↓
//	[metadata] package (cargo metadata, cached in [cache])
//	     ↓
//	[pkgid] package (classify each package id)
//	     ↓
//	[recipe] package (collect + emit)
//	     ↓
//	BitBake recipe fragment
//
// # Quick Start
//
//	import (
//	    "os"
//
//	    "github.com/matzehuels/cargorecipe/pkg/pkgid"
//	    "github.com/matzehuels/cargorecipe/pkg/recipe"
//	)
//
//	ids := []string{
//	    "registry+https://github.com/rust-lang/crates.io-index#serde@1.0.197",
//	    "git+https://github.com/org/lib?rev=4f2c1d#lib@0.2.0",
//	}
//	col := recipe.Collect(ids, pkgid.Structured{}, nil)
//	_ = recipe.NewEmitter(os.Stdout).Emit(col)
//
// # Main Packages
//
// [pkgid] - Package identifier classifiers. [pkgid.Structured] reads the
// package ID specs of cargo 1.77 and later, [pkgid.Legacy] the older
// "name version (source)" form.
//
// [recipe] - Order-preserving, de-duplicated descriptor collections and the
// BitBake emitter.
//
// [manifest] - Cargo.toml precheck.
//
// [metadata] - cargo metadata invocation, cargo version detection and the
// cached resolver.
//
// [cache] - File and no-op caches for resolved metadata.
//
// [pipeline] - One run from manifest to descriptor collection, shared by all
// CLI commands.
//
// [errors] - Coded errors; classification misses are told apart from fatal
// errors by code.
//
// [observability] - Optional hooks for resolution, classification and cache
// events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...        # All tests
//	go test ./pkg/pkgid/...  # Specific package
//
// [pkgid]: https://pkg.go.dev/github.com/matzehuels/cargorecipe/pkg/pkgid
// [pkgid.Structured]: https://pkg.go.dev/github.com/matzehuels/cargorecipe/pkg/pkgid#Structured
// [pkgid.Legacy]: https://pkg.go.dev/github.com/matzehuels/cargorecipe/pkg/pkgid#Legacy
// [recipe]: https://pkg.go.dev/github.com/matzehuels/cargorecipe/pkg/recipe
// [manifest]: https://pkg.go.dev/github.com/matzehuels/cargorecipe/pkg/manifest
// [metadata]: https://pkg.go.dev/github.com/matzehuels/cargorecipe/pkg/metadata
// [cache]: https://pkg.go.dev/github.com/matzehuels/cargorecipe/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/cargorecipe/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/matzehuels/cargorecipe/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/cargorecipe/pkg/observability
package pkg
