// Package metadata resolves a cargo workspace into the list of package IDs
// that make up its dependency graph.
//
// The [Cargo] resolver runs `cargo metadata --format-version 1` and reads the
// resolve.nodes[].id values from its output. [Cached] wraps any [Resolver]
// with a [cache.Cache] keyed on the manifest, the lock file, the feature
// selection and the cargo version.
//
// [DetectVersion] reports the installed cargo version, and
// [SupportsPackageIDSpec] tells whether that version emits structured
// package ID specs (cargo 1.77 and later) or the legacy
// "name version (source)" form.
package metadata
