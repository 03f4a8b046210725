// Package pkgid classifies cargo package identifiers into source kinds.
//
// # Overview
//
// Every node of a resolved cargo dependency graph carries an opaque package
// identifier. Its textual format depends on the cargo version that produced
// it:
//
//	serde 1.0.197 (registry+https://github.com/rust-lang/crates.io-index)   // cargo < 1.77
//	registry+https://github.com/rust-lang/crates.io-index#serde@1.0.197     // cargo >= 1.77
//
// A [Classifier] turns one identifier into a [Source]: a [RegistrySource],
// [GitSource] or [PathSource]. Each source yields a normalized descriptor
// ([RegistryDescriptor], [GitDescriptor], [PathDescriptor]) used as the
// deduplication key when building recipes.
//
// # Strategies
//
// Two classifiers implement the interface:
//
//   - [Structured] parses package ID specs (cargo 1.77 and newer)
//   - [Legacy] tokenizes the whitespace-delimited "name version (source)" form
//
// [Select] picks one for the whole run from a [Strategy] and the detected
// cargo capability:
//
//	c := pkgid.Select(pkgid.StrategyAuto, metadata.SupportsPackageIDSpec(v))
//	src, err := c.Classify(node.ID)
//
// The legacy form cannot tell tag pins from branch pins; both are reported as a
// commit pin.
//
// # Errors
//
// Identifiers that cannot be classified return an error for which
// [errors.IsClassificationMiss] is true. Callers report and skip them.
//
// [errors.IsClassificationMiss]: github.com/matzehuels/cargorecipe/pkg/errors.IsClassificationMiss
package pkgid
