// Package recipe aggregates classified dependencies and renders BitBake
// recipe fragments.
//
// # Aggregation
//
// [Collect] classifies every dependency-graph node with a [pkgid.Classifier]
// and files the result into a [Collection]:
//
//   - registry crates into an insertion-ordered set of crate:// URIs
//   - git repositories into an insertion-ordered set of [pkgid.GitDescriptor]
//   - path dependencies into a plain list (kept, never emitted)
//
// Identifiers that cannot be classified become [Miss] entries; they never
// stop collection.
//
// # Emission
//
// [Emitter] writes the collection in a fixed grammar:
//
//	SRC_URI += " \
//	    crate://crates.io/serde/1.0.197 \
//	    git://github.com/x/y.git;lfs=0;nobranch=1;branch=main;protocol=https;destsuffix=y;name=y \
//	"
//
//	SRCREV_FORMAT .= "_y"
//	SRCREV_y = "abc123"
//
//	EXTRA_OECARGO_PATHS += "\
//	    ${WORKDIR}/y \
//	"
//
// Output order follows first insertion, so the same graph always yields the
// same recipe.
//
// [pkgid.Classifier]: github.com/matzehuels/cargorecipe/pkg/pkgid.Classifier
// [pkgid.GitDescriptor]: github.com/matzehuels/cargorecipe/pkg/pkgid.GitDescriptor
package recipe
