package errors

import (
	"path/filepath"
	"unicode"
)

// manifestFilename is the only file name cargo accepts for --manifest-path.
const manifestFilename = "Cargo.toml"

// ValidateManifestPath validates the manifest path given on the command line.
//
// The validation rules are intentionally conservative:
//   - No empty paths
//   - No control characters or null bytes
//   - Maximum length of 4096 characters
//   - The base name must be Cargo.toml
//
// Existence is checked later when the manifest is loaded.
func ValidateManifestPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "manifest path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "manifest path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "manifest path contains invalid control characters")
		}
	}

	if filepath.Base(path) != manifestFilename {
		return New(ErrCodeInvalidManifest, "manifest path must point to a %s file: %s", manifestFilename, path)
	}

	return nil
}
