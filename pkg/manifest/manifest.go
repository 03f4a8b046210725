// Package manifest reads the Cargo.toml a recipe is generated for.
//
// Load only checks that the file exists and is a package or workspace
// manifest. Dependency resolution is left to cargo.
package manifest

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/cargorecipe/pkg/errors"
)

// LockFile is the name of cargo's lock file.
const LockFile = "Cargo.lock"

// Manifest is the subset of a Cargo.toml this tool inspects.
type Manifest struct {
	Path string `toml:"-"`

	Package      Package        `toml:"package"`
	Workspace    Workspace      `toml:"workspace"`
	Dependencies map[string]any `toml:"dependencies"`

	workspace bool
}

// Package is the [package] table.
type Package struct {
	Name    string `toml:"name"`
	Version any    `toml:"version"`
}

// Workspace is the [workspace] table.
type Workspace struct {
	Members []string `toml:"members"`
}

// Load reads and checks the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "manifest %s not found", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "read %s", path)
	}

	m := &Manifest{Path: path}
	// Package.Version is any: version.workspace = true decodes to a table.
	md, err := toml.Decode(string(data), m)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse %s", path)
	}
	if !md.IsDefined("package") && !md.IsDefined("workspace") {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "%s has neither [package] nor [workspace]", path)
	}
	m.workspace = md.IsDefined("workspace")
	return m, nil
}

// IsWorkspace reports whether the manifest declares a [workspace].
func (m *Manifest) IsWorkspace() bool {
	return m.workspace
}

// Version returns the package version, or "" when it is inherited from the
// workspace (version.workspace = true).
func (m *Manifest) Version() string {
	v, _ := m.Package.Version.(string)
	return v
}

// LockPath returns the Cargo.lock next to the manifest.
func (m *Manifest) LockPath() string {
	return LockPath(m.Path)
}

// LockPath returns the Cargo.lock next to manifestPath.
func LockPath(manifestPath string) string {
	return filepath.Join(filepath.Dir(manifestPath), LockFile)
}
