package pkgid

import "strings"

const (
	// DefaultRegistryURL is the canonical crates.io index.
	DefaultRegistryURL = "https://github.com/rust-lang/crates.io-index"

	// DefaultRegistryAlias replaces DefaultRegistryURL in crate descriptors.
	DefaultRegistryAlias = "crates.io"

	crateScheme = "crate://"
)

// Kind is the kind of location a package is sourced from.
type Kind int

const (
	KindRegistry Kind = iota
	KindSparseRegistry
	KindGit
	KindPath
	KindLocalRegistry
	KindDirectory
)

// String returns the kind as it appears in package ID specs.
func (k Kind) String() string {
	switch k {
	case KindRegistry:
		return "registry"
	case KindSparseRegistry:
		return "sparse"
	case KindGit:
		return "git"
	case KindPath:
		return "path"
	case KindLocalRegistry:
		return "local-registry"
	case KindDirectory:
		return "directory"
	default:
		return "unknown"
	}
}

// RefKind identifies how a git dependency is pinned.
type RefKind int

const (
	RefDefaultBranch RefKind = iota
	RefTag
	RefBranch
	RefRev
)

// GitReference is the pinned reference of a git dependency.
// Value is empty for RefDefaultBranch.
type GitReference struct {
	Kind  RefKind
	Value string
}

// Tag returns a reference pinned to a tag.
func Tag(name string) GitReference { return GitReference{Kind: RefTag, Value: name} }

// Branch returns a reference pinned to a branch.
func Branch(name string) GitReference { return GitReference{Kind: RefBranch, Value: name} }

// Rev returns a reference pinned to a revision.
func Rev(commit string) GitReference { return GitReference{Kind: RefRev, Value: commit} }

// DefaultBranch returns an unpinned reference.
func DefaultBranch() GitReference { return GitReference{Kind: RefDefaultBranch} }

// Source is the classification of a single package identifier.
// It is one of *RegistrySource, *GitSource or *PathSource.
type Source interface {
	// Kind returns the source kind.
	Kind() Kind
	// Name returns the package name, if known.
	Name() string
}

// RegistrySource is a crate from a package registry.
//
// Host is the registry authority, or DefaultRegistryAlias for crates.io, and
// Path is the URL path carried verbatim (empty for the alias).
type RegistrySource struct {
	Sparse  bool
	Host    string
	Path    string
	Package string
	Version string
}

func (s *RegistrySource) Kind() Kind {
	if s.Sparse {
		return KindSparseRegistry
	}
	return KindRegistry
}

func (s *RegistrySource) Name() string { return s.Package }

// Descriptor returns crate://<host><path>/<name>/<version>.
func (s *RegistrySource) Descriptor() RegistryDescriptor {
	var b strings.Builder
	b.WriteString(crateScheme)
	b.WriteString(s.Host)
	b.WriteString(s.Path)
	b.WriteByte('/')
	b.WriteString(s.Package)
	b.WriteByte('/')
	b.WriteString(s.Version)
	return RegistryDescriptor(b.String())
}

// GitSource is a package checked out from a git repository.
type GitSource struct {
	URL       string
	Reference GitReference
	Package   string
}

func (s *GitSource) Kind() Kind   { return KindGit }
func (s *GitSource) Name() string { return s.Package }

// Descriptor returns the git descriptor with exactly the field matching the
// reference kind set.
func (s *GitSource) Descriptor() GitDescriptor {
	d := GitDescriptor{URL: s.URL}
	switch s.Reference.Kind {
	case RefTag:
		d.Tag = s.Reference.Value
	case RefBranch:
		d.Branch = s.Reference.Value
	case RefRev:
		d.Commit = s.Reference.Value
	}
	return d
}

// PathSource is a package on the local filesystem.
type PathSource struct {
	FilesystemPath string
	Package        string
}

func (s *PathSource) Kind() Kind   { return KindPath }
func (s *PathSource) Name() string { return s.Package }

// Descriptor returns the filesystem path.
func (s *PathSource) Descriptor() PathDescriptor { return PathDescriptor(s.FilesystemPath) }

// RegistryDescriptor is the crate:// URI of a registry crate.
type RegistryDescriptor string

// PathDescriptor is the absolute filesystem path of a path dependency.
type PathDescriptor string

// GitDescriptor identifies a git dependency and its pin.
// At most one of Tag, Branch and Commit is non-empty; all empty means the
// default branch, unpinned. Two descriptors are equal only if all fields are.
type GitDescriptor struct {
	URL    string `json:"url"`
	Tag    string `json:"tag,omitempty"`
	Branch string `json:"branch,omitempty"`
	Commit string `json:"commit,omitempty"`
}

// Pinned reports whether the descriptor carries a commit.
func (d GitDescriptor) Pinned() bool { return d.Commit != "" }
