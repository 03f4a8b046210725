package pkgid

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/matzehuels/cargorecipe/pkg/errors"
)

// Spec is a parsed package ID spec such as
// "git+https://github.com/x/y?branch=main#y@0.1.0".
type Spec struct {
	Kind      Kind
	HasKind   bool
	URL       *url.URL // nil when the spec has no URL
	Name      string
	Version   string // verbatim; may be partial or empty
	Reference GitReference
}

// ParseSpec parses a package ID spec. It fails only on identifiers that are
// not specs at all; missing components are left empty for the classifier to
// reject.
func ParseSpec(raw string) (*Spec, error) {
	if !strings.Contains(raw, "://") {
		return parseBareSpec(raw)
	}

	var spec Spec
	rawURL := raw
	if scheme, rest, ok := strings.Cut(raw, "://"); ok {
		if kind, inner, ok := strings.Cut(scheme, "+"); ok {
			k, err := parseKind(kind, raw)
			if err != nil {
				return nil, err
			}
			spec.Kind, spec.HasKind = k, true
			rawURL = inner + "://" + rest
			// sparse registries keep their prefix as part of the URL.
			if k == KindSparseRegistry {
				rawURL = raw
			}
		}
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnrecognized, err, "invalid url in package id %q", raw)
	}

	fragment := u.Fragment
	u.Fragment, u.RawFragment = "", ""

	if u.RawQuery != "" {
		switch spec.Kind {
		case KindGit:
			spec.Reference = referenceFromQuery(u.RawQuery)
			u.RawQuery, u.ForceQuery = "", false
		default:
			if spec.HasKind {
				return nil, errors.New(errors.ErrCodeUnrecognized, "package id %q cannot have a query string", raw)
			}
		}
	}

	spec.Name, spec.Version = splitFragment(fragment, lastSegment(u.Path))
	spec.URL = u
	return &spec, nil
}

// parseBareSpec handles "name", "name@version" and "name:version".
func parseBareSpec(raw string) (*Spec, error) {
	if raw == "" {
		return nil, errors.New(errors.ErrCodeUnrecognized, "empty package id")
	}
	name, version, _ := strings.Cut(raw, "@")
	if name == raw {
		name, version, _ = strings.Cut(raw, ":")
	}
	return &Spec{Name: name, Version: version}, nil
}

func parseKind(kind, raw string) (Kind, error) {
	switch kind {
	case "registry":
		return KindRegistry, nil
	case "sparse":
		return KindSparseRegistry, nil
	case "git":
		return KindGit, nil
	case "path":
		return KindPath, nil
	case "local-registry":
		return KindLocalRegistry, nil
	case "directory":
		return KindDirectory, nil
	default:
		return 0, errors.New(errors.ErrCodeUnsupportedKind, "unsupported source protocol %q in package id %q", kind, raw)
	}
}

// referenceFromQuery reads branch/ref, tag and rev keys. The last recognized
// key wins, as in cargo.
func referenceFromQuery(rawQuery string) GitReference {
	ref := DefaultBranch()
	for _, pair := range strings.Split(rawQuery, "&") {
		k, v, _ := strings.Cut(pair, "=")
		if uv, err := url.QueryUnescape(v); err == nil {
			v = uv
		}
		switch k {
		case "branch", "ref":
			ref = Branch(v)
		case "tag":
			ref = Tag(v)
		case "rev":
			ref = Rev(v)
		}
	}
	return ref
}

// splitFragment splits "name@version" / "name:version". A fragment starting
// with a letter is a name, anything else a version of the package named by
// the last URL path segment.
func splitFragment(fragment, pathName string) (name, version string) {
	if fragment == "" {
		return pathName, ""
	}
	if i := strings.IndexAny(fragment, "@:"); i >= 0 {
		return fragment[:i], fragment[i+1:]
	}
	if unicode.IsLetter([]rune(fragment)[0]) {
		return fragment, ""
	}
	return pathName, fragment
}

func lastSegment(p string) string {
	p = strings.TrimSuffix(p, "/")
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[i+1:]
	}
	return p
}

// authority returns userinfo@host:port of u.
func authority(u *url.URL) string {
	if u.User != nil {
		return u.User.String() + "@" + u.Host
	}
	return u.Host
}

// isFullVersion reports whether v has major, minor and patch components.
// The version is not otherwise interpreted.
func isFullVersion(v string) bool {
	core := v
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core = core[:i]
	}
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return false
	}
	for _, p := range parts {
		if p == "" {
			return false
		}
	}
	return true
}

// Structured classifies package ID specs produced by cargo 1.77 and newer.
type Structured struct{}

// Name returns "structured".
func (Structured) Name() string { return string(StrategyStructured) }

// Classify parses raw as a package ID spec.
func (Structured) Classify(raw string) (Source, error) {
	spec, err := ParseSpec(raw)
	if err != nil {
		return nil, err
	}
	if !spec.HasKind {
		return nil, errors.New(errors.ErrCodeMissingKind, "package id %q doesn't have a source kind", raw)
	}

	switch spec.Kind {
	case KindRegistry, KindSparseRegistry:
		return registryFromSpec(raw, spec)
	case KindGit:
		return gitFromSpec(raw, spec)
	case KindPath:
		return pathFromSpec(raw, spec)
	default:
		return nil, errors.New(errors.ErrCodeUnsupportedKind, "%s sources are not supported: %q", spec.Kind, raw)
	}
}

func registryFromSpec(raw string, spec *Spec) (Source, error) {
	if spec.Name == "" {
		return nil, errors.New(errors.ErrCodeMissingName, "package id %q doesn't have a name", raw)
	}
	if missingURL(spec.URL) {
		return nil, errors.New(errors.ErrCodeMissingURL, "%s doesn't have url: %q", spec.Name, raw)
	}
	if !isFullVersion(spec.Version) {
		return nil, errors.New(errors.ErrCodeMissingVersion, "%s doesn't have version: %q", spec.Name, raw)
	}

	src := &RegistrySource{
		Sparse:  spec.Kind == KindSparseRegistry,
		Package: spec.Name,
		Version: spec.Version,
	}
	if spec.URL.String() == DefaultRegistryURL {
		src.Host = DefaultRegistryAlias
	} else {
		// Query and fragment are dropped; the recipe fetcher appends its own
		// download suffix.
		src.Host = authority(spec.URL)
		src.Path = spec.URL.EscapedPath()
		if src.Path == "" && src.Host != "" {
			src.Path = "/"
		}
	}
	return src, nil
}

// missingURL reports whether u carries neither a scheme nor a path. A
// file:// URL has no host and still counts as present.
func missingURL(u *url.URL) bool {
	return u == nil || (u.Scheme == "" && u.Path == "")
}

func gitFromSpec(raw string, spec *Spec) (Source, error) {
	if missingURL(spec.URL) {
		return nil, errors.New(errors.ErrCodeMissingURL, "%s doesn't have url: %q", spec.Name, raw)
	}
	if spec.Reference.Kind != RefDefaultBranch && spec.Reference.Value == "" {
		return nil, errors.New(errors.ErrCodeMissingReference, "%s has an empty git reference: %q", spec.Name, raw)
	}
	return &GitSource{
		URL:       spec.URL.String(),
		Reference: spec.Reference,
		Package:   spec.Name,
	}, nil
}

func pathFromSpec(raw string, spec *Spec) (Source, error) {
	if spec.URL == nil {
		return nil, errors.New(errors.ErrCodeMissingURL, "%s doesn't have url: %q", spec.Name, raw)
	}
	u := spec.URL.String()
	path, ok := strings.CutPrefix(u, "file://")
	if !ok || path == "" {
		return nil, errors.New(errors.ErrCodeMissingURL, "%s doesn't have a file:// url: %q", spec.Name, raw)
	}
	return &PathSource{FilesystemPath: path, Package: spec.Name}, nil
}
