package pkgid

import (
	"strings"

	"github.com/matzehuels/cargorecipe/pkg/errors"
)

// legacyDefaultRegistry is the source annotation cargo prints for crates.io.
const legacyDefaultRegistry = "(" + "registry+" + DefaultRegistryURL + ")"

// LegacyID is a tokenized "name version (source)" package identifier.
type LegacyID struct {
	Name    string
	Version string
	Source  string // including the surrounding parentheses
}

// TokenizeLegacy splits a legacy package identifier into its three
// whitespace-delimited fields.
func TokenizeLegacy(raw string) (LegacyID, error) {
	fields := strings.Fields(raw)
	if len(fields) < 3 {
		return LegacyID{}, errors.New(errors.ErrCodeUnrecognized, "package id %q is not of the form \"name version (source)\"", raw)
	}
	return LegacyID{Name: fields[0], Version: fields[1], Source: fields[2]}, nil
}

// sourceBody strips the "(kind+" prefix and the closing parenthesis.
func (id LegacyID) sourceBody() string {
	_, body, _ := strings.Cut(id.Source, "+")
	return strings.TrimSuffix(body, ")")
}

// Legacy classifies identifiers produced by cargo releases older than 1.77.
//
// Git pins are always reported as a commit: the legacy form does not say
// whether the pin came from a tag, a branch or a rev.
type Legacy struct{}

// Name returns "legacy".
func (Legacy) Name() string { return string(StrategyLegacy) }

// Classify parses raw as "name version (source)".
func (Legacy) Classify(raw string) (Source, error) {
	id, err := TokenizeLegacy(raw)
	if err != nil {
		return nil, err
	}

	switch {
	case id.Source == legacyDefaultRegistry:
		return &RegistrySource{
			Host:    DefaultRegistryAlias,
			Package: id.Name,
			Version: id.Version,
		}, nil
	case strings.Contains(id.Source, "(path+"):
		return legacyPath(raw, id)
	case strings.Contains(id.Source, "(git+"):
		return legacyGit(raw, id)
	default:
		return nil, errors.New(errors.ErrCodeUnrecognized, "%s has an unrecognized source %s", id.Name, id.Source)
	}
}

func legacyPath(raw string, id LegacyID) (Source, error) {
	_, path, ok := strings.Cut(id.sourceBody(), "file://")
	if !ok || path == "" {
		return nil, errors.New(errors.ErrCodeMissingURL, "%s doesn't have a file:// url: %q", id.Name, raw)
	}
	return &PathSource{FilesystemPath: path, Package: id.Name}, nil
}

// legacyGit splits "url[?query][#commit]". The commit is the third segment
// when a query is present and the second otherwise.
func legacyGit(raw string, id LegacyID) (Source, error) {
	segments := splitAny(id.sourceBody(), "?#")

	url := segments[0]
	if !strings.Contains(url, "://") {
		return nil, errors.New(errors.ErrCodeMissingURL, "%s doesn't have url: %q", id.Name, raw)
	}

	var commit string
	switch {
	case len(segments) > 2:
		commit = segments[2]
	case len(segments) == 2:
		commit = segments[1]
	}
	if commit == "" {
		return nil, errors.New(errors.ErrCodeMissingReference, "%s doesn't have a pinned commit: %q", id.Name, raw)
	}

	return &GitSource{URL: url, Reference: Rev(commit), Package: id.Name}, nil
}

// splitAny splits s at every byte in seps, keeping empty segments.
func splitAny(s, seps string) []string {
	var parts []string
	for {
		i := strings.IndexAny(s, seps)
		if i < 0 {
			return append(parts, s)
		}
		parts = append(parts, s[:i])
		s = s[i+1:]
	}
}
