package recipe

import (
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/cargorecipe/pkg/pkgid"
)

// Emitter writes recipe fragments in BitBake syntax.
type Emitter struct {
	w   io.Writer
	err error
}

// NewEmitter creates a new recipe emitter.
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{w: w}
}

// Emit writes the SRC_URI block, one SRCREV pair per commit-pinned git
// repository, and the EXTRA_OECARGO_PATHS block when git repositories exist.
// Path dependencies are not written.
func (e *Emitter) Emit(c *Collection) error {
	e.println()
	e.printf("SRC_URI += \" \\\n")
	for _, cr := range c.Crates.Items() {
		e.printf("    %s \\\n", cr)
	}
	for _, g := range c.Git.Items() {
		e.printf("    %s \\\n", GitURI(g))
	}
	e.printf("\"\n")
	e.println()

	for _, g := range c.Git.Items() {
		if !g.Pinned() {
			continue
		}
		folder := Folder(g.URL)
		e.printf("SRCREV_FORMAT .= \"_%s\"\n", folder)
		e.printf("SRCREV_%s = \"%s\"\n", folder, g.Commit)
	}

	if c.Git.Len() > 0 {
		e.println()
		e.printf("EXTRA_OECARGO_PATHS += \"\\\n")
		for _, g := range c.Git.Items() {
			e.printf("    ${WORKDIR}/%s \\\n", Folder(g.URL))
		}
		e.printf("\"\n")
	}

	return e.err
}

func (e *Emitter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func (e *Emitter) println() { e.printf("\n") }

// GitURI returns the SRC_URI entry for a git repository. Commit pins are
// not part of the entry; they are written as SRCREV lines.
func GitURI(g pkgid.GitDescriptor) string {
	protocol, hostAndPath := SplitProtocol(g.URL)
	folder := Folder(g.URL)

	var b strings.Builder
	b.WriteString("git://")
	b.WriteString(hostAndPath)
	b.WriteString(";lfs=0;nobranch=1")
	switch {
	case g.Branch != "":
		b.WriteString(";branch=" + g.Branch)
	case g.Tag != "":
		b.WriteString(";tag=" + g.Tag)
	}
	b.WriteString(";protocol=" + protocol)
	b.WriteString(";destsuffix=" + folder)
	b.WriteString(";name=" + folder)
	return b.String()
}

// SplitProtocol splits "scheme://rest" into scheme and rest. A URL without
// "://" has an empty scheme.
func SplitProtocol(url string) (protocol, hostAndPath string) {
	if p, rest, ok := strings.Cut(url, "://"); ok {
		return p, rest
	}
	return "", url
}

// Folder returns the checkout directory name of a repository: the last path
// segment with any trailing ".git" removed. The name keys destsuffix, name,
// SRCREV_<folder> and the EXTRA_OECARGO_PATHS entry.
func Folder(url string) string {
	_, hostAndPath := SplitProtocol(url)
	hostAndPath = strings.TrimRight(hostAndPath, "/")
	if i := strings.LastIndexByte(hostAndPath, '/'); i >= 0 {
		hostAndPath = hostAndPath[i+1:]
	}
	return strings.TrimSuffix(hostAndPath, ".git")
}
