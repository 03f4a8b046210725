package recipe

import (
	"github.com/matzehuels/cargorecipe/pkg/errors"
	"github.com/matzehuels/cargorecipe/pkg/pkgid"
)

// Miss records a package identifier that could not be classified.
type Miss struct {
	ID         string // raw package identifier
	Annotation string // short label for diagnostics
	Err        error
}

// Collection holds the descriptors of one dependency graph.
type Collection struct {
	Crates OrderedSet[pkgid.RegistryDescriptor]
	Git    OrderedSet[pkgid.GitDescriptor]
	// Paths keeps every path dependency in graph order, duplicates included.
	Paths  []pkgid.PathDescriptor
	Misses []Miss
}

// Add files src into the matching collection.
func (c *Collection) Add(src pkgid.Source) error {
	switch s := src.(type) {
	case *pkgid.RegistrySource:
		c.Crates.Add(s.Descriptor())
	case *pkgid.GitSource:
		c.Git.Add(s.Descriptor())
	case *pkgid.PathSource:
		c.Paths = append(c.Paths, s.Descriptor())
	default:
		return errors.New(errors.ErrCodeInternal, "unexpected source type %T", src)
	}
	return nil
}

// Collect classifies every id with cl. Classification failures are recorded
// as misses and onMiss, if non-nil, is called for each of them.
func Collect(ids []string, cl pkgid.Classifier, onMiss func(Miss)) *Collection {
	c := &Collection{}
	for _, id := range ids {
		src, err := cl.Classify(id)
		if err == nil {
			err = c.Add(src)
		}
		if err != nil {
			m := Miss{ID: id, Annotation: pkgid.Annotation(id), Err: err}
			c.Misses = append(c.Misses, m)
			if onMiss != nil {
				onMiss(m)
			}
		}
	}
	return c
}
