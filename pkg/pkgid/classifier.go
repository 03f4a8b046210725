package pkgid

import (
	"strings"

	"github.com/matzehuels/cargorecipe/pkg/errors"
)

// Classifier turns a raw package identifier into a Source.
// Implementations are stateless; the same input always yields the same result.
type Classifier interface {
	// Name returns the strategy name (e.g., "structured").
	Name() string
	// Classify parses raw. Errors satisfy errors.IsClassificationMiss.
	Classify(raw string) (Source, error)
}

// Strategy selects which Classifier to use for a run.
type Strategy string

const (
	StrategyAuto       Strategy = "auto"       // Choose from the detected cargo version
	StrategyStructured Strategy = "structured" // Package ID specs (cargo >= 1.77)
	StrategyLegacy     Strategy = "legacy"     // "name version (source)" (cargo < 1.77)
)

// Strategies lists the accepted strategy names.
var Strategies = []Strategy{StrategyAuto, StrategyStructured, StrategyLegacy}

// ParseStrategy validates a strategy name. The empty string means StrategyAuto.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyAuto:
		return StrategyAuto, nil
	case StrategyStructured:
		return StrategyStructured, nil
	case StrategyLegacy:
		return StrategyLegacy, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidStrategy, "unknown strategy %q (available: auto, structured, legacy)", s)
	}
}

// NeedsDetection reports whether the strategy depends on the cargo version.
func (s Strategy) NeedsDetection() bool {
	return s == StrategyAuto || s == ""
}

// Select returns the classifier for s. For StrategyAuto, specCapable reports
// whether the producing cargo emits package ID specs.
func Select(s Strategy, specCapable bool) Classifier {
	switch s {
	case StrategyStructured:
		return Structured{}
	case StrategyLegacy:
		return Legacy{}
	}
	if specCapable {
		return Structured{}
	}
	return Legacy{}
}

// Annotation returns the part of raw used to label diagnostics: the source
// field of a legacy identifier, or the whole identifier otherwise.
func Annotation(raw string) string {
	fields := strings.Fields(raw)
	if len(fields) >= 3 {
		return fields[2]
	}
	return raw
}
