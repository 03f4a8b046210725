package pkgid

import (
	"testing"

	"github.com/matzehuels/cargorecipe/pkg/errors"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in      string
		want    Strategy
		wantErr bool
	}{
		{"", StrategyAuto, false},
		{"auto", StrategyAuto, false},
		{"Structured", StrategyStructured, false},
		{" legacy ", StrategyLegacy, false},
		{"newest", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStrategy(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStrategy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidStrategy) {
				t.Errorf("ParseStrategy(%q) code = %v", tt.in, errors.GetCode(err))
			}
			if got != tt.want {
				t.Errorf("ParseStrategy(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSelect(t *testing.T) {
	tests := []struct {
		strategy    Strategy
		specCapable bool
		want        string
	}{
		{StrategyAuto, true, "structured"},
		{StrategyAuto, false, "legacy"},
		{StrategyStructured, false, "structured"},
		{StrategyLegacy, true, "legacy"},
	}

	for _, tt := range tests {
		if got := Select(tt.strategy, tt.specCapable).Name(); got != tt.want {
			t.Errorf("Select(%q, %v) = %q, want %q", tt.strategy, tt.specCapable, got, tt.want)
		}
	}
}

func TestNeedsDetection(t *testing.T) {
	if !StrategyAuto.NeedsDetection() {
		t.Error("auto should need detection")
	}
	if StrategyLegacy.NeedsDetection() || StrategyStructured.NeedsDetection() {
		t.Error("explicit strategies should not need detection")
	}
}

func TestAnnotation(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"foo 1.0.0 (registry+https://example.com/index)", "(registry+https://example.com/index)"},
		{"local-registry+file:///srv/reg#foo@1.0.0", "local-registry+file:///srv/reg#foo@1.0.0"},
	}
	for _, tt := range tests {
		if got := Annotation(tt.raw); got != tt.want {
			t.Errorf("Annotation(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestKindString(t *testing.T) {
	kinds := map[Kind]string{
		KindRegistry:       "registry",
		KindSparseRegistry: "sparse",
		KindGit:            "git",
		KindPath:           "path",
		KindLocalRegistry:  "local-registry",
		KindDirectory:      "directory",
		Kind(99):           "unknown",
	}
	for k, want := range kinds {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}
