package metadata

import (
	"context"
	"strings"

	"github.com/masterminds/semver"

	"github.com/matzehuels/cargorecipe/pkg/errors"
)

// DetectVersion runs `cargo --version` and parses the reported version,
// e.g. "cargo 1.77.0 (3fe68eabf 2024-02-29)".
func DetectVersion(ctx context.Context, runner CommandRunner, binary string) (*semver.Version, error) {
	if runner == nil {
		runner = ExecRunner{}
	}
	if binary == "" {
		binary = CargoBinary()
	}
	out, err := runner.Run(ctx, binary, "--version")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeToolVersion, err, "cannot run %s --version", binary)
	}
	return ParseVersion(string(out))
}

// ParseVersion parses the output of `cargo --version`.
func ParseVersion(output string) (*semver.Version, error) {
	fields := strings.Fields(output)
	if len(fields) < 2 {
		return nil, errors.New(errors.ErrCodeToolVersion, "unexpected cargo version output %q", strings.TrimSpace(output))
	}
	v, err := semver.NewVersion(fields[1])
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeToolVersion, err, "invalid cargo version %q", fields[1])
	}
	return v, nil
}

// SupportsPackageIDSpec reports whether cargo v emits structured package ID
// specs in cargo metadata (1.77 and later).
func SupportsPackageIDSpec(v *semver.Version) bool {
	if v == nil {
		return false
	}
	return v.Major() > 1 || (v.Major() == 1 && v.Minor() >= 77)
}
