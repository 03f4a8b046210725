package metadata

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cargorecipe/pkg/errors"
	"github.com/matzehuels/cargorecipe/pkg/observability"
)

// CommandRunner runs an external program and returns its standard output.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run executes name with args. A failing command reports its stderr.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(errBuf.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out.Bytes(), nil
}

// CargoBinary returns the cargo executable to use: $CARGO, or "cargo".
func CargoBinary() string {
	if c := os.Getenv("CARGO"); c != "" {
		return c
	}
	return "cargo"
}

// Cargo resolves workspaces by running cargo metadata.
type Cargo struct {
	Binary   string
	Commands CommandRunner
	Logger   *log.Logger
}

// NewCargo creates a resolver. Empty binary means [CargoBinary] and a nil
// runner means [ExecRunner].
func NewCargo(binary string, runner CommandRunner, logger *log.Logger) *Cargo {
	if binary == "" {
		binary = CargoBinary()
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Cargo{Binary: binary, Commands: runner, Logger: logger}
}

// Args returns the cargo arguments for req.
func (c *Cargo) Args(req Request) []string {
	args := []string{"metadata", "--format-version", "1", "--manifest-path", req.ManifestPath}
	if req.AllFeatures {
		args = append(args, "--all-features")
	}
	return args
}

// Resolve runs cargo metadata for req.
func (c *Cargo) Resolve(ctx context.Context, req Request) (*Graph, error) {
	hooks := observability.Recipe()
	hooks.OnResolveStart(ctx, req.ManifestPath)
	start := time.Now()

	args := c.Args(req)
	c.Logger.Debug("running cargo", "binary", c.Binary, "args", strings.Join(args, " "))

	g, err := c.resolve(ctx, args)
	nodes := 0
	if g != nil {
		nodes = len(g.Nodes)
	}
	hooks.OnResolveComplete(ctx, req.ManifestPath, nodes, time.Since(start), err)
	return g, err
}

func (c *Cargo) resolve(ctx context.Context, args []string) (*Graph, error) {
	out, err := c.Commands.Run(ctx, c.Binary, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeResolution, err, "cargo metadata failed")
	}
	return ParseGraph(out)
}

var _ Resolver = (*Cargo)(nil)
