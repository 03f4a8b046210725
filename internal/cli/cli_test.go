package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/matzehuels/cargorecipe/pkg/errors"
	"github.com/matzehuels/cargorecipe/pkg/pkgid"
)

const testMetadata = `{"resolve": {"nodes": [
  {"id": "registry+https://github.com/rust-lang/crates.io-index#serde@1.0.197"},
  {"id": "git+https://github.com/org/lib?branch=dev#lib@0.2.0"},
  {"id": "git+ssh://git@example.com/org/tool.git?tag=v1.0.0#tool@1.0.0"},
  {"id": "path+file:///ws#demo@0.1.0"},
  {"id": "directory+file:///vendor#x@1.0.0"}
]}}`

const wantTestRecipe = `
SRC_URI += " \
    crate://crates.io/serde/1.0.197 \
    git://github.com/org/lib;lfs=0;nobranch=1;branch=dev;protocol=https;destsuffix=lib;name=lib \
    git://git@example.com/org/tool.git;lfs=0;nobranch=1;tag=v1.0.0;protocol=ssh;destsuffix=tool;name=tool \
"


EXTRA_OECARGO_PATHS += "\
    ${WORKDIR}/lib \
    ${WORKDIR}/tool \
"
`

type stubCargo struct {
	failMeta bool
	calls    int
}

func (s *stubCargo) Run(_ context.Context, _ string, args ...string) ([]byte, error) {
	if len(args) > 0 && args[0] == "--version" {
		return []byte("cargo 1.80.0 (376290515 2024-07-16)\n"), nil
	}
	s.calls++
	if s.failMeta {
		return nil, fmt.Errorf("exit status 101: error: failed to parse manifest")
	}
	return []byte(testMetadata), nil
}

func writeTestManifest(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "Cargo.toml")
	if err := os.WriteFile(path, []byte("[package]\nname = \"demo\"\nversion = \"0.1.0\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "Cargo.lock"), []byte("version = 3\n"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// execute runs the root command and returns stdout and stderr.
func execute(t *testing.T, cargo *stubCargo, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	c := New(&stderr, LogInfo)
	c.Commands = cargo
	root := c.RootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestGenerateStdout(t *testing.T) {
	stdout, stderr, err := execute(t, &stubCargo{}, "--manifest-path", writeTestManifest(t))
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if stdout != wantTestRecipe {
		t.Errorf("stdout =\n%s\nwant:\n%s", stdout, wantTestRecipe)
	}
	if !strings.Contains(stderr, "[not handled] directory+file:///vendor#x@1.0.0") {
		t.Errorf("stderr should report the unhandled id, got:\n%s", stderr)
	}
}

func TestGenerateOutputFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "deps.inc")
	stdout, _, err := execute(t, &stubCargo{}, "--manifest-path", writeTestManifest(t), "-o", out)
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != wantTestRecipe {
		t.Errorf("output file =\n%s\nwant:\n%s", data, wantTestRecipe)
	}
	if !strings.Contains(stdout, out) {
		t.Errorf("stdout should name the output file, got:\n%s", stdout)
	}
}

func TestGenerateFatalWritesNothing(t *testing.T) {
	out := filepath.Join(t.TempDir(), "deps.inc")
	stdout, _, err := execute(t, &stubCargo{failMeta: true}, "--manifest-path", writeTestManifest(t), "-o", out)
	if !errors.Is(err, errors.ErrCodeResolution) {
		t.Fatalf("execute error = %v, want %s", err, errors.ErrCodeResolution)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("output file should not be created on failure")
	}
}

func TestGenerateRequiresManifestPath(t *testing.T) {
	if _, _, err := execute(t, &stubCargo{}); err == nil {
		t.Error("missing --manifest-path should fail")
	}
}

func TestGenerateInvalidStrategy(t *testing.T) {
	_, _, err := execute(t, &stubCargo{}, "--manifest-path", writeTestManifest(t), "--strategy", "newest")
	if !errors.Is(err, errors.ErrCodeInvalidStrategy) {
		t.Errorf("execute error = %v, want %s", err, errors.ErrCodeInvalidStrategy)
	}
}

func TestGenerateUsesCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	manifest := writeTestManifest(t)
	cargo := &stubCargo{}

	for i := 0; i < 2; i++ {
		var stdout, stderr bytes.Buffer
		c := New(&stderr, LogInfo)
		c.Commands = cargo
		root := c.RootCommand()
		root.SetOut(&stdout)
		root.SetErr(&stderr)
		root.SetArgs([]string{"--manifest-path", manifest})
		if err := root.ExecuteContext(context.Background()); err != nil {
			t.Fatalf("run %d error: %v", i, err)
		}
		if stdout.String() != wantTestRecipe {
			t.Errorf("run %d stdout differs", i)
		}
	}
	if cargo.calls != 1 {
		t.Errorf("cargo metadata ran %d times, want 1", cargo.calls)
	}
}

func TestInspectJSON(t *testing.T) {
	stdout, _, err := execute(t, &stubCargo{}, "inspect", "--manifest-path", writeTestManifest(t), "--json", "--no-cache")
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}

	var report inspectReport
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("invalid JSON report: %v\n%s", err, stdout)
	}
	if report.Strategy != "structured" || report.CargoVersion != "1.80.0" {
		t.Errorf("strategy = %q, cargo = %q", report.Strategy, report.CargoVersion)
	}
	if len(report.Crates) != 1 || len(report.Git) != 2 || len(report.Paths) != 1 {
		t.Errorf("report sizes = %d crates, %d git, %d paths", len(report.Crates), len(report.Git), len(report.Paths))
	}
	if len(report.Misses) != 1 || report.Misses[0].Code != string(errors.ErrCodeUnsupportedKind) {
		t.Errorf("misses = %+v", report.Misses)
	}
}

func TestInspectTable(t *testing.T) {
	stdout, _, err := execute(t, &stubCargo{}, "inspect", "--manifest-path", writeTestManifest(t))
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	for _, want := range []string{
		"crate://crates.io/serde/1.0.197",
		"https://github.com/org/lib",
		"branch=dev",
		"tag=v1.0.0",
		"/ws",
		"not handled: directory+file:///vendor#x@1.0.0",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("table output missing %q:\n%s", want, stdout)
		}
	}
}

func TestCacheCommands(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	run := func(args ...string) string {
		t.Helper()
		var stdout bytes.Buffer
		c := New(&bytes.Buffer{}, LogInfo)
		c.Commands = &stubCargo{}
		root := c.RootCommand()
		root.SetOut(&stdout)
		root.SetErr(&bytes.Buffer{})
		root.SetArgs(args)
		if err := root.ExecuteContext(context.Background()); err != nil {
			t.Fatalf("%v error: %v", args, err)
		}
		return stdout.String()
	}

	if got := strings.TrimSpace(run("cache", "path")); got != filepath.Join(xdg, appName) {
		t.Errorf("cache path = %q", got)
	}

	run("--manifest-path", writeTestManifest(t))
	if out := run("cache", "clear"); !strings.Contains(out, "Cleared 1 cached entries") {
		t.Errorf("cache clear output = %q", out)
	}
	if out := run("cache", "clear"); !strings.Contains(out, "Cleared 0 cached entries") {
		t.Errorf("second cache clear output = %q", out)
	}
}

func TestGitPin(t *testing.T) {
	tests := []struct {
		branch, tag, commit string
		want                string
	}{
		{"main", "", "", "branch=main"},
		{"", "v1", "", "tag=v1"},
		{"", "", "abc", "rev=abc"},
		{"", "", "", "default branch"},
	}
	for _, tt := range tests {
		g := pkgid.GitDescriptor{URL: "https://example.com/r", Branch: tt.branch, Tag: tt.tag, Commit: tt.commit}
		if got := gitPin(g); got != tt.want {
			t.Errorf("gitPin(%+v) = %q, want %q", g, got, tt.want)
		}
	}
}
