package cli

import (
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cargorecipe/pkg/errors"
	"github.com/matzehuels/cargorecipe/pkg/pipeline"
	"github.com/matzehuels/cargorecipe/pkg/pkgid"
)

// inspectReport is the --json output of inspect.
type inspectReport struct {
	Manifest     string                     `json:"manifest"`
	Strategy     string                     `json:"strategy"`
	CargoVersion string                     `json:"cargo_version,omitempty"`
	Crates       []pkgid.RegistryDescriptor `json:"crates"`
	Git          []pkgid.GitDescriptor      `json:"git"`
	Paths        []pkgid.PathDescriptor     `json:"paths"`
	Misses       []missReport               `json:"not_handled"`
	Cached       bool                       `json:"cached"`
}

type missReport struct {
	ID         string `json:"id"`
	Annotation string `json:"annotation"`
	Code       string `json:"code"`
	Error      string `json:"error"`
}

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	opts := &generateOptions{}
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect --manifest-path Cargo.toml",
		Short: "List the classified dependencies of a workspace",
		Long: `Inspect resolves the workspace like the root command and lists every
registry crate, git repository and path dependency it found, along with the
package ids that could not be handled.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.run(cmd.Context(), loggerFromContext(cmd.Context()), opts)
			if err != nil {
				return err
			}
			if asJSON {
				return writeInspectJSON(cmd.OutOrStdout(), opts.manifestPath, res)
			}
			return writeInspectTable(cmd.OutOrStdout(), res)
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print a JSON report")
	return cmd
}

func newInspectReport(manifest string, res *pipeline.Result) inspectReport {
	col := res.Collection
	r := inspectReport{
		Manifest:     manifest,
		Strategy:     res.Strategy,
		CargoVersion: res.CargoVersion,
		Crates:       append([]pkgid.RegistryDescriptor{}, col.Crates.Items()...),
		Git:          append([]pkgid.GitDescriptor{}, col.Git.Items()...),
		Paths:        append([]pkgid.PathDescriptor{}, col.Paths...),
		Misses:       make([]missReport, 0, len(col.Misses)),
		Cached:       res.Stats.CacheHit,
	}
	for _, m := range col.Misses {
		r.Misses = append(r.Misses, missReport{
			ID:         m.ID,
			Annotation: m.Annotation,
			Code:       string(errors.GetCode(m.Err)),
			Error:      errors.UserMessage(m.Err),
		})
	}
	return r
}

func writeInspectJSON(w io.Writer, manifest string, res *pipeline.Result) error {
	data, err := json.MarshalIndent(newInspectReport(manifest, res), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeInspectTable(w io.Writer, res *pipeline.Result) error {
	col := res.Collection

	fmt.Fprintln(w, StyleTitle.Render("Dependencies"))
	table := tablewriter.NewTable(w,
		tablewriter.WithHeaderAutoFormat(tw.Off),
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.Off}},
		})))
	table.Header("Kind", "Source", "Pin")

	var rows [][]any
	for _, cr := range col.Crates.Items() {
		rows = append(rows, []any{"registry", string(cr), ""})
	}
	for _, g := range col.Git.Items() {
		rows = append(rows, []any{"git", g.URL, gitPin(g)})
	}
	for _, p := range col.Paths {
		rows = append(rows, []any{"path", string(p), ""})
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	printStats(w, res.Stats.Crates, res.Stats.Git, res.Stats.Misses, res.Stats.CacheHit)
	for _, m := range col.Misses {
		printWarning(w, "not handled: %s", m.ID)
		printDetail(w, "%s", errors.UserMessage(m.Err))
	}
	return nil
}

// gitPin describes the pin of a git descriptor, e.g. "branch=main".
func gitPin(g pkgid.GitDescriptor) string {
	var pins []string
	if g.Branch != "" {
		pins = append(pins, "branch="+g.Branch)
	}
	if g.Tag != "" {
		pins = append(pins, "tag="+g.Tag)
	}
	if g.Commit != "" {
		pins = append(pins, "rev="+g.Commit)
	}
	if len(pins) == 0 {
		return "default branch"
	}
	return strings.Join(pins, " ")
}
