package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cargorecipe/pkg/errors"
	"github.com/matzehuels/cargorecipe/pkg/pipeline"
	"github.com/matzehuels/cargorecipe/pkg/pkgid"
)

// generateOptions holds the flags shared by the root and inspect commands.
type generateOptions struct {
	manifestPath string
	strategy     string
	allFeatures  bool
	noCache      bool
	refresh      bool
	output       string
}

// register adds the resolution flags to cmd.
func (o *generateOptions) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.manifestPath, "manifest-path", "", "path to the workspace Cargo.toml")
	f.StringVar(&o.strategy, "strategy", string(pkgid.StrategyAuto), "package id format: auto, structured or legacy")
	f.BoolVar(&o.allFeatures, "all-features", true, "resolve with --all-features")
	f.BoolVar(&o.noCache, "no-cache", false, "disable the metadata cache")
	f.BoolVar(&o.refresh, "refresh", false, "ignore cached metadata")
	_ = cmd.MarkFlagRequired("manifest-path")
	_ = cmd.MarkFlagFilename("manifest-path", "toml")
	_ = cmd.RegisterFlagCompletionFunc("strategy", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, len(pkgid.Strategies))
		for i, s := range pkgid.Strategies {
			names[i] = string(s)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
}

func (o *generateOptions) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		ManifestPath: o.manifestPath,
		Strategy:     pkgid.Strategy(o.strategy),
		AllFeatures:  o.allFeatures,
		Refresh:      o.refresh,
	}
}

// run executes the pipeline and logs every package id that was not handled.
func (c *CLI) run(ctx context.Context, logger *log.Logger, opts *generateOptions) (*pipeline.Result, error) {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return nil, err
	}
	defer runner.Close()
	runner.Logger = logger

	prog := newProgress(logger)
	res, err := runner.Run(ctx, opts.pipelineOptions())
	if err != nil {
		return nil, err
	}
	for _, m := range res.Collection.Misses {
		logger.Warnf("[not handled] %s: %s", m.Annotation, errors.UserMessage(m.Err))
	}
	prog.done(fmt.Sprintf("Resolved %d packages with the %s strategy", res.Stats.Nodes, res.Strategy))
	return res, nil
}

// runGenerate writes the recipe to stdout or to --output.
// Nothing is written when the run fails.
func (c *CLI) runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	res, err := c.run(cmd.Context(), loggerFromContext(cmd.Context()), opts)
	if err != nil {
		return err
	}
	data, err := res.Recipe()
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	if err := os.WriteFile(opts.output, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	out := cmd.OutOrStdout()
	printSuccess(out, "Generated recipe")
	printFile(out, opts.output)
	printStats(out, res.Stats.Crates, res.Stats.Git, res.Stats.Misses, res.Stats.CacheHit)
	return nil
}
