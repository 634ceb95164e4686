package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sysviz/sysviz/pkg/model"
	"github.com/sysviz/sysviz/pkg/pipeline"
)

// parseCommand creates the parse command for extracting structural graphs
// from SysML sources.
func (c *CLI) parseCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "parse <model.sysml>",
		Short: "Parse a SysML model file into a structural graph",
		Long: `Parse a SysML model file into a structural graph.

The parser extracts part definitions, actors, use cases, and connections
into a typed element graph. The first top-level part definition becomes the
system boundary. Output is graph JSON that 'layout' accepts directly.

Parsed models are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runParse(cmd.Context(), args[0], output, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cache")

	return cmd
}

func (c *CLI) runParse(ctx context.Context, input, output string, noCache, refresh bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	opts := pipeline.Options{SourcePath: input, Refresh: refresh}
	g, cacheHit, err := runner.ParseWithCacheInfo(ctx, &opts)
	if err != nil {
		return fmt.Errorf("parse %s: %w", input, err)
	}
	prog.done(fmt.Sprintf("Parsed %d elements", g.ElementCount()))

	if output == "" {
		return model.WriteGraph(g, os.Stdout)
	}
	if err := model.WriteGraphFile(g, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Parsed %s", input)
	printFile(output)
	printStats(g.ElementCount(), g.RelationshipCount(), cacheHit)
	printNewline()
	printNextStep("Layout", appName+" layout "+input)

	return nil
}
