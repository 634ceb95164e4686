package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sysviz/sysviz/pkg/layout"
	"github.com/sysviz/sysviz/pkg/pipeline"
)

// layoutCommand creates the layout command for computing diagram layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout <model.sysml>",
		Short: "Compute diagram layouts from a SysML model",
		Long: `Compute diagram layouts from a SysML model.

The layout command parses the model, splits it into diagram units (the full
combined diagram plus one focused diagram per connection), and computes a
collision-free, canvas-fitted position for every element. Output is a JSON
document with one layout per unit.

Layouts are deterministic: the same model and options always produce the
same positions. Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.SourcePath = args[0]
			return c.runLayout(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass the cache")

	cmd.Flags().Float64Var(&opts.Width, "width", 0, "canvas width")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "canvas height")
	cmd.Flags().BoolVar(&opts.FullOnly, "full-only", false, "compute only the full combined diagram")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "force-layout random seed")

	return cmd
}

// runLayout executes the pipeline and writes the layout document.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	// Config supplies canvas and tuning; flags override the canvas.
	canvas := cfg.LayoutCanvas()
	if opts.Width == 0 {
		opts.Width = canvas.Width
	}
	if opts.Height == 0 {
		opts.Height = canvas.Height
	}
	opts.MarginX = canvas.MarginX
	opts.MarginY = canvas.MarginY
	opts.Tuning = &cfg.Tuning
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Computing layouts...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layouts: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(opts.SourcePath, filepath.Ext(opts.SourcePath))
		outputPath = base + ".layout.json"
	}
	if err := writeLayoutFile(result, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Laid out %d diagrams", len(result.Layouts))
	printFile(outputPath)
	printStats(result.Stats.ElementCount, result.Stats.RelationshipCount,
		result.CacheInfo.ParseHit && result.CacheInfo.LayoutHit)
	printNewline()
	printNextStep("Serve", appName+" serve")

	return nil
}

// layoutDocument is the JSON structure written by the layout command.
type layoutDocument struct {
	SystemBoundary string           `json:"system_boundary"`
	ModelHash      string           `json:"model_hash"`
	Layouts        []*layout.Result `json:"layouts"`
}

func writeLayoutFile(result *pipeline.Result, path string) error {
	doc := layoutDocument{
		SystemBoundary: result.Graph.SystemBoundary,
		ModelHash:      result.ModelHash,
		Layouts:        result.Layouts,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
