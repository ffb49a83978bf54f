package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Travis-Gilbert/collage/pkg/errors"
	"github.com/Travis-Gilbert/collage/pkg/manifest"
	"github.com/Travis-Gilbert/collage/pkg/pipeline"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	assets      string   // asset directory
	output      string   // output directory
	preview     bool     // render at the preview preset
	full        bool     // render at the full preset
	width       int      // explicit width, overrides preset with height
	height      int      // explicit height, overrides preset with width
	quality     int      // JPEG quality
	slugs       []string // limit the run to these essays
	force       bool     // re-render existing outputs
	noCache     bool     // bypass the artifact cache
	interactive bool     // pick a single essay from a list
}

// generateCommand creates the generate command for batch rendering.
//
// Default behavior mirrors a site build step: outputs that already exist
// are left alone, so repeated runs only touch new or deleted headers.
func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{
		assets: pipeline.DefaultAssetDir,
		output: pipeline.DefaultOutputDir,
	}

	cmd := &cobra.Command{
		Use:   "generate [manifest]",
		Short: "Render every essay in the manifest",
		Long: `Generate walks the essay manifest and renders a collage header for each
entry, skipping essays whose output already exists. Use --force to
re-render everything, --slug to limit the run to specific essays, or
--interactive to pick one from a list.

The manifest defaults to ` + pipeline.DefaultManifest + ` in the current directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manifestPath := pipeline.DefaultManifest
			if len(args) > 0 {
				manifestPath = args[0]
			}
			return c.runGenerate(cmd, manifestPath, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.assets, "assets", opts.assets, "asset directory")
	cmd.Flags().StringVarP(&opts.output, "output-dir", "o", opts.output, "output directory")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "render at the preview preset (900x562)")
	cmd.Flags().BoolVar(&opts.full, "full", false, "render at the full preset (1400x875, the default)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "explicit width in pixels (with --height, overrides presets)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "explicit height in pixels (with --width, overrides presets)")
	cmd.Flags().IntVarP(&opts.quality, "quality", "q", 0, "JPEG quality 1-100 (default 93)")
	cmd.Flags().StringArrayVar(&opts.slugs, "slug", nil, "render only this essay (repeatable)")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "re-render outputs that already exist")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "pick a single essay from a list")

	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, manifestPath string, opts *generateOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	size, err := resolveSize(opts.preview, opts.full)
	if err != nil {
		return err
	}

	slugs := opts.slugs
	if opts.interactive {
		m, err := manifest.Load(manifestPath)
		if err != nil {
			return err
		}
		slug, err := selectEssay(m)
		if err != nil {
			return err
		}
		if slug == "" {
			printInfo("No essay selected")
			return nil
		}
		slugs = []string{slug}
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		Manifest:  manifestPath,
		AssetDir:  opts.assets,
		OutputDir: opts.output,
		Size:      size,
		Width:     opts.width,
		Height:    opts.height,
		Quality:   opts.quality,
		Slugs:     slugs,
		Force:     opts.force,
		NoCache:   opts.noCache,
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Processed %d essays", len(result.Essays)))

	printSummary(result)

	if result.Failed > 0 {
		return fmt.Errorf("%d of %d essays failed", result.Failed, len(result.Essays))
	}
	return nil
}

// resolveSize maps the --preview/--full flags onto a size preset.
func resolveSize(preview, full bool) (string, error) {
	switch {
	case preview && full:
		return "", errors.New(errors.ErrCodeInvalidSize, "--preview and --full are mutually exclusive")
	case preview:
		return pipeline.SizePreview, nil
	default:
		return pipeline.SizeFull, nil
	}
}

// printSummary prints the outcome of a batch run.
func printSummary(result *pipeline.Result) {
	if result.Failed == 0 {
		printSuccess("Generated collages")
	} else {
		printWarning("Generated with failures")
	}
	printStats(result.Rendered, result.Skipped, result.Cached, result.Failed)

	for _, e := range result.Essays {
		switch e.Status {
		case pipeline.StatusRendered, pipeline.StatusCached:
			printFile(e.Output)
		case pipeline.StatusFailed:
			printDetail("%s: %v", e.Slug, e.Err)
		}
	}
}
