package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Travis-Gilbert/collage/pkg/collage"
	"github.com/Travis-Gilbert/collage/pkg/errors"
	"github.com/Travis-Gilbert/collage/pkg/manifest"
	"github.com/Travis-Gilbert/collage/pkg/pipeline"
)

// composeOpts holds the command-line flags for the compose command.
type composeOpts struct {
	manifest string   // manifest file path
	assets   string   // asset directory for manifest-resolved paths
	hero     string   // explicit hero path, bypasses the manifest
	supports []string // explicit support paths
	strips   []string // explicit strip paths
	ground   string   // ground override
	output   string   // output file path
	size     string   // size preset: "preview" or "full"
	width    int      // explicit width, overrides preset with height
	height   int      // explicit height, overrides preset with width

	noFade     bool // skip the bottom parchment fade
	noGrain    bool // skip film grain
	noVignette bool // skip the vignette
	noTorn     bool // skip torn-edge masking

	quality     int  // JPEG quality
	interactive bool // pick the essay from a list
}

// composeCommand creates the compose command for rendering a single collage.
// Inputs come from the manifest entry for the slug, or directly from
// --hero/--support/--strip flags without touching a manifest at all.
func (c *CLI) composeCommand() *cobra.Command {
	opts := composeOpts{
		manifest: pipeline.DefaultManifest,
		assets:   pipeline.DefaultAssetDir,
		size:     pipeline.DefaultSize,
	}

	cmd := &cobra.Command{
		Use:   "compose [slug]",
		Short: "Render a single collage",
		Long: `Compose renders one collage header. The slug seeds the layout, so
re-running with the same inputs and options always reproduces the same
image.

Inputs are resolved from the manifest entry for the slug. Passing any of
--hero, --support, or --strip switches to direct mode: the given paths are
used as-is and the manifest is not read. With no slug (or with
--interactive), an essay picker is shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slug := ""
			if len(args) > 0 {
				slug = args[0]
			}
			return c.runCompose(cmd, slug, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.manifest, "manifest", "m", opts.manifest, "essay manifest file")
	cmd.Flags().StringVar(&opts.assets, "assets", opts.assets, "asset directory for manifest paths")
	cmd.Flags().StringVar(&opts.hero, "hero", "", "hero cutout path (direct mode)")
	cmd.Flags().StringArrayVar(&opts.supports, "support", nil, "support cutout path (direct mode, repeatable)")
	cmd.Flags().StringArrayVar(&opts.strips, "strip", nil, "strip fragment path (direct mode, repeatable)")
	cmd.Flags().StringVar(&opts.ground, "ground", "", "ground color: olive, dark, or #RRGGBB")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default public/collage/<slug>.jpg)")
	cmd.Flags().StringVar(&opts.size, "size", opts.size, "size preset: full (default), preview")
	cmd.Flags().IntVar(&opts.width, "width", 0, "explicit width in pixels (with --height, overrides --size)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "explicit height in pixels (with --width, overrides --size)")
	cmd.Flags().BoolVar(&opts.noFade, "no-fade", false, "skip the bottom parchment fade")
	cmd.Flags().BoolVar(&opts.noGrain, "no-grain", false, "skip film grain")
	cmd.Flags().BoolVar(&opts.noVignette, "no-vignette", false, "skip the vignette")
	cmd.Flags().BoolVar(&opts.noTorn, "no-torn", false, "skip torn-edge masking")
	cmd.Flags().IntVarP(&opts.quality, "quality", "q", 0, "JPEG quality 1-100 (default 93)")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "pick the essay from a list")

	return cmd
}

func (c *CLI) runCompose(cmd *cobra.Command, slug string, opts *composeOpts) error {
	direct := opts.hero != "" || len(opts.supports) > 0 || len(opts.strips) > 0

	var in collage.Inputs
	ground := opts.ground

	if direct {
		if slug == "" {
			return errors.New(errors.ErrCodeInvalidInput, "direct mode needs a slug to seed the layout")
		}
		in = collage.Inputs{Hero: opts.hero, Supports: opts.supports, Strips: opts.strips}
	} else {
		m, err := manifest.Load(opts.manifest)
		if err != nil {
			return err
		}
		if slug == "" || opts.interactive {
			slug, err = selectEssay(m)
			if err != nil {
				return err
			}
			if slug == "" {
				printInfo("No essay selected")
				return nil
			}
		}
		essay, err := m.Find(slug)
		if err != nil {
			return err
		}
		in = essayInputs(essay, opts.assets)
		if ground == "" {
			ground = essay.Ground
		}
	}

	if err := errors.ValidateSlug(slug); err != nil {
		return err
	}

	// Borrow the pipeline's preset resolution so compose and generate agree
	// on what "preview" and "full" mean.
	sizing := pipeline.Options{Size: opts.size, Width: opts.width, Height: opts.height}
	if err := sizing.ValidateAndSetDefaults(); err != nil {
		return err
	}

	copts := collage.DefaultOptions()
	copts.Width, copts.Height = sizing.Dimensions()
	if ground != "" {
		copts.Ground = ground
	}
	if opts.quality > 0 {
		copts.Quality = opts.quality
	}
	copts.FadeToParchment = !opts.noFade
	copts.Grain = !opts.noGrain
	copts.Vignette = !opts.noVignette
	copts.TornEdges = !opts.noTorn

	output := opts.output
	if output == "" {
		output = filepath.Join(pipeline.DefaultOutputDir, slug+".jpg")
	}

	spinner := newSpinnerWithContext(cmd.Context(), fmt.Sprintf("Composing %s...", slug))
	spinner.Start()

	if err := collage.ComposeFile(slug, in, copts, output); err != nil {
		spinner.StopWithError("Compose failed")
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Rendered %s at %dx%d", slug, copts.Width, copts.Height))

	printFile(output)
	return nil
}

// essayInputs resolves a manifest entry's asset paths against the asset
// directory. Existence is not checked here; the compositor skips slots whose
// file is missing.
func essayInputs(e manifest.Essay, assetDir string) collage.Inputs {
	var in collage.Inputs
	if e.Hero != "" {
		in.Hero = filepath.Join(assetDir, e.Hero)
	}
	for _, s := range e.Supports {
		in.Supports = append(in.Supports, filepath.Join(assetDir, s))
	}
	for _, s := range e.Strips {
		in.Strips = append(in.Strips, filepath.Join(assetDir, s))
	}
	return in
}
