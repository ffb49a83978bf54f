package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Travis-Gilbert/collage/pkg/collage"
	"github.com/Travis-Gilbert/collage/pkg/pipeline"
)

// demoManifest references the synthetic asset set by its fixed filenames.
const demoManifest = `[[essay]]
slug = "walking-city"
title = "The Walking City"
hero = "hero.png"
supports = ["support-zoning-map.png", "support-hamming-book.png", "support-coffee-mug.png", "support-pi-board.png", "support-new-yorker.png"]
strips = ["strip-odyssey.png", "strip-zoning.png", "strip-data.png"]
ground = "olive"

[[essay]]
slug = "hamming-questions"
title = "Hamming Questions"
hero = "hero.png"
supports = ["support-hamming-book.png", "support-pi-board.png"]
strips = ["strip-data.png"]
ground = "dark"

[[essay]]
slug = "marginalia"
title = "Marginalia"
supports = ["support-new-yorker.png"]
ground = "#463c2e"
`

// demoCommand creates the demo command, which renders a sample set from
// generated placeholder cutouts. Useful for trying the tool without any
// scanned assets on hand.
func (c *CLI) demoCommand() *cobra.Command {
	var size string

	cmd := &cobra.Command{
		Use:   "demo [dir]",
		Short: "Build synthetic assets and render a sample set",
		Long: `Demo writes placeholder cutouts and a sample manifest into a directory,
then renders the full set. The result shows every layer of the compositor
without needing real scans.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "demo"
			if len(args) > 0 {
				dir = args[0]
			}
			return c.runDemo(cmd, dir, size)
		},
	}

	cmd.Flags().StringVar(&size, "size", pipeline.SizePreview, "size preset: preview (default), full")

	return cmd
}

func (c *CLI) runDemo(cmd *cobra.Command, dir, size string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	assetDir := filepath.Join(dir, "assets")
	printInfo("Building synthetic assets in %s", assetDir)
	if _, err := collage.BuildSyntheticAssets(assetDir); err != nil {
		return err
	}

	manifestPath := filepath.Join(dir, "essays.toml")
	if _, err := os.Stat(manifestPath); os.IsNotExist(err) {
		if err := os.WriteFile(manifestPath, []byte(demoManifest), 0o644); err != nil {
			return fmt.Errorf("write demo manifest: %w", err)
		}
		printDetail("Wrote %s", manifestPath)
	}

	runner, err := c.newRunner(true)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering demo set...")
	spinner.Start()

	result, err := runner.Execute(ctx, pipeline.Options{
		Manifest:  manifestPath,
		AssetDir:  assetDir,
		OutputDir: filepath.Join(dir, "out"),
		Size:      size,
		Force:     true,
		NoCache:   true,
		Logger:    logger,
	})
	if err != nil {
		spinner.StopWithError("Demo render failed")
		return err
	}
	spinner.Stop()

	printSummary(result)
	printNewline()
	printNextStep("Render at full size", fmt.Sprintf("collage demo %s --size full", dir))

	if result.Failed > 0 {
		return fmt.Errorf("%d demo renders failed", result.Failed)
	}
	return nil
}
