// Package pipeline provides the batch rendering pipeline for collage.
//
// This package implements the manifest → compose → encode loop that the CLI
// uses to keep a directory of rendered headers in sync with an essay
// manifest. By centralizing this logic, skip/force semantics and caching
// behave the same from every entry point.
//
// # Architecture
//
// A run walks the manifest and, for each essay:
//
//  1. Skips it when the output already exists (unless forced)
//  2. Resolves asset paths against the asset directory, dropping missing files
//  3. Serves the artifact from cache when inputs and options are unchanged
//  4. Otherwise composes the collage and encodes it to JPEG
//
// Failures are per-essay: one broken entry does not abort the run.
//
// # Usage
//
// Create a Runner and execute a run:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Manifest:  "essays.toml",
//	    AssetDir:  "assets/collage",
//	    OutputDir: "public/collage",
//	    Size:      pipeline.SizeFull,
//	}
//	result, err := runner.Execute(ctx, opts)
package pipeline

import (
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Travis-Gilbert/collage/pkg/collage"
	"github.com/Travis-Gilbert/collage/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for the CLI
// =============================================================================

const (
	// DefaultManifest is the manifest filename looked up in the working directory.
	DefaultManifest = "essays.toml"

	// DefaultAssetDir is where essay cutouts live.
	DefaultAssetDir = "assets/collage"

	// DefaultOutputDir is where rendered headers are written.
	DefaultOutputDir = "public/collage"

	// DefaultSize is the size preset used when none is given.
	DefaultSize = SizeFull
)

// Size presets. Preview renders fast iteration proofs; full renders the
// dimensions the site serves.
const (
	SizePreview = "preview"
	SizeFull    = "full"
)

// Preset dimensions in pixels.
const (
	PreviewWidth  = 900
	PreviewHeight = 562
	FullWidth     = 1400
	FullHeight    = 875
)

// ValidSizes is the set of supported size presets.
var ValidSizes = map[string]bool{
	SizePreview: true,
	SizeFull:    true,
}

// =============================================================================
// Options - Run Configuration
// =============================================================================

// Options contains all configuration for a batch run.
type Options struct {
	// Manifest is the path to the essay manifest file.
	Manifest string

	// AssetDir is the directory asset paths in the manifest resolve against.
	AssetDir string

	// OutputDir is where rendered JPEGs are written, one per slug.
	OutputDir string

	// Size selects a preset; Width/Height override it when both are set.
	Size   string
	Width  int
	Height int

	// Slugs limits the run to the named essays. Empty means all.
	Slugs []string

	// Force re-renders essays whose output already exists.
	Force bool

	// NoCache bypasses the artifact cache for this run.
	NoCache bool

	// Quality is the JPEG encode quality (1-100).
	Quality int

	// Logger receives per-essay progress. Defaults to a discard logger.
	Logger *log.Logger

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Manifest == "" {
		o.Manifest = DefaultManifest
	}
	// The directory part of the manifest path is the caller's choice; the
	// filename itself must be a plain, visible file.
	if err := errors.ValidateManifestFilename(filepath.Base(o.Manifest)); err != nil {
		return err
	}
	if o.AssetDir == "" {
		o.AssetDir = DefaultAssetDir
	}
	if o.OutputDir == "" {
		o.OutputDir = DefaultOutputDir
	}
	if o.Size == "" {
		o.Size = DefaultSize
	}
	if !ValidSizes[o.Size] {
		return errors.New(errors.ErrCodeInvalidSize, "invalid size: %q (must be one of: preview, full)", o.Size)
	}
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidSize, "width and height must be positive")
	}
	if o.Quality == 0 {
		o.Quality = collage.DefaultQuality
	}
	if o.Quality < 1 || o.Quality > 100 {
		return errors.New(errors.ErrCodeInvalidInput, "quality must be between 1 and 100")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// Dimensions returns the output size in pixels, resolving the preset
// unless an explicit width and height were given.
func (o *Options) Dimensions() (int, int) {
	if o.Width > 0 && o.Height > 0 {
		return o.Width, o.Height
	}
	if o.Size == SizePreview {
		return PreviewWidth, PreviewHeight
	}
	return FullWidth, FullHeight
}

// =============================================================================
// Results
// =============================================================================

// Status describes the outcome of a single essay in a run.
type Status string

const (
	StatusRendered Status = "rendered"
	StatusSkipped  Status = "skipped"
	StatusCached   Status = "cached"
	StatusFailed   Status = "failed"
)

// EssayResult is the outcome of one essay in a run.
type EssayResult struct {
	Slug     string
	Status   Status
	Output   string
	Duration time.Duration
	Err      error
}

// Result contains the outcome of a batch run.
type Result struct {
	// RunID uniquely identifies this run in logs.
	RunID string

	// Essays holds the per-essay outcomes in manifest order.
	Essays []EssayResult

	// Rendered, Skipped, Cached, and Failed count outcomes by status.
	Rendered int
	Skipped  int
	Cached   int
	Failed   int

	// Duration is the wall time of the whole run.
	Duration time.Duration
}
