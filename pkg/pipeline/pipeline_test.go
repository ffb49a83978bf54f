package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/Travis-Gilbert/collage/pkg/cache"
	"github.com/Travis-Gilbert/collage/pkg/collage"
	"github.com/Travis-Gilbert/collage/pkg/errors"
)

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

// testWorkspace builds an asset dir with synthetic cutouts plus a manifest
// referencing them, and returns run options pointed at a fresh output dir.
func testWorkspace(t *testing.T) Options {
	t.Helper()
	root := t.TempDir()

	assetDir := filepath.Join(root, "assets")
	if _, err := collage.BuildSyntheticAssets(assetDir); err != nil {
		t.Fatalf("BuildSyntheticAssets() error = %v", err)
	}

	manifestBody := `
[[essay]]
slug = "night-walks"
hero = "hero.png"
supports = ["support-zoning-map.png", "support-coffee-mug.png"]
strips = ["strip-odyssey.png"]
ground = "olive"

[[essay]]
slug = "field-notes"
ground = "dark"
`
	manifestPath := filepath.Join(root, "essays.toml")
	if err := os.WriteFile(manifestPath, []byte(manifestBody), 0o644); err != nil {
		t.Fatal(err)
	}

	return Options{
		Manifest:  manifestPath,
		AssetDir:  assetDir,
		OutputDir: filepath.Join(root, "out"),
		Width:     240,
		Height:    150,
		Logger:    discardLogger(),
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if opts.Manifest != DefaultManifest {
		t.Errorf("Manifest = %q, want %q", opts.Manifest, DefaultManifest)
	}
	if opts.OutputDir != DefaultOutputDir {
		t.Errorf("OutputDir = %q, want %q", opts.OutputDir, DefaultOutputDir)
	}
	if opts.Size != SizeFull {
		t.Errorf("Size = %q, want %q", opts.Size, SizeFull)
	}
	if opts.Quality != collage.DefaultQuality {
		t.Errorf("Quality = %d, want %d", opts.Quality, collage.DefaultQuality)
	}

	bad := Options{Size: "huge"}
	if err := bad.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidSize) {
		t.Errorf("invalid size error = %v, want %v", err, errors.ErrCodeInvalidSize)
	}

	badQ := Options{Quality: 150}
	if err := badQ.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("invalid quality error = %v, want %v", err, errors.ErrCodeInvalidInput)
	}

	// The manifest may live anywhere, but its filename must not be hidden.
	hidden := Options{Manifest: "content/.essays.toml"}
	if err := hidden.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidManifest) {
		t.Errorf("hidden manifest error = %v, want %v", err, errors.ErrCodeInvalidManifest)
	}

	nested := Options{Manifest: "content/essays.toml"}
	if err := nested.ValidateAndSetDefaults(); err != nil {
		t.Errorf("nested manifest path rejected: %v", err)
	}
}

func TestDimensions(t *testing.T) {
	tests := []struct {
		name  string
		opts  Options
		wantW int
		wantH int
	}{
		{"full preset", Options{Size: SizeFull}, FullWidth, FullHeight},
		{"preview preset", Options{Size: SizePreview}, PreviewWidth, PreviewHeight},
		{"explicit overrides preset", Options{Size: SizePreview, Width: 300, Height: 200}, 300, 200},
		{"width alone does not override", Options{Size: SizeFull, Width: 300}, FullWidth, FullHeight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := tt.opts.Dimensions()
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("Dimensions() = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestExecuteRendersAndSkips(t *testing.T) {
	opts := testWorkspace(t)
	runner := NewRunner(cache.NewNullCache(), nil, discardLogger())

	result, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.RunID == "" {
		t.Error("RunID is empty")
	}
	if result.Rendered != 2 || result.Failed != 0 {
		t.Fatalf("first run: rendered = %d, failed = %d, want 2, 0", result.Rendered, result.Failed)
	}
	for _, slug := range []string{"night-walks", "field-notes"} {
		out := filepath.Join(opts.OutputDir, slug+".jpg")
		if _, err := os.Stat(out); err != nil {
			t.Errorf("output %s missing: %v", out, err)
		}
	}

	// Second run hits the skip path for everything.
	result, err = runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() second run error = %v", err)
	}
	if result.Skipped != 2 || result.Rendered != 0 {
		t.Errorf("second run: skipped = %d, rendered = %d, want 2, 0", result.Skipped, result.Rendered)
	}

	// Force re-renders despite existing outputs.
	opts.Force = true
	result, err = runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() forced run error = %v", err)
	}
	if result.Rendered != 2 {
		t.Errorf("forced run: rendered = %d, want 2", result.Rendered)
	}
}

func TestExecuteServesFromCache(t *testing.T) {
	opts := testWorkspace(t)

	fc, err := cache.NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, discardLogger())
	defer runner.Close()

	result, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.Rendered != 2 {
		t.Fatalf("first run: rendered = %d, want 2", result.Rendered)
	}

	// Delete one output; the re-render should come from the artifact cache.
	out := filepath.Join(opts.OutputDir, "night-walks.jpg")
	if err := os.Remove(out); err != nil {
		t.Fatal(err)
	}

	result, err = runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() second run error = %v", err)
	}
	if result.Cached != 1 {
		t.Errorf("second run: cached = %d, want 1", result.Cached)
	}
	if result.Skipped != 1 {
		t.Errorf("second run: skipped = %d, want 1", result.Skipped)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("cached output not rewritten: %v", err)
	}
}

func TestExecuteSlugFilter(t *testing.T) {
	opts := testWorkspace(t)
	opts.Slugs = []string{"field-notes"}
	runner := NewRunner(nil, nil, discardLogger())

	result, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.Rendered != 1 {
		t.Errorf("rendered = %d, want 1", result.Rendered)
	}
	if _, err := os.Stat(filepath.Join(opts.OutputDir, "night-walks.jpg")); !os.IsNotExist(err) {
		t.Error("filtered-out essay was rendered")
	}

	opts.Slugs = []string{"no-such-essay"}
	_, err = runner.Execute(context.Background(), opts)
	if !errors.Is(err, errors.ErrCodeEssayNotFound) {
		t.Errorf("unknown slug error = %v, want %v", err, errors.ErrCodeEssayNotFound)
	}
}

func TestExecuteDropsMissingAssets(t *testing.T) {
	opts := testWorkspace(t)

	manifestBody := `
[[essay]]
slug = "patchy"
hero = "no-such-hero.png"
supports = ["support-zoning-map.png", "gone.png"]
`
	if err := os.WriteFile(opts.Manifest, []byte(manifestBody), 0o644); err != nil {
		t.Fatal(err)
	}

	runner := NewRunner(nil, nil, discardLogger())
	result, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.Rendered != 1 || result.Failed != 0 {
		t.Errorf("rendered = %d, failed = %d, want 1, 0", result.Rendered, result.Failed)
	}
}

func TestExecuteMissingManifest(t *testing.T) {
	runner := NewRunner(nil, nil, discardLogger())
	opts := Options{
		Manifest: filepath.Join(t.TempDir(), "nope.toml"),
		Logger:   discardLogger(),
	}
	_, err := runner.Execute(context.Background(), opts)
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want %v", err, errors.ErrCodeFileNotFound)
	}
}

func TestExecuteCancelled(t *testing.T) {
	opts := testWorkspace(t)
	runner := NewRunner(nil, nil, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Execute(ctx, opts)
	if err != context.Canceled {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
