package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/Travis-Gilbert/collage/pkg/cache"
	"github.com/Travis-Gilbert/collage/pkg/collage"
	"github.com/Travis-Gilbert/collage/pkg/errors"
	"github.com/Travis-Gilbert/collage/pkg/manifest"
	"github.com/Travis-Gilbert/collage/pkg/observability"
)

// Runner executes batch runs with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store run results. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the manifest → compose → encode loop for every selected essay.
// A per-essay failure is recorded in the result and the run continues; the
// returned error covers run-level problems only (bad options, bad manifest,
// unknown slug filter, cancellation).
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	m, err := manifest.Load(opts.Manifest)
	if err != nil {
		return nil, err
	}

	essays, err := selectEssays(m, opts.Slugs)
	if err != nil {
		return nil, err
	}

	result := &Result{RunID: uuid.NewString()}
	start := time.Now()

	opts.Logger.Info("starting run", "run_id", result.RunID, "essays", len(essays))
	observability.Render().OnRunStart(ctx, result.RunID, len(essays))

	for _, e := range essays {
		if err := ctx.Err(); err != nil {
			result.Duration = time.Since(start)
			return result, err
		}

		res := r.renderEssay(ctx, e, opts)
		result.Essays = append(result.Essays, res)

		switch res.Status {
		case StatusRendered:
			result.Rendered++
			opts.Logger.Info("rendered", "slug", e.Slug, "output", res.Output, "duration", res.Duration)
		case StatusSkipped:
			result.Skipped++
			opts.Logger.Debug("skipped, output exists", "slug", e.Slug, "output", res.Output)
		case StatusCached:
			result.Cached++
			opts.Logger.Info("served from cache", "slug", e.Slug, "output", res.Output)
		case StatusFailed:
			result.Failed++
			opts.Logger.Error("failed", "slug", e.Slug, "error", res.Err)
		}
	}

	result.Duration = time.Since(start)
	observability.Render().OnRunComplete(ctx, result.RunID, result.Rendered, result.Skipped, result.Failed, result.Duration)

	opts.Logger.Info("run complete",
		"run_id", result.RunID,
		"rendered", result.Rendered,
		"skipped", result.Skipped,
		"cached", result.Cached,
		"failed", result.Failed,
		"duration", result.Duration)

	return result, nil
}

// renderEssay produces the output for one essay. Missing asset files are
// logged and dropped rather than failing the essay; the compositor adapts
// the layout to whatever inputs remain.
func (r *Runner) renderEssay(ctx context.Context, e manifest.Essay, opts Options) EssayResult {
	start := time.Now()
	outPath := filepath.Join(opts.OutputDir, e.Slug+".jpg")
	res := EssayResult{Slug: e.Slug, Output: outPath}

	fail := func(err error) EssayResult {
		res.Status = StatusFailed
		res.Err = err
		res.Duration = time.Since(start)
		return res
	}

	if !opts.Force {
		if _, err := os.Stat(outPath); err == nil {
			res.Status = StatusSkipped
			res.Duration = time.Since(start)
			return res
		}
	}

	in := r.resolveInputs(e, opts)

	w, h := opts.Dimensions()
	copts := collage.DefaultOptions()
	copts.Width = w
	copts.Height = h
	copts.Quality = opts.Quality
	if e.Ground != "" {
		copts.Ground = e.Ground
	}

	keyOpts := cache.ArtifactKeyOpts{
		Width:    copts.Width,
		Height:   copts.Height,
		Ground:   copts.Ground,
		Fade:     copts.FadeToParchment,
		Grain:    copts.Grain,
		Vignette: copts.Vignette,
		Torn:     copts.TornEdges,
		Quality:  copts.Quality,
		Format:   "jpg",
	}
	key := r.Keyer.ArtifactKey(e.Slug, keyOpts, hashInputs(in))

	if !opts.NoCache {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			if err := writeFile(outPath, data); err != nil {
				return fail(err)
			}
			res.Status = StatusCached
			res.Duration = time.Since(start)
			return res
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	observability.Render().OnComposeStart(ctx, e.Slug)
	img, err := collage.Compose(e.Slug, in, copts)
	observability.Render().OnComposeComplete(ctx, e.Slug, copts.Width, copts.Height, time.Since(start), err)
	if err != nil {
		return fail(errors.Wrap(errors.ErrCodeCompose, err, "compose %s", e.Slug))
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(copts.Quality)); err != nil {
		return fail(errors.Wrap(errors.ErrCodeEncode, err, "encode %s", e.Slug))
	}

	if err := writeFile(outPath, buf.Bytes()); err != nil {
		return fail(err)
	}

	if !opts.NoCache {
		if err := r.Cache.Set(ctx, key, buf.Bytes(), cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", buf.Len())
		}
	}

	res.Status = StatusRendered
	res.Duration = time.Since(start)
	return res
}

// resolveInputs joins manifest asset paths against the asset directory and
// drops files that do not exist, logging each one. Dropping happens here so
// the cache key only covers inputs that actually contribute pixels.
func (r *Runner) resolveInputs(e manifest.Essay, opts Options) collage.Inputs {
	resolve := func(rel string) string {
		if rel == "" {
			return ""
		}
		p := filepath.Join(opts.AssetDir, rel)
		if _, err := os.Stat(p); err != nil {
			opts.Logger.Warn("asset missing, dropping", "slug", e.Slug, "path", p)
			return ""
		}
		return p
	}

	var in collage.Inputs
	in.Hero = resolve(e.Hero)
	for _, s := range e.Supports {
		if p := resolve(s); p != "" {
			in.Supports = append(in.Supports, p)
		}
	}
	for _, s := range e.Strips {
		if p := resolve(s); p != "" {
			in.Strips = append(in.Strips, p)
		}
	}
	return in
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// selectEssays filters the manifest by the requested slugs, preserving
// manifest order. An unknown slug is a run-level error.
func selectEssays(m *manifest.Manifest, slugs []string) ([]manifest.Essay, error) {
	if len(slugs) == 0 {
		return m.Essays, nil
	}

	want := make(map[string]bool, len(slugs))
	for _, s := range slugs {
		if _, err := m.Find(s); err != nil {
			return nil, err
		}
		want[s] = true
	}

	out := make([]manifest.Essay, 0, len(want))
	for _, e := range m.Essays {
		if want[e.Slug] {
			out = append(out, e)
		}
	}
	return out, nil
}

// hashInputs returns content hashes for the resolved inputs in placement
// order. Unreadable files hash as empty, which still perturbs the key.
func hashInputs(in collage.Inputs) []string {
	paths := make([]string, 0, 1+len(in.Supports)+len(in.Strips))
	if in.Hero != "" {
		paths = append(paths, in.Hero)
	}
	paths = append(paths, in.Supports...)
	paths = append(paths, in.Strips...)

	hashes := make([]string, len(paths))
	for i, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			hashes[i] = ""
			continue
		}
		hashes[i] = cache.Hash(data)
	}
	return hashes
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create output directory")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}
