// Package cache provides storage for rendered collage artifacts.
//
// A batch run over a manifest re-renders only what changed: the cache key
// for an artifact covers the slug, the composition options, and the content
// hashes of every input image, so touching a cutout or a config invalidates
// exactly the essays that use it.
//
// Two implementations are provided: FileCache for normal CLI use and
// NullCache for disabling caching entirely.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is the retention period for rendered artifacts. Keys are
// content-addressed, so stale entries are garbage rather than wrong.
const TTLArtifact = 30 * 24 * time.Hour

// Cache stores rendered artifact bytes by key.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// found; an expired or unreadable entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// ArtifactKeyOpts carries everything that affects a rendered artifact's
// bytes besides the input images themselves.
type ArtifactKeyOpts struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Ground   string `json:"ground"`
	Fade     bool   `json:"fade"`
	Grain    bool   `json:"grain"`
	Vignette bool   `json:"vignette"`
	Torn     bool   `json:"torn"`
	Quality  int    `json:"quality"`
	Format   string `json:"format"`
}

// Keyer generates cache keys for rendered artifacts.
type Keyer interface {
	// ArtifactKey generates a key from the slug, the render options, and the
	// content hashes of the input images in placement order.
	ArtifactKey(slug string, opts ArtifactKeyOpts, inputHashes []string) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ArtifactKey implements Keyer.
func (k *DefaultKeyer) ArtifactKey(slug string, opts ArtifactKeyOpts, inputHashes []string) string {
	return hashKey("artifact", slug, opts, inputHashes)
}
