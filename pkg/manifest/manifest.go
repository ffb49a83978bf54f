// Package manifest loads and validates essay manifests.
//
// A manifest is a TOML file listing the essays to composite, one [[essay]]
// table per essay:
//
//	[[essay]]
//	slug = "night-walks"
//	title = "Night Walks"
//	hero = "hero.png"
//	supports = ["support-ticket.png", "support-map.png"]
//	strips = ["strip-odyssey.png"]
//	ground = "olive"
//
// Asset paths are relative to the asset directory passed at render time.
package manifest

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/Travis-Gilbert/collage/pkg/errors"
)

// Essay describes a single collage to composite.
type Essay struct {
	Slug     string   `toml:"slug"`
	Title    string   `toml:"title"`
	Hero     string   `toml:"hero"`
	Supports []string `toml:"supports"`
	Strips   []string `toml:"strips"`
	Ground   string   `toml:"ground"`
}

// Manifest is the parsed contents of an essay manifest file.
type Manifest struct {
	Essays []Essay `toml:"essay"`
}

// Load reads and parses a manifest file, validating every entry.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "manifest not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "failed to read manifest: %s", path)
	}
	return Parse(data)
}

// Parse parses manifest bytes, validating every entry.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "failed to parse manifest")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks every essay entry for correctness.
// Slugs must be valid and unique; asset paths must stay inside the asset root.
func (m *Manifest) Validate() error {
	if len(m.Essays) == 0 {
		return errors.New(errors.ErrCodeInvalidManifest, "manifest contains no essays")
	}

	seen := make(map[string]bool, len(m.Essays))
	for i, e := range m.Essays {
		if err := errors.ValidateSlug(e.Slug); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidManifest, err, "essay %d", i)
		}
		if seen[e.Slug] {
			return errors.New(errors.ErrCodeInvalidManifest, "duplicate slug: %q", e.Slug)
		}
		seen[e.Slug] = true

		for _, p := range assetPaths(e) {
			if err := errors.ValidatePath(p); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidManifest, err, "essay %q", e.Slug)
			}
		}
	}
	return nil
}

// Find returns the essay with the given slug.
func (m *Manifest) Find(slug string) (Essay, error) {
	for _, e := range m.Essays {
		if e.Slug == slug {
			return e, nil
		}
	}
	return Essay{}, errors.New(errors.ErrCodeEssayNotFound, "essay not found: %q", slug)
}

// Slugs returns the slugs of all essays in manifest order.
func (m *Manifest) Slugs() []string {
	out := make([]string, len(m.Essays))
	for i, e := range m.Essays {
		out[i] = e.Slug
	}
	return out
}

func assetPaths(e Essay) []string {
	paths := make([]string, 0, 1+len(e.Supports)+len(e.Strips))
	if e.Hero != "" {
		paths = append(paths, e.Hero)
	}
	paths = append(paths, e.Supports...)
	paths = append(paths, e.Strips...)
	return paths
}
