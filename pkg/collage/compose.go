// Package collage implements a deterministic procedural collage compositor.
//
// A composition is a pure function of a seed string (the essay slug), the
// set of input cutout images, and the canvas options: the same inputs always
// produce a bit-identical raster. The layout is driven by a small seeded RNG
// threaded explicitly through every layer, so independent compositions can
// run concurrently without interfering.
//
// The layer stack, bottom to top: solid ground, blueprint grid, dot grid,
// color blocks, strip fragments, support cutouts, the hero cutout, gesture
// scribbles, sketch connector lines, accent shapes. The flattened result
// then passes through vignette, grain, warm color grade, and a bottom fade
// to parchment.
//
// Missing input files degrade the layout instead of failing it; only
// unreadable (corrupt) inputs and output I/O failures are reported as
// errors.
package collage

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// supportZone is a rectangle-of-probability for one support slot, expressed
// as fractional bounds of canvas width/height plus a height-fraction range.
// Bounds near or past 0.0/1.0 are deliberate: fragments bleed off the frame
// and clip at the canvas boundary.
type supportZone struct {
	xLo, xHi   float64
	yLo, yHi   float64
	scLo, scHi float64
}

// supportZones are the five fixed placement zones, in slot order. Supports
// beyond the fifth wrap back to zone 0. The exact fractions are creative
// constants; keep them stable for visual compatibility across regenerations.
var supportZones = [...]supportZone{
	{0.02, 0.32, -0.05, 0.35, 0.22, 0.40}, // upper-left, bleeds left+top
	{0.65, 0.95, -0.02, 0.30, 0.20, 0.38}, // upper-right, bleeds right+top
	{0.00, 0.25, 0.30, 0.58, 0.18, 0.34},  // left edge, mid-height, bleeds left
	{0.72, 0.98, 0.28, 0.55, 0.18, 0.32},  // right edge, mid-height, bleeds right
	{0.30, 0.55, 0.48, 0.66, 0.16, 0.30},  // below hero center, no bleed
}

// Compose renders one collage and returns the flattened raster. The result
// always has exactly opts.Width x opts.Height pixels regardless of how many
// fragments were supplied or how far they bleed past the edges.
func Compose(slug string, in Inputs, opts Options) (*image.NRGBA, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	rng := NewRNG(slug)
	w, h := opts.Width, opts.Height
	fw, fh := float64(w), float64(h)

	// 1. Ground
	canvas := imaging.New(w, h, ParseGround(opts.Ground))

	// 2. Blueprint grid, very subtle
	grid := gg.NewContext(w, h)
	drawBlueprintGrid(grid, w, h, 40, 0.05, Cream)
	canvas = imaging.Overlay(canvas, grid.Image(), image.Point{}, 1.0)

	// 3. Scattered dot grid
	dots := gg.NewContext(w, h)
	drawDotGrid(dots, w, h, rng, 0.12, 0.5, NearBlack)
	canvas = imaging.Overlay(canvas, dots.Image(), image.Point{}, 1.0)

	// 4. Color blocks, low z, behind all photographic layers
	blocks := gg.NewContext(w, h)
	nBlocks := int(Lerp(3, 6, rng.Float()))
	drawColorBlocks(blocks, w, h, nBlocks, rng, BlockPalette)
	canvas = imaging.Overlay(canvas, blocks.Image(), image.Point{}, 1.0)

	// 5. Strip fragments. At least two strips are always drawn, using
	// synthetic fallbacks when no image backs a slot.
	nStrips := len(in.Strips) + 1
	if nStrips < 2 {
		nStrips = 2
	}
	for i := 0; i < nStrips; i++ {
		stripW := int(Lerp(fw*0.06, fw*0.14, rng.Float()))
		stripH := int(Lerp(fh*0.55, fh*0.90, rng.Float()))

		var strip *image.NRGBA
		if i < len(in.Strips) && fileExists(in.Strips[i]) {
			img, err := loadCutout(in.Strips[i])
			if err != nil {
				return nil, err
			}
			strip = resizeToFit(img, stripW*2, stripH)
		} else {
			strip = syntheticStrip(stripW, stripH)
		}

		if opts.TornEdges {
			strip = tornEdge(strip, rng, 8)
		}

		angle := Lerp(-12, 12, rng.Float())
		sx := int(Lerp(fw*-0.05, fw*0.85, rng.Float()))
		sy := int(Lerp(float64(stripH)*-0.35, fh*0.15, rng.Float()))
		canvas = pasteCenter(canvas, rotateFragment(strip, angle), sx, sy)
	}

	// 6. Support cutouts, clustered tight around the hero center. A missing
	// file skips the slot without consuming randomness, so the remaining
	// supports keep their layout.
	for i, path := range in.Supports {
		if !fileExists(path) {
			continue
		}
		img, err := loadCutout(path)
		if err != nil {
			return nil, err
		}

		zone := supportZones[i%len(supportZones)]
		targetH := int(Lerp(fh*zone.scLo, fh*zone.scHi, rng.Float()))
		frag := resizeToHeight(img, targetH)

		if opts.TornEdges {
			frag = tornEdge(frag, rng, 10)
		}

		cx := int(Lerp(fw*zone.xLo, fw*zone.xHi, rng.Float()))
		cy := int(Lerp(fh*zone.yLo, fh*zone.yHi, rng.Float()))
		angle := Lerp(-10, 10, rng.Float())
		canvas = pasteCenter(canvas, rotateFragment(frag, angle), cx, cy)
	}

	// 7. Hero, highest photographic z: large, center-weighted, barely
	// rotated so it stays visually anchored under the more chaotic supports.
	if in.Hero != "" && fileExists(in.Hero) {
		img, err := loadCutout(in.Hero)
		if err != nil {
			return nil, err
		}

		heroH := int(Lerp(fh*0.50, fh*0.65, rng.Float()))
		hero := resizeToHeight(img, heroH)

		if opts.TornEdges {
			hero = tornEdge(hero, rng, 14)
		}

		cx := int(Lerp(fw*0.38, fw*0.58, rng.Float()))
		cy := int(Lerp(fh*0.26, fh*0.42, rng.Float()))
		angle := Lerp(-3, 3, rng.Float())
		canvas = pasteCenter(canvas, rotateFragment(hero, angle), cx, cy)
	}

	// 8. Gesture scribbles
	gestures := gg.NewContext(w, h)
	nGestures := int(Lerp(2, 5, rng.Float()))
	drawGestureLines(gestures, w, h, nGestures, rng, TerracottaLite, 0.30)
	canvas = imaging.Overlay(canvas, gestures.Image(), image.Point{}, 1.0)

	// 9. Sketch connector lines
	sketch := gg.NewContext(w, h)
	nSketch := int(Lerp(4, 8, rng.Float()))
	drawSketchLines(sketch, w, h, nSketch, rng, Cream, 0.12)
	canvas = imaging.Overlay(canvas, sketch.Image(), image.Point{}, 1.0)

	// 10. Accent shapes, top z
	accents := gg.NewContext(w, h)
	nAccents := int(Lerp(7, 12, rng.Float()))
	drawAccentShapes(accents, w, h, nAccents, rng, AccentPalette)
	canvas = imaging.Overlay(canvas, accents.Image(), image.Point{}, 1.0)

	// 11. Flatten and post-process
	result := flatten(canvas)
	if opts.Vignette {
		result = applyVignette(result, 0.35)
	}
	if opts.Grain {
		// Fresh stream from the same slug hash: the grain field is
		// reproducible but independent of how many layout draws happened.
		result = applyGrain(result, NewRNGFromState(HashString(slug)), 0.025)
	}
	result = colorGrade(result, 0.05)
	if opts.FadeToParchment {
		result = applyBottomFade(result, 0.70, Parchment)
	}

	return result, nil
}

// ComposeFile renders one collage and writes it to output, encoded by file
// extension (.jpg/.jpeg/.png). The immediate parent directory is created if
// needed; deeper output management is the caller's concern.
func ComposeFile(slug string, in Inputs, opts Options, output string) error {
	img, err := Compose(slug, in, opts)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir %s: %w", dir, err)
		}
	}
	if err := imaging.Save(img, output, imaging.JPEGQuality(opts.Quality)); err != nil {
		return fmt.Errorf("save %s: %w", output, err)
	}
	return nil
}
