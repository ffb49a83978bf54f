package collage

import (
	"image/color"

	"github.com/fogleman/gg"
)

// Geometric primitive drawers. Each draws N shapes into an overlay context
// with randomized attributes derived from lerps over fractional canvas
// bounds, never raw pixel constants, so the same logic scales to any canvas
// size. Drawers mutate the context and return nothing.

// setColor applies a palette color with an 8-bit alpha to the context.
func setColor(dc *gg.Context, c color.NRGBA, alpha int) {
	dc.SetRGBA255(int(c.R), int(c.G), int(c.B), alpha)
}

// drawBlueprintGrid draws a uniform axis-aligned line grid at low opacity.
// Fully deterministic: the grid consumes no randomness.
func drawBlueprintGrid(dc *gg.Context, w, h, cell int, opacity float64, c color.NRGBA) {
	setColor(dc, c, int(opacity*255))
	dc.SetLineWidth(1)
	for x := 0; x < w; x += cell {
		dc.DrawLine(float64(x), 0, float64(x), float64(h))
		dc.Stroke()
	}
	for y := 0; y < h; y += cell {
		dc.DrawLine(0, float64(y), float64(w), float64(y))
		dc.Stroke()
	}
}

// drawDotGrid scatters tiny squares on a regular lattice. Each cell is
// included with probability density (a Bernoulli draw per cell), giving a
// loose data-texture feel. The lattice stops at 72% of canvas height.
func drawDotGrid(dc *gg.Context, w, h int, rng *RNG, density, opacity float64, c color.NRGBA) {
	setColor(dc, c, int(opacity*255))
	const step = 28
	maxY := int(float64(h) * 0.72)
	for gx := 0; gx < w; gx += step {
		for gy := 0; gy < maxY; gy += step {
			if rng.Float() < density {
				dc.DrawRectangle(float64(gx), float64(gy), 2, 2)
				dc.Fill()
			}
		}
	}
}

// drawColorBlocks draws n rotated flat-color rectangles. Blocks are allowed
// to extend past the left, top, and right edges (bleed); the overlay clips
// them at the canvas boundary.
func drawColorBlocks(dc *gg.Context, w, h, n int, rng *RNG, palette []color.NRGBA) {
	fw, fh := float64(w), float64(h)
	for i := 0; i < n; i++ {
		c := Pick(palette, rng)
		alpha := int(Lerp(140, 220, rng.Float()))

		// small squares up to larger rectangles
		bw := Lerp(fw*0.06, fw*0.22, rng.Float())
		bh := Lerp(fh*0.08, fh*0.28, rng.Float())
		bx := Lerp(fw*-0.08, fw*0.88-bw, rng.Float())
		by := Lerp(fh*-0.06, fh*0.58, rng.Float())
		angle := Lerp(-8, 8, rng.Float())

		setColor(dc, c, alpha)
		dc.Push()
		dc.RotateAbout(gg.Radians(angle), bx+bw/2, by+bh/2)
		dc.DrawRectangle(bx, by, bw, bh)
		dc.Fill()
		dc.Pop()
	}
}

// drawAccentShapes draws n small punctuation shapes: 40% squares, 60%
// circles. Circles drawn with a cross-mark palette entry get an X overlay.
// Shapes stay in the upper 68% of the canvas so they never crowd the
// reserved lower text zone.
func drawAccentShapes(dc *gg.Context, w, h, n int, rng *RNG, accents []AccentOption) {
	fw, fh := float64(w), float64(h)
	for i := 0; i < n; i++ {
		isSquare := rng.Float() < 0.4
		opt := Pick(accents, rng)
		alpha := int(opt.AlphaScale * 220)

		cx := Lerp(20, fw-20, rng.Float())
		cy := Lerp(20, fh*0.68, rng.Float())

		if isSquare {
			side := Lerp(4, 14, rng.Float())
			setColor(dc, opt.Color, alpha)
			dc.DrawRectangle(cx-side, cy-side, side*2, side*2)
			dc.Fill()
			continue
		}

		r := Lerp(fw*0.012, fw*0.045, rng.Float())
		setColor(dc, opt.Color, alpha)
		dc.DrawCircle(cx, cy, r)
		dc.Fill()

		if opt.CrossMark {
			xc := r * 0.45
			setColor(dc, Cream, 180)
			dc.SetLineWidth(Clamp(r/8, 1, r))
			dc.DrawLine(cx-xc, cy-xc, cx+xc, cy+xc)
			dc.Stroke()
			dc.DrawLine(cx+xc, cy-xc, cx-xc, cy+xc)
			dc.Stroke()
		}
	}
}

// drawGestureLines draws n expressive curved strokes: quadratic beziers with
// three control points clustered toward the canvas center, approximated as
// 20-segment polylines.
func drawGestureLines(dc *gg.Context, w, h, n int, rng *RNG, c color.NRGBA, opacity float64) {
	fw, fh := float64(w), float64(h)
	setColor(dc, c, int(opacity*255))
	dc.SetLineWidth(2)
	for i := 0; i < n; i++ {
		p0x := Lerp(fw*0.15, fw*0.85, rng.Float())
		p0y := Lerp(fh*0.10, fh*0.70, rng.Float())
		p1x := Lerp(fw*0.20, fw*0.80, rng.Float())
		p1y := Lerp(fh*0.10, fh*0.70, rng.Float())
		p2x := Lerp(fw*0.15, fw*0.85, rng.Float())
		p2y := Lerp(fh*0.10, fh*0.70, rng.Float())

		const steps = 20
		for s := 0; s < steps; s++ {
			t0 := float64(s) / steps
			t1 := float64(s+1) / steps
			x0, y0 := quadBezier(p0x, p0y, p1x, p1y, p2x, p2y, t0)
			x1, y1 := quadBezier(p0x, p0y, p1x, p1y, p2x, p2y, t1)
			dc.DrawLine(x0, y0, x1, y1)
			dc.Stroke()
		}
	}
}

// quadBezier evaluates a quadratic bezier at t.
func quadBezier(p0x, p0y, p1x, p1y, p2x, p2y, t float64) (float64, float64) {
	u := 1 - t
	x := u*u*p0x + 2*u*t*p1x + t*t*p2x
	y := u*u*p0y + 2*u*t*p1y + t*t*p2y
	return x, y
}

// drawSketchLines draws n thin straight connector segments at low opacity.
func drawSketchLines(dc *gg.Context, w, h, n int, rng *RNG, c color.NRGBA, opacity float64) {
	fw, fh := float64(w), float64(h)
	setColor(dc, c, int(opacity*255))
	dc.SetLineWidth(1)
	for i := 0; i < n; i++ {
		x1 := Lerp(fw*0.1, fw*0.9, rng.Float())
		y1 := Lerp(fh*0.05, fh*0.9, rng.Float())
		x2 := Lerp(fw*0.1, fw*0.9, rng.Float())
		y2 := Lerp(fh*0.05, fh*0.9, rng.Float())
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
	}
}
