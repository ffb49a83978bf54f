package collage

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// Post-processing filters, applied in fixed order after the layer stack is
// flattened to an opaque raster. All color math runs in floating point and
// clamps before truncating back to 8-bit, so channel values never wrap.

// clamp8 truncates a float channel value into 0..255.
func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// flatten forces the canvas fully opaque before post-processing.
func flatten(img *image.NRGBA) *image.NRGBA {
	out := imaging.Clone(img)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 255
	}
	return out
}

// applyVignette darkens the canvas edges with a radial falloff built from
// concentric elliptical bands, for a subtle spotlight feel. Strength runs
// 0..1.
func applyVignette(img *image.NRGBA, strength float64) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	// Gray ramp: outermost band strongest, fading to nothing at the center.
	// Later (inner, weaker) bands overwrite earlier ones where they overlap.
	mask := gg.NewContext(w, h)
	mask.SetRGB(0, 0, 0)
	mask.Clear()
	const steps = 40
	for i := 0; i < steps; i++ {
		t := float64(i) / steps
		v := int((1 - t) * strength * 255)
		padX := t * float64(w) * 0.49
		padY := t * float64(h) * 0.49
		rx := float64(w)/2 - padX
		ry := float64(h)/2 - padY
		if rx < 1 {
			rx = 1
		}
		if ry < 1 {
			ry = 1
		}
		mask.SetRGBA255(v, v, v, 255)
		mask.DrawEllipse(float64(w)/2, float64(h)/2, rx, ry)
		mask.Fill()
	}
	maskImg := imaging.Clone(mask.Image())

	out := imaging.Clone(img)
	for y := 0; y < h; y++ {
		row := out.Pix[y*out.Stride:]
		maskRow := maskImg.Pix[y*maskImg.Stride:]
		for x := 0; x < w; x++ {
			m := float64(maskRow[x*4]) / 255.0
			factor := 1 - m*strength
			for c := 0; c < 3; c++ {
				i := x*4 + c
				row[i] = clamp8(float64(row[i]) * factor)
			}
		}
	}
	return out
}

// applyGrain adds Gaussian noise per pixel. One noise value is drawn per
// pixel and added to all three channels, like film grain rather than chroma
// noise. The rng is seeded from the same string hash as the layout, so the
// grain field is reproducible per identifier.
func applyGrain(img *image.NRGBA, rng *RNG, intensity float64) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	sigma := intensity * 255

	out := imaging.Clone(img)
	for y := 0; y < h; y++ {
		row := out.Pix[y*out.Stride:]
		for x := 0; x < w; x++ {
			n := rng.Norm() * sigma
			for c := 0; c < 3; c++ {
				i := x*4 + c
				row[i] = clamp8(float64(row[i]) + n)
			}
		}
	}
	return out
}

// colorGrade pushes the image warm: the red channel is boosted by warmth
// and the blue channel reduced by half of it.
func colorGrade(img *image.NRGBA, warmth float64) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	out := imaging.Clone(img)
	for y := 0; y < h; y++ {
		row := out.Pix[y*out.Stride:]
		for x := 0; x < w; x++ {
			i := x * 4
			row[i] = clamp8(float64(row[i]) * (1 + warmth))
			row[i+2] = clamp8(float64(row[i+2]) * (1 - warmth*0.5))
		}
	}
	return out
}

// applyBottomFade blends the bottom of the image toward a target color with
// a smoothstep-weighted per-row lerp. fadeStart is the fraction of canvas
// height where the fade begins.
func applyBottomFade(img *image.NRGBA, fadeStart float64, target color.NRGBA) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	fadePx := int(fadeStart * float64(h))

	out := imaging.Clone(img)
	tr, tg, tb := float64(target.R), float64(target.G), float64(target.B)
	span := h - fadePx
	if span < 1 {
		span = 1
	}
	for y := fadePx; y < h; y++ {
		t := float64(y-fadePx) / float64(span)
		t = t * t * (3 - 2*t) // smoothstep
		row := out.Pix[y*out.Stride:]
		for x := 0; x < w; x++ {
			i := x * 4
			row[i] = clamp8(Lerp(float64(row[i]), tr, t))
			row[i+1] = clamp8(Lerp(float64(row[i+1]), tg, t))
			row[i+2] = clamp8(Lerp(float64(row[i+2]), tb, t))
		}
	}
	return out
}
