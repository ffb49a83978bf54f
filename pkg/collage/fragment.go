package collage

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// tornEdgeMinSize is the minimum fragment dimension for torn-edge masking.
// Below this the mask would eat most of the fragment, so it is a no-op.
const tornEdgeMinSize = 40

// fileExists reports whether path names an existing regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// loadCutout loads a fragment image with transparency from disk. The caller
// is expected to have checked existence already; a decode failure here is a
// hard error because a corrupt input is worse than a visibly thinner layout.
func loadCutout(path string) (*image.NRGBA, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load cutout %s: %w", path, err)
	}
	return imaging.Clone(img), nil
}

// resizeToHeight scales a fragment uniformly to the target height,
// preserving aspect ratio, with Lanczos resampling.
func resizeToHeight(img *image.NRGBA, targetH int) *image.NRGBA {
	return imaging.Resize(img, 0, targetH, imaging.Lanczos)
}

// resizeToFit scales a fragment uniformly to fit within maxW x maxH.
func resizeToFit(img *image.NRGBA, maxW, maxH int) *image.NRGBA {
	return imaging.Fit(img, maxW, maxH, imaging.Lanczos)
}

// rotateFragment rotates a fragment counterclockwise by angle degrees,
// expanding the bounds so no content is clipped. New corner area is
// transparent.
func rotateFragment(img *image.NRGBA, angle float64) *image.NRGBA {
	return imaging.Rotate(img, angle, color.NRGBA{0, 0, 0, 0})
}

// tornEdge applies a ragged torn-paper alpha mask to a fragment. Randomized
// rectangular bites are cut inward from each of the four edges in 3px-wide
// strips, the mask is blurred for softness, and the result is intersected
// with the fragment's existing alpha (pixel-wise minimum). Fragments smaller
// than 40x40 are returned unchanged.
func tornEdge(img *image.NRGBA, rng *RNG, edgeWidth int) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < tornEdgeMinSize || h < tornEdgeMinSize {
		return img
	}

	mask := gg.NewContext(w, h)
	mask.SetRGB(1, 1, 1)
	mask.Clear()
	mask.SetRGB(0, 0, 0)

	ew := float64(edgeWidth)
	for x := 0; x < w; x += 3 { // top
		depth := Lerp(0, ew, rng.Float())
		mask.DrawRectangle(float64(x), 0, 3, depth)
		mask.Fill()
	}
	for x := 0; x < w; x += 3 { // bottom
		depth := Lerp(0, ew, rng.Float())
		mask.DrawRectangle(float64(x), float64(h)-depth, 3, depth)
		mask.Fill()
	}
	for y := 0; y < h; y += 3 { // left
		depth := Lerp(0, ew, rng.Float())
		mask.DrawRectangle(0, float64(y), depth, 3)
		mask.Fill()
	}
	for y := 0; y < h; y += 3 { // right
		depth := Lerp(0, ew, rng.Float())
		mask.DrawRectangle(float64(w)-depth, float64(y), depth, 3)
		mask.Fill()
	}

	blurred := imaging.Blur(mask.Image(), 1.0)

	out := imaging.Clone(img)
	for y := 0; y < h; y++ {
		srcRow := out.Pix[y*out.Stride : y*out.Stride+w*4]
		maskRow := blurred.Pix[y*blurred.Stride : y*blurred.Stride+w*4]
		for x := 0; x < w; x++ {
			m := maskRow[x*4] // mask is grayscale; red channel carries the value
			if a := &srcRow[x*4+3]; *a > m {
				*a = m
			}
		}
	}
	return out
}

// pasteCenter alpha-composites a fragment onto the canvas centered at
// (cx, cy). Off-canvas placement is intentional (bleed): the overlay rect is
// intersected with the canvas bounds inside imaging.Overlay, so fragments
// clip at the boundary instead of resizing the canvas or failing.
func pasteCenter(canvas *image.NRGBA, frag image.Image, cx, cy int) *image.NRGBA {
	fb := frag.Bounds()
	pos := image.Pt(cx-fb.Dx()/2, cy-fb.Dy()/2)
	return imaging.Overlay(canvas, frag, pos, 1.0)
}

// syntheticStrip generates a placeholder strip fragment: a paper-colored
// rectangle with ruled horizontal lines, a centered vertical accent bar, and
// a subtle border. It honors the same visual contract as a real strip image
// so downstream placement logic is uniform.
func syntheticStrip(w, h int) *image.NRGBA {
	dc := gg.NewContext(w, h)
	dc.SetRGBA255(232, 224, 214, 255)
	dc.Clear()

	// ruled lines
	dc.SetRGBA255(180, 170, 160, 60)
	dc.SetLineWidth(1)
	for y := 20; y < h; y += 18 {
		dc.DrawLine(4, float64(y), float64(w)-4, float64(y))
		dc.Stroke()
	}

	// vertical accent bar standing in for spine text
	const barW = 18
	setColor(dc, Terracotta, 40)
	dc.DrawRectangle(float64(w/2-barW/2), 10, barW, float64(h)-20)
	dc.Fill()

	// border
	dc.SetRGBA255(180, 170, 160, 120)
	dc.SetLineWidth(1)
	dc.DrawRectangle(0.5, 0.5, float64(w)-1, float64(h)-1)
	dc.Stroke()

	return imaging.Clone(dc.Image())
}
