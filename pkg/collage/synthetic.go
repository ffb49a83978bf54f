package collage

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// Synthetic placeholder assets. These stand in for real photo cutouts so a
// composition can be previewed before any photography exists: an irregular
// hero silhouette, labeled support cards, and labeled strips. The demo
// command and the engine tests both build their fixtures from these.

// SyntheticAssets names the files written by BuildSyntheticAssets.
type SyntheticAssets struct {
	Hero     string
	Supports []string
	Strips   []string
}

// SyntheticHero draws a placeholder hero object: an irregular polygon
// silhouette with crack lines and surface texture, roughly the shape of a
// photographed cutout.
func SyntheticHero(w, h int) *gg.Context {
	dc := gg.NewContext(w, h)
	fw, fh := float64(w), float64(h)

	// irregular outer silhouette
	poly := [][2]float64{
		{0.125, 0.00}, {0.79, 0.016}, {0.958, 0.129},
		{0.979, 0.484}, {0.917, 0.806}, {0.79, 0.968},
		{0.417, 0.992}, {0.167, 0.935}, {0.062, 0.677},
		{0.042, 0.323}, {0.083, 0.129},
	}
	dc.SetRGBA255(210, 205, 195, 245)
	dc.MoveTo(poly[0][0]*fw, poly[0][1]*fh)
	for _, p := range poly[1:] {
		dc.LineTo(p[0]*fw, p[1]*fh)
	}
	dc.ClosePath()
	dc.Fill()

	// crack lines, like a plaster cast
	dc.SetRGBA255(160, 155, 148, 180)
	dc.SetLineWidth(2)
	dc.MoveTo(0.42*fw, 0.06*fh)
	dc.LineTo(0.50*fw, 0.32*fh)
	dc.LineTo(0.46*fw, 0.68*fh)
	dc.LineTo(0.54*fw, 0.94*fh)
	dc.Stroke()
	dc.SetLineWidth(1)
	dc.DrawLine(0.58*fw, 0.13*fh, 0.54*fw, 0.32*fh)
	dc.Stroke()
	dc.DrawLine(0.42*fw, 0.48*fh, 0.38*fw, 0.61*fh)
	dc.Stroke()

	// horizontal surface texture
	for y := 0; y < h; y += 8 {
		alpha := 30 + int(20*float64(y%int(fh*0.3+1))/fh)
		dc.SetRGBA255(190, 185, 175, alpha)
		dc.DrawLine(0.08*fw, float64(y), fw-0.08*fw, float64(y))
		dc.Stroke()
	}

	dc.SetFontFace(basicfont.Face7x13)
	dc.SetRGBA255(100, 95, 90, 180)
	dc.DrawStringAnchored("HERO OBJECT", fw/2, fh/2, 0.5, 0.5)
	return dc
}

// SyntheticSupport draws a placeholder support fragment: a rounded card in
// the given color with ruled texture lines and a label.
func SyntheticSupport(label string, c color.NRGBA, w, h int) *gg.Context {
	dc := gg.NewContext(w, h)
	fw, fh := float64(w), float64(h)
	const margin = 6.0

	setColor(dc, c, 230)
	dc.DrawRoundedRectangle(margin, margin, fw-2*margin, fh-2*margin, 4)
	dc.Fill()

	dc.SetRGBA255(255, 255, 255, 35)
	dc.SetLineWidth(1)
	for y := margin + 14; y < fh-margin; y += 16 {
		dc.DrawLine(margin+8, y, fw-margin-8, y)
		dc.Stroke()
	}

	dc.SetFontFace(basicfont.Face7x13)
	dc.SetRGBA255(255, 255, 255, 190)
	dc.DrawString(label, margin+8, margin+20)
	dc.SetRGBA255(255, 255, 255, 120)
	dc.DrawString("support", margin+8, fh/2)
	return dc
}

// SyntheticLabeledStrip draws a placeholder vertical strip with a short
// label, like a book spine or torn magazine edge.
func SyntheticLabeledStrip(label string, w, h int) *gg.Context {
	dc := gg.NewContext(w, h)
	fw, fh := float64(w), float64(h)

	dc.SetRGBA255(228, 218, 204, 240)
	dc.Clear()

	dc.SetRGBA255(180, 168, 155, 55)
	dc.SetLineWidth(1)
	for y := 20; y < h; y += 18 {
		dc.DrawLine(4, float64(y), fw-4, float64(y))
		dc.Stroke()
	}

	setColor(dc, Terracotta, 90)
	dc.DrawRectangle(fw/2-10, 12, 20, fh-24)
	dc.Fill()

	if len(label) > 8 {
		label = label[:8]
	}
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetRGBA255(80, 70, 60, 160)
	dc.DrawString(label, 8, fh/2-10)
	return dc
}

// BuildSyntheticAssets writes a full placeholder asset set (one hero, five
// supports, three strips) into dir, creating it if needed. Existing files
// are reused, so repeated runs are cheap and stable.
func BuildSyntheticAssets(dir string) (*SyntheticAssets, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create asset dir %s: %w", dir, err)
	}

	assets := &SyntheticAssets{}
	save := func(path string, dc *gg.Context) error {
		if fileExists(path) {
			return nil
		}
		if err := imaging.Save(dc.Image(), path); err != nil {
			return fmt.Errorf("write asset %s: %w", path, err)
		}
		return nil
	}

	assets.Hero = filepath.Join(dir, "hero.png")
	if err := save(assets.Hero, SyntheticHero(480, 620)); err != nil {
		return nil, err
	}

	supports := []struct {
		name  string
		color color.NRGBA
	}{
		{"zoning-map", color.NRGBA{80, 105, 75, 255}},
		{"hamming-book", color.NRGBA{30, 74, 111, 255}},
		{"coffee-mug", color.NRGBA{100, 68, 40, 255}},
		{"pi-board", color.NRGBA{26, 100, 52, 255}},
		{"new-yorker", color.NRGBA{200, 190, 175, 255}},
	}
	for _, s := range supports {
		path := filepath.Join(dir, "support-"+s.name+".png")
		if err := save(path, SyntheticSupport(s.name, s.color, 180, 220)); err != nil {
			return nil, err
		}
		assets.Supports = append(assets.Supports, path)
	}

	for _, label := range []string{"ODYSSEY", "ZONING", "DATA"} {
		path := filepath.Join(dir, "strip-"+strings.ToLower(label)+".png")
		if err := save(path, SyntheticLabeledStrip(label, 70, 380)); err != nil {
			return nil, err
		}
		assets.Strips = append(assets.Strips, path)
	}

	return assets, nil
}
