package collage

import (
	"image/color"
	"strconv"
	"strings"
)

// Brand palette. These exact triples are creative constants shared with the
// site's frontend; keep them in sync rather than deriving new values.
var (
	Parchment      = color.NRGBA{240, 235, 228, 255}
	HeroGround     = color.NRGBA{42, 40, 36, 255}  // warm near-black
	OliveGround    = color.NRGBA{58, 56, 32, 255}  // dark olive
	Terracotta     = color.NRGBA{180, 90, 45, 255}
	TerracottaLite = color.NRGBA{212, 135, 90, 255}
	Teal           = color.NRGBA{45, 95, 107, 255}
	Gold           = color.NRGBA{196, 154, 74, 255}
	Ink            = color.NRGBA{42, 36, 32, 255}
	Cream          = color.NRGBA{240, 235, 228, 255}
	CreamDark      = color.NRGBA{212, 204, 196, 255}
	NearBlack      = color.NRGBA{26, 24, 16, 255}
	HotPink        = color.NRGBA{232, 80, 120, 255}
)

// BlockPalette lists the flat colors used for decorative color blocks.
// Drawing routines receive this as a parameter so the compositor has no
// hidden global state; callers can substitute their own palette.
var BlockPalette = []color.NRGBA{
	NearBlack,
	Terracotta,
	Teal,
	HotPink,
	CreamDark,
	Gold,
}

// AccentOption describes one entry of the accent-shape palette: a fill
// color, an opacity scale applied to the base accent alpha, and whether a
// circle drawn with this entry carries an X cross-mark.
type AccentOption struct {
	Color      color.NRGBA
	AlphaScale float64
	CrossMark  bool
}

// AccentPalette lists the accent-shape options. The cross-mark probability
// is baked in here: exactly one entry carries it, so roughly 1 in 7 circles
// gets an X.
var AccentPalette = []AccentOption{
	{NearBlack, 1.0, false},
	{Terracotta, 0.88, true},
	{Cream, 0.80, false},
	{CreamDark, 0.75, false},
	{Gold, 0.70, false},
	{Teal, 0.65, false},
	{HotPink, 0.60, false},
}

// ParseGround resolves a ground color spec to a concrete color. Recognized
// values are "olive", "dark", and "#RRGGBB". Anything malformed falls back
// to the olive ground rather than failing the composition.
func ParseGround(s string) color.NRGBA {
	switch {
	case s == "olive":
		return OliveGround
	case s == "dark":
		return HeroGround
	case strings.HasPrefix(s, "#"):
		hex := strings.TrimPrefix(s, "#")
		if len(hex) != 6 {
			return OliveGround
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return OliveGround
		}
		return color.NRGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}
	default:
		return OliveGround
	}
}
