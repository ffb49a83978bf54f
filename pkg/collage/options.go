package collage

import "fmt"

// Default canvas and encoding parameters.
const (
	DefaultWidth   = 1200
	DefaultHeight  = 750
	DefaultGround  = "olive"
	DefaultQuality = 93
)

// Options controls a single composition. The struct is read-only for the
// duration of one Compose call and is not retained afterwards.
type Options struct {
	Width  int    // canvas width in pixels
	Height int    // canvas height in pixels
	Ground string // "olive", "dark", or "#RRGGBB"

	FadeToParchment bool // blend the bottom of the canvas toward parchment
	Grain           bool // add reproducible film grain
	Vignette        bool // darken the canvas edges
	TornEdges       bool // apply torn-paper masks to fragments

	Quality int // JPEG quality for encoded output
}

// DefaultOptions returns the standard essay-hero configuration: 1200x750,
// olive ground, all effects enabled.
func DefaultOptions() Options {
	return Options{
		Width:           DefaultWidth,
		Height:          DefaultHeight,
		Ground:          DefaultGround,
		FadeToParchment: true,
		Grain:           true,
		Vignette:        true,
		TornEdges:       true,
		Quality:         DefaultQuality,
	}
}

// Validate checks options and fills derivable defaults in place. A zero
// canvas dimension or quality gets the default; a negative dimension is an
// error. The ground string is not validated here: malformed values fall back
// to olive at compose time.
func (o *Options) Validate() error {
	if o.Width < 0 || o.Height < 0 {
		return fmt.Errorf("canvas size %dx%d: dimensions must be positive", o.Width, o.Height)
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Ground == "" {
		o.Ground = DefaultGround
	}
	if o.Quality <= 0 {
		o.Quality = DefaultQuality
	}
	if o.Quality > 100 {
		o.Quality = 100
	}
	return nil
}

// Inputs names the image fragments for one composition. All paths are
// optional: a missing or empty entry degrades the layout instead of failing
// it.
type Inputs struct {
	Hero     string   // the single dominant cutout, "" for none
	Supports []string // smaller cutouts placed in the five support zones
	Strips   []string // vertical strip fragments
}
