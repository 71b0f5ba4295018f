// Package render turns grid states and playback frames into colours, PNG
// images and ANSI terminal output.
package render

import (
	"image/color"
	"math"

	"github.com/katalvlaran/pathviz/grid"
	"github.com/katalvlaran/pathviz/playback"
)

// RGB is an opaque colour.
type RGB struct {
	R, G, B uint8
}

// RGBA implements color.Color.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

// NRGBA returns c as a concrete color.RGBA.
func (c RGB) NRGBA() color.RGBA { return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff} }

// Colours are the settled (Main) and fade-from (Alt) colours of one state.
// Alt equals Main for states that do not fade.
type Colours struct {
	Main, Alt RGB
}

// Palette maps each state to its colours, plus the cell outline.
type Palette struct {
	States  map[grid.State]Colours
	Outline RGB
	Hover   RGB
}

// DefaultPalette is the classic look: red start, blue end, black walls,
// green exploration and a red-orange path.
func DefaultPalette() Palette {
	white := RGB{255, 255, 255}
	return Palette{
		States: map[grid.State]Colours{
			grid.Empty:    {Main: white, Alt: white},
			grid.Start:    {Main: RGB{255, 0, 0}, Alt: RGB{255, 0, 0}},
			grid.End:      {Main: RGB{0, 0, 255}, Alt: RGB{0, 0, 255}},
			grid.Wall:     {Main: RGB{0, 0, 0}, Alt: RGB{96, 96, 96}},
			grid.Explored: {Main: RGB{67, 176, 67}, Alt: RGB{89, 125, 53}},
			grid.Path:     {Main: RGB{255, 66, 52}, Alt: RGB{242, 133, 0}},
		},
		Outline: RGB{0, 0, 0},
		Hover:   RGB{218, 210, 197},
	}
}

// Main returns the settled colour of s. Unknown states render as Empty.
func (p Palette) Main(s grid.State) RGB {
	if c, ok := p.States[s]; ok {
		return c.Main
	}
	return p.States[grid.Empty].Main
}

// Frame returns the colour of one fade frame: Alt at step 0, Main at the
// last step, linear in between.
func (p Palette) Frame(f playback.Frame) RGB {
	c, ok := p.States[f.State]
	if !ok {
		return p.Main(f.State)
	}
	return Lerp(c.Alt, c.Main, f.Step, f.Steps)
}

// Lerp moves from a towards b by step/steps, rounding each channel to the
// nearest integer. steps <= 0 or step >= steps yields b.
func Lerp(a, b RGB, step, steps int) RGB {
	if steps <= 0 || step >= steps {
		return b
	}
	if step <= 0 {
		return a
	}
	t := float64(step) / float64(steps)
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return RGB{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B)}
}
