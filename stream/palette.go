package stream

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// NewPalette ramps from background to ink over steps entries. The drawing
// only uses two colours, so every antialiased pixel lies close to the ramp.
// Blending is done in RGB because that is how the rasteriser composites.
func NewPalette(background, ink color.Color, steps int) color.Palette {
	if steps < 2 {
		steps = 2
	}
	from, _ := colorful.MakeColor(background)
	to, _ := colorful.MakeColor(ink)

	p := make(color.Palette, steps)
	for i := range p {
		c := from.BlendRgb(to, float64(i)/float64(steps-1))
		p[i] = rgba(c)
	}
	return p
}
