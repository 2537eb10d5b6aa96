package stream

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

// An Animation renders the frames of a fixed-length sequence onto a shared
// drawing context.
type Animation interface {
	// Frames is the number of frames in the sequence.
	Frames() int
	// Bounds is the region of the context that can receive content.
	Bounds() image.Rectangle
	// Background is the colour the context is cleared to.
	Background() color.Color
	// CalculateFrame clears dc and draws frame index onto it.
	CalculateFrame(dc *gg.Context, index int)
}
