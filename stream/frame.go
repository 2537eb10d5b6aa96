package stream

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
)

// ErrClipped is returned when drawn content falls outside the capture box.
var ErrClipped = errors.New("content outside capture bounds")

// Frame is one captured raster of the animation.
type Frame struct {
	Index int
	Image *image.RGBA
}

// Capture snapshots dc as PNG, decodes it and crops it to bounds. The
// returned frame owns its pixels, so dc can be redrawn straight away.
func Capture(dc *gg.Context, index int, bounds image.Rectangle, background color.Color) (*Frame, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode frame %d: %w", index, err)
	}
	src, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode frame %d: %w", index, err)
	}

	if content := TightBounds(src, background); !content.In(bounds) {
		return nil, fmt.Errorf("frame %d: %w: content %v, bounds %v", index, ErrClipped, content, bounds)
	}

	img := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(img, img.Bounds(), src, bounds.Min, draw.Src)
	return &Frame{Index: index, Image: img}, nil
}

// TightBounds is the smallest rectangle holding every pixel of img that
// differs from background. It is empty when img is blank.
func TightBounds(img image.Image, background color.Color) image.Rectangle {
	br, bg, bb, ba := background.RGBA()
	b := img.Bounds()
	var content image.Rectangle
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			if r == br && g == bg && bl == bb && a == ba {
				continue
			}
			content = content.Union(image.Rect(x, y, x+1, y+1))
		}
	}
	return content
}
