package stream

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
)

var (
	// ErrNoFrames is returned when asked to encode an empty sequence.
	ErrNoFrames = errors.New("no frames to encode")
	// ErrFrameSize is returned when frames do not share one size.
	ErrFrameSize = errors.New("frame size mismatch")
	// ErrDelay is returned for delays GIF cannot represent.
	ErrDelay = errors.New("delay must be a positive multiple of 10ms")
)

// Encoder writes a frame sequence as an endlessly looping GIF.
type Encoder struct {
	Palette color.Palette
	DelayMs int
}

// NewEncoder creates an instance of an Encoder.
func NewEncoder(palette color.Palette, delayMs int) *Encoder {
	e := new(Encoder)
	e.Palette = palette
	e.DelayMs = delayMs
	return e
}

func checkFrames(frames []*Frame) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}
	size := frames[0].Image.Bounds().Size()
	for _, f := range frames[1:] {
		if s := f.Image.Bounds().Size(); s != size {
			return fmt.Errorf("%w: frame %d is %v, frame %d is %v", ErrFrameSize, f.Index, s, frames[0].Index, size)
		}
	}
	return nil
}

// Encode quantises frames to the palette and writes them to w in order.
// Only the first frame is stored whole; each later frame stores the
// rectangle that changed since its predecessor and leaves the rest in place.
func (e *Encoder) Encode(w io.Writer, frames []*Frame) error {
	if err := checkFrames(frames); err != nil {
		return err
	}
	if e.DelayMs <= 0 || e.DelayMs%10 != 0 {
		return fmt.Errorf("%w: got %d", ErrDelay, e.DelayMs)
	}

	// GIF delays are in hundredths of a second.
	delay := e.DelayMs / 10
	out := &gif.GIF{
		Image:     make([]*image.Paletted, 0, len(frames)),
		Delay:     make([]int, 0, len(frames)),
		Disposal:  make([]byte, 0, len(frames)),
		LoopCount: 0,
	}
	var prev *image.Paletted
	for _, f := range frames {
		b := f.Image.Bounds()
		p := image.NewPaletted(b, e.Palette)
		draw.Draw(p, b, f.Image, b.Min, draw.Src)

		block := p
		if prev != nil {
			block = p.SubImage(changedBounds(prev, p)).(*image.Paletted)
		}
		out.Image = append(out.Image, block)
		out.Delay = append(out.Delay, delay)
		out.Disposal = append(out.Disposal, gif.DisposalNone)
		prev = p
	}

	if err := gif.EncodeAll(w, out); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}
	return nil
}

// changedBounds is the smallest rectangle covering every pixel that differs
// between a and b, which share bounds. Identical frames yield a single pixel
// at the origin, since a GIF image block cannot be empty.
func changedBounds(a, b *image.Paletted) image.Rectangle {
	r := b.Bounds()
	var changed image.Rectangle
	for y := r.Min.Y; y < r.Max.Y; y++ {
		ia := a.PixOffset(r.Min.X, y)
		ib := b.PixOffset(r.Min.X, y)
		for x := 0; x < r.Dx(); x++ {
			if a.Pix[ia+x] != b.Pix[ib+x] {
				px := r.Min.X + x
				changed = changed.Union(image.Rect(px, y, px+1, y+1))
			}
		}
	}
	if changed.Empty() {
		return image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Min.Y+1)
	}
	return changed
}

// WriteFile encodes frames to path. The GIF is built in a temporary file
// next to path and renamed into place, so path is either complete or
// untouched.
func (e *Encoder) WriteFile(path string, frames []*Frame) (err error) {
	if err := checkFrames(frames); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = e.Encode(tmp, frames); err != nil {
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("chmod output: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename output: %w", err)
	}
	return nil
}
