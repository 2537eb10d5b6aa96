package stream

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/draw"
)

var (
	testBackground = color.RGBA{0xef, 0xee, 0xe5, 0xff}
	testInk        = color.RGBA{0x6b, 0x7a, 0x47, 0xff}
)

func solidFrame(index, w, h int, c color.RGBA) *Frame {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return &Frame{Index: index, Image: img}
}

func testFrames(n int) []*Frame {
	frames := make([]*Frame, n)
	for i := range frames {
		c := testBackground
		if i%2 == 1 {
			c = testInk
		}
		frames[i] = solidFrame(i, 8, 8, c)
	}
	return frames
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	e := NewEncoder(NewPalette(testBackground, testInk, 256), 30)
	if err := e.Encode(&buf, testFrames(4)); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	g, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	if len(g.Image) != 4 {
		t.Fatalf("decoded %d frames, want 4", len(g.Image))
	}
	if g.LoopCount != 0 {
		t.Errorf("LoopCount = %d, want 0", g.LoopCount)
	}
	for i, d := range g.Delay {
		if d != 3 {
			t.Errorf("Delay[%d] = %d, want 3", i, d)
		}
	}

	// Frames keep their order and colours survive quantisation.
	for i, img := range g.Image {
		want := testBackground
		if i%2 == 1 {
			want = testInk
		}
		if got := color.RGBAModel.Convert(img.At(4, 4)); got != want {
			t.Errorf("frame %d pixel = %v, want %v", i, got, want)
		}
	}
}

func TestEncodeErrors(t *testing.T) {
	mixed := testFrames(3)
	mixed[2] = solidFrame(2, 9, 8, testInk)

	tests := []struct {
		name   string
		frames []*Frame
		want   error
	}{
		{name: "empty", frames: nil, want: ErrNoFrames},
		{name: "mixed sizes", frames: mixed, want: ErrFrameSize},
	}

	e := NewEncoder(NewPalette(testBackground, testInk, 256), 30)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := e.Encode(&buf, tt.frames); !errors.Is(err, tt.want) {
				t.Errorf("Encode() error = %v, want %v", err, tt.want)
			}
			if buf.Len() != 0 {
				t.Errorf("Encode() wrote %d bytes on error", buf.Len())
			}
		})
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "efficiency-icon-animation.gif")

	e := NewEncoder(NewPalette(testBackground, testInk, 256), 30)
	if err := e.WriteFile(path, testFrames(2)); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Size() == 0 {
		t.Error("output is empty")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory holds %d entries, want only the output", len(entries))
	}
}

func TestWriteFileFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.gif")
	e := NewEncoder(NewPalette(testBackground, testInk, 256), 30)

	if err := e.WriteFile(path, nil); !errors.Is(err, ErrNoFrames) {
		t.Fatalf("WriteFile(nil) error = %v, want ErrNoFrames", err)
	}
	if err := e.WriteFile(filepath.Join(dir, "missing", "out.gif"), testFrames(2)); err == nil {
		t.Fatal("WriteFile into missing directory succeeded")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("directory holds %d entries after failures, want 0", len(entries))
	}
}

func TestEncodeRenderedFrames(t *testing.T) {
	c := smallConfig()
	c.Animation.Frames = 10
	s := newTestStopwatch(t, c)
	frames, err := NewController(s, s.NewContext(), 0).Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	var buf bytes.Buffer
	if err := NewEncoder(s.Palette(), c.Output.DelayMs).Encode(&buf, frames); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	g, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	if len(g.Image) != 10 {
		t.Errorf("decoded %d frames, want 10", len(g.Image))
	}
	if got, want := g.Image[0].Bounds().Size(), s.Bounds().Size(); got != want {
		t.Errorf("GIF frame size %v, want %v", got, want)
	}
}

func TestEncodeDelay(t *testing.T) {
	for _, delayMs := range []int{0, 5, 35, -10} {
		var buf bytes.Buffer
		e := NewEncoder(NewPalette(testBackground, testInk, 256), delayMs)
		if err := e.Encode(&buf, testFrames(2)); !errors.Is(err, ErrDelay) {
			t.Errorf("Encode(delay %d) error = %v, want ErrDelay", delayMs, err)
		}
	}
}

// composite replays decoded image blocks onto a canvas the size of the
// first frame, returning the picture shown at each step.
func composite(g *gif.GIF) []*image.RGBA {
	canvas := image.NewRGBA(g.Image[0].Bounds())
	shown := make([]*image.RGBA, 0, len(g.Image))
	for _, block := range g.Image {
		draw.Draw(canvas, block.Bounds(), block, block.Bounds().Min, draw.Src)
		frame := image.NewRGBA(canvas.Bounds())
		copy(frame.Pix, canvas.Pix)
		shown = append(shown, frame)
	}
	return shown
}

func TestEncodeStoresChangedRegion(t *testing.T) {
	frames := []*Frame{
		solidFrame(0, 8, 8, testBackground),
		solidFrame(1, 8, 8, testBackground),
		solidFrame(2, 8, 8, testBackground),
	}
	frames[1].Image.SetRGBA(2, 3, testInk)
	frames[1].Image.SetRGBA(5, 4, testInk)
	copy(frames[2].Image.Pix, frames[1].Image.Pix)

	var buf bytes.Buffer
	if err := NewEncoder(NewPalette(testBackground, testInk, 256), 30).Encode(&buf, frames); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	g, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}

	tests := []struct {
		name string
		want image.Rectangle
	}{
		{name: "first frame whole", want: image.Rect(0, 0, 8, 8)},
		{name: "changed pixels only", want: image.Rect(2, 3, 6, 5)},
		{name: "unchanged frame", want: image.Rect(0, 0, 1, 1)},
	}
	for i, tt := range tests {
		if got := g.Image[i].Bounds(); got != tt.want {
			t.Errorf("%s: block %v, want %v", tt.name, got, tt.want)
		}
	}

	shown := composite(g)
	for i, f := range frames {
		if !bytes.Equal(shown[i].Pix, f.Image.Pix) {
			t.Errorf("frame %d does not replay to its source", i)
		}
	}
}

func TestEncodeRenderedFramesReplay(t *testing.T) {
	c := smallConfig()
	c.Animation.Frames = 12
	s := newTestStopwatch(t, c)
	frames, err := NewController(s, s.NewContext(), 0).Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	pal := s.Palette()
	var buf bytes.Buffer
	if err := NewEncoder(pal, c.Output.DelayMs).Encode(&buf, frames); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	g, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}

	size := s.Bounds().Size()
	if g.Config.Width != size.X || g.Config.Height != size.Y {
		t.Errorf("logical screen %dx%d, want %v", g.Config.Width, g.Config.Height, size)
	}
	for i := 1; i < len(g.Image); i++ {
		if g.Image[i].Bounds().Size() == size {
			t.Errorf("block %d stored whole, want only the changed region", i)
		}
	}

	// Each replayed picture matches the frame quantised on its own.
	shown := composite(g)
	for i, f := range frames {
		b := f.Image.Bounds()
		want := image.NewPaletted(b, pal)
		draw.Draw(want, b, f.Image, b.Min, draw.Src)
		wantRGBA := image.NewRGBA(b)
		draw.Draw(wantRGBA, b, want, b.Min, draw.Src)
		if !bytes.Equal(shown[i].Pix, wantRGBA.Pix) {
			t.Errorf("frame %d does not replay to its quantised source", i)
		}
	}
}
