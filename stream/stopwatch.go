package stream

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/stopwatchgif/util"
)

// Stroke widths in points.
const (
	ringWidth   = 3.0
	handWidth   = 4.0
	markerWidth = 3.0
	boltEdge    = 1.5

	pointsPerInch = 72.0
)

var (
	minuteHand  = [2]Point{{0, 0}, {0.5, 0.65}}
	hourMarkers = [][2]Point{{{-0.15, 0}, {0, 0}}, {{0, -0.15}, {0, 0}}}
)

// A Stopwatch is an Animation of a clock face whose indicator sweeps one
// eased turn, carrying a lightning bolt at its tip.
type Stopwatch struct {
	size          int
	scale         float64
	dpi           float64
	radius        float64
	boltExtension float64
	boltSize      float64
	background    color.RGBA
	ink           color.RGBA
	angles        []float64
}

// NewStopwatch creates an instance of a Stopwatch from a validated config.
func NewStopwatch(config Config) (*Stopwatch, error) {
	easing, err := util.Easing(config.Animation.Easing)
	if err != nil {
		return nil, err
	}
	background, err := colorful.Hex(config.Canvas.Background)
	if err != nil {
		return nil, fmt.Errorf("background colour: %w", err)
	}
	ink, err := colorful.Hex(config.Canvas.Ink)
	if err != nil {
		return nil, fmt.Errorf("ink colour: %w", err)
	}

	s := new(Stopwatch)
	s.size = config.Canvas.Size
	s.scale = float64(config.Canvas.Size) / (2 * config.Canvas.Extent)
	s.dpi = config.Canvas.DPI
	s.radius = config.Stopwatch.Radius
	s.boltExtension = config.Stopwatch.BoltExtension
	s.boltSize = config.Stopwatch.BoltSize
	s.background = rgba(background)
	s.ink = rgba(ink)

	weight := config.Animation.EaseWeight
	s.angles = util.GenerateLut(config.Animation.Frames, func(p float64) float64 {
		return Angle(p, easing, weight)
	})

	return s, nil
}

func rgba(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{r, g, b, 255}
}

// NewContext creates a drawing surface sized for the stopwatch.
func (s *Stopwatch) NewContext() *gg.Context {
	return gg.NewContext(s.size, s.size)
}

// Frames is the number of frames in one loop.
func (s *Stopwatch) Frames() int {
	return len(s.angles)
}

// Theta is the indicator angle at frame index.
func (s *Stopwatch) Theta(index int) float64 {
	return s.angles[index]
}

// Background is the canvas colour.
func (s *Stopwatch) Background() color.Color {
	return s.background
}

// Ink is the colour every element is drawn in.
func (s *Stopwatch) Ink() color.Color {
	return s.ink
}

// Palette is a background to ink ramp covering the antialiased edges.
func (s *Stopwatch) Palette() color.Palette {
	return NewPalette(s.background, s.ink, 256)
}

// Bounds is the square around everything any frame can draw. It does not
// depend on the frame index, so all captured frames share one size.
func (s *Stopwatch) Bounds() image.Rectangle {
	reach := math.Max(s.radius+s.halfWidth(ringWidth), s.radius+s.halfWidth(handWidth))
	reach = math.Max(reach, BoltReach(s.radius, s.boltExtension, s.boltSize)+s.halfWidth(boltEdge))
	reach = math.Max(reach, minuteHand[1].Norm()+s.halfWidth(handWidth))

	// Slack for antialiased edge pixels.
	half := int(math.Ceil(reach*s.scale)) + 2
	c := s.size / 2
	r := image.Rect(c-half, c-half, c+half, c+half)
	return r.Intersect(image.Rect(0, 0, s.size, s.size))
}

// halfWidth converts half of a stroke width in points to logical units.
func (s *Stopwatch) halfWidth(pt float64) float64 {
	return s.pixels(pt) / 2 / s.scale
}

func (s *Stopwatch) pixels(pt float64) float64 {
	return pt * s.dpi / pointsPerInch
}

// CalculateFrame clears dc and draws frame index.
func (s *Stopwatch) CalculateFrame(dc *gg.Context, index int) {
	dc.Identity()
	dc.ClearPath()
	dc.SetColor(s.background)
	dc.Clear()

	half := float64(s.size) / 2
	dc.Translate(half, half)
	dc.Scale(s.scale, -s.scale)
	dc.SetColor(s.ink)

	// Ring
	dc.SetLineWidth(s.pixels(ringWidth))
	dc.DrawCircle(0, 0, s.radius)
	dc.Stroke()

	theta := s.angles[index]
	s.drawLine(dc, Point{}, Endpoint(theta, s.radius), handWidth)

	s.drawLine(dc, minuteHand[0], minuteHand[1], handWidth)
	for _, m := range hourMarkers {
		s.drawLine(dc, m[0], m[1], markerWidth)
	}

	s.drawBolt(dc, BoltPoints(theta, s.radius, s.boltExtension, s.boltSize))
}

func (s *Stopwatch) drawLine(dc *gg.Context, from, to Point, width float64) {
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineWidth(s.pixels(width))
	dc.DrawLine(from.X, from.Y, to.X, to.Y)
	dc.Stroke()
}

func (s *Stopwatch) drawBolt(dc *gg.Context, points []Point) {
	dc.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		dc.LineTo(p.X, p.Y)
	}
	dc.ClosePath()
	dc.SetLineJoin(gg.LineJoinRound)
	dc.SetLineWidth(s.pixels(boltEdge))
	dc.FillPreserve()
	dc.Stroke()
}
