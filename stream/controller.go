package stream

import (
	"log"

	"github.com/fogleman/gg"
)

// Controller drives an Animation through every frame and keeps the
// captured results in playback order.
type Controller struct {
	animation     Animation
	dc            *gg.Context
	progressEvery int
}

// NewController creates an instance of a Controller. A progressEvery of zero
// disables progress logging.
func NewController(animation Animation, dc *gg.Context, progressEvery int) *Controller {
	c := new(Controller)
	c.animation = animation
	c.dc = dc
	c.progressEvery = progressEvery
	return c
}

// Run renders and captures all frames. It returns either the complete
// sequence or an error, never a partial sequence.
func (c *Controller) Run() ([]*Frame, error) {
	total := c.animation.Frames()
	bounds := c.animation.Bounds()
	background := c.animation.Background()
	frames := make([]*Frame, 0, total)

	log.Println("Generating frames...")
	for i := 0; i < total; i++ {
		c.animation.CalculateFrame(c.dc, i)
		f, err := Capture(c.dc, i, bounds, background)
		if err != nil {
			return nil, err
		}
		frames = append(frames, f)

		if c.progressEvery > 0 && (i+1)%c.progressEvery == 0 {
			log.Printf("Generated %d/%d frames", i+1, total)
		}
	}

	return frames, nil
}
