package stream

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/stopwatchgif/util"
)

// Config describes the animation and where the result goes.
type Config struct {
	Animation struct {
		Frames        int     `yaml:"frames"`
		ProgressEvery int     `yaml:"progressEvery"`
		Easing        string  `yaml:"easing"`
		EaseWeight    float64 `yaml:"easeWeight"`
	} `yaml:"animation"`
	Canvas struct {
		Size       int     `yaml:"size"`
		DPI        float64 `yaml:"dpi"`
		Extent     float64 `yaml:"extent"`
		Background string  `yaml:"background"`
		Ink        string  `yaml:"ink"`
	} `yaml:"canvas"`
	Stopwatch struct {
		Radius        float64 `yaml:"radius"`
		BoltExtension float64 `yaml:"boltExtension"`
		BoltSize      float64 `yaml:"boltSize"`
	} `yaml:"stopwatch"`
	Output struct {
		Path    string `yaml:"path"`
		DelayMs int    `yaml:"delayMs"`
	} `yaml:"output"`
	Mqtt struct {
		URL      string `yaml:"url"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		Topics   struct {
			Artifact string `yaml:"artifact"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`
}

// DefaultConfig returns the built-in settings of the efficiency icon.
func DefaultConfig() Config {
	var c Config
	c.Animation.Frames = 200
	c.Animation.ProgressEvery = 50
	c.Animation.Easing = "inquad"
	c.Animation.EaseWeight = 0.5

	c.Canvas.Size = 480
	c.Canvas.DPI = 100
	c.Canvas.Extent = 1.2
	c.Canvas.Background = "#efeee5"
	c.Canvas.Ink = "#6B7A47"

	c.Stopwatch.Radius = 0.9
	c.Stopwatch.BoltExtension = 1.05
	c.Stopwatch.BoltSize = 0.08

	c.Output.Path = "efficiency-icon-animation.gif"
	c.Output.DelayMs = 30

	c.Mqtt.Topics.Artifact = "web/assets/efficiency-icon"
	return c
}

// Validate reports the first setting that cannot produce an animation.
func (c Config) Validate() error {
	switch {
	case c.Animation.Frames <= 0:
		return fmt.Errorf("animation.frames must be positive, got %d", c.Animation.Frames)
	case c.Animation.ProgressEvery < 0:
		return fmt.Errorf("animation.progressEvery must not be negative, got %d", c.Animation.ProgressEvery)
	case c.Animation.EaseWeight < 0:
		return fmt.Errorf("animation.easeWeight must not be negative, got %v", c.Animation.EaseWeight)
	case c.Canvas.Size <= 0:
		return fmt.Errorf("canvas.size must be positive, got %d", c.Canvas.Size)
	case c.Canvas.DPI <= 0:
		return fmt.Errorf("canvas.dpi must be positive, got %v", c.Canvas.DPI)
	case c.Canvas.Extent <= 0:
		return fmt.Errorf("canvas.extent must be positive, got %v", c.Canvas.Extent)
	case c.Stopwatch.Radius <= 0:
		return fmt.Errorf("stopwatch.radius must be positive, got %v", c.Stopwatch.Radius)
	case c.Stopwatch.BoltExtension <= 0:
		return fmt.Errorf("stopwatch.boltExtension must be positive, got %v", c.Stopwatch.BoltExtension)
	case c.Stopwatch.BoltSize < 0:
		return fmt.Errorf("stopwatch.boltSize must not be negative, got %v", c.Stopwatch.BoltSize)
	case c.Output.Path == "":
		return errors.New("output.path is empty")
	case c.Output.DelayMs <= 0 || c.Output.DelayMs%10 != 0:
		return fmt.Errorf("output.delayMs must be a positive multiple of 10, got %d", c.Output.DelayMs)
	}

	if _, err := util.Easing(c.Animation.Easing); err != nil {
		return fmt.Errorf("animation.easing: %w", err)
	}
	if _, err := colorful.Hex(c.Canvas.Background); err != nil {
		return fmt.Errorf("canvas.background: %w", err)
	}
	if _, err := colorful.Hex(c.Canvas.Ink); err != nil {
		return fmt.Errorf("canvas.ink: %w", err)
	}
	if c.Mqtt.URL != "" && c.Mqtt.Topics.Artifact == "" {
		return errors.New("mqtt.topics.artifact is empty")
	}
	return nil
}
