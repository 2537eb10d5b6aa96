package util

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/fogleman/ease"
)

// ErrUnknownEasing is returned when an easing curve name is not registered.
var ErrUnknownEasing = errors.New("unknown easing")

// Only curves that never decrease on [0,1] are registered, otherwise the
// indicator would swing backwards.
var easings = map[string]func(float64) float64{
	"linear":     ease.Linear,
	"inquad":     ease.InQuad,
	"outquad":    ease.OutQuad,
	"inoutquad":  ease.InOutQuad,
	"incubic":    ease.InCubic,
	"outcubic":   ease.OutCubic,
	"inoutcubic": ease.InOutCubic,
	"insine":     ease.InSine,
	"outsine":    ease.OutSine,
	"inoutsine":  ease.InOutSine,
}

// Easing looks up an easing curve by its case-insensitive name.
func Easing(name string) (func(float64) float64, error) {
	fn, ok := easings[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %s)", ErrUnknownEasing, name, strings.Join(EasingNames(), ", "))
	}
	return fn, nil
}

// EasingNames lists the registered easing curves in sorted order.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GenerateLut samples fn at i/length for every i in [0, length).
func GenerateLut(length int, fn func(float64) float64) []float64 {
	lut := make([]float64, length)
	for i := 0; i < length; i++ {
		lut[i] = fn(float64(i) / float64(length))
	}
	return lut
}
