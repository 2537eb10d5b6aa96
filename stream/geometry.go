package stream

import "math"

// Point is a location in the logical drawing plane, y pointing up.
type Point struct {
	X float64
	Y float64
}

// Scale multiplies both coordinates by s.
func (p Point) Scale(s float64) Point {
	return Point{p.X * s, p.Y * s}
}

// Norm is the distance of p from the origin.
func (p Point) Norm() float64 {
	return math.Hypot(p.X, p.Y)
}

// Progress is the fraction of the animation elapsed at frame index.
func Progress(index, total int) float64 {
	return float64(index) / float64(total)
}

// Angle computes the indicator rotation in radians: one full turn over the
// animation plus an eased extra swing of weight radians.
func Angle(progress float64, easing func(float64) float64, weight float64) float64 {
	return 2*math.Pi*progress + weight*easing(progress)
}

// Endpoint is the tip of the rotating indicator.
func Endpoint(theta, radius float64) Point {
	return Point{math.Cos(theta) * radius, math.Sin(theta) * radius}
}

// BoltPoints outlines the lightning bolt carried at the indicator tip. The
// outline is closed: the last point repeats the first.
func BoltPoints(theta, radius, extension, size float64) []Point {
	anchor := Endpoint(theta, radius).Scale(extension)
	cosA := math.Cos(theta + math.Pi/2)
	sinA := math.Sin(theta + math.Pi/2)

	at := func(k float64) Point {
		return Point{anchor.X + k*size*cosA, anchor.Y + k*size*sinA}
	}
	return []Point{
		at(-1),
		anchor,
		at(-0.5),
		at(1),
		anchor,
		at(0.5),
		at(-1),
	}
}

// BoltReach is the largest distance from the origin any bolt point can have.
func BoltReach(radius, extension, size float64) float64 {
	return math.Hypot(radius*extension, size)
}
