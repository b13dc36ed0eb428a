package detect

import (
	"image"
	"math"
)

// Segment is a straight line segment in frame pixel coordinates. Segments
// are ephemeral: produced per frame and never persisted.
type Segment struct {
	Start image.Point
	End   image.Point
}

// Length returns the Euclidean length in pixels.
func (s Segment) Length() float64 {
	dx := float64(s.End.X - s.Start.X)
	dy := float64(s.End.Y - s.Start.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Slope returns dy/dx in image coordinates (Y grows downward). A vertical
// segment yields ±Inf.
func (s Segment) Slope() float64 {
	dx := float64(s.End.X - s.Start.X)
	dy := float64(s.End.Y - s.Start.Y)
	if dx == 0 {
		return math.Inf(int(math.Copysign(1, dy)))
	}
	return dy / dx
}

// AngleDegrees returns the segment's inclination from the horizontal axis
// in the range [0, 90]: 0 for horizontal clutter, 90 for a vertical line.
func (s Segment) AngleDegrees() float64 {
	dx := float64(s.End.X - s.Start.X)
	dy := float64(s.End.Y - s.Start.Y)
	a := math.Abs(math.Atan2(dy, dx) * 180 / math.Pi)
	if a > 90 {
		a = 180 - a
	}
	return a
}
