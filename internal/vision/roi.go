package vision

import (
	"fmt"
	"image"
)

// Polygon is an ordered sequence of vertices describing the region of
// interest. It is fixed per camera configuration and only recomputed when
// the stream resolution changes.
type Polygon []image.Point

// DefaultROI returns the road-facing trapezoid for a frame of the given
// size: the lower portion of the image where lane markings are visible,
// excluding sky, hood, and off-road clutter.
func DefaultROI(width, height int) Polygon {
	return Polygon{
		{X: width / 10, Y: height - 1},          // bottom left
		{X: width * 4 / 10, Y: height * 6 / 10}, // top left
		{X: width * 6 / 10, Y: height * 6 / 10}, // top right
		{X: width * 9 / 10, Y: height - 1},      // bottom right
	}
}

// Validate checks that the polygon has at least three vertices and lies
// entirely within a width x height frame. It returns an error wrapping
// ErrInvalidRegion otherwise.
func (p Polygon) Validate(width, height int) error {
	if len(p) < 3 {
		return fmt.Errorf("%w: polygon needs at least 3 vertices, have %d", ErrInvalidRegion, len(p))
	}
	for i, v := range p {
		if v.X < 0 || v.X >= width || v.Y < 0 || v.Y >= height {
			return fmt.Errorf("%w: vertex %d at (%d,%d) outside %dx%d frame",
				ErrInvalidRegion, i, v.X, v.Y, width, height)
		}
	}
	return nil
}

// Contains reports whether the pixel (x, y) lies inside the polygon,
// using the even-odd rule.
func (p Polygon) Contains(x, y int) bool {
	fx, fy := float64(x), float64(y)
	inside := false
	for i, j := 0, len(p)-1; i < len(p); j, i = i, i+1 {
		xi, yi := float64(p[i].X), float64(p[i].Y)
		xj, yj := float64(p[j].X), float64(p[j].Y)
		if (yi > fy) != (yj > fy) && fx < (xj-xi)*(fy-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}
