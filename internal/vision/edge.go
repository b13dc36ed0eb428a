package vision

import (
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
)

// EdgeMap is a binary edge image. Set pixels mark detected edges inside the
// region of interest; everything else is zero.
type EdgeMap struct {
	Width  int
	Height int
	bits   []bool
}

// NewEdgeMap returns an empty edge map of the given size.
func NewEdgeMap(width, height int) *EdgeMap {
	return &EdgeMap{
		Width:  width,
		Height: height,
		bits:   make([]bool, width*height),
	}
}

// At reports whether (x, y) is an edge pixel. Out-of-range coordinates
// report false.
func (m *EdgeMap) At(x, y int) bool {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return false
	}
	return m.bits[y*m.Width+x]
}

// Set marks (x, y) as an edge pixel.
func (m *EdgeMap) Set(x, y int) {
	m.bits[y*m.Width+x] = true
}

// Count returns the number of edge pixels.
func (m *EdgeMap) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// EdgeOptions configures BuildEdgeMap.
type EdgeOptions struct {
	// KernelSize is the Gaussian smoothing kernel width. Must be an odd
	// integer >= 3.
	KernelSize int

	// LowThreshold and HighThreshold are the hysteresis thresholds for
	// gradient magnitude, on a 0-255 scale. Pixels above HighThreshold are
	// strong edges; pixels between the two are kept only when adjacent to a
	// strong edge.
	LowThreshold  int
	HighThreshold int
}

// DefaultEdgeOptions returns thresholds suited to daylight road footage.
func DefaultEdgeOptions() EdgeOptions {
	return EdgeOptions{
		KernelSize:    5,
		LowThreshold:  50,
		HighThreshold: 150,
	}
}

// BuildEdgeMap converts a color frame to a binary edge map restricted to
// the region of interest.
//
// It returns an error wrapping ErrInvalidFrame when the frame has a zero
// dimension, and an error wrapping ErrInvalidRegion when roi lies even
// partially outside the frame.
func BuildEdgeMap(img image.Image, roi Polygon, opts EdgeOptions) (*EdgeMap, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: frame is %dx%d", ErrInvalidFrame, width, height)
	}
	if err := roi.Validate(width, height); err != nil {
		return nil, err
	}
	if opts.KernelSize < 3 || opts.KernelSize%2 == 0 {
		return nil, fmt.Errorf("smoothing kernel size must be an odd integer >= 3, got %d", opts.KernelSize)
	}

	// Grayscale, then smooth. bild builds its Gaussian kernel from a radius;
	// a kernel of size k covers radius (k-1)/2.
	gray := effect.Grayscale(img)
	smoothed := blur.Gaussian(gray, float64(opts.KernelSize-1)/2)

	// Luminance as floats in [0,1]. The image is already gray, so any one
	// channel will do.
	lum := make([][]float64, height)
	sb := smoothed.Bounds()
	for y := 0; y < height; y++ {
		lum[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			r, _, _, _ := smoothed.At(x+sb.Min.X, y+sb.Min.Y).RGBA()
			lum[y][x] = float64(r>>8) / 255.0
		}
	}

	// Sobel gradients.
	sobelX := [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY := [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}

	magnitude := make([][]float64, height)
	direction := make([][]float64, height)
	for y := 0; y < height; y++ {
		magnitude[y] = make([]float64, width)
		direction[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					gx += lum[py][px] * sobelX[ky+1][kx+1]
					gy += lum[py][px] * sobelY[ky+1][kx+1]
				}
			}
			magnitude[y][x] = math.Sqrt(gx*gx + gy*gy)
			direction[y][x] = math.Atan2(gy, gx)
		}
	}

	// Non-maximum suppression: keep only local maxima along the gradient
	// direction so edges thin to a single pixel.
	suppressed := make([][]float64, height)
	for y := 0; y < height; y++ {
		suppressed[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			if y == 0 || y == height-1 || x == 0 || x == width-1 {
				continue
			}

			angle := direction[y][x]
			mag := magnitude[y][x]

			var n1, n2 float64
			switch {
			case (angle >= -math.Pi/8 && angle < math.Pi/8) || angle >= 7*math.Pi/8 || angle < -7*math.Pi/8:
				n1 = magnitude[y][x-1]
				n2 = magnitude[y][x+1]
			case (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8):
				n1 = magnitude[y-1][x+1]
				n2 = magnitude[y+1][x-1]
			case (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8):
				n1 = magnitude[y-1][x]
				n2 = magnitude[y+1][x]
			default:
				n1 = magnitude[y-1][x-1]
				n2 = magnitude[y+1][x+1]
			}

			if mag >= n1 && mag >= n2 {
				suppressed[y][x] = mag
			}
		}
	}

	// Double threshold with hysteresis linking, masked to the ROI.
	em := NewEdgeMap(width, height)
	low := float64(opts.LowThreshold) / 255.0
	high := float64(opts.HighThreshold) / 255.0

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !roi.Contains(x, y) {
				continue
			}
			val := suppressed[y][x]
			switch {
			case val >= high:
				em.Set(x, y)
			case val >= low:
				// Weak edge: keep only when touching a strong edge.
				for ky := -1; ky <= 1; ky++ {
					for kx := -1; kx <= 1; kx++ {
						py := clamp(y+ky, 0, height-1)
						px := clamp(x+kx, 0, width-1)
						if suppressed[py][px] >= high {
							em.Set(x, y)
						}
					}
				}
			}
		}
	}

	return em, nil
}

// clamp constrains val to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
