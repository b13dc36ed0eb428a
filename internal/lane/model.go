package lane

import (
	"iter"

	"gonum.org/v1/gonum/stat"

	"github.com/openlkas/openlkas/internal/detect"
)

// Line is a fitted lane boundary parameterized as x = Slope*y + Intercept.
// See the package documentation for why x is expressed as a function of y.
type Line struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// XAt returns the line's x coordinate at scan row y.
func (l Line) XAt(y float64) float64 {
	return l.Slope*y + l.Intercept
}

// FitOptions configures FitLanes.
type FitOptions struct {
	// MinAngleDeg discards segments inclined less than this many degrees
	// from horizontal. Shadows, cracks, and car bumpers produce mostly
	// horizontal clutter; lane boundaries are steep in image coordinates.
	MinAngleDeg float64
}

// DefaultFitOptions returns the default angle filter.
func DefaultFitOptions() FitOptions {
	return FitOptions{MinAngleDeg: 20}
}

// FitLanes classifies segments into left and right lane-boundary candidates
// by slope sign and fits one representative line per side as the
// length-weighted mean of the candidates' slopes and intercepts.
//
// A side with no candidates returns nil for that side; callers must treat
// absence as distinct from any valid line. The segments sequence is
// consumed in a single pass.
func FitLanes(segments iter.Seq[detect.Segment], opts FitOptions) (left, right *Line) {
	var (
		leftSlopes, leftIntercepts, leftWeights    []float64
		rightSlopes, rightIntercepts, rightWeights []float64
	)

	for seg := range segments {
		if seg.AngleDegrees() < opts.MinAngleDeg {
			continue
		}
		dy := float64(seg.End.Y - seg.Start.Y)
		if dy == 0 {
			continue
		}
		slope := float64(seg.End.X-seg.Start.X) / dy
		intercept := float64(seg.Start.X) - slope*float64(seg.Start.Y)
		weight := seg.Length()

		// In image coordinates (Y down) the left boundary slants with
		// negative dy/dx, the right with positive. Vertical segments carry
		// +Inf slope and land on the right, matching the slope-sign rule.
		if seg.Slope() < 0 {
			leftSlopes = append(leftSlopes, slope)
			leftIntercepts = append(leftIntercepts, intercept)
			leftWeights = append(leftWeights, weight)
		} else {
			rightSlopes = append(rightSlopes, slope)
			rightIntercepts = append(rightIntercepts, intercept)
			rightWeights = append(rightWeights, weight)
		}
	}

	if len(leftSlopes) > 0 {
		left = &Line{
			Slope:     stat.Mean(leftSlopes, leftWeights),
			Intercept: stat.Mean(leftIntercepts, leftWeights),
		}
	}
	if len(rightSlopes) > 0 {
		right = &Line{
			Slope:     stat.Mean(rightSlopes, rightWeights),
			Intercept: stat.Mean(rightIntercepts, rightWeights),
		}
	}
	return left, right
}
