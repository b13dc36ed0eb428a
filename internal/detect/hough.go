package detect

import (
	"image"
	"iter"
	"math"
	"sort"

	"github.com/openlkas/openlkas/internal/vision"
)

// Options configures segment extraction.
type Options struct {
	// VoteThreshold is the minimum accumulator vote count for a line peak.
	VoteThreshold int

	// MinLength is the minimum segment length in pixels. Shorter runs are
	// discarded.
	MinLength float64

	// MaxGap is the largest break, in pixels, tolerated between edge pixels
	// of one segment. Larger breaks split the line into separate segments,
	// which keeps dashed lane markings usable.
	MaxGap float64
}

// DefaultOptions returns extraction parameters tuned for lane markings at
// roughly 720p road footage.
func DefaultOptions() Options {
	return Options{
		VoteThreshold: 50,
		MinLength:     100,
		MaxGap:        50,
	}
}

const (
	numAngles = 180

	// maxPeaks bounds the accumulator peaks traced per frame. Lane fitting
	// only needs the strongest few lines per side.
	maxPeaks = 50

	// lineTolerance is the perpendicular distance, in pixels, within which
	// an edge pixel is considered to belong to a peak line.
	lineTolerance = 2.0
)

type peak struct {
	rho   float64
	theta int
	votes int
}

// Segments returns a lazy, finite sequence of line segments found in the
// edge map, strongest vote first. The sequence is intended for a single
// pass; the accumulator is built on first iteration and endpoint tracing
// happens per peak as the consumer advances.
func Segments(em *vision.EdgeMap, opts Options) iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		for _, pk := range houghPeaks(em, opts.VoteThreshold) {
			for _, seg := range traceSegments(em, pk, opts) {
				if !yield(seg) {
					return
				}
			}
		}
	}
}

// houghPeaks fills the (rho, theta) accumulator and returns local-maximum
// cells above the vote threshold, sorted by descending votes.
func houghPeaks(em *vision.EdgeMap, voteThreshold int) []peak {
	if voteThreshold < 1 {
		voteThreshold = 1
	}

	maxDist := int(math.Sqrt(float64(em.Width*em.Width + em.Height*em.Height)))
	if maxDist == 0 {
		return nil
	}
	acc := make([][]int, maxDist*2)
	for i := range acc {
		acc[i] = make([]int, numAngles)
	}

	for y := 0; y < em.Height; y++ {
		for x := 0; x < em.Width; x++ {
			if !em.At(x, y) {
				continue
			}
			for theta := 0; theta < numAngles; theta++ {
				angle := float64(theta) * math.Pi / 180.0
				rho := float64(x)*math.Cos(angle) + float64(y)*math.Sin(angle)
				rhoIdx := int(rho) + maxDist
				if rhoIdx >= 0 && rhoIdx < maxDist*2 {
					acc[rhoIdx][theta]++
				}
			}
		}
	}

	var peaks []peak
	for rhoIdx := 0; rhoIdx < maxDist*2; rhoIdx++ {
		for theta := 0; theta < numAngles; theta++ {
			votes := acc[rhoIdx][theta]
			if votes < voteThreshold {
				continue
			}
			// Keep only local maxima in a 5x5 neighborhood so one physical
			// line does not spawn a cluster of near-identical peaks.
			isMax := true
			for dr := -2; dr <= 2 && isMax; dr++ {
				for dt := -2; dt <= 2 && isMax; dt++ {
					if dr == 0 && dt == 0 {
						continue
					}
					nr := rhoIdx + dr
					nt := (theta + dt + numAngles) % numAngles
					if nr >= 0 && nr < maxDist*2 && acc[nr][nt] > votes {
						isMax = false
					}
				}
			}
			if isMax {
				peaks = append(peaks, peak{
					rho:   float64(rhoIdx - maxDist),
					theta: theta,
					votes: votes,
				})
			}
		}
	}

	sort.Slice(peaks, func(i, j int) bool {
		return peaks[i].votes > peaks[j].votes
	})
	if len(peaks) > maxPeaks {
		peaks = peaks[:maxPeaks]
	}
	return peaks
}

// traceSegments collects the edge pixels lying on a peak line, orders them
// along the line, and splits them into runs wherever consecutive pixels are
// more than MaxGap apart. Each run long enough becomes a Segment.
func traceSegments(em *vision.EdgeMap, pk peak, opts Options) []Segment {
	cosA := math.Cos(float64(pk.theta) * math.Pi / 180.0)
	sinA := math.Sin(float64(pk.theta) * math.Pi / 180.0)

	type projected struct {
		pt image.Point
		d  float64 // position along the line direction
	}
	var points []projected
	for y := 0; y < em.Height; y++ {
		for x := 0; x < em.Width; x++ {
			if !em.At(x, y) {
				continue
			}
			dist := math.Abs(float64(x)*cosA + float64(y)*sinA - pk.rho)
			if dist < lineTolerance {
				// The direction vector of the line is (-sin, cos).
				d := -float64(x)*sinA + float64(y)*cosA
				points = append(points, projected{pt: image.Point{X: x, Y: y}, d: d})
			}
		}
	}
	if len(points) < 2 {
		return nil
	}

	sort.Slice(points, func(i, j int) bool { return points[i].d < points[j].d })

	var segs []Segment
	runStart := 0
	flush := func(lo, hi int) {
		seg := Segment{Start: points[lo].pt, End: points[hi].pt}
		if seg.Length() >= opts.MinLength {
			segs = append(segs, seg)
		}
	}
	for i := 1; i < len(points); i++ {
		if points[i].d-points[i-1].d > opts.MaxGap {
			flush(runStart, i-1)
			runStart = i
		}
	}
	flush(runStart, len(points)-1)
	return segs
}
