package lane

import (
	"image"
	"iter"
	"math"
	"testing"

	"github.com/openlkas/openlkas/internal/detect"
)

func seq(segs ...detect.Segment) iter.Seq[detect.Segment] {
	return func(yield func(detect.Segment) bool) {
		for _, s := range segs {
			if !yield(s) {
				return
			}
		}
	}
}

func seg(x1, y1, x2, y2 int) detect.Segment {
	return detect.Segment{
		Start: image.Point{X: x1, Y: y1},
		End:   image.Point{X: x2, Y: y2},
	}
}

func TestFitLanes_Classification(t *testing.T) {
	// Left boundary slants up-right (negative dy/dx in image coordinates),
	// right boundary slants up-left.
	leftSeg := seg(10, 99, 45, 60)
	rightSeg := seg(90, 99, 55, 60)

	left, right := FitLanes(seq(leftSeg, rightSeg), DefaultFitOptions())

	if left == nil {
		t.Fatal("left boundary should be fitted")
	}
	if right == nil {
		t.Fatal("right boundary should be fitted")
	}

	// At the bottom row the left line must sit left of the right line.
	if lx, rx := left.XAt(99), right.XAt(99); lx >= rx {
		t.Errorf("left x %.1f should be left of right x %.1f at bottom row", lx, rx)
	}
}

func TestFitLanes_DiscardsHorizontalClutter(t *testing.T) {
	// A shadow line across the road: ~3 degrees from horizontal.
	clutter := seg(0, 50, 100, 55)

	left, right := FitLanes(seq(clutter), DefaultFitOptions())

	if left != nil || right != nil {
		t.Errorf("near-horizontal segment should be discarded, got left=%v right=%v", left, right)
	}
}

func TestFitLanes_AbsentSideIsNil(t *testing.T) {
	left, right := FitLanes(seq(seg(10, 99, 45, 60)), DefaultFitOptions())

	if left == nil {
		t.Fatal("left boundary should be fitted")
	}
	if right != nil {
		t.Errorf("right side has no candidates and must be nil, got %+v", right)
	}
}

func TestFitLanes_EmptySequence(t *testing.T) {
	left, right := FitLanes(seq(), DefaultFitOptions())
	if left != nil || right != nil {
		t.Errorf("no segments should fit no lines, got left=%v right=%v", left, right)
	}
}

func TestFitLanes_LengthWeightedAverage(t *testing.T) {
	// Two vertical right-side candidates: x=80 spanning 40px, x=100
	// spanning 10px. The weighted mean intercept is (80*40+100*10)/50 = 84.
	long := seg(80, 10, 80, 50)
	short := seg(100, 40, 100, 50)

	_, right := FitLanes(seq(long, short), DefaultFitOptions())
	if right == nil {
		t.Fatal("right boundary should be fitted")
	}

	if got := right.XAt(30); math.Abs(got-84) > 0.01 {
		t.Errorf("weighted intercept: got %.2f, want 84", got)
	}
}

func TestFitLanes_VerticalSegmentIsSafe(t *testing.T) {
	// A perfectly vertical boundary must come out as x = constant and keep
	// XAt well-defined at every row.
	vertical := seg(120, 0, 120, 90)

	_, right := FitLanes(seq(vertical), DefaultFitOptions())
	if right == nil {
		t.Fatal("vertical segment should fit a right boundary")
	}
	if right.Slope != 0 {
		t.Errorf("vertical boundary slope (x per y): got %v, want 0", right.Slope)
	}
	for _, y := range []float64{0, 45, 719} {
		if got := right.XAt(y); got != 120 {
			t.Errorf("XAt(%v): got %v, want 120", y, got)
		}
	}
}

func TestFitLanes_SinglePassConsumption(t *testing.T) {
	calls := 0
	once := func(yield func(detect.Segment) bool) {
		calls++
		yield(seg(10, 99, 45, 60))
	}

	FitLanes(once, DefaultFitOptions())
	if calls != 1 {
		t.Errorf("segments sequence iterated %d times, want 1", calls)
	}
}
