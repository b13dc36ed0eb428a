package lane

import (
	"math"
	"testing"
)

func vline(x float64) *Line {
	return &Line{Slope: 0, Intercept: x}
}

func TestEstimateDrift_BothBoundaries(t *testing.T) {
	tests := []struct {
		name       string
		leftX      float64
		rightX     float64
		wantOffset float64
	}{
		{"centered", 200, 600, 0},
		{"lane center right of frame center", 300, 700, 100},
		{"lane center left of frame center", 100, 500, -100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est := EstimateDrift(vline(tt.leftX), vline(tt.rightX), 800, 600, DefaultDriftOptions())

			if !est.OffsetValid {
				t.Fatal("offset should be valid with both boundaries")
			}
			if est.FrameCenterX != 400 {
				t.Errorf("FrameCenterX: got %v, want 400", est.FrameCenterX)
			}
			if math.Abs(est.OffsetPixels-tt.wantOffset) > 0.01 {
				t.Errorf("OffsetPixels: got %v, want %v", est.OffsetPixels, tt.wantOffset)
			}
		})
	}
}

func TestEstimateDrift_LeftOnlyFallback(t *testing.T) {
	opts := DriftOptions{HalfLaneWidthPx: 100}

	est := EstimateDrift(vline(200), nil, 800, 600, opts)

	if !est.OffsetValid {
		t.Fatal("left-only detection must still produce a defined offset")
	}
	// Lane center assumed a half lane width right of the left boundary.
	if est.LaneCenterX != 300 {
		t.Errorf("LaneCenterX: got %v, want 300", est.LaneCenterX)
	}
	if est.OffsetPixels != -100 {
		t.Errorf("OffsetPixels: got %v, want -100", est.OffsetPixels)
	}
}

func TestEstimateDrift_RightOnlyFallback(t *testing.T) {
	opts := DriftOptions{HalfLaneWidthPx: 100}

	est := EstimateDrift(nil, vline(700), 800, 600, opts)

	if !est.OffsetValid {
		t.Fatal("right-only detection must still produce a defined offset")
	}
	if est.LaneCenterX != 600 {
		t.Errorf("LaneCenterX: got %v, want 600", est.LaneCenterX)
	}
	if est.OffsetPixels != 200 {
		t.Errorf("OffsetPixels: got %v, want 200", est.OffsetPixels)
	}
}

func TestEstimateDrift_NoBoundaries(t *testing.T) {
	est := EstimateDrift(nil, nil, 800, 600, DefaultDriftOptions())

	if est.OffsetValid {
		t.Error("offset must be absent when neither boundary is fitted")
	}
	if est.Left != nil || est.Right != nil {
		t.Error("estimate should carry nil lines")
	}
}

func TestEstimateDrift_UsesBottomScanRow(t *testing.T) {
	// A slanted left boundary: x = -0.2*y + 400. At the bottom row of a
	// 600-high frame (y=599) it crosses x = 280.2.
	left := &Line{Slope: -0.2, Intercept: 400}

	est := EstimateDrift(left, nil, 800, 600, DriftOptions{HalfLaneWidthPx: 100})

	want := left.XAt(599) + 100
	if math.Abs(est.LaneCenterX-want) > 0.01 {
		t.Errorf("LaneCenterX: got %v, want %v (bottom-row intercept + half lane)", est.LaneCenterX, want)
	}
}
