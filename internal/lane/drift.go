package lane

// Estimate is the per-frame drift measurement. When OffsetValid is false no
// usable lane boundary was fitted this frame and LaneCenterX/OffsetPixels
// carry no meaning.
type Estimate struct {
	Left  *Line `json:"left,omitempty"`
	Right *Line `json:"right,omitempty"`

	LaneCenterX  float64 `json:"lane_center_x"`
	FrameCenterX float64 `json:"frame_center_x"`

	// OffsetPixels is laneCenterX - frameCenterX: positive = drifting right.
	OffsetPixels float64 `json:"offset_pixels"`
	OffsetValid  bool    `json:"offset_valid"`
}

// DriftOptions configures EstimateDrift.
type DriftOptions struct {
	// HalfLaneWidthPx is the assumed half lane width, used to place the lane
	// center when only one boundary is visible. The value is a heuristic
	// with no principled derivation; treat it as a tunable per camera setup.
	HalfLaneWidthPx float64
}

// DefaultDriftOptions returns the default half-lane fallback.
func DefaultDriftOptions() DriftOptions {
	return DriftOptions{HalfLaneWidthPx: 100}
}

// EstimateDrift computes the lane-center offset from the fitted boundary
// lines at the bottom scan row, the row nearest the vehicle.
//
// With both boundaries the lane center is the mean of their bottom-row
// x-intercepts. With one boundary the center is placed a half lane width
// inward from it. With neither, the estimate's offset is marked invalid.
func EstimateDrift(left, right *Line, frameWidth, frameHeight int, opts DriftOptions) Estimate {
	est := Estimate{
		Left:         left,
		Right:        right,
		FrameCenterX: float64(frameWidth) / 2,
	}

	bottom := float64(frameHeight - 1)
	switch {
	case left != nil && right != nil:
		est.LaneCenterX = (left.XAt(bottom) + right.XAt(bottom)) / 2
		est.OffsetValid = true
	case left != nil:
		est.LaneCenterX = left.XAt(bottom) + opts.HalfLaneWidthPx
		est.OffsetValid = true
	case right != nil:
		est.LaneCenterX = right.XAt(bottom) - opts.HalfLaneWidthPx
		est.OffsetValid = true
	}

	if est.OffsetValid {
		est.OffsetPixels = est.LaneCenterX - est.FrameCenterX
	}
	return est
}
