package pipeline

import (
	"errors"
	"fmt"
)

// ErrBadConfig reports an invalid pipeline configuration.
var ErrBadConfig = errors.New("bad pipeline configuration")

// Config is the complete tuning surface of the lane pipeline.
type Config struct {
	// SmoothKernelSize is the Gaussian smoothing kernel width applied
	// before edge detection. Odd integer >= 3.
	SmoothKernelSize int `json:"smooth_kernel_size"`

	// EdgeLowThreshold and EdgeHighThreshold are the hysteresis thresholds
	// of the edge detector, on a 0-255 gradient scale.
	EdgeLowThreshold  int `json:"edge_low_threshold"`
	EdgeHighThreshold int `json:"edge_high_threshold"`

	// VoteThreshold is the minimum line-transform vote count for a
	// candidate line.
	VoteThreshold int `json:"vote_threshold"`

	// MinSegmentLength is the minimum candidate segment length in pixels.
	MinSegmentLength float64 `json:"min_segment_length"`

	// MaxSegmentGap is the largest break in pixels bridged within one
	// segment; larger breaks split dashed markings into separate segments.
	MaxSegmentGap float64 `json:"max_segment_gap"`

	// MinAngleDeg discards near-horizontal segments as clutter.
	MinAngleDeg float64 `json:"min_angle_deg"`

	// HalfLaneWidthPx places the lane center when only one boundary is
	// visible.
	HalfLaneWidthPx float64 `json:"half_lane_width_px"`

	// SmoothingAlpha is the exponential smoothing factor for the offset,
	// in (0, 1].
	SmoothingAlpha float64 `json:"smoothing_alpha"`

	// DriftThresholdPx is the departure threshold on the smoothed offset.
	DriftThresholdPx float64 `json:"drift_threshold_px"`

	// DebounceFrames is the consecutive-frame count required both to raise
	// and to clear an alert.
	DebounceFrames int `json:"debounce_frames"`

	// LossToleranceFrames is the number of consecutive no-signal frames
	// tolerated before the stream is considered signal-lost.
	LossToleranceFrames int `json:"loss_tolerance_frames"`
}

// DefaultConfig returns defaults tuned for 720p daylight road footage.
func DefaultConfig() Config {
	return Config{
		SmoothKernelSize:    5,
		EdgeLowThreshold:    50,
		EdgeHighThreshold:   150,
		VoteThreshold:       50,
		MinSegmentLength:    100,
		MaxSegmentGap:       50,
		MinAngleDeg:         20,
		HalfLaneWidthPx:     100,
		SmoothingAlpha:      0.3,
		DriftThresholdPx:    50,
		DebounceFrames:      3,
		LossToleranceFrames: 5,
	}
}

// Validate checks the configuration; errors wrap ErrBadConfig and must be
// fixed before streaming starts.
func (c Config) Validate() error {
	switch {
	case c.SmoothKernelSize < 3 || c.SmoothKernelSize%2 == 0:
		return fmt.Errorf("%w: smoothing kernel size must be an odd integer >= 3, got %d", ErrBadConfig, c.SmoothKernelSize)
	case c.EdgeLowThreshold < 0 || c.EdgeHighThreshold <= c.EdgeLowThreshold:
		return fmt.Errorf("%w: edge thresholds must satisfy 0 <= low < high, got low=%d high=%d", ErrBadConfig, c.EdgeLowThreshold, c.EdgeHighThreshold)
	case c.VoteThreshold < 1:
		return fmt.Errorf("%w: vote threshold must be positive, got %d", ErrBadConfig, c.VoteThreshold)
	case c.MinSegmentLength <= 0:
		return fmt.Errorf("%w: minimum segment length must be positive, got %v", ErrBadConfig, c.MinSegmentLength)
	case c.MaxSegmentGap < 0:
		return fmt.Errorf("%w: maximum segment gap must be non-negative, got %v", ErrBadConfig, c.MaxSegmentGap)
	case c.MinAngleDeg < 0 || c.MinAngleDeg >= 90:
		return fmt.Errorf("%w: minimum angle must be in [0, 90), got %v", ErrBadConfig, c.MinAngleDeg)
	case c.HalfLaneWidthPx <= 0:
		return fmt.Errorf("%w: half lane width must be positive, got %v", ErrBadConfig, c.HalfLaneWidthPx)
	case c.SmoothingAlpha <= 0 || c.SmoothingAlpha > 1:
		return fmt.Errorf("%w: smoothing alpha must be in (0, 1], got %v", ErrBadConfig, c.SmoothingAlpha)
	case c.DriftThresholdPx <= 0:
		return fmt.Errorf("%w: drift threshold must be positive, got %v", ErrBadConfig, c.DriftThresholdPx)
	case c.DebounceFrames < 1:
		return fmt.Errorf("%w: debounce frame count must be >= 1, got %d", ErrBadConfig, c.DebounceFrames)
	case c.LossToleranceFrames < 0:
		return fmt.Errorf("%w: loss tolerance must be non-negative, got %d", ErrBadConfig, c.LossToleranceFrames)
	}
	return nil
}
