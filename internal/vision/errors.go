package vision

import "errors"

var (
	// ErrInvalidFrame reports a frame with unusable dimensions. The frame is
	// fatal for that frame only; callers should skip it and retry on the next.
	ErrInvalidFrame = errors.New("invalid frame")

	// ErrInvalidRegion reports a region of interest that does not lie within
	// the frame bounds. This is a configuration fault and must be fixed
	// before streaming starts.
	ErrInvalidRegion = errors.New("invalid region of interest")
)
