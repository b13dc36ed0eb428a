package pipeline

import (
	"errors"
	"fmt"
	"image"

	"github.com/openlkas/openlkas/internal/detect"
	"github.com/openlkas/openlkas/internal/lane"
	"github.com/openlkas/openlkas/internal/vision"
)

// ErrResolutionChanged reports a frame whose size differs from the stream
// resolution. Call SetResolution before submitting further frames.
var ErrResolutionChanged = errors.New("frame resolution changed")

// Result is the externally consumed output for one processed frame.
type Result struct {
	Estimate lane.Estimate   `json:"estimate"`
	State    lane.State      `json:"state"`
	Drift    lane.DriftState `json:"drift"`
}

// Pipeline runs the lane analysis stages for a single video stream.
type Pipeline struct {
	cfg     Config
	width   int
	height  int
	roi     vision.Polygon
	tracker *lane.Tracker
}

// Option customizes pipeline construction.
type Option func(*Pipeline)

// WithROI replaces the default road-facing trapezoid with a caller-supplied
// region of interest. The polygon is validated against the stream
// resolution during New.
func WithROI(roi vision.Polygon) Option {
	return func(p *Pipeline) { p.roi = roi }
}

// New builds a pipeline for a stream of width x height frames. It fails on
// an invalid configuration or a region of interest outside frame bounds —
// both configuration-time faults that must be fixed before streaming.
func New(cfg Config, width, height int, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: stream resolution %dx%d", vision.ErrInvalidFrame, width, height)
	}

	p := &Pipeline{
		cfg:    cfg,
		width:  width,
		height: height,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.roi == nil {
		p.roi = vision.DefaultROI(width, height)
	}
	if err := p.roi.Validate(width, height); err != nil {
		return nil, err
	}

	p.tracker = lane.NewTracker(lane.TrackerConfig{
		Alpha:           cfg.SmoothingAlpha,
		ThresholdPixels: cfg.DriftThresholdPx,
		DebounceFrames:  cfg.DebounceFrames,
		LossTolerance:   cfg.LossToleranceFrames,
	})
	return p, nil
}

// Process runs one frame through the pipeline and advances the drift
// decision machine.
//
// Frames are processed synchronously, one at a time, in arrival order. On
// any error the drift state is left exactly as it was: the caller should
// log, skip the frame, and continue with the next one.
func (p *Pipeline) Process(img image.Image) (Result, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return Result{}, fmt.Errorf("%w: frame is %dx%d", vision.ErrInvalidFrame, w, h)
	}
	if w != p.width || h != p.height {
		return Result{}, fmt.Errorf("%w: frame is %dx%d, stream is %dx%d",
			ErrResolutionChanged, w, h, p.width, p.height)
	}

	em, err := vision.BuildEdgeMap(img, p.roi, vision.EdgeOptions{
		KernelSize:    p.cfg.SmoothKernelSize,
		LowThreshold:  p.cfg.EdgeLowThreshold,
		HighThreshold: p.cfg.EdgeHighThreshold,
	})
	if err != nil {
		return Result{}, err
	}

	segments := detect.Segments(em, detect.Options{
		VoteThreshold: p.cfg.VoteThreshold,
		MinLength:     p.cfg.MinSegmentLength,
		MaxGap:        p.cfg.MaxSegmentGap,
	})

	left, right := lane.FitLanes(segments, lane.FitOptions{MinAngleDeg: p.cfg.MinAngleDeg})
	est := lane.EstimateDrift(left, right, p.width, p.height, lane.DriftOptions{
		HalfLaneWidthPx: p.cfg.HalfLaneWidthPx,
	})

	state, drift := p.tracker.Step(est.OffsetPixels, est.OffsetValid)
	return Result{Estimate: est, State: state, Drift: drift}, nil
}

// SetResolution re-derives the default region of interest for a new frame
// size. It must be called after a mid-stream resolution change, before the
// next frame is accepted. A custom region installed with WithROI is
// replaced; use SetROI to install a new one.
func (p *Pipeline) SetResolution(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: stream resolution %dx%d", vision.ErrInvalidFrame, width, height)
	}
	roi := vision.DefaultROI(width, height)
	if err := roi.Validate(width, height); err != nil {
		return err
	}
	p.width = width
	p.height = height
	p.roi = roi
	return nil
}

// SetROI installs a custom region of interest for the current resolution.
func (p *Pipeline) SetROI(roi vision.Polygon) error {
	if err := roi.Validate(p.width, p.height); err != nil {
		return err
	}
	p.roi = roi
	return nil
}

// Reset restarts the stream: the drift decision machine returns to its
// initial state.
func (p *Pipeline) Reset() {
	p.tracker.Reset()
}

// State returns the current decision state without processing a frame.
func (p *Pipeline) State() lane.State { return p.tracker.State() }

// Drift returns a copy of the current drift state.
func (p *Pipeline) Drift() lane.DriftState { return p.tracker.Drift() }

// ROI returns the active region of interest.
func (p *Pipeline) ROI() vision.Polygon { return p.roi }
