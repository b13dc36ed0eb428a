package lane

import "math"

// State is the debounced drift decision for a stream.
type State int

const (
	// Centered: the smoothed offset has stayed within the drift threshold.
	Centered State = iota

	// Drifting: transitional. Either the offset crossed the threshold but
	// has not yet persisted for the debounce count, or it returned within
	// the threshold and an active alert has not yet been cleared.
	Drifting

	// Alerting: the offset exceeded the threshold for the full debounce
	// count; the departure alert is active.
	Alerting

	// SignalLost: no usable lane boundary for longer than the loss
	// tolerance. Alerting is suppressed until the signal returns.
	SignalLost
)

func (s State) String() string {
	switch s {
	case Centered:
		return "CENTERED"
	case Drifting:
		return "DRIFTING"
	case Alerting:
		return "ALERTING"
	case SignalLost:
		return "SIGNAL_LOST"
	default:
		return "UNKNOWN"
	}
}

// DriftState is the persistent per-stream state of the decision machine.
// It is owned exclusively by a Tracker and mutated once per processed
// frame; AlertActive transitions happen nowhere else.
type DriftState struct {
	SmoothedOffset  float64 `json:"smoothed_offset"`
	ConsecutiveOff  int     `json:"consecutive_off_frames"`
	ConsecutiveOn   int     `json:"consecutive_on_frames"`
	ConsecutiveLoss int     `json:"consecutive_loss_frames"`
	AlertActive     bool    `json:"alert_active"`
}

// TrackerConfig holds the decision machine tunables.
type TrackerConfig struct {
	// Alpha is the exponential smoothing factor applied to defined offsets:
	// smoothed = Alpha*offset + (1-Alpha)*smoothed. Lower values favor
	// stability over responsiveness.
	Alpha float64

	// ThresholdPixels is the drift threshold on the smoothed offset.
	ThresholdPixels float64

	// DebounceFrames is the number of consecutive consistent frames
	// required both to enter and to leave Alerting.
	DebounceFrames int

	// LossTolerance is the number of consecutive signal-loss frames
	// tolerated before the machine transitions to SignalLost.
	LossTolerance int
}

// DefaultTrackerConfig returns the stability-biased defaults.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		Alpha:           0.3,
		ThresholdPixels: 50,
		DebounceFrames:  3,
		LossTolerance:   5,
	}
}

// Tracker is the drift decision state machine for one stream. It is not
// safe for concurrent use; frames must be stepped strictly in arrival
// order. Use one Tracker per stream.
type Tracker struct {
	cfg    TrackerConfig
	state  State
	drift  DriftState
	seeded bool
}

// NewTracker returns a Tracker in the Centered state with zeroed DriftState.
func NewTracker(cfg TrackerConfig) *Tracker {
	return &Tracker{cfg: cfg}
}

// Reset returns the machine to its initial state. Call it on stream
// restart so no state bleeds into an unrelated video or live session.
func (t *Tracker) Reset() {
	t.state = Centered
	t.drift = DriftState{}
	t.seeded = false
}

// State returns the current decision state.
func (t *Tracker) State() State { return t.state }

// Drift returns a copy of the current DriftState.
func (t *Tracker) Drift() DriftState { return t.drift }

// Step advances the machine by one frame. valid=false means the frame had
// no usable offset (signal loss). It returns the new state and a copy of
// the updated DriftState.
//
// A single transient loss frame does not change state; only a run longer
// than the loss tolerance moves the machine to SignalLost, which also
// suppresses any active alert. The first valid offset after a reset seeds
// the smoothed value directly rather than blending with zero, so a fresh
// stream is not biased toward "centered".
func (t *Tracker) Step(offset float64, valid bool) (State, DriftState) {
	if !valid {
		t.drift.ConsecutiveLoss++
		if t.drift.ConsecutiveLoss > t.cfg.LossTolerance {
			t.state = SignalLost
			t.drift.AlertActive = false
		}
		// Under tolerance: hold state, counters, and smoothed offset.
		return t.state, t.drift
	}

	t.drift.ConsecutiveLoss = 0
	if !t.seeded {
		t.drift.SmoothedOffset = offset
		t.seeded = true
	} else {
		t.drift.SmoothedOffset = t.cfg.Alpha*offset + (1-t.cfg.Alpha)*t.drift.SmoothedOffset
	}

	if math.Abs(t.drift.SmoothedOffset) > t.cfg.ThresholdPixels {
		t.drift.ConsecutiveOff++
		t.drift.ConsecutiveOn = 0
		if t.drift.ConsecutiveOff >= t.cfg.DebounceFrames {
			t.state = Alerting
			t.drift.AlertActive = true
		} else if t.state != Alerting {
			t.state = Drifting
		}
	} else {
		t.drift.ConsecutiveOn++
		t.drift.ConsecutiveOff = 0
		if t.drift.ConsecutiveOn >= t.cfg.DebounceFrames {
			t.state = Centered
			t.drift.AlertActive = false
		} else if t.state != Centered {
			// Not yet debounced back to center; an uncleared alert stays
			// active through Drifting.
			t.state = Drifting
		}
	}

	return t.state, t.drift
}
