package alert

import (
	"log"
	"time"

	"github.com/openlkas/openlkas/internal/lane"
)

// DefaultCooldown is the minimum spacing between alert re-triggers.
const DefaultCooldown = time.Second

// Sink receives warning start/stop commands. Implementations must
// tolerate repeated Start and Stop calls.
type Sink interface {
	// Start begins warning the driver. offsetPx is the smoothed drift
	// offset at trigger time, sign included.
	Start(offsetPx float64)

	// Stop silences the warning.
	Stop()
}

// LogSink writes warning transitions to the standard logger. It is the
// fallback sink on systems with no audio output.
type LogSink struct {
	active bool
}

func (s *LogSink) Start(offsetPx float64) {
	if s.active {
		return
	}
	s.active = true
	log.Printf("[ALERT] lane departure: smoothed offset %+.1fpx", offsetPx)
}

func (s *LogSink) Stop() {
	if !s.active {
		return
	}
	s.active = false
	log.Printf("[ALERT] cleared")
}

// Dispatcher drives a Sink from the frame-by-frame decision states.
type Dispatcher struct {
	sink     Sink
	cooldown time.Duration
	now      func() time.Time

	active    bool
	lastFired time.Time
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithCooldown overrides the re-trigger cooldown.
func WithCooldown(d time.Duration) DispatcherOption {
	return func(dp *Dispatcher) { dp.cooldown = d }
}

// WithClock substitutes the time source. Used by tests.
func WithClock(now func() time.Time) DispatcherOption {
	return func(dp *Dispatcher) { dp.now = now }
}

// NewDispatcher returns a dispatcher feeding sink.
func NewDispatcher(sink Sink, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		sink:     sink,
		cooldown: DefaultCooldown,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Observe processes one frame's decision outcome. It starts the sink on
// the transition into ALERTING (subject to the cooldown) and stops it
// when the alert condition ends, including on signal loss.
func (d *Dispatcher) Observe(state lane.State, drift lane.DriftState) {
	if state == lane.Alerting && drift.AlertActive {
		if d.active {
			return
		}
		now := d.now()
		if !d.lastFired.IsZero() && now.Sub(d.lastFired) < d.cooldown {
			return
		}
		d.active = true
		d.lastFired = now
		d.sink.Start(drift.SmoothedOffset)
		return
	}

	if d.active {
		d.active = false
		d.sink.Stop()
	}
}

// Active reports whether the sink is currently warning.
func (d *Dispatcher) Active() bool { return d.active }
