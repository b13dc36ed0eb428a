// Package lane fits lane-boundary lines from detected segments, estimates
// the vehicle's lateral drift from the lane center, and debounces that
// drift into a stable alert state.
//
// # Line Parameterization
//
// Lane boundaries in road footage are near vertical in image coordinates,
// so fitted lines are stored as x = Slope*y + Intercept (x as a function of
// y). A perfectly vertical boundary is simply Slope=0, Intercept=x; there
// is no degenerate case in downstream intercept math.
//
// # Sign Convention
//
// OffsetPixels = laneCenterX - frameCenterX. Positive means the lane center
// sits right of the frame center, i.e. the vehicle is drifting right.
// The convention is preserved end to end through the Tracker.
//
// # State Machine
//
// Tracker applies exponential smoothing, debounce counting, and
// loss-of-signal handling per frame. Both entering and leaving Alerting
// require sustained evidence, so the alert cannot flicker on and off when
// the smoothed offset sits near the threshold. DriftState is owned
// exclusively by the Tracker: nothing else sets AlertActive.
package lane
