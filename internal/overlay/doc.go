// Package overlay renders diagnostic annotations onto video frames:
// the fitted lane boundaries, the lane and frame center markers, the
// drift threshold ticks, and an alert banner when a departure alert
// is active.
//
// Rendering never mutates the input frame; Render clones it and draws
// on the copy. Absent boundaries and undefined offsets are simply
// skipped, so the overlay is safe to apply on every frame including
// signal-loss ones.
package overlay
