// Package pipeline composes the per-frame lane analysis stages and owns
// the per-stream drift state.
//
// Each frame flows edge map -> segment extraction -> lane fit -> drift
// estimate -> decision state machine, strictly in arrival order. The
// estimate is a pure function of the frame; only the final tracker step
// mutates state, and a frame that fails any earlier stage leaves the
// drift state untouched.
//
// A Pipeline owns exactly one stream. Nothing is shared between Pipeline
// instances, so multiple cameras or videos may be processed concurrently,
// one Pipeline each. Process never performs I/O, logs, or blocks; side
// effects (audio, display) are scheduled by the caller from the returned
// Result.
package pipeline
