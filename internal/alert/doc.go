// Package alert turns drift decision states into driver warnings.
//
// A Dispatcher watches the per-frame state sequence and drives a Sink:
// the sink is started when the tracker enters ALERTING and stopped when
// the vehicle re-centers or the lane signal is lost. Repeated starts
// inside the cooldown window are suppressed so an alert that flickers
// at frame rate does not hammer the audio device.
package alert
