package alert

import (
	"math"
	"time"
)

// Warning tone defaults.
const (
	DefaultToneFreqHz   = 800.0
	DefaultToneDuration = 300 * time.Millisecond
	DefaultToneVolume   = 0.5
	DefaultSampleRate   = 44100
)

// Tone synthesizes a mono sine beep as signed 16-bit PCM samples.
// volume is a linear gain in [0, 1]; values outside the range are
// clamped. The result can be handed to any PCM audio backend.
func Tone(freqHz float64, duration time.Duration, volume float64, sampleRate int) []int16 {
	if freqHz <= 0 || duration <= 0 || sampleRate <= 0 {
		return nil
	}
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}

	n := int(float64(sampleRate) * duration.Seconds())
	samples := make([]int16, n)
	amp := volume * float64(math.MaxInt16)
	step := 2 * math.Pi * freqHz / float64(sampleRate)
	for i := range samples {
		samples[i] = int16(amp * math.Sin(step*float64(i)))
	}
	return samples
}
