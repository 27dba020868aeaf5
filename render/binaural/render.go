// Package binaural renders fixed-length stereo binaural-beat tones that
// loop without an audible seam.
//
// Two alignment mechanisms work together: the buffer length is snapped to
// an integer multiple of the beat period, making the interaural amplitude
// envelope periodic in the buffer, and the right channel starts pi out of
// phase so the envelope minimum lands on both loop endpoints. A short
// fade at each end then removes any residual finite-precision step.
package binaural

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-ambient/dsp/normalize"
	"github.com/cwbudde/algo-ambient/encode/wav"
)

// Recommended parameter ranges, validated at the API boundary.
const (
	MinBaseFrequency = 80.0
	MaxBaseFrequency = 400.0
	MinBeatFrequency = 0.5
	MaxBeatFrequency = 30.0

	// DefaultCrossfade is the fade-in/fade-out length in seconds.
	DefaultCrossfade = 0.1
)

// Spec describes a binaural render. Crossfade may be zero; negative values
// are rejected.
type Spec struct {
	BaseFrequency float64 // Hz, left channel
	BeatFrequency float64 // Hz, right channel plays base + beat
	Duration      float64 // requested seconds; snapped to the beat period
	Crossfade     float64 // seconds of linear fade at each end
	SampleRate    float64 // Hz
}

// Track is a finished stereo binaural render.
type Track struct {
	Left  []float64
	Right []float64
	PCM   []int16 // interleaved stereo

	SampleRate float64
	Channels   int
	TargetRMS  float64

	// Loop metadata.
	AdjustedDuration float64 // seconds, an exact multiple of BeatPeriod
	BeatPeriod       float64 // seconds

	NormLeft  normalize.Result
	NormRight normalize.Result
}

// Validate checks the spec against the documented parameter domains.
func (s *Spec) Validate() error {
	if s.BaseFrequency < MinBaseFrequency || s.BaseFrequency > MaxBaseFrequency {
		return fmt.Errorf("base frequency must be in [%g, %g] Hz: %g", MinBaseFrequency, MaxBaseFrequency, s.BaseFrequency)
	}
	if s.BeatFrequency <= 0 {
		return fmt.Errorf("beat frequency must be > 0 Hz: %g", s.BeatFrequency)
	}
	if s.BeatFrequency < MinBeatFrequency || s.BeatFrequency > MaxBeatFrequency {
		return fmt.Errorf("beat frequency must be in [%g, %g] Hz: %g", MinBeatFrequency, MaxBeatFrequency, s.BeatFrequency)
	}
	if s.Duration <= 0 {
		return fmt.Errorf("duration must be > 0 s: %g", s.Duration)
	}
	if s.Crossfade < 0 {
		return fmt.Errorf("crossfade must be >= 0 s: %g", s.Crossfade)
	}
	if s.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be > 0 Hz: %g", s.SampleRate)
	}

	adjusted := s.adjustedDuration()
	if s.Crossfade >= adjusted/2 {
		return fmt.Errorf("crossfade must be < half the adjusted duration (%g s): %g", adjusted, s.Crossfade)
	}
	return nil
}

// adjustedDuration snaps the requested duration to the nearest integer
// multiple of the beat period, with a minimum of one full period.
func (s *Spec) adjustedDuration() float64 {
	period := 1.0 / s.BeatFrequency
	periods := math.Round(s.Duration / period)
	if periods < 1 {
		periods = 1
	}
	return periods * period
}

// Render produces the stereo tone buffer, per-channel normalized to the
// default RMS target and interleaved into PCM16.
func (s *Spec) Render() (*Track, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	adjusted := s.adjustedDuration()
	n := int(math.Round(adjusted * s.SampleRate))

	left := make([]float64, n)
	right := make([]float64, n)

	leftStep := 2 * math.Pi * s.BaseFrequency / s.SampleRate
	rightStep := 2 * math.Pi * (s.BaseFrequency + s.BeatFrequency) / s.SampleRate
	for i := range n {
		left[i] = math.Sin(leftStep * float64(i))
		// The pi offset is a constant phase bias, not a frequency change:
		// it parks the envelope minimum at t=0 and, by periodicity, at
		// t=duration.
		right[i] = math.Sin(rightStep*float64(i) + math.Pi)
	}

	ApplyFade(left, s.Crossfade, s.SampleRate)
	ApplyFade(right, s.Crossfade, s.SampleRate)

	normL, err := normalize.ToRMS(left, normalize.DefaultTargetRMS)
	if err != nil {
		return nil, err
	}
	normR, err := normalize.ToRMS(right, normalize.DefaultTargetRMS)
	if err != nil {
		return nil, err
	}

	stereo, err := wav.Interleave(left, right)
	if err != nil {
		return nil, err
	}

	return &Track{
		Left:             left,
		Right:            right,
		PCM:              wav.Int16FromFloat64(stereo),
		SampleRate:       s.SampleRate,
		Channels:         2,
		TargetRMS:        normalize.DefaultTargetRMS,
		AdjustedDuration: adjusted,
		BeatPeriod:       1.0 / s.BeatFrequency,
		NormLeft:         normL,
		NormRight:        normR,
	}, nil
}

// ApplyFade ramps the first and last fade seconds of buf linearly 0->1 and
// 1->0. Layers mixed on top of a rendered tone use the same fade so the
// combined track still opens and closes silent.
func ApplyFade(buf []float64, fade, sampleRate float64) {
	fadeSamples := int(math.Round(fade * sampleRate))
	if fadeSamples <= 0 {
		return
	}
	if 2*fadeSamples > len(buf) {
		fadeSamples = len(buf) / 2
	}

	for i := range fadeSamples {
		g := float64(i) / float64(fadeSamples)
		buf[i] *= g
		buf[len(buf)-1-i] *= g
	}
}
