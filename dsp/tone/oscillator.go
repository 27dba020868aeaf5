// Package tone provides a phase-continuous sine oscillator for streaming
// playback. Consecutive blocks join smoothly because the phase persists
// across Fill calls, and the frequency can be retargeted from a control
// thread without an audible jump.
package tone

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-ambient/dsp/core"
)

// Oscillator generates a unit-amplitude sine wave block by block.
// One Oscillator owns its phase exclusively; Fill is single-threaded.
type Oscillator struct {
	cfg      core.ProcessorConfig
	freqBits atomic.Uint64
	phase    float64
}

// NewOscillator creates an oscillator at the given frequency and initial
// phase in radians.
func NewOscillator(freqHz, phase float64, opts ...core.ProcessorOption) (*Oscillator, error) {
	o := &Oscillator{
		cfg:   core.ApplyProcessorOptions(opts...),
		phase: phase,
	}
	if err := o.SetFrequency(freqHz); err != nil {
		return nil, err
	}
	return o, nil
}

// SetFrequency publishes a new frequency for subsequent blocks. Safe to
// call from a control thread while Fill runs on the audio thread.
func (o *Oscillator) SetFrequency(freqHz float64) error {
	if freqHz <= 0 {
		return fmt.Errorf("oscillator frequency must be > 0 Hz: %g", freqHz)
	}
	if freqHz >= o.cfg.SampleRate/2 {
		return fmt.Errorf("oscillator frequency must be below Nyquist (%g Hz): %g", o.cfg.SampleRate/2, freqHz)
	}
	o.freqBits.Store(math.Float64bits(freqHz))
	return nil
}

// Frequency returns the currently published frequency in Hz.
func (o *Oscillator) Frequency() float64 {
	return math.Float64frombits(o.freqBits.Load())
}

// Fill writes len(block) sine samples, continuing from the previous block's
// phase. The frequency is read once per block.
func (o *Oscillator) Fill(block []float64) {
	freq := math.Float64frombits(o.freqBits.Load())
	step := 2 * math.Pi * freq / o.cfg.SampleRate

	phase := o.phase
	for i := range block {
		block[i] = math.Sin(phase)
		phase += step
	}
	o.phase = math.Mod(phase, 2*math.Pi)
}
