// Package mix combines the binaural tone pair and the colored-noise stream
// into a stereo output, with gains and synthesis parameters updatable live.
//
// Fill is the block callback invoked by the output sink: it allocates
// nothing, takes no locks and reads each live parameter atomically once
// per block. A one-block-stale value is the accepted cost of lock freedom.
package mix

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-ambient/dsp/core"
	"github.com/cwbudde/algo-ambient/dsp/noise"
	"github.com/cwbudde/algo-ambient/dsp/tone"
)

// Parameter domains validated at the control boundary.
const (
	MinBaseFrequency = 80.0
	MaxBaseFrequency = 400.0
	MinBeatFrequency = 0.5
	MaxBeatFrequency = 30.0
)

// Graph is the realtime mixer: left = toneL*toneGain + noise*noiseGain,
// right = toneR*toneGain + noise*noiseGain. One mono noise stream feeds
// both channels.
type Graph struct {
	cfg core.ProcessorConfig

	toneLeft  *tone.Oscillator
	toneRight *tone.Oscillator
	noise     *noise.Synthesizer

	baseBits      atomic.Uint64
	beatBits      atomic.Uint64
	toneGainBits  atomic.Uint64
	noiseGainBits atomic.Uint64
	stopped       atomic.Bool

	noiseBuf []float64
}

// NewGraph creates a mixer with the given tone frequencies. Gains start at
// zero; the noise exponent starts at white.
func NewGraph(baseFreq, beatFreq float64, coreOpts []core.ProcessorOption, synthOpts ...noise.SynthOption) (*Graph, error) {
	cfg := core.ApplyProcessorOptions(coreOpts...)

	g := &Graph{
		cfg:      cfg,
		noise:    noise.NewSynthesizer(coreOpts, synthOpts...),
		noiseBuf: make([]float64, cfg.BlockSize),
	}

	var err error
	if g.toneLeft, err = tone.NewOscillator(1, 0, coreOpts...); err != nil {
		return nil, err
	}
	if g.toneRight, err = tone.NewOscillator(1, 0, coreOpts...); err != nil {
		return nil, err
	}
	if err := g.SetFrequencies(baseFreq, beatFreq); err != nil {
		return nil, err
	}
	return g, nil
}

// Config returns the graph processor configuration.
func (g *Graph) Config() core.ProcessorConfig {
	return g.cfg
}

// SetFrequencies publishes a new base/beat frequency pair.
func (g *Graph) SetFrequencies(baseFreq, beatFreq float64) error {
	if baseFreq < MinBaseFrequency || baseFreq > MaxBaseFrequency {
		return fmt.Errorf("base frequency must be in [%g, %g] Hz: %g", MinBaseFrequency, MaxBaseFrequency, baseFreq)
	}
	if beatFreq < MinBeatFrequency || beatFreq > MaxBeatFrequency {
		return fmt.Errorf("beat frequency must be in [%g, %g] Hz: %g", MinBeatFrequency, MaxBeatFrequency, beatFreq)
	}

	if err := g.toneLeft.SetFrequency(baseFreq); err != nil {
		return err
	}
	if err := g.toneRight.SetFrequency(baseFreq + beatFreq); err != nil {
		return err
	}
	g.baseBits.Store(math.Float64bits(baseFreq))
	g.beatBits.Store(math.Float64bits(beatFreq))
	return nil
}

// SetToneGain publishes a new tone gain in [0, 1].
func (g *Graph) SetToneGain(gain float64) error {
	if gain < 0 || gain > 1 {
		return fmt.Errorf("tone gain must be in [0, 1]: %g", gain)
	}
	g.toneGainBits.Store(math.Float64bits(gain))
	return nil
}

// SetNoiseGain publishes a new noise gain in [0, 1].
func (g *Graph) SetNoiseGain(gain float64) error {
	if gain < 0 || gain > 1 {
		return fmt.Errorf("noise gain must be in [0, 1]: %g", gain)
	}
	g.noiseGainBits.Store(math.Float64bits(gain))
	return nil
}

// SetNoiseExponent publishes a new noise exponent in [0, 3].
func (g *Graph) SetNoiseExponent(exponent float64) error {
	return g.noise.SetExponent(exponent)
}

// Stop signals the graph to go silent. The block being filled when Stop is
// called completes normally; later blocks are zeroed. Callers must not tear
// down the graph until the current callback has returned.
func (g *Graph) Stop() {
	g.stopped.Store(true)
	g.noise.Stop()
}

// Stopped reports whether Stop has been called.
func (g *Graph) Stopped() bool {
	return g.stopped.Load()
}

// Fill writes one stereo block. Both slices must have the same length; for
// an allocation-free callback the length must not exceed the configured
// block size. Mixed samples are clamped to [-1, 1] so that a hot tone+noise
// sum cannot clip the sink.
func (g *Graph) Fill(left, right []float64) {
	n := min(len(left), len(right))
	left, right = left[:n], right[:n]

	if g.stopped.Load() {
		core.Zero(left)
		core.Zero(right)
		return
	}

	toneGain := math.Float64frombits(g.toneGainBits.Load())
	noiseGain := math.Float64frombits(g.noiseGainBits.Load())

	g.noiseBuf = core.EnsureLen(g.noiseBuf, n)
	g.noise.Fill(g.noiseBuf)
	g.toneLeft.Fill(left)
	g.toneRight.Fill(right)

	for i := range n {
		noiseSample := g.noiseBuf[i] * noiseGain
		left[i] = core.Clamp(left[i]*toneGain+noiseSample, -1, 1)
		right[i] = core.Clamp(right[i]*toneGain+noiseSample, -1, 1)
	}
}
