package noise

import (
	"math"
	"math/rand"
	"sync/atomic"

	"github.com/cwbudde/algo-ambient/dsp/core"
)

// Kellet "refined" pink filter coefficients (six first-order poles plus a
// direct term and a unit-delay cross term), output scaled to roughly unit
// amplitude.
const (
	pinkScale  = 0.11
	brownScale = 3.5
	brownLeak  = 0.02
)

// Synthesizer generates an unbounded stream of colored noise whose timbre
// tracks a live exponent parameter.
//
// Fill is intended to run on an audio callback thread: it performs no
// allocation, no I/O and no locking. The exponent is read atomically once
// per block, so a value written mid-block takes effect on the next block.
// One Synthesizer owns its filter state exclusively and must not be shared
// across streams.
type Synthesizer struct {
	cfg core.ProcessorConfig
	rng *rand.Rand

	exponentBits atomic.Uint64
	stopped      atomic.Bool

	// Pink cascade accumulators b0..b5 plus the unit-delay white term b6.
	pink [7]float64
	// Leaky integrator accumulator for brown noise.
	brown float64
}

// SynthOption configures a Synthesizer.
type SynthOption func(*Synthesizer)

// WithSeed sets a deterministic random seed for the white-noise source.
func WithSeed(seed int64) SynthOption {
	return func(s *Synthesizer) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// NewSynthesizer creates a streaming noise synthesizer with exponent 0 (white).
func NewSynthesizer(coreOpts []core.ProcessorOption, opts ...SynthOption) *Synthesizer {
	s := &Synthesizer{
		cfg: core.ApplyProcessorOptions(coreOpts...),
		rng: rand.New(rand.NewSource(1)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Config returns the synthesizer processor configuration.
func (s *Synthesizer) Config() core.ProcessorConfig {
	return s.cfg
}

// SetExponent publishes a new noise exponent for subsequent blocks.
// Safe to call from a control thread while Fill runs on the audio thread.
func (s *Synthesizer) SetExponent(exponent float64) error {
	if err := ValidateExponent(exponent); err != nil {
		return err
	}
	s.exponentBits.Store(math.Float64bits(exponent))
	return nil
}

// Exponent returns the currently published noise exponent.
func (s *Synthesizer) Exponent() float64 {
	return math.Float64frombits(s.exponentBits.Load())
}

// Stop signals the synthesizer to go silent. The block being filled when
// Stop is called completes normally; later blocks are zeroed.
func (s *Synthesizer) Stop() {
	s.stopped.Store(true)
}

// Stopped reports whether Stop has been called.
func (s *Synthesizer) Stopped() bool {
	return s.stopped.Load()
}

// Fill writes len(block) noise samples.
//
// The blend uses the raw exponent rather than the effective exponent: the
// recursive sources already have the right spectral slopes, and raw values
// keep the control feel linear. Above 2.0 the blend is clamped to pure
// brown; extrapolating further would invert the pink term's sign.
func (s *Synthesizer) Fill(block []float64) {
	if s.stopped.Load() {
		core.Zero(block)
		return
	}

	exponent := math.Float64frombits(s.exponentBits.Load())
	exponent = core.Clamp(exponent, MinExponent, 2.0)

	for i := range block {
		white := s.rng.Float64()*2 - 1
		pink := s.nextPink(white)
		brown := s.nextBrown(white)

		if exponent <= 1 {
			block[i] = white*(1-exponent) + pink*exponent
		} else {
			block[i] = pink*(2-exponent) + brown*(exponent-1)
		}
	}
}

// nextPink advances the six-pole Kellet cascade by one sample.
// Strictly sequential: each output depends on the previous state.
func (s *Synthesizer) nextPink(white float64) float64 {
	s.pink[0] = core.FlushDenormals(0.99886*s.pink[0] + white*0.0555179)
	s.pink[1] = core.FlushDenormals(0.99332*s.pink[1] + white*0.0750759)
	s.pink[2] = core.FlushDenormals(0.96900*s.pink[2] + white*0.1538520)
	s.pink[3] = core.FlushDenormals(0.86650*s.pink[3] + white*0.3104856)
	s.pink[4] = core.FlushDenormals(0.55000*s.pink[4] + white*0.5329522)
	s.pink[5] = core.FlushDenormals(-0.7616*s.pink[5] - white*0.0168980)

	out := (s.pink[0] + s.pink[1] + s.pink[2] + s.pink[3] + s.pink[4] + s.pink[5] + s.pink[6] + white*0.5362) * pinkScale
	s.pink[6] = white * 0.115926

	return out
}

// nextBrown advances the leaky integrator. The leak bounds long-run drift
// while preserving the 1/f^2 character above the leak corner.
func (s *Synthesizer) nextBrown(white float64) float64 {
	s.brown = core.FlushDenormals((s.brown + brownLeak*white) / (1 + brownLeak))
	return s.brown * brownScale
}
