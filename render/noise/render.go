// Package noise renders fixed-length colored-noise buffers by shaping a
// white-noise spectrum in the frequency domain. For a fixed target slope
// this is statistically flatter than the streaming recursive filters.
package noise

import (
	"fmt"
	"math"
	"math/rand"

	algofft "github.com/MeKo-Christian/algo-fft"

	dspnoise "github.com/cwbudde/algo-ambient/dsp/noise"
	"github.com/cwbudde/algo-ambient/dsp/normalize"
	"github.com/cwbudde/algo-ambient/dsp/spectrum"
	"github.com/cwbudde/algo-ambient/encode/wav"
	timestats "github.com/cwbudde/algo-ambient/stats/time"
)

// loopFadeSeconds is the overlap used to splice the cut back into the
// periodic FFT buffer so the rendered track loops without a click.
const loopFadeSeconds = 0.05

// Renderer configures an offline colored-noise render.
//
// The shaping uses the effective exponent (compressed above 1.0), unlike
// the streaming synthesizer's raw-exponent blend. Rendered tracks are
// loop-safe: the last sample steps into the first like any interior pair.
type Renderer struct {
	Exponent   float64
	Duration   float64 // seconds
	SampleRate float64 // Hz
	Seed       int64   // 0 selects a nondeterministic seed
}

// Telemetry carries the diagnostic values a render reports. Not
// correctness-critical; intended for debug output.
type Telemetry struct {
	SpectrumMin float64 // magnitude over bins above DC, after shaping
	SpectrumMax float64
	RawMin      float64 // time-domain signal before normalization
	RawMax      float64
	RawRMS      float64
	NormMin     float64 // after normalization
	NormMax     float64
	NormRMS     float64
	PCMMin      int16
	PCMMax      int16
}

// Track is a finished noise render.
type Track struct {
	Samples    []float64
	PCM        []int16
	SampleRate float64
	Channels   int
	TargetRMS  float64
	Norm       normalize.Result
	Telemetry  Telemetry
}

// Validate checks the render parameters against their documented domains.
func (r *Renderer) Validate() error {
	if err := dspnoise.ValidateExponent(r.Exponent); err != nil {
		return err
	}
	if r.SampleRate <= 0 {
		return fmt.Errorf("noise render sample rate must be > 0: %g", r.SampleRate)
	}
	if r.Duration <= 0 {
		return fmt.Errorf("noise render duration must be > 0: %g", r.Duration)
	}
	if r.samples() < 2 {
		return fmt.Errorf("noise render needs at least 2 samples: %d", r.samples())
	}
	return nil
}

func (r *Renderer) samples() int {
	return int(math.Round(r.Duration * r.SampleRate))
}

// Render produces a mono colored-noise track normalized to the default RMS
// target and scaled to PCM16.
func (r *Renderer) Render() (*Track, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	effective, err := dspnoise.EffectiveExponent(r.Exponent)
	if err != nil {
		return nil, err
	}

	n := r.samples()
	fftSize := nextPowerOf2(n)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("noise render: create FFT plan: %w", err)
	}

	seed := r.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	rng := rand.New(rand.NewSource(seed))

	timeData := make([]complex128, fftSize)
	for i := range timeData {
		timeData[i] = complex(rng.Float64()*2-1, 0)
	}

	freqData := make([]complex128, fftSize)
	if err := plan.Forward(freqData, timeData); err != nil {
		return nil, fmt.Errorf("noise render: forward FFT: %w", err)
	}

	shapeSpectrum(freqData, effective, r.SampleRate)

	var tel Telemetry
	tel.SpectrumMin, tel.SpectrumMax = magnitudeRange(freqData[1 : fftSize/2+1])

	if err := plan.Inverse(timeData, freqData); err != nil {
		return nil, fmt.Errorf("noise render: inverse FFT: %w", err)
	}

	samples := make([]float64, n)
	for i := range samples {
		samples[i] = real(timeData[i])
	}
	loopAlign(samples, timeData, int(math.Round(loopFadeSeconds*r.SampleRate)))

	raw := timestats.Calculate(samples)
	tel.RawMin, tel.RawMax, tel.RawRMS = raw.Min, raw.Max, raw.RMS

	norm, err := normalize.ToRMS(samples, normalize.DefaultTargetRMS)
	if err != nil {
		return nil, err
	}

	normed := timestats.Calculate(samples)
	tel.NormMin, tel.NormMax, tel.NormRMS = normed.Min, normed.Max, normed.RMS

	pcm := wav.Int16FromFloat64(samples)
	tel.PCMMin, tel.PCMMax = pcmRange(pcm)

	return &Track{
		Samples:    samples,
		PCM:        pcm,
		SampleRate: r.SampleRate,
		Channels:   1,
		TargetRMS:  normalize.DefaultTargetRMS,
		Norm:       norm,
		Telemetry:  tel,
	}, nil
}

// shapeSpectrum scales bin magnitudes by f^(-exponent/2), preserving phase
// and Hermitian symmetry. The DC bin is zeroed: it has no defined power-law
// scale and would otherwise reappear as a DC offset.
func shapeSpectrum(freqData []complex128, exponent float64, sampleRate float64) {
	fftSize := len(freqData)
	half := fftSize / 2

	freqData[0] = 0
	for k := 1; k <= half; k++ {
		f := float64(k) * sampleRate / float64(fftSize)
		scale := complex(math.Pow(f, -exponent/2), 0)
		freqData[k] *= scale
		if k < half {
			freqData[fftSize-k] *= scale
		}
	}
}

// loopAlign makes the n-sample cut circularly periodic. The inverse FFT
// buffer is periodic over the padded FFT size, not over n, so keeping the
// first n samples would leave a step at the loop boundary. Crossfading the
// cut's tail into the periodic buffer's tail ends the cut at the sample
// that precedes buffer index 0, so the last sample leads back into the
// first. Equal-power gains keep the noise level flat through the overlap.
func loopAlign(samples []float64, periodic []complex128, fadeSamples int) {
	n := len(samples)
	size := len(periodic)
	if n == size {
		// The cut spans the whole FFT buffer and is already periodic.
		return
	}
	if fadeSamples > n/2 {
		fadeSamples = n / 2
	}
	if fadeSamples < 1 {
		return
	}

	for j := range fadeSamples {
		t := float64(j+1) / float64(fadeSamples)
		gIn := math.Sin(t * math.Pi / 2)
		gOut := math.Cos(t * math.Pi / 2)

		i := n - fadeSamples + j
		wrap := real(periodic[size-fadeSamples+j])
		samples[i] = samples[i]*gOut + wrap*gIn
	}
}

func magnitudeRange(bins []complex128) (minMag, maxMag float64) {
	mags := spectrum.Magnitude(bins)
	if len(mags) == 0 {
		return 0, 0
	}
	minMag, maxMag = mags[0], mags[0]
	for _, m := range mags[1:] {
		if m < minMag {
			minMag = m
		}
		if m > maxMag {
			maxMag = m
		}
	}
	return minMag, maxMag
}

func pcmRange(pcm []int16) (minVal, maxVal int16) {
	if len(pcm) == 0 {
		return 0, 0
	}
	minVal, maxVal = pcm[0], pcm[0]
	for _, v := range pcm[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	return minVal, maxVal
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
