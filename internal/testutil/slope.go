package testutil

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-ambient/dsp/spectrum"
)

// SpectralSlope estimates the power-law exponent of a signal's power
// spectral density via an averaged windowed periodogram.
//
// The signal is split into non-overlapping Hann-windowed segments of
// segLen samples (power of two), the per-bin power spectra are averaged,
// and a least-squares line is fit to log10(power) versus log10(frequency)
// over [fMinHz, fMaxHz]. White noise yields ~0, pink ~-1, brown ~-2.
func SpectralSlope(signal []float64, sampleRate, fMinHz, fMaxHz float64, segLen int) (float64, error) {
	if segLen < 2 || segLen&(segLen-1) != 0 {
		return 0, fmt.Errorf("segment length must be a power of two >= 2: %d", segLen)
	}
	if len(signal) < segLen {
		return 0, fmt.Errorf("signal too short for segment length: %d < %d", len(signal), segLen)
	}
	if sampleRate <= 0 {
		return 0, fmt.Errorf("sample rate must be > 0: %f", sampleRate)
	}

	plan, err := algofft.NewPlan64(segLen)
	if err != nil {
		return 0, fmt.Errorf("create FFT plan: %w", err)
	}

	window := make([]float64, segLen)
	for i := range window {
		window[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(segLen-1)))
	}

	binCount := segLen/2 + 1
	avgPower := make([]float64, binCount)
	in := make([]complex128, segLen)
	out := make([]complex128, segLen)

	segments := len(signal) / segLen
	for s := range segments {
		seg := signal[s*segLen : (s+1)*segLen]
		for i := range in {
			in[i] = complex(seg[i]*window[i], 0)
		}
		if err := plan.Forward(out, in); err != nil {
			return 0, fmt.Errorf("forward FFT: %w", err)
		}
		power := spectrum.Power(out[:binCount])
		for i, p := range power {
			avgPower[i] += p
		}
	}

	// Least-squares fit over the requested band, skipping DC.
	var sumX, sumY, sumXY, sumXX float64
	var n int
	for i := 1; i < binCount; i++ {
		f := float64(i) * sampleRate / float64(segLen)
		if f < fMinHz || f > fMaxHz {
			continue
		}
		p := avgPower[i] / float64(segments)
		if p <= 0 {
			continue
		}
		x := math.Log10(f)
		y := math.Log10(p)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
		n++
	}
	if n < 2 {
		return 0, fmt.Errorf("too few bins in fit band [%g, %g] Hz: %d", fMinHz, fMaxHz, n)
	}

	nf := float64(n)
	denom := nf*sumXX - sumX*sumX
	if denom == 0 {
		return 0, fmt.Errorf("degenerate frequency band for slope fit")
	}
	return (nf*sumXY - sumX*sumY) / denom, nil
}
