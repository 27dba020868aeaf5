// Package time computes time-domain signal statistics in a single pass.
// Renderers use these for their debug telemetry; tests use them to check
// loudness and clip-safety invariants.
package time

import "math"

// Stats holds time-domain signal statistics.
//
//nolint:revive
type Stats struct {
	Length  int
	DC      float64 // mean
	RMS     float64
	RMS_dB  float64
	Max     float64
	MaxPos  int
	Min     float64
	MinPos  int
	Peak    float64 // max(|max|, |min|)
	Peak_dB float64
	Range   float64 // max - min
	Energy  float64 // sum of squares
	Power   float64 // energy / length
}

// ampTodB converts an amplitude value to decibels: 20 * log10(|value|).
// Returns -Inf for zero values.
func ampTodB(value float64) float64 {
	a := math.Abs(value)
	if a == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(a)
}

// Calculate computes all statistics in one pass over the signal.
func Calculate(signal []float64) Stats {
	n := len(signal)
	if n == 0 {
		return Stats{
			RMS_dB:  math.Inf(-1),
			Peak_dB: math.Inf(-1),
		}
	}

	var (
		sum    float64
		sumSq  float64
		maxVal = signal[0]
		maxPos int
		minVal = signal[0]
		minPos int
	)

	for i, x := range signal {
		sum += x
		sumSq += x * x

		if x > maxVal {
			maxVal = x
			maxPos = i
		}

		if x < minVal {
			minVal = x
			minPos = i
		}
	}

	nf := float64(n)
	rms := math.Sqrt(sumSq / nf)
	peak := math.Max(math.Abs(maxVal), math.Abs(minVal))

	return Stats{
		Length:  n,
		DC:      sum / nf,
		RMS:     rms,
		RMS_dB:  ampTodB(rms),
		Max:     maxVal,
		MaxPos:  maxPos,
		Min:     minVal,
		MinPos:  minPos,
		Peak:    peak,
		Peak_dB: ampTodB(peak),
		Range:   maxVal - minVal,
		Energy:  sumSq,
		Power:   sumSq / nf,
	}
}
