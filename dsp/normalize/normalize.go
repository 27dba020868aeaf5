// Package normalize implements the shared loudness policy applied to every
// finished buffer: scale to a target RMS, then rescale down if the peak
// would exceed full scale. Clip safety overrides the exact RMS target; the
// achieved RMS is reported instead of silently clipping.
package normalize

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// DefaultTargetRMS is the loudness target used by all renderers.
const DefaultTargetRMS = 0.1

// silenceRMS is the threshold below which input is treated as silence and
// the RMS scale step is skipped to avoid amplifying the noise floor.
const silenceRMS = 1e-10

// Result reports what the normalization pass did to a buffer.
type Result struct {
	InputRMS    float64
	AchievedRMS float64
	Peak        float64 // peak absolute amplitude after normalization
	Silent      bool    // input RMS below the silence threshold; buffer untouched
	PeakLimited bool    // peak clamp engaged, AchievedRMS < target
}

// ToRMS scales buf in place to the target RMS, then clamps the peak to 1.0
// if the scaled buffer would clip.
func ToRMS(buf []float64, targetRMS float64) (Result, error) {
	if len(buf) == 0 {
		return Result{}, fmt.Errorf("normalize input must not be empty")
	}
	if targetRMS <= 0 {
		return Result{}, fmt.Errorf("normalize target RMS must be > 0: %g", targetRMS)
	}

	res := Result{InputRMS: rms(buf)}
	if res.InputRMS < silenceRMS {
		res.Silent = true
		res.AchievedRMS = res.InputRMS
		res.Peak = peak(buf)
		return res, nil
	}

	scale := targetRMS / res.InputRMS
	vecmath.ScaleBlock(buf, buf, scale)
	res.AchievedRMS = targetRMS

	res.Peak = peak(buf)
	if res.Peak > 1.0 {
		vecmath.ScaleBlock(buf, buf, 1.0/res.Peak)
		res.AchievedRMS = targetRMS / res.Peak
		res.Peak = 1.0
		res.PeakLimited = true
	}

	return res, nil
}

func rms(buf []float64) float64 {
	sum := 0.0
	for _, v := range buf {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(buf)))
}

func peak(buf []float64) float64 {
	p := 0.0
	for _, v := range buf {
		if a := math.Abs(v); a > p {
			p = a
		}
	}
	return p
}
