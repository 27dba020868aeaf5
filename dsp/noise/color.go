package noise

import "fmt"

// Exponent domain bounds.
const (
	MinExponent = 0.0
	MaxExponent = 3.0
)

// colorCenters maps named noise colors to their exponent center points.
// Labels switch at the arithmetic midpoints between consecutive centers.
var colorCenters = []struct {
	exponent float64
	name     string
}{
	{0.0, "White"},
	{0.5, "SoftWhite"},
	{0.75, "LightPink"},
	{1.0, "Pink"},
	{1.25, "DarkPink"},
	{1.75, "LightBrown"},
	{2.0, "Brown"},
	{2.5, "DarkBrown"},
	{3.0, "Black"},
}

// ValidateExponent checks that exponent lies in [MinExponent, MaxExponent].
func ValidateExponent(exponent float64) error {
	if exponent < MinExponent || exponent > MaxExponent {
		return fmt.Errorf("noise exponent must be in [%g, %g]: %g", MinExponent, MaxExponent, exponent)
	}
	return nil
}

// EffectiveExponent returns the compressed exponent used for spectral shaping.
//
// Identity for exponent <= 1; above 1 the value is compressed as
// exponent * (1 - 0.25*(exponent-1)) so that very red spectra do not
// collapse into inaudibly quiet low-frequency rumble (2.0 maps to 1.5).
func EffectiveExponent(exponent float64) (float64, error) {
	if err := ValidateExponent(exponent); err != nil {
		return 0, err
	}
	if exponent <= 1 {
		return exponent, nil
	}
	return exponent * (1.0 - 0.25*(exponent-1.0)), nil
}

// ColorLabel returns the descriptive color name for an exponent.
func ColorLabel(exponent float64) (string, error) {
	if err := ValidateExponent(exponent); err != nil {
		return "", err
	}

	for i := 0; i < len(colorCenters)-1; i++ {
		threshold := (colorCenters[i].exponent + colorCenters[i+1].exponent) / 2
		if exponent < threshold {
			return colorCenters[i].name, nil
		}
	}
	return colorCenters[len(colorCenters)-1].name, nil
}
