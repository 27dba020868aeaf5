package noise

import (
	"testing"

	"github.com/cwbudde/algo-ambient/internal/testutil"
)

func fillLong(t *testing.T, exponent float64, samples int) []float64 {
	t.Helper()
	s := NewSynthesizer(nil, WithSeed(42))
	if err := s.SetExponent(exponent); err != nil {
		t.Fatalf("SetExponent(%v) error = %v", exponent, err)
	}
	out := make([]float64, samples)
	block := 4096
	for off := 0; off < samples; off += block {
		end := min(off+block, samples)
		s.Fill(out[off:end])
	}
	return out
}

func TestFillDeterministicWithSeed(t *testing.T) {
	a := fillLong(t, 1.0, 8192)
	b := fillLong(t, 1.0, 8192)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs: %v != %v", i, a[i], b[i])
		}
	}
}

func TestFillFinite(t *testing.T) {
	for _, e := range []float64{0, 0.5, 1, 1.5, 2, 3} {
		out := fillLong(t, e, 1<<14)
		testutil.RequireFinite(t, out)
	}
}

func TestSetExponentValidation(t *testing.T) {
	s := NewSynthesizer(nil)
	if err := s.SetExponent(3.5); err == nil {
		t.Fatal("expected validation error for exponent 3.5")
	}
	if err := s.SetExponent(-1); err == nil {
		t.Fatal("expected validation error for exponent -1")
	}
	if err := s.SetExponent(2.5); err != nil {
		t.Fatalf("SetExponent(2.5) error = %v", err)
	}
	if s.Exponent() != 2.5 {
		t.Fatalf("Exponent() = %v, want 2.5", s.Exponent())
	}
}

func TestStopSilencesLaterBlocks(t *testing.T) {
	s := NewSynthesizer(nil, WithSeed(1))
	block := make([]float64, 256)
	s.Fill(block)
	s.Stop()
	if !s.Stopped() {
		t.Fatal("expected Stopped() after Stop()")
	}
	s.Fill(block)
	for i, v := range block {
		if v != 0 {
			t.Fatalf("sample %d = %v after stop, want 0", i, v)
		}
	}
}

func TestSpectralSlopeWhite(t *testing.T) {
	out := fillLong(t, 0, 1<<18)
	slope, err := testutil.SpectralSlope(out, 44100, 200, 8000, 8192)
	if err != nil {
		t.Fatalf("SpectralSlope() error = %v", err)
	}
	if slope < -0.25 || slope > 0.25 {
		t.Fatalf("white slope = %v, want ~0", slope)
	}
}

func TestSpectralSlopePink(t *testing.T) {
	out := fillLong(t, 1, 1<<18)
	slope, err := testutil.SpectralSlope(out, 44100, 200, 8000, 8192)
	if err != nil {
		t.Fatalf("SpectralSlope() error = %v", err)
	}
	if slope < -1.4 || slope > -0.6 {
		t.Fatalf("pink slope = %v, want ~-1", slope)
	}
}

func TestSpectralSlopeBrown(t *testing.T) {
	out := fillLong(t, 2, 1<<18)
	// Fit above the leaky integrator's corner (~140 Hz at 44.1 kHz).
	slope, err := testutil.SpectralSlope(out, 44100, 400, 6000, 8192)
	if err != nil {
		t.Fatalf("SpectralSlope() error = %v", err)
	}
	if slope < -2.5 || slope > -1.5 {
		t.Fatalf("brown slope = %v, want ~-2", slope)
	}
}

func TestBlendClampAboveTwo(t *testing.T) {
	// Exponent 3 must behave as pure brown, not invert the pink term.
	a := fillLong(t, 2, 4096)
	b := fillLong(t, 3, 4096)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d: exponent 3 differs from pure brown: %v != %v", i, b[i], a[i])
		}
	}
}
