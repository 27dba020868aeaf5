package binaural

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-ambient/internal/testutil"
)

func TestAdjustedDurationSnapsToBeatPeriod(t *testing.T) {
	tests := []struct {
		duration float64
		beat     float64
		want     float64
	}{
		{5.0, 10, 5.0},  // 50 exact periods
		{5.04, 10, 5.0}, // rounds down to 50 periods
		{5.06, 10, 5.1}, // rounds up to 51 periods
		{0.01, 10, 0.1}, // minimum one full period
		{10.0, 2, 10.0},
	}

	for _, tt := range tests {
		s := &Spec{BaseFrequency: 200, BeatFrequency: tt.beat, Duration: tt.duration, SampleRate: 44100}
		track, err := s.Render()
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if math.Abs(track.AdjustedDuration-tt.want) > 1e-9 {
			t.Fatalf("duration %v beat %v: adjusted = %v, want %v", tt.duration, tt.beat, track.AdjustedDuration, tt.want)
		}

		periods := track.AdjustedDuration / track.BeatPeriod
		if math.Abs(periods-math.Round(periods)) > 1e-9 {
			t.Fatalf("adjusted duration %v is not a period multiple", track.AdjustedDuration)
		}
	}
}

func TestLoopSeamContinuity(t *testing.T) {
	// Alignment alone (no fade) must place both endpoints near the
	// envelope minimum.
	s := &Spec{BaseFrequency: 200, BeatFrequency: 10, Duration: 5, Crossfade: 0, SampleRate: 44100}
	track, err := s.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	n := len(track.Left)
	if n != 220500 {
		t.Fatalf("len = %d, want 220500", n)
	}

	peak := testutil.Peak(track.Left)
	for _, idx := range []int{0, n - 1} {
		if math.Abs(track.Left[idx]) > 0.1*peak {
			t.Fatalf("left[%d] = %v, want near zero (peak %v)", idx, track.Left[idx], peak)
		}
		if math.Abs(track.Right[idx]) > 0.1*peak {
			t.Fatalf("right[%d] = %v, want near zero (peak %v)", idx, track.Right[idx], peak)
		}
	}
}

func TestFadeEndpointsAreZero(t *testing.T) {
	s := &Spec{BaseFrequency: 200, BeatFrequency: 10, Duration: 5, Crossfade: 0.1, SampleRate: 44100}
	track, err := s.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if track.Left[0] != 0 || track.Right[0] != 0 {
		t.Fatalf("first samples = %v/%v, want 0", track.Left[0], track.Right[0])
	}
	if track.Left[len(track.Left)-1] != 0 || track.Right[len(track.Right)-1] != 0 {
		t.Fatal("last samples nonzero after fade-out")
	}
}

func TestPerChannelNormalization(t *testing.T) {
	s := &Spec{BaseFrequency: 200, BeatFrequency: 10, Duration: 5, Crossfade: 0.1, SampleRate: 44100}
	track, err := s.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	testutil.RequireNear(t, testutil.RMS(track.Left), 0.1, 0.005)
	testutil.RequireNear(t, testutil.RMS(track.Right), 0.1, 0.005)
	if p := testutil.Peak(track.Left); p > 1.0 {
		t.Fatalf("left peak = %v", p)
	}
	if p := testutil.Peak(track.Right); p > 1.0 {
		t.Fatalf("right peak = %v", p)
	}
}

func TestRenderDeterministic(t *testing.T) {
	s := &Spec{BaseFrequency: 200, BeatFrequency: 10, Duration: 5, Crossfade: 0.1, SampleRate: 44100}
	a, err := s.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	b, err := s.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if len(a.PCM) != len(b.PCM) {
		t.Fatalf("PCM lengths differ: %d != %d", len(a.PCM), len(b.PCM))
	}
	for i := range a.PCM {
		if a.PCM[i] != b.PCM[i] {
			t.Fatalf("PCM sample %d differs: %d != %d", i, a.PCM[i], b.PCM[i])
		}
	}
}

func TestStereoInterleave(t *testing.T) {
	s := &Spec{BaseFrequency: 200, BeatFrequency: 10, Duration: 1, Crossfade: 0, SampleRate: 44100}
	track, err := s.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(track.PCM) != 2*len(track.Left) {
		t.Fatalf("PCM len = %d, want %d", len(track.PCM), 2*len(track.Left))
	}
	if track.Channels != 2 {
		t.Fatalf("Channels = %d, want 2", track.Channels)
	}
}

func TestSpecValidation(t *testing.T) {
	valid := Spec{BaseFrequency: 200, BeatFrequency: 10, Duration: 5, Crossfade: 0.1, SampleRate: 44100}

	tests := []struct {
		name   string
		mutate func(*Spec)
	}{
		{"base too low", func(s *Spec) { s.BaseFrequency = 50 }},
		{"base too high", func(s *Spec) { s.BaseFrequency = 500 }},
		{"beat zero", func(s *Spec) { s.BeatFrequency = 0 }},
		{"beat negative", func(s *Spec) { s.BeatFrequency = -1 }},
		{"beat too high", func(s *Spec) { s.BeatFrequency = 40 }},
		{"duration zero", func(s *Spec) { s.Duration = 0 }},
		{"crossfade negative", func(s *Spec) { s.Crossfade = -0.1 }},
		{"crossfade overlaps", func(s *Spec) { s.Duration = 0.3; s.Crossfade = 0.2 }},
		{"sample rate zero", func(s *Spec) { s.SampleRate = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			if _, err := s.Render(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("valid spec rejected: %v", err)
	}
}
