package spectrum

import (
	"math"
	"testing"
)

func TestMagnitude(t *testing.T) {
	in := []complex128{complex(3, 4), complex(0, 0), complex(-1, 0)}
	got := Magnitude(in)

	want := []float64{5, 0, 1}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("bin %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPower(t *testing.T) {
	in := []complex128{complex(3, 4), complex(2, 0)}
	got := Power(in)

	if math.Abs(got[0]-25) > 1e-12 || math.Abs(got[1]-4) > 1e-12 {
		t.Fatalf("got %v, want [25 4]", got)
	}
}

func TestEmptyInput(t *testing.T) {
	if Magnitude(nil) != nil {
		t.Fatal("expected nil magnitude for empty input")
	}
	if Power(nil) != nil {
		t.Fatal("expected nil power for empty input")
	}
}
