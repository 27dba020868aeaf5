package main

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func TestRenderMixFadesBothLayers(t *testing.T) {
	out := filepath.Join(t.TempDir(), "mix.wav")
	opts := options{
		mode:        "mix",
		exponent:    2,
		base:        200,
		beat:        10,
		duration:    2,
		crossfade:   0.1,
		rate:        44100,
		seed:        42,
		toneVolume:  0.5,
		noiseVolume: 0.5,
		out:         out,
	}
	if err := renderMix(opts); err != nil {
		t.Fatalf("renderMix() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	// Both layers are faded, so the first and last stereo frames must be
	// exactly silent; an unfaded noise layer would leave them nonzero.
	pcm := data[44:]
	for _, off := range []int{0, 2, len(pcm) - 4, len(pcm) - 2} {
		if v := int16(binary.LittleEndian.Uint16(pcm[off:])); v != 0 {
			t.Fatalf("endpoint sample at byte offset %d = %d, want 0", off, v)
		}
	}
}

func TestRenderMixRejectsBadVolumes(t *testing.T) {
	opts := options{
		exponent: 1, base: 200, beat: 10, duration: 2,
		crossfade: 0.1, rate: 44100, toneVolume: 1.5, noiseVolume: 0.5,
	}
	if err := renderMix(opts); err == nil {
		t.Fatal("expected error for tone volume > 1")
	}

	opts.toneVolume = 0.5
	opts.noiseVolume = -0.1
	if err := renderMix(opts); err == nil {
		t.Fatal("expected error for negative noise volume")
	}
}
