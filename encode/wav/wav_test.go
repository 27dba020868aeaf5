package wav

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestInt16FromFloat64(t *testing.T) {
	tests := []struct {
		in   float64
		want int16
	}{
		{0, 0},
		{1, 32767},
		{-1, -32767},
		{0.5, 16384}, // round(16383.5)
		{1.5, 32767}, // clipped
		{-1.5, -32768},
	}

	for _, tt := range tests {
		got := Int16FromFloat64([]float64{tt.in})[0]
		if got != tt.want {
			t.Fatalf("Int16FromFloat64(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestInt16RangeNeverExceeded(t *testing.T) {
	in := []float64{-2, -1.0001, 2, math.Pi}
	for i, v := range Int16FromFloat64(in) {
		if v > math.MaxInt16 || v < math.MinInt16 {
			t.Fatalf("sample %d out of range: %d", i, v)
		}
	}
}

func TestInterleave(t *testing.T) {
	out, err := Interleave([]float64{1, 2}, []float64{3, 4})
	if err != nil {
		t.Fatalf("Interleave() error = %v", err)
	}
	want := []float64{1, 3, 2, 4}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("out = %v, want %v", out, want)
		}
	}

	if _, err := Interleave([]float64{1}, []float64{1, 2}); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestEncodeHeader(t *testing.T) {
	pcm := []int16{100, -100, 200, -200}
	data, err := Encode(pcm, 44100, 2)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	if len(data) != 44+8 {
		t.Fatalf("len = %d, want 52", len(data))
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		t.Fatal("bad RIFF/WAVE markers")
	}
	if string(data[12:16]) != "fmt " || string(data[36:40]) != "data" {
		t.Fatal("bad chunk markers")
	}
	if binary.LittleEndian.Uint32(data[4:8]) != 36+8 {
		t.Fatalf("RIFF size = %d, want 44", binary.LittleEndian.Uint32(data[4:8]))
	}
	if binary.LittleEndian.Uint16(data[20:22]) != 1 {
		t.Fatal("format tag != PCM")
	}
	if binary.LittleEndian.Uint16(data[22:24]) != 2 {
		t.Fatal("channel count != 2")
	}
	if binary.LittleEndian.Uint32(data[24:28]) != 44100 {
		t.Fatal("sample rate != 44100")
	}
	if binary.LittleEndian.Uint32(data[28:32]) != 44100*4 {
		t.Fatal("byte rate != sampleRate*blockAlign")
	}
	if binary.LittleEndian.Uint16(data[32:34]) != 4 {
		t.Fatal("block align != 4")
	}
	if binary.LittleEndian.Uint16(data[34:36]) != 16 {
		t.Fatal("bits per sample != 16")
	}
	if binary.LittleEndian.Uint32(data[40:44]) != 8 {
		t.Fatal("data size != 8")
	}
	if int16(binary.LittleEndian.Uint16(data[44:46])) != 100 {
		t.Fatal("first sample mismatch")
	}
	if int16(binary.LittleEndian.Uint16(data[46:48])) != -100 {
		t.Fatal("second sample mismatch")
	}
}

func TestEncodeValidation(t *testing.T) {
	if _, err := Encode(nil, 0, 1); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
	if _, err := Encode(nil, 44100, 3); err == nil {
		t.Fatal("expected error for channel count 3")
	}
	if _, err := Encode([]int16{1}, 44100, 2); err == nil {
		t.Fatal("expected error for odd stereo sample count")
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	if err := WriteFile(path, []int16{0, 1, 2, 3}, 44100, 1); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(data) != 44+8 {
		t.Fatalf("file size = %d, want 52", len(data))
	}
}
