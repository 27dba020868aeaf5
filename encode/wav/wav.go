// Package wav converts rendered float buffers to 16-bit PCM and serializes
// them into a canonical 44-byte-header WAV container (signed 16-bit PCM,
// little-endian).
package wav

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

const (
	headerSize    = 44
	bitsPerSample = 16
)

// Int16FromFloat64 scales normalized samples to PCM16: round(v * 32767),
// clipped to the int16 range.
func Int16FromFloat64(samples []float64) []int16 {
	out := make([]int16, len(samples))
	for i, v := range samples {
		s := math.Round(v * 32767)
		if s > math.MaxInt16 {
			s = math.MaxInt16
		}
		if s < math.MinInt16 {
			s = math.MinInt16
		}
		out[i] = int16(s)
	}
	return out
}

// Interleave merges left and right channels into a single stereo slice.
// Both channels must have the same length.
func Interleave(left, right []float64) ([]float64, error) {
	if len(left) != len(right) {
		return nil, fmt.Errorf("interleave channel length mismatch: %d != %d", len(left), len(right))
	}
	out := make([]float64, 2*len(left))
	for i := range left {
		out[2*i] = left[i]
		out[2*i+1] = right[i]
	}
	return out, nil
}

// Encode serializes interleaved PCM16 samples into a complete WAV file image.
func Encode(pcm []int16, sampleRate, channels int) ([]byte, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("wav sample rate must be > 0: %d", sampleRate)
	}
	if channels != 1 && channels != 2 {
		return nil, fmt.Errorf("wav channel count must be 1 or 2: %d", channels)
	}
	if channels == 2 && len(pcm)%2 != 0 {
		return nil, fmt.Errorf("stereo sample count must be even: %d", len(pcm))
	}

	dataSize := uint32(len(pcm) * 2)
	byteRate := sampleRate * channels * bitsPerSample / 8
	blockAlign := channels * bitsPerSample / 8

	out := make([]byte, headerSize+int(dataSize))

	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], 36+dataSize)
	copy(out[8:12], "WAVE")

	copy(out[12:16], "fmt ")
	binary.LittleEndian.PutUint32(out[16:20], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(out[20:22], 1)  // PCM
	binary.LittleEndian.PutUint16(out[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(out[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(out[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:36], bitsPerSample)

	copy(out[36:40], "data")
	binary.LittleEndian.PutUint32(out[40:44], dataSize)

	for i, s := range pcm {
		binary.LittleEndian.PutUint16(out[headerSize+2*i:], uint16(s))
	}

	return out, nil
}

// WriteFile encodes and writes a WAV file. A failed write is retried once
// before the error is surfaced.
func WriteFile(path string, pcm []int16, sampleRate, channels int) error {
	data, err := Encode(pcm, sampleRate, channels)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		if retryErr := os.WriteFile(path, data, 0o644); retryErr != nil {
			return fmt.Errorf("write %s: %w", path, retryErr)
		}
	}
	return nil
}
