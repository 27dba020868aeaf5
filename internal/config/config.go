// Package config loads render presets from YAML files. Presets bundle the
// tone, noise and mix parameters the CLI passes to the renderers; the same
// boundary validation applies as for direct parameter input.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-ambient/dsp/noise"
	"github.com/cwbudde/algo-ambient/render/binaural"
)

// Preset is one named parameter set.
type Preset struct {
	Name          string  `yaml:"name"`
	BaseFrequency float64 `yaml:"base_frequency"`
	BeatFrequency float64 `yaml:"beat_frequency"`
	ToneVolume    float64 `yaml:"tone_volume"`
	NoiseExponent float64 `yaml:"noise_exponent"`
	NoiseVolume   float64 `yaml:"noise_volume"`
	Duration      float64 `yaml:"duration"`
	Crossfade     float64 `yaml:"crossfade"`
	SampleRate    float64 `yaml:"sample_rate"`
}

// File is a parsed preset file.
type File struct {
	Presets []Preset `yaml:"presets"`
}

// Load reads and parses a preset file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presets %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes preset YAML, applies defaults and validates every preset.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}
	if len(f.Presets) == 0 {
		return nil, fmt.Errorf("preset file contains no presets")
	}

	for i := range f.Presets {
		p := &f.Presets[i]
		if p.SampleRate == 0 {
			p.SampleRate = 44100
		}
		if p.Crossfade == 0 {
			p.Crossfade = binaural.DefaultCrossfade
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("preset %q: %w", p.Name, err)
		}
	}
	return &f, nil
}

// Find returns the preset with the given name.
func (f *File) Find(name string) (*Preset, error) {
	for i := range f.Presets {
		if f.Presets[i].Name == name {
			return &f.Presets[i], nil
		}
	}
	return nil, fmt.Errorf("unknown preset: %q", name)
}

// Validate checks all preset fields against their documented domains.
func (p *Preset) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("preset name must not be empty")
	}

	spec := binaural.Spec{
		BaseFrequency: p.BaseFrequency,
		BeatFrequency: p.BeatFrequency,
		Duration:      p.Duration,
		Crossfade:     p.Crossfade,
		SampleRate:    p.SampleRate,
	}
	if err := spec.Validate(); err != nil {
		return err
	}

	if err := noise.ValidateExponent(p.NoiseExponent); err != nil {
		return err
	}
	if p.ToneVolume < 0 || p.ToneVolume > 1 {
		return fmt.Errorf("tone volume must be in [0, 1]: %g", p.ToneVolume)
	}
	if p.NoiseVolume < 0 || p.NoiseVolume > 1 {
		return fmt.Errorf("noise volume must be in [0, 1]: %g", p.NoiseVolume)
	}
	return nil
}
