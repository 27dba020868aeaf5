// Command ambientgen renders ambient audio to WAV files or plays it live.
//
// Usage:
//
//	ambientgen -mode noise -exponent 1.0 -duration 60 -out pink.wav
//	ambientgen -mode binaural -base 200 -beat 10 -duration 300 -out alpha.wav
//	ambientgen -mode mix -base 100 -beat 2 -tone-volume 0.3 -exponent 2 -noise-volume 0.8 -duration 600 -out sleep.wav
//	ambientgen -mode play -base 200 -beat 10 -tone-volume 0.5 -noise-volume 0.5 -duration 30
//	ambientgen -mode mix -presets presets.yaml -preset deep-sleep -out sleep.wav
//
// Rendered files loop seamlessly: the binaural buffer length is snapped to
// the beat period and faded at both ends, so external tools can concatenate
// or loop the file without an audible seam.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/cwbudde/algo-ambient/dsp/core"
	"github.com/cwbudde/algo-ambient/dsp/mix"
	dspnoise "github.com/cwbudde/algo-ambient/dsp/noise"
	"github.com/cwbudde/algo-ambient/encode/wav"
	"github.com/cwbudde/algo-ambient/internal/config"
	"github.com/cwbudde/algo-ambient/player"
	"github.com/cwbudde/algo-ambient/render/binaural"
	rendernoise "github.com/cwbudde/algo-ambient/render/noise"
)

type options struct {
	mode        string
	exponent    float64
	base        float64
	beat        float64
	duration    float64
	crossfade   float64
	rate        float64
	seed        int64
	toneVolume  float64
	noiseVolume float64
	out         string
	presetsPath string
	presetName  string
}

func main() {
	var opts options

	flag.StringVar(&opts.mode, "mode", "mix", "noise, binaural, mix or play")
	flag.Float64Var(&opts.exponent, "exponent", 1.0, "noise exponent in [0, 3] (0 white, 1 pink, 2 brown)")
	flag.Float64Var(&opts.base, "base", 200, "base frequency in Hz (left ear)")
	flag.Float64Var(&opts.beat, "beat", 10, "beat frequency in Hz (right ear plays base+beat)")
	flag.Float64Var(&opts.duration, "duration", 300, "duration in seconds")
	flag.Float64Var(&opts.crossfade, "crossfade", binaural.DefaultCrossfade, "fade-in/out length in seconds")
	flag.Float64Var(&opts.rate, "rate", 44100, "sample rate in Hz")
	flag.Int64Var(&opts.seed, "seed", 0, "noise seed (0 for nondeterministic)")
	flag.Float64Var(&opts.toneVolume, "tone-volume", 0.5, "tone gain in [0, 1]")
	flag.Float64Var(&opts.noiseVolume, "noise-volume", 0.5, "noise gain in [0, 1]")
	flag.StringVar(&opts.out, "out", "", "output WAV path (default derived from parameters)")
	flag.StringVar(&opts.presetsPath, "presets", "", "YAML preset file")
	flag.StringVar(&opts.presetName, "preset", "", "preset name to apply from -presets")
	flag.Parse()

	if opts.presetsPath != "" {
		if err := applyPreset(&opts); err != nil {
			fail(err)
		}
	}

	var err error
	switch opts.mode {
	case "noise":
		err = renderNoise(opts)
	case "binaural":
		err = renderBinaural(opts)
	case "mix":
		err = renderMix(opts)
	case "play":
		err = play(opts)
	default:
		err = fmt.Errorf("unknown mode %q (want noise, binaural, mix or play)", opts.mode)
	}
	if err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "ambientgen:", err)
	os.Exit(1)
}

func applyPreset(opts *options) error {
	f, err := config.Load(opts.presetsPath)
	if err != nil {
		return err
	}
	p, err := f.Find(opts.presetName)
	if err != nil {
		return err
	}

	opts.base = p.BaseFrequency
	opts.beat = p.BeatFrequency
	opts.toneVolume = p.ToneVolume
	opts.exponent = p.NoiseExponent
	opts.noiseVolume = p.NoiseVolume
	opts.duration = p.Duration
	opts.crossfade = p.Crossfade
	opts.rate = p.SampleRate
	return nil
}

func renderNoise(opts options) error {
	r := &rendernoise.Renderer{
		Exponent:   opts.exponent,
		Duration:   opts.duration,
		SampleRate: opts.rate,
		Seed:       opts.seed,
	}
	track, err := r.Render()
	if err != nil {
		return err
	}

	label, err := dspnoise.ColorLabel(opts.exponent)
	if err != nil {
		return err
	}

	out := opts.out
	if out == "" {
		out = fmt.Sprintf("noise_%s_exp%g_%gs.wav", label, opts.exponent, opts.duration)
	}
	if err := wav.WriteFile(out, track.PCM, int(track.SampleRate), track.Channels); err != nil {
		return err
	}

	printNoiseTelemetry(out, label, track)
	return nil
}

func printNoiseTelemetry(path, label string, track *rendernoise.Track) {
	tel := track.Telemetry
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "file\t%s (%s noise)\n", path, label)
	fmt.Fprintf(w, "spectrum magnitude\t%.3e .. %.3e\n", tel.SpectrumMin, tel.SpectrumMax)
	fmt.Fprintf(w, "raw signal\t%.3e .. %.3e (RMS %.3e)\n", tel.RawMin, tel.RawMax, tel.RawRMS)
	fmt.Fprintf(w, "normalized\t%.3e .. %.3e (RMS %.3e)\n", tel.NormMin, tel.NormMax, tel.NormRMS)
	fmt.Fprintf(w, "int16\t%d .. %d\n", tel.PCMMin, tel.PCMMax)
	if track.Norm.PeakLimited {
		fmt.Fprintf(w, "note\tpeak limited, achieved RMS %.3e\n", track.Norm.AchievedRMS)
	}
	w.Flush()
}

func renderBinaural(opts options) error {
	s := &binaural.Spec{
		BaseFrequency: opts.base,
		BeatFrequency: opts.beat,
		Duration:      opts.duration,
		Crossfade:     opts.crossfade,
		SampleRate:    opts.rate,
	}
	track, err := s.Render()
	if err != nil {
		return err
	}

	out := opts.out
	if out == "" {
		out = fmt.Sprintf("binaural_%gHz_L_%gHz_R_%.1fs.wav", opts.base, opts.base+opts.beat, track.AdjustedDuration)
	}
	if err := wav.WriteFile(out, track.PCM, int(track.SampleRate), track.Channels); err != nil {
		return err
	}

	fmt.Printf("wrote %s (%.2f s, snapped to %.2f s beat period)\n", out, track.AdjustedDuration, track.BeatPeriod)
	return nil
}

// renderMix layers a binaural tone pair and colored noise into one stereo
// file. The noise render matches the tone's period-aligned duration so the
// mix keeps the seamless loop property.
func renderMix(opts options) error {
	if opts.toneVolume < 0 || opts.toneVolume > 1 {
		return fmt.Errorf("tone volume must be in [0, 1]: %g", opts.toneVolume)
	}
	if opts.noiseVolume < 0 || opts.noiseVolume > 1 {
		return fmt.Errorf("noise volume must be in [0, 1]: %g", opts.noiseVolume)
	}

	spec := &binaural.Spec{
		BaseFrequency: opts.base,
		BeatFrequency: opts.beat,
		Duration:      opts.duration,
		Crossfade:     opts.crossfade,
		SampleRate:    opts.rate,
	}
	toneTrack, err := spec.Render()
	if err != nil {
		return err
	}

	noiseRender := &rendernoise.Renderer{
		Exponent:   opts.exponent,
		Duration:   toneTrack.AdjustedDuration,
		SampleRate: opts.rate,
		Seed:       opts.seed,
	}
	noiseTrack, err := noiseRender.Render()
	if err != nil {
		return err
	}
	// The tone channels come back faded; fade the noise layer the same way
	// so the mix opens and closes silent.
	binaural.ApplyFade(noiseTrack.Samples, opts.crossfade, opts.rate)

	n := len(toneTrack.Left)
	left := make([]float64, n)
	right := make([]float64, n)
	for i := range n {
		noiseSample := noiseTrack.Samples[i] * opts.noiseVolume
		left[i] = toneTrack.Left[i]*opts.toneVolume + noiseSample
		right[i] = toneTrack.Right[i]*opts.toneVolume + noiseSample
	}
	clampPeak(left, right)

	stereo, err := wav.Interleave(left, right)
	if err != nil {
		return err
	}

	out := opts.out
	if out == "" {
		out = fmt.Sprintf("mix_%gHz_%gHz_exp%g_tv%g_nv%g_%.1fs.wav",
			opts.base, opts.beat, opts.exponent, opts.toneVolume, opts.noiseVolume, toneTrack.AdjustedDuration)
	}
	if err := wav.WriteFile(out, wav.Int16FromFloat64(stereo), int(opts.rate), 2); err != nil {
		return err
	}

	fmt.Printf("wrote %s (%.2f s)\n", out, toneTrack.AdjustedDuration)
	return nil
}

// clampPeak rescales both channels together if the mix exceeds full scale.
func clampPeak(left, right []float64) {
	peak := 0.0
	for _, buf := range [][]float64{left, right} {
		for _, v := range buf {
			if a := abs(v); a > peak {
				peak = a
			}
		}
	}
	if peak <= 1 {
		return
	}
	for _, buf := range [][]float64{left, right} {
		for i := range buf {
			buf[i] /= peak
		}
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func play(opts options) error {
	g, err := mix.NewGraph(opts.base, opts.beat, []core.ProcessorOption{core.WithSampleRate(opts.rate)})
	if err != nil {
		return err
	}
	if err := g.SetToneGain(opts.toneVolume); err != nil {
		return err
	}
	if err := g.SetNoiseGain(opts.noiseVolume); err != nil {
		return err
	}
	if err := g.SetNoiseExponent(opts.exponent); err != nil {
		return err
	}

	p, err := player.New(g)
	if err != nil {
		return err
	}
	defer p.Close()

	p.Start()
	fmt.Printf("playing %g Hz / %g Hz beat, exponent %g (ctrl-c to stop)\n", opts.base, opts.beat, opts.exponent)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	if opts.duration > 0 {
		select {
		case <-interrupt:
		case <-time.After(time.Duration(opts.duration * float64(time.Second))):
		}
	} else {
		<-interrupt
	}

	p.Stop()
	return nil
}
