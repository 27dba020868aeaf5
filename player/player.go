// Package player drives a mix.Graph through the system audio device using
// oto. The device pulls interleaved float32 stereo frames via Read, which
// delegates block generation to the graph on the audio thread.
package player

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"

	"github.com/cwbudde/algo-ambient/dsp/core"
	"github.com/cwbudde/algo-ambient/dsp/mix"
)

const frameBytes = 8 // two float32 channels per frame

// Player is a realtime output sink for a mix graph.
type Player struct {
	ctx    *oto.Context
	player *oto.Player
	graph  *mix.Graph

	left  []float64
	right []float64

	mu      sync.Mutex // guards start/stop/close, never the read path
	started bool
}

// New opens the audio device for the graph's sample rate. Device
// acquisition is not retried; callers decide whether to try again.
func New(g *mix.Graph) (*Player, error) {
	cfg := g.Config()

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   int(cfg.SampleRate),
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	<-ready

	p := &Player{
		ctx:   ctx,
		graph: g,
		left:  make([]float64, cfg.BlockSize),
		right: make([]float64, cfg.BlockSize),
	}
	p.player = ctx.NewPlayer(p)
	return p, nil
}

// Read fills b with interleaved float32 LE stereo frames. Called by the
// audio subsystem; not for direct use.
func (p *Player) Read(b []byte) (int, error) {
	frames := len(b) / frameBytes
	if frames == 0 {
		return 0, nil
	}

	p.left = core.EnsureLen(p.left, frames)
	p.right = core.EnsureLen(p.right, frames)
	p.graph.Fill(p.left, p.right)

	for i := range frames {
		binary.LittleEndian.PutUint32(b[i*frameBytes:], math.Float32bits(float32(p.left[i])))
		binary.LittleEndian.PutUint32(b[i*frameBytes+4:], math.Float32bits(float32(p.right[i])))
	}
	return frames * frameBytes, nil
}

// Start begins playback.
func (p *Player) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started && p.player != nil {
		p.player.Play()
		p.started = true
	}
}

// Stop signals the graph to go silent and pauses the device. The in-flight
// callback block completes before the pause takes effect.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started && p.player != nil {
		p.graph.Stop()
		p.player.Pause()
		p.started = false
	}
}

// Close stops playback and releases the device player.
func (p *Player) Close() error {
	p.Stop()

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.player != nil {
		err := p.player.Close()
		p.player = nil
		return err
	}
	return nil
}
