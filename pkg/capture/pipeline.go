// Package capture implements the recording pipeline: it drives the frame
// renderer across a fixed frame count at a target pace while a recorder
// observes the surface, and assembles the result into a single clip.
package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/user/promoreel/pkg/catalog"
	"github.com/user/promoreel/pkg/media"
	"github.com/user/promoreel/pkg/ports"
	"github.com/user/promoreel/pkg/render"
)

var (
	// ErrBusy is returned by Start while a recording is in flight. The
	// pipeline is single-flight: a concurrent Start is rejected, never
	// queued or superseding.
	ErrBusy = errors.New("capture: recording already in progress")

	// ErrInvalidConfig is returned when fps or duration yield no frames.
	ErrInvalidConfig = errors.New("capture: fps and duration must be positive")
)

// State is the pipeline's lifecycle state.
type State int

const (
	StateIdle State = iota
	StateRecording
	StateStoppedSuccess
	StateStoppedFailure
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateStoppedSuccess:
		return "stopped"
	case StateStoppedFailure:
		return "failed"
	default:
		return "unknown"
	}
}

// Config holds the pacing parameters of the capture loop.
type Config struct {
	FPS             int
	DurationSeconds int
}

// DefaultConfig returns the reference pacing: 30 fps for 10 seconds,
// 300 frames.
func DefaultConfig() Config {
	return Config{
		FPS:             30,
		DurationSeconds: 10,
	}
}

// TotalFrames returns the number of frames one recording draws.
func (c Config) TotalFrames() int {
	return c.FPS * c.DurationSeconds
}

// Pipeline records one product clip at a time on a dedicated surface.
type Pipeline struct {
	surface  ports.Surface
	recorder ports.Recorder
	loader   ports.ImageLoader
	renderer *render.Renderer
	logger   ports.Logger
	cfg      Config

	mu    sync.Mutex
	busy  bool
	state State
	clip  *media.Clip
}

// New creates a Pipeline.
func New(surface ports.Surface, recorder ports.Recorder, loader ports.ImageLoader, renderer *render.Renderer, logger ports.Logger, cfg Config) *Pipeline {
	return &Pipeline{
		surface:  surface,
		recorder: recorder,
		loader:   loader,
		renderer: renderer,
		logger:   logger.WithComponent("capture"),
		cfg:      cfg,
	}
}

// State returns the current lifecycle state.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// LastClip returns the clip of the most recent successful recording, if
// any. Starting a new recording discards it.
func (p *Pipeline) LastClip() (media.Clip, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.clip == nil {
		return media.Clip{}, false
	}
	return *p.clip, true
}

// Start records one clip for the product. It is legal from Idle and from
// any Stopped state; a call while Recording is rejected with ErrBusy. The
// image is loaded first — a loader failure aborts before recording begins
// and the state returns to Idle. Frame i is always drawn and its pacing
// wait elapsed before frame i+1; the recorder samples the surface on its
// own cadence.
func (p *Pipeline) Start(ctx context.Context, product catalog.Product) (media.Clip, error) {
	totalFrames := p.cfg.TotalFrames()
	if totalFrames <= 0 {
		return media.Clip{}, ErrInvalidConfig
	}

	p.mu.Lock()
	if p.busy {
		p.mu.Unlock()
		return media.Clip{}, ErrBusy
	}
	p.busy = true
	p.state = StateIdle
	p.clip = nil // a new recording invalidates the previous clip
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.busy = false
		p.mu.Unlock()
	}()

	p.logger.Debug("Loading product image: %s", product.ImageURL)
	img, err := p.loader.Load(ctx, product.ImageURL)
	if err != nil {
		// Never entered Recording; the attempt is over.
		return media.Clip{}, fmt.Errorf("load image: %w", err)
	}

	if err := p.recorder.Start(p.surface); err != nil {
		return media.Clip{}, fmt.Errorf("start recorder: %w", err)
	}
	p.setState(StateRecording)
	p.logger.Debug("Recording %d frames at %d fps", totalFrames, p.cfg.FPS)

	interval := time.Second / time.Duration(p.cfg.FPS)
	if err := p.drawLoop(ctx, img, product, totalFrames, interval); err != nil {
		// Best-effort recorder teardown; the attempt already failed.
		_, _ = p.recorder.Stop(ctx)
		p.setState(StateStoppedFailure)
		return media.Clip{}, err
	}

	clip, err := p.recorder.Stop(ctx)
	if err != nil {
		p.setState(StateStoppedFailure)
		return media.Clip{}, fmt.Errorf("stop recorder: %w", err)
	}

	p.mu.Lock()
	p.clip = &clip
	p.state = StateStoppedSuccess
	p.mu.Unlock()

	p.logger.Debug("Recording finished: %d bytes", clip.Size())
	return clip, nil
}

// drawLoop renders each frame followed by one pacing interval, so the
// recording covers roughly real time instead of compressing all frames
// into an instant.
func (p *Pipeline) drawLoop(ctx context.Context, img image.Image, product catalog.Product, totalFrames int, interval time.Duration) error {
	for i := 0; i < totalFrames; i++ {
		if err := p.renderer.DrawFrame(p.surface, img, i, totalFrames, product.Title, product.Price); err != nil {
			return fmt.Errorf("draw frame %d: %w", i, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
	return nil
}

func (p *Pipeline) setState(s State) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
}
