// Package streamrecorder provides a recorder that observes a drawing
// surface on its own sampling cadence and assembles the captured frames
// into a clip through a video encoder. It plays the role the browser's
// MediaRecorder played for the canvas capture stream: sample boundaries are
// driven by a ticker, not by individual draw calls.
package streamrecorder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/user/promoreel/pkg/media"
	"github.com/user/promoreel/pkg/ports"
)

// ErrAlreadyRecording is returned by Start while a recording is in flight.
var ErrAlreadyRecording = errors.New("streamrecorder: recording already in progress")

// Recorder implements ports.Recorder with a ticker-driven sampling loop.
type Recorder struct {
	encoder ports.VideoEncoder
	fps     float64
	opts    ports.EncoderOptions
	sink    ports.DebugSink

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
	err     error
}

// New creates a Recorder sampling at fps through the given encoder.
func New(encoder ports.VideoEncoder, fps float64, opts ports.EncoderOptions, sink ports.DebugSink) *Recorder {
	return &Recorder{
		encoder: encoder,
		fps:     fps,
		opts:    opts,
		sink:    sink,
	}
}

// Start begins sampling the surface. The sampling goroutine runs until
// Stop is called.
func (r *Recorder) Start(surface ports.Surface) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return ErrAlreadyRecording
	}
	if r.fps <= 0 {
		return fmt.Errorf("streamrecorder: invalid fps %f", r.fps)
	}

	width, height := surface.Size()
	if err := r.encoder.Begin(width, height, r.fps, r.opts); err != nil {
		return fmt.Errorf("begin encoder: %w", err)
	}

	r.running = true
	r.err = nil
	r.stopCh = make(chan struct{})
	r.doneCh = make(chan struct{})

	go r.sampleLoop(surface)
	return nil
}

// sampleLoop snapshots the surface at the sampling interval until stopped.
func (r *Recorder) sampleLoop(surface ports.Surface) {
	defer close(r.doneCh)

	interval := time.Duration(float64(time.Second) / r.fps)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	start := time.Now()
	index := 0

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			img := surface.Snapshot()
			ts := int(time.Since(start).Milliseconds())
			if err := r.encoder.EncodeFrame(img, ts); err != nil {
				r.setErr(fmt.Errorf("encode sample %d: %w", index, err))
				return
			}
			if r.sink != nil && r.sink.Enabled() {
				// Debug output only, never fails the recording.
				_ = r.sink.SaveSampledFrame(index, img)
			}
			index++
		}
	}
}

// Stop signals the sampling loop to finish, waits for it and finalizes the
// encoder. A failed recording yields no clip.
func (r *Recorder) Stop(ctx context.Context) (media.Clip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return media.Clip{}, errors.New("streamrecorder: not recording")
	}
	r.running = false

	close(r.stopCh)
	select {
	case <-r.doneCh:
	case <-ctx.Done():
		return media.Clip{}, ctx.Err()
	}

	if r.err != nil {
		return media.Clip{}, r.err
	}

	data, err := r.encoder.End()
	if err != nil {
		return media.Clip{}, fmt.Errorf("finalize encoder: %w", err)
	}

	return media.NewClip(media.TypeMP4, data), nil
}

func (r *Recorder) setErr(err error) {
	// Called only from the sampling goroutine; read after doneCh closes.
	r.err = err
}

// Ensure Recorder implements ports.Recorder
var _ ports.Recorder = (*Recorder)(nil)
