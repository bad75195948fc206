// Package mjpegencoder provides a pure-Go video encoder that JPEG-compresses
// each frame and muxes the samples into an MP4 container. It needs no
// external binary, at the cost of larger output than H.264; clips are meant
// to be re-encoded by the transcoder before distribution.
package mjpegencoder

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"sync"

	"github.com/user/promoreel/pkg/ports"
)

const defaultQuality = 85

// ErrNotInitialized is returned when encoder methods are called before Begin.
var ErrNotInitialized = errors.New("mjpegencoder: encoder not initialized")

// encodedFrame is one compressed sample with its presentation timestamp.
type encodedFrame struct {
	data        []byte
	timestampUs int64
}

// Encoder implements ports.VideoEncoder with JPEG frames in an MP4
// container.
type Encoder struct {
	mu sync.Mutex

	width   int
	height  int
	fps     float64
	quality int

	frames []encodedFrame
	active bool
}

// New creates a new Encoder.
func New() *Encoder {
	return &Encoder{}
}

// Begin initializes the encoder.
func (e *Encoder) Begin(width, height int, fps float64, opts ports.EncoderOptions) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if width <= 0 || height <= 0 {
		return fmt.Errorf("mjpegencoder: invalid dimensions %dx%d", width, height)
	}
	if fps <= 0 {
		return fmt.Errorf("mjpegencoder: invalid fps %f", fps)
	}

	e.width = width
	e.height = height
	e.fps = fps
	e.quality = opts.Quality
	if e.quality <= 0 || e.quality > 100 {
		e.quality = defaultQuality
	}
	e.frames = nil
	e.active = true
	return nil
}

// EncodeFrame compresses a single frame at the specified timestamp.
func (e *Encoder) EncodeFrame(img image.Image, timestampMs int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.active {
		return ErrNotInitialized
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: e.quality}); err != nil {
		return fmt.Errorf("encode JPEG: %w", err)
	}

	e.frames = append(e.frames, encodedFrame{
		data:        buf.Bytes(),
		timestampUs: int64(timestampMs) * 1000,
	})
	return nil
}

// End finalizes encoding and returns the MP4 data.
func (e *Encoder) End() ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.active {
		return nil, ErrNotInitialized
	}
	e.active = false

	data, err := e.buildMP4()
	if err != nil {
		return nil, fmt.Errorf("build mp4: %w", err)
	}

	e.frames = nil
	return data, nil
}

// Ensure Encoder implements ports.VideoEncoder
var _ ports.VideoEncoder = (*Encoder)(nil)
