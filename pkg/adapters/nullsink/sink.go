// Package nullsink provides a no-op debug sink.
package nullsink

import (
	"image"

	"github.com/user/promoreel/pkg/ports"
)

// Sink discards all debug output.
type Sink struct{}

// New creates a new Sink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards output.
func (s *Sink) Enabled() bool {
	return false
}

// SaveSampledFrame does nothing.
func (s *Sink) SaveSampledFrame(index int, img image.Image) error {
	return nil
}

// SaveClip does nothing.
func (s *Sink) SaveClip(name string, data []byte) error {
	return nil
}

// SaveCaption does nothing.
func (s *Sink) SaveCaption(productID, caption string) error {
	return nil
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
