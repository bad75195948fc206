package mocks

import (
	"image"
	"sync"

	"github.com/user/promoreel/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink that records what
// was saved.
type DebugSink struct {
	EnabledValue bool

	mu       sync.Mutex
	Frames   map[int]image.Image
	Clips    map[string][]byte
	Captions map[string]string
}

// NewDebugSink creates an enabled mock sink.
func NewDebugSink() *DebugSink {
	return &DebugSink{
		EnabledValue: true,
		Frames:       make(map[int]image.Image),
		Clips:        make(map[string][]byte),
		Captions:     make(map[string]string),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.EnabledValue
}

func (m *DebugSink) SaveSampledFrame(index int, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Frames[index] = img
	return nil
}

func (m *DebugSink) SaveClip(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Clips[name] = data
	return nil
}

func (m *DebugSink) SaveCaption(productID, caption string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Captions[productID] = caption
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)
