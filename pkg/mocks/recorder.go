package mocks

import (
	"context"
	"sync"

	"github.com/user/promoreel/pkg/media"
	"github.com/user/promoreel/pkg/ports"
)

// Recorder is a mock implementation of ports.Recorder.
type Recorder struct {
	StartFunc func(surface ports.Surface) error
	StopFunc  func(ctx context.Context) (media.Clip, error)

	mu          sync.Mutex
	StartCalled int
	StopCalled  int
	Recording   bool
}

func (m *Recorder) Start(surface ports.Surface) error {
	m.mu.Lock()
	m.StartCalled++
	m.Recording = true
	m.mu.Unlock()
	if m.StartFunc != nil {
		return m.StartFunc(surface)
	}
	return nil
}

func (m *Recorder) Stop(ctx context.Context) (media.Clip, error) {
	m.mu.Lock()
	m.StopCalled++
	m.Recording = false
	m.mu.Unlock()
	if m.StopFunc != nil {
		return m.StopFunc(ctx)
	}
	return media.NewClip(media.TypeMP4, []byte{0x00, 0x00, 0x00, 0x14, 'f', 't', 'y', 'p', 'i', 's', 'o', 'm'}), nil
}

var _ ports.Recorder = (*Recorder)(nil)
