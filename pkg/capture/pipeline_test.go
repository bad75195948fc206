package capture

import (
	"context"
	"errors"
	"image"
	"sync"
	"testing"
	"time"

	"github.com/user/promoreel/pkg/adapters/logger"
	"github.com/user/promoreel/pkg/catalog"
	"github.com/user/promoreel/pkg/media"
	"github.com/user/promoreel/pkg/mocks"
	"github.com/user/promoreel/pkg/render"
)

func testProduct() catalog.Product {
	return catalog.Product{
		ID:       "1",
		Title:    "Bouteille isotherme",
		Price:    "24.90",
		ImageURL: "https://example.com/a.jpg",
	}
}

// fast pacing so the test suite stays quick
func testConfig() Config {
	return Config{FPS: 100, DurationSeconds: 1}
}

func newTestPipeline(recorder *mocks.Recorder, loader *mocks.ImageLoader, cfg Config) *Pipeline {
	surface := mocks.NewSurface(1080, 1920)
	renderer := render.New(render.DefaultLayout())
	return New(surface, recorder, loader, renderer, logger.NewNoop(), cfg)
}

func TestConfig_TotalFrames(t *testing.T) {
	if got := DefaultConfig().TotalFrames(); got != 300 {
		t.Errorf("expected 300 frames, got %d", got)
	}
	if got := (Config{FPS: 24, DurationSeconds: 5}).TotalFrames(); got != 120 {
		t.Errorf("expected 120 frames, got %d", got)
	}
}

func TestStart_Success(t *testing.T) {
	recorder := &mocks.Recorder{}
	loader := &mocks.ImageLoader{}
	p := newTestPipeline(recorder, loader, testConfig())

	clip, err := p.Start(context.Background(), testProduct())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if clip.Size() == 0 {
		t.Error("expected a clip with data")
	}
	if recorder.StartCalled != 1 || recorder.StopCalled != 1 {
		t.Errorf("recorder calls: expected 1 start 1 stop, got %d/%d", recorder.StartCalled, recorder.StopCalled)
	}
	if len(loader.LoadCalls) != 1 || loader.LoadCalls[0] != "https://example.com/a.jpg" {
		t.Errorf("loader calls: got %v", loader.LoadCalls)
	}
	if got := p.State(); got != StateStoppedSuccess {
		t.Errorf("state: expected %v, got %v", StateStoppedSuccess, got)
	}

	stored, ok := p.LastClip()
	if !ok {
		t.Fatal("expected a stored clip")
	}
	if stored.ID != clip.ID {
		t.Errorf("stored clip mismatch: %s vs %s", stored.ID, clip.ID)
	}
}

func TestStart_RejectsConcurrent(t *testing.T) {
	release := make(chan struct{})
	recorder := &mocks.Recorder{
		StopFunc: func(ctx context.Context) (media.Clip, error) {
			<-release
			return media.NewClip(media.TypeMP4, []byte("clip")), nil
		},
	}
	loader := &mocks.ImageLoader{}
	p := newTestPipeline(recorder, loader, Config{FPS: 10, DurationSeconds: 1})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = p.Start(context.Background(), testProduct())
	}()

	// Wait until the first recording is in flight.
	deadline := time.Now().Add(2 * time.Second)
	for p.State() != StateRecording {
		if time.Now().After(deadline) {
			t.Fatal("first recording never started")
		}
		time.Sleep(time.Millisecond)
	}

	_, err := p.Start(context.Background(), testProduct())
	if !errors.Is(err, ErrBusy) {
		t.Errorf("expected ErrBusy, got %v", err)
	}

	close(release)
	wg.Wait()

	// Once stopped, a new recording is accepted again.
	if _, err := p.Start(context.Background(), testProduct()); err != nil {
		t.Errorf("restart after stop: unexpected error: %v", err)
	}
}

func TestStart_LoaderFailureStaysIdle(t *testing.T) {
	loadErr := errors.New("boom")
	recorder := &mocks.Recorder{}
	loader := &mocks.ImageLoader{
		LoadFunc: func(ctx context.Context, url string) (image.Image, error) {
			return nil, loadErr
		},
	}
	p := newTestPipeline(recorder, loader, testConfig())

	_, err := p.Start(context.Background(), testProduct())
	if !errors.Is(err, loadErr) {
		t.Fatalf("expected load error, got %v", err)
	}
	if recorder.StartCalled != 0 {
		t.Error("recorder must not start when the image fails to load")
	}
	if got := p.State(); got != StateIdle {
		t.Errorf("state: expected %v, got %v", StateIdle, got)
	}
}

func TestStart_RecorderStopFailure(t *testing.T) {
	stopErr := errors.New("encode failed")
	recorder := &mocks.Recorder{
		StopFunc: func(ctx context.Context) (media.Clip, error) {
			return media.Clip{}, stopErr
		},
	}
	loader := &mocks.ImageLoader{}
	p := newTestPipeline(recorder, loader, testConfig())

	_, err := p.Start(context.Background(), testProduct())
	if !errors.Is(err, stopErr) {
		t.Fatalf("expected stop error, got %v", err)
	}
	if got := p.State(); got != StateStoppedFailure {
		t.Errorf("state: expected %v, got %v", StateStoppedFailure, got)
	}
	if _, ok := p.LastClip(); ok {
		t.Error("a failed recording must not store a clip")
	}
}

func TestStart_NewRecordingDiscardsPreviousClip(t *testing.T) {
	recorder := &mocks.Recorder{}
	loader := &mocks.ImageLoader{}
	p := newTestPipeline(recorder, loader, testConfig())

	first, err := p.Start(context.Background(), testProduct())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := p.Start(context.Background(), testProduct())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, ok := p.LastClip()
	if !ok {
		t.Fatal("expected a stored clip")
	}
	if stored.ID == first.ID {
		t.Error("previous clip survived a new recording")
	}
	if stored.ID != second.ID {
		t.Errorf("stored clip mismatch: %s vs %s", stored.ID, second.ID)
	}
}

func TestStart_InvalidConfig(t *testing.T) {
	recorder := &mocks.Recorder{}
	loader := &mocks.ImageLoader{}
	p := newTestPipeline(recorder, loader, Config{FPS: 0, DurationSeconds: 10})

	_, err := p.Start(context.Background(), testProduct())
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestStart_ContextCancelled(t *testing.T) {
	recorder := &mocks.Recorder{}
	loader := &mocks.ImageLoader{}
	p := newTestPipeline(recorder, loader, Config{FPS: 10, DurationSeconds: 10})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := p.Start(ctx, testProduct())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if got := p.State(); got != StateStoppedFailure {
		t.Errorf("state: expected %v, got %v", StateStoppedFailure, got)
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateIdle, "idle"},
		{StateRecording, "recording"},
		{StateStoppedSuccess, "stopped"},
		{StateStoppedFailure, "failed"},
		{State(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.expected {
			t.Errorf("State(%d).String(): expected %q, got %q", tt.state, tt.expected, got)
		}
	}
}
