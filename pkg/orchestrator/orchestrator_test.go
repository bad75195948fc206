package orchestrator

import (
	"context"
	"errors"
	"image"
	"path/filepath"
	"testing"

	"github.com/user/promoreel/pkg/adapters/logger"
	"github.com/user/promoreel/pkg/capture"
	"github.com/user/promoreel/pkg/catalog"
	"github.com/user/promoreel/pkg/media"
	"github.com/user/promoreel/pkg/mocks"
	"github.com/user/promoreel/pkg/render"
)

func testProducts() []catalog.Product {
	return []catalog.Product{
		{ID: "1", Title: "Bouteille", Price: "24.90", ImageURL: "https://example.com/a.jpg", Caption: "Bouteille\n#eco"},
		{ID: "2", Title: "Support", Price: "12.50", ImageURL: "https://example.com/b.jpg", Caption: "Support\n#bureau"},
	}
}

func newTestOrchestrator(loader *mocks.ImageLoader, transcoder *mocks.Transcoder, fs *mocks.FileSystem, sink *mocks.DebugSink) *Orchestrator {
	surface := mocks.NewSurface(1080, 1920)
	recorder := &mocks.Recorder{}
	renderer := render.New(render.DefaultLayout())
	pipeline := capture.New(surface, recorder, loader, renderer, logger.NewNoop(), capture.Config{
		FPS:             100,
		DurationSeconds: 1,
	})
	return New(pipeline, transcoder, fs, sink, logger.NewNoop())
}

func TestRun(t *testing.T) {
	fs := mocks.NewFileSystem()
	orch := newTestOrchestrator(&mocks.ImageLoader{}, &mocks.Transcoder{}, fs, mocks.NewDebugSink())

	result, err := orch.Run(context.Background(), testProducts(), Config{OutputDir: "out"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Rendered != 2 || result.Failed != 0 {
		t.Errorf("expected 2 rendered 0 failed, got %d/%d", result.Rendered, result.Failed)
	}

	for _, id := range []string{"1", "2"} {
		if _, ok := fs.GetFile("out/" + id + ".mp4"); !ok {
			t.Errorf("clip for product %s was not written", id)
		}
	}
	caption, ok := fs.GetFile("out/1.caption.txt")
	if !ok {
		t.Fatal("caption for product 1 was not written")
	}
	if string(caption) != "Bouteille\n#eco" {
		t.Errorf("caption: got %q", caption)
	}
}

func TestRun_EmptyCatalog(t *testing.T) {
	orch := newTestOrchestrator(&mocks.ImageLoader{}, &mocks.Transcoder{}, mocks.NewFileSystem(), mocks.NewDebugSink())

	_, err := orch.Run(context.Background(), nil, Config{OutputDir: "out"})
	if !errors.Is(err, ErrNoProducts) {
		t.Errorf("expected ErrNoProducts, got %v", err)
	}
}

func TestRun_SkipsFailedProduct(t *testing.T) {
	loader := &mocks.ImageLoader{
		LoadFunc: func(ctx context.Context, url string) (image.Image, error) {
			if url == "https://example.com/a.jpg" {
				return nil, errors.New("image gone")
			}
			return image.NewRGBA(image.Rect(0, 0, 640, 480)), nil
		},
	}
	fs := mocks.NewFileSystem()
	orch := newTestOrchestrator(loader, &mocks.Transcoder{}, fs, mocks.NewDebugSink())

	result, err := orch.Run(context.Background(), testProducts(), Config{OutputDir: "out"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Rendered != 1 || result.Failed != 1 {
		t.Errorf("expected 1 rendered 1 failed, got %d/%d", result.Rendered, result.Failed)
	}
	if _, ok := fs.GetFile("out/1.mp4"); ok {
		t.Error("failed product must not produce a clip")
	}
	if _, ok := fs.GetFile("out/2.mp4"); !ok {
		t.Error("second product should still render")
	}
	if result.Results[0].Err == nil {
		t.Error("failed product result must carry its error")
	}
}

func TestRun_Transcode(t *testing.T) {
	transcoded := []byte("h264 clip")
	transcoder := &mocks.Transcoder{
		TranscodeFunc: func(ctx context.Context, clip media.Clip) (media.Clip, error) {
			return media.NewClip(media.TypeMP4, transcoded), nil
		},
	}
	fs := mocks.NewFileSystem()
	sink := mocks.NewDebugSink()
	orch := newTestOrchestrator(&mocks.ImageLoader{}, transcoder, fs, sink)

	result, err := orch.Run(context.Background(), testProducts()[:1], Config{OutputDir: "out", Transcode: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Rendered != 1 {
		t.Fatalf("expected 1 rendered, got %d", result.Rendered)
	}
	if len(transcoder.TranscodeCalls) != 1 {
		t.Fatalf("expected 1 transcode call, got %d", len(transcoder.TranscodeCalls))
	}
	if _, ok := fs.GetFile("out/1.mp4"); !ok {
		t.Fatal("raw clip was not written")
	}
	data, ok := fs.GetFile("out/1.h264.mp4")
	if !ok {
		t.Fatal("transcoded clip was not written")
	}
	if string(data) != string(transcoded) {
		t.Error("transcoded output content mismatch")
	}
	if _, ok := sink.Clips["1.raw.mp4"]; !ok {
		t.Error("raw clip debug copy was not saved")
	}
	if got := result.Results[0].TranscodePath; got != filepath.Join("out", "1.h264.mp4") {
		t.Errorf("unexpected transcode path: %s", got)
	}
}

func TestRun_TranscodeFailureCountsAsFailed(t *testing.T) {
	transcoder := &mocks.Transcoder{
		TranscodeFunc: func(ctx context.Context, clip media.Clip) (media.Clip, error) {
			return media.Clip{}, errors.New("ffmpeg exploded")
		},
	}
	fs := mocks.NewFileSystem()
	orch := newTestOrchestrator(&mocks.ImageLoader{}, transcoder, fs, mocks.NewDebugSink())

	result, err := orch.Run(context.Background(), testProducts()[:1], Config{OutputDir: "out", Transcode: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Failed != 1 {
		t.Errorf("expected 1 failed, got %d", result.Failed)
	}
	if _, ok := fs.GetFile("out/1.mp4"); !ok {
		t.Error("raw clip should be written before the transcode step")
	}
	if _, ok := fs.GetFile("out/1.h264.mp4"); ok {
		t.Error("failed transcode must not produce an output file")
	}
	if result.Results[0].Err == nil {
		t.Error("expected a per-product error")
	}
}

func TestRun_DerivesMissingCaption(t *testing.T) {
	products := []catalog.Product{
		{ID: "1", Title: "Bouteille", ImageURL: "https://example.com/a.jpg", Tags: []string{"eco"}},
	}
	fs := mocks.NewFileSystem()
	orch := newTestOrchestrator(&mocks.ImageLoader{}, &mocks.Transcoder{}, fs, mocks.NewDebugSink())

	if _, err := orch.Run(context.Background(), products, Config{OutputDir: "out"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	caption, ok := fs.GetFile("out/1.caption.txt")
	if !ok {
		t.Fatal("caption was not written")
	}
	if string(caption) != "Bouteille\n#eco" {
		t.Errorf("caption: got %q", caption)
	}
}
