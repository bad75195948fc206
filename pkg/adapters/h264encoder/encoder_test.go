package h264encoder

import (
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/user/promoreel/pkg/ports"
)

func TestFindFFmpeg_ExplicitMissing(t *testing.T) {
	_, err := FindFFmpeg("/nonexistent/ffmpeg")
	if !errors.Is(err, ErrFFmpegNotFound) {
		t.Errorf("expected ErrFFmpegNotFound, got %v", err)
	}
}

func TestFindFFmpeg_EnvMissing(t *testing.T) {
	t.Setenv("FFMPEG_PATH", "/nonexistent/ffmpeg")
	_, err := FindFFmpeg("")
	if !errors.Is(err, ErrFFmpegNotFound) {
		t.Errorf("expected ErrFFmpegNotFound, got %v", err)
	}
}

func TestBuildArgs(t *testing.T) {
	args := buildArgs(1080, 1920, 30.0, ports.EncoderOptions{}, "/tmp/out.mp4")
	joined := strings.Join(args, " ")

	for _, want := range []string{
		"-f rawvideo",
		"-pix_fmt rgba",
		"-s 1080x1920",
		"-r 30.00",
		"-i pipe:0",
		"-c:v libx264",
		"-preset veryfast",
		"-pix_fmt yuv420p",
		"-crf 23",
		"-movflags +faststart",
		"-an",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("args missing %q: %s", want, joined)
		}
	}

	if args[len(args)-1] != "/tmp/out.mp4" {
		t.Errorf("output path must be last, got %s", args[len(args)-1])
	}
}

func TestBuildArgs_QualityMapsToCRF(t *testing.T) {
	args := buildArgs(64, 64, 30.0, ports.EncoderOptions{Quality: 63}, "out.mp4")
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-crf 51") {
		t.Errorf("quality 63 should map to crf 51: %s", joined)
	}

	args = buildArgs(64, 64, 30.0, ports.EncoderOptions{Quality: 0}, "out.mp4")
	joined = strings.Join(args, " ")
	if !strings.Contains(joined, "-crf 23") {
		t.Errorf("quality 0 should fall back to crf 23: %s", joined)
	}
}

func TestBuildArgs_Bitrate(t *testing.T) {
	args := buildArgs(64, 64, 30.0, ports.EncoderOptions{Bitrate: 2000}, "out.mp4")
	if !strings.Contains(strings.Join(args, " "), "-b:v 2000k") {
		t.Errorf("bitrate not passed: %v", args)
	}
}

func TestEncoder_UseBeforeBegin(t *testing.T) {
	encoder := New("")
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))

	if err := encoder.EncodeFrame(img, 0); err != ErrNotInitialized {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
	if _, err := encoder.End(); err != ErrNotInitialized {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
}

func TestEncoder_Roundtrip(t *testing.T) {
	if _, err := FindFFmpeg(""); err != nil {
		t.Skip("ffmpeg not available")
	}

	encoder := New("")
	if err := encoder.Begin(64, 64, 30.0, ports.EncoderOptions{}); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for i := 0; i < 10; i++ {
		if err := encoder.EncodeFrame(img, i*33); err != nil {
			t.Fatalf("EncodeFrame %d failed: %v", i, err)
		}
	}

	data, err := encoder.End()
	if err != nil {
		t.Fatalf("End failed: %v", err)
	}
	if len(data) < 12 || string(data[4:8]) != "ftyp" {
		t.Error("output is not an MP4")
	}
}
