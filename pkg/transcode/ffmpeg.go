// Package transcode re-encodes captured clips into broadly compatible
// H.264 MP4 through an ffmpeg subprocess.
package transcode

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/user/promoreel/pkg/adapters/h264encoder"
	"github.com/user/promoreel/pkg/media"
	"github.com/user/promoreel/pkg/ports"
)

// ErrEncodeFailed wraps a nonzero ffmpeg exit; the error message carries
// the encoder's diagnostic output.
var ErrEncodeFailed = errors.New("transcode: encoding failed")

// FFmpeg implements ports.Transcoder with a fixed H.264 argument set:
// libx264, veryfast preset, yuv420p, faststart, audio stripped.
type FFmpeg struct {
	ffmpegPath string
}

// New creates an FFmpeg transcoder. ffmpegPath may be empty; the binary is
// then located at call time.
func New(ffmpegPath string) *FFmpeg {
	return &FFmpeg{ffmpegPath: ffmpegPath}
}

// Transcode writes the clip to a temporary file, runs ffmpeg and reads the
// re-encoded result back. Both temporary files are removed on every exit
// path.
func (t *FFmpeg) Transcode(ctx context.Context, clip media.Clip) (media.Clip, error) {
	path, err := h264encoder.FindFFmpeg(t.ffmpegPath)
	if err != nil {
		return media.Clip{}, err
	}

	inFile, err := os.CreateTemp("", "promoreel-input-*.mp4")
	if err != nil {
		return media.Clip{}, fmt.Errorf("create input file: %w", err)
	}
	inPath := inFile.Name()
	defer os.Remove(inPath)

	if _, err := inFile.Write(clip.Data); err != nil {
		inFile.Close()
		return media.Clip{}, fmt.Errorf("write input file: %w", err)
	}
	if err := inFile.Close(); err != nil {
		return media.Clip{}, fmt.Errorf("close input file: %w", err)
	}

	outFile, err := os.CreateTemp("", "promoreel-output-*.mp4")
	if err != nil {
		return media.Clip{}, fmt.Errorf("create output file: %w", err)
	}
	outPath := outFile.Name()
	outFile.Close()
	defer os.Remove(outPath)

	cmd := exec.CommandContext(ctx, path, buildArgs(inPath, outPath)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := stderr.String()
		if msg == "" {
			msg = err.Error()
		}
		return media.Clip{}, fmt.Errorf("%w: %s", ErrEncodeFailed, msg)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return media.Clip{}, fmt.Errorf("read output file: %w", err)
	}

	return media.NewClip(media.TypeMP4, data), nil
}

// buildArgs assembles the fixed ffmpeg invocation.
func buildArgs(inPath, outPath string) []string {
	return []string{
		"-y",
		"-i", inPath,
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-pix_fmt", "yuv420p",
		"-movflags", "+faststart",
		"-an",
		outPath,
	}
}

// Ensure FFmpeg implements ports.Transcoder
var _ ports.Transcoder = (*FFmpeg)(nil)
