// Package h264encoder provides H.264 video encoding through an ffmpeg
// subprocess: raw RGBA frames are piped to stdin and the finished MP4 is
// read back from a temporary file.
package h264encoder

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os"
	"os/exec"
	"runtime"
	"sync"

	"github.com/user/promoreel/pkg/ports"
)

var (
	// ErrNotInitialized is returned when encoder methods are called before Begin.
	ErrNotInitialized = errors.New("h264encoder: encoder not initialized")

	// ErrFFmpegNotFound is returned when no ffmpeg binary can be located.
	ErrFFmpegNotFound = errors.New("h264encoder: ffmpeg not found")
)

// FindFFmpeg searches for ffmpeg. Priority: explicit path argument,
// FFMPEG_PATH environment variable, PATH, common install locations.
func FindFFmpeg(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit, nil
		}
		return "", fmt.Errorf("%w: %s", ErrFFmpegNotFound, explicit)
	}

	if envPath := os.Getenv("FFMPEG_PATH"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("%w: FFMPEG_PATH %s", ErrFFmpegNotFound, envPath)
	}

	execName := "ffmpeg"
	if runtime.GOOS == "windows" {
		execName = "ffmpeg.exe"
	}
	if path, err := exec.LookPath(execName); err == nil {
		return path, nil
	}

	var commonPaths []string
	switch runtime.GOOS {
	case "windows":
		commonPaths = []string{
			`C:\ffmpeg\bin\ffmpeg.exe`,
			`C:\Program Files\ffmpeg\bin\ffmpeg.exe`,
		}
	case "darwin":
		commonPaths = []string{
			"/opt/homebrew/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
			"/usr/bin/ffmpeg",
		}
	default:
		commonPaths = []string{
			"/usr/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
			"/snap/bin/ffmpeg",
		}
	}
	for _, p := range commonPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", ErrFFmpegNotFound
}

// Encoder implements ports.VideoEncoder using an ffmpeg subprocess.
type Encoder struct {
	ffmpegPath string

	mu       sync.Mutex
	width    int
	height   int
	cmd      *exec.Cmd
	stdin    io.WriteCloser
	stderr   bytes.Buffer
	tempPath string
	closed   bool
}

// New creates an Encoder. ffmpegPath may be empty, in which case the binary
// is located via FindFFmpeg at Begin time.
func New(ffmpegPath string) *Encoder {
	return &Encoder{ffmpegPath: ffmpegPath}
}

// Begin locates ffmpeg and starts it reading raw RGBA frames from stdin.
func (e *Encoder) Begin(width, height int, fps float64, opts ports.EncoderOptions) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	path, err := FindFFmpeg(e.ffmpegPath)
	if err != nil {
		return err
	}

	e.width = width
	e.height = height
	e.closed = false

	tmpFile, err := os.CreateTemp("", "promoreel-h264-*.mp4")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	e.tempPath = tmpFile.Name()
	tmpFile.Close()

	args := buildArgs(width, height, fps, opts, e.tempPath)

	e.cmd = exec.Command(path, args...)
	e.stderr.Reset()
	e.cmd.Stderr = &e.stderr

	stdin, err := e.cmd.StdinPipe()
	if err != nil {
		os.Remove(e.tempPath)
		return fmt.Errorf("stdin pipe: %w", err)
	}
	e.stdin = stdin

	if err := e.cmd.Start(); err != nil {
		os.Remove(e.tempPath)
		return fmt.Errorf("start ffmpeg: %w", err)
	}

	return nil
}

// buildArgs assembles the ffmpeg invocation: rawvideo in, H.264 yuv420p
// faststart MP4 out.
func buildArgs(width, height int, fps float64, opts ports.EncoderOptions, outPath string) []string {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", width, height),
		"-r", fmt.Sprintf("%.2f", fps),
		"-i", "pipe:0",
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-pix_fmt", "yuv420p",
	}

	if opts.Quality > 0 && opts.Quality <= 63 {
		crf := opts.Quality * 51 / 63
		if crf > 51 {
			crf = 51
		}
		args = append(args, "-crf", fmt.Sprintf("%d", crf))
	} else {
		args = append(args, "-crf", "23")
	}

	if opts.Bitrate > 0 {
		args = append(args, "-b:v", fmt.Sprintf("%dk", opts.Bitrate))
	}

	return append(args,
		"-movflags", "+faststart",
		"-an",
		outPath,
	)
}

// EncodeFrame writes one frame to the ffmpeg pipe. The timestamp is implied
// by the fixed input frame rate.
func (e *Encoder) EncodeFrame(img image.Image, timestampMs int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stdin == nil || e.closed {
		return ErrNotInitialized
	}

	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || bounds.Dx() != e.width || bounds.Dy() != e.height {
		rgba = image.NewRGBA(image.Rect(0, 0, e.width, e.height))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}

	if _, err := e.stdin.Write(rgba.Pix); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// End closes the pipe, waits for ffmpeg and returns the finished MP4.
// The temporary output file is removed on every exit path.
func (e *Encoder) End() ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stdin == nil || e.closed {
		return nil, ErrNotInitialized
	}

	e.stdin.Close()
	e.stdin = nil
	e.closed = true
	defer func() {
		os.Remove(e.tempPath)
		e.tempPath = ""
	}()

	if err := e.cmd.Wait(); err != nil {
		return nil, fmt.Errorf("ffmpeg encoding failed: %w\nstderr: %s", err, e.stderr.String())
	}

	data, err := os.ReadFile(e.tempPath)
	if err != nil {
		return nil, fmt.Errorf("read output: %w", err)
	}

	return data, nil
}

// Ensure Encoder implements ports.VideoEncoder
var _ ports.VideoEncoder = (*Encoder)(nil)
