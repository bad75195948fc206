// Package main provides the CLI entry point for promoreel.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/ideamans/go-l10n"

	"github.com/user/promoreel/pkg/adapters/filesink"
	"github.com/user/promoreel/pkg/adapters/ggsurface"
	"github.com/user/promoreel/pkg/adapters/h264encoder"
	"github.com/user/promoreel/pkg/adapters/httploader"
	"github.com/user/promoreel/pkg/adapters/logger"
	"github.com/user/promoreel/pkg/adapters/mjpegencoder"
	"github.com/user/promoreel/pkg/adapters/nullsink"
	"github.com/user/promoreel/pkg/adapters/osfilesystem"
	"github.com/user/promoreel/pkg/adapters/streamrecorder"
	"github.com/user/promoreel/pkg/capture"
	"github.com/user/promoreel/pkg/catalog"
	"github.com/user/promoreel/pkg/config"
	"github.com/user/promoreel/pkg/orchestrator"
	"github.com/user/promoreel/pkg/ports"
	"github.com/user/promoreel/pkg/render"
	"github.com/user/promoreel/pkg/server"
	"github.com/user/promoreel/pkg/transcode"
)

// CLI defines the command-line interface with subcommands.
type CLI struct {
	Render  RenderCmd  `cmd:"" help:"Render product clips from a CSV catalog."`
	Serve   ServeCmd   `cmd:"" help:"Run the HTTP API server."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// RenderCmd defines the render subcommand.
type RenderCmd struct {
	// Input/output
	Catalog string `arg:"" optional:"" help:"CSV catalog file path."`
	Output  string `short:"o" default:"./out" help:"Output directory for clips and captions."`
	Sample  bool   `help:"Render the built-in sample catalog instead of a CSV file."`

	// Config file
	Config string `short:"C" help:"YAML configuration file path."`

	// Capture options
	FPS      *int `help:"Frames per second (default: 30)."`
	Duration *int `help:"Clip duration in seconds (default: 10)."`

	// Encoding options
	Codec      string `default:"" enum:",mjpeg,h264" help:"Capture codec (mjpeg or h264)."`
	Quality    *int   `short:"q" help:"Encoding quality (JPEG quality or H.264 CRF)."`
	Transcode  bool   `help:"Transcode clips to H.264 MP4 with ffmpeg."`
	FFmpegPath string `help:"Path to ffmpeg executable (falls back to FFMPEG_PATH env, then system default)."`

	// Font options
	TitleFont string `help:"Path to the bold font used for title and price."`
	BodyFont  string `help:"Path to the font used for the call to action."`

	// Debug options
	Debug    bool   `short:"d" help:"Enable debug output."`
	DebugDir string `default:"./debug" help:"Directory for debug output."`

	// Logging options
	LogLevel string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`
}

// ServeCmd defines the serve subcommand.
type ServeCmd struct {
	Listen string `short:"L" default:":8080" help:"Listen address for the HTTP API."`

	// Config file
	Config string `short:"C" help:"YAML configuration file path."`

	// Encoding options
	Codec      string `default:"" enum:",mjpeg,h264" help:"Capture codec (mjpeg or h264)."`
	Quality    *int   `short:"q" help:"Encoding quality (JPEG quality or H.264 CRF)."`
	FFmpegPath string `help:"Path to ffmpeg executable (falls back to FFMPEG_PATH env, then system default)."`

	// Font options
	TitleFont string `help:"Path to the bold font used for title and price."`
	BodyFont  string `help:"Path to the font used for the call to action."`

	// Logging options
	LogLevel string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`
}

// VersionCmd shows version information.
type VersionCmd struct{}

var version = "dev"

func main() {
	cli := CLI{}

	ctx := kong.Parse(&cli,
		kong.Name("promoreel"),
		kong.Description("Create vertical marketing clips from a product catalog."),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// Run executes the render command.
func (cmd *RenderCmd) Run() error {
	cfg, err := loadConfig(cmd.Config)
	if err != nil {
		return err
	}
	cmd.applyOverrides(&cfg)

	log := newLogger(cmd.Quiet, cmd.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	handleSignals(cancel, log)

	products, err := cmd.loadProducts()
	if err != nil {
		return err
	}

	fs := osfilesystem.New()

	var sink ports.DebugSink
	if cfg.Debug {
		if err := fs.MkdirAll(cfg.DebugDir); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(cfg.DebugDir, fs)
	} else {
		sink = nullsink.New()
	}

	pipeline, err := buildPipeline(cfg, sink, log)
	if err != nil {
		return err
	}

	orch := orchestrator.New(pipeline, transcode.New(cfg.FFmpegPath), fs, sink, log)
	result, err := orch.Run(ctx, products, orchestrator.Config{
		OutputDir: cfg.OutputDir,
		Transcode: cfg.Transcode,
	})
	if err != nil {
		return err
	}
	if result.Rendered == 0 {
		return fmt.Errorf("no clip could be rendered")
	}
	return nil
}

func (cmd *RenderCmd) applyOverrides(cfg *config.Config) {
	if cmd.Output != "" {
		cfg.OutputDir = cmd.Output
	}
	if cmd.FPS != nil {
		cfg.FPS = *cmd.FPS
	}
	if cmd.Duration != nil {
		cfg.DurationSeconds = *cmd.Duration
	}
	if cmd.Codec != "" {
		cfg.Codec = cmd.Codec
	}
	if cmd.Quality != nil {
		cfg.Quality = *cmd.Quality
	}
	if cmd.Transcode {
		cfg.Transcode = true
	}
	if cmd.FFmpegPath != "" {
		cfg.FFmpegPath = cmd.FFmpegPath
	}
	if cmd.TitleFont != "" {
		cfg.TitleFontPath = cmd.TitleFont
	}
	if cmd.BodyFont != "" {
		cfg.BodyFontPath = cmd.BodyFont
	}
	if cmd.Debug {
		cfg.Debug = true
	}
	if cmd.DebugDir != "" {
		cfg.DebugDir = cmd.DebugDir
	}
}

func (cmd *RenderCmd) loadProducts() ([]catalog.Product, error) {
	if cmd.Sample {
		return catalog.Sample(), nil
	}
	if cmd.Catalog == "" {
		return nil, fmt.Errorf("a catalog file or --sample is required")
	}
	f, err := os.Open(cmd.Catalog)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return catalog.ImportCSV(f)
}

// Run executes the serve command.
func (cmd *ServeCmd) Run() error {
	cfg, err := loadConfig(cmd.Config)
	if err != nil {
		return err
	}
	if cmd.Listen != "" {
		cfg.ListenAddr = cmd.Listen
	}
	if cmd.Codec != "" {
		cfg.Codec = cmd.Codec
	}
	if cmd.Quality != nil {
		cfg.Quality = *cmd.Quality
	}
	if cmd.FFmpegPath != "" {
		cfg.FFmpegPath = cmd.FFmpegPath
	}
	if cmd.TitleFont != "" {
		cfg.TitleFontPath = cmd.TitleFont
	}
	if cmd.BodyFont != "" {
		cfg.BodyFontPath = cmd.BodyFont
	}

	log := newLogger(cmd.Quiet, cmd.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	handleSignals(cancel, log)

	pipeline, err := buildPipeline(cfg, nullsink.New(), log)
	if err != nil {
		return err
	}

	srv := server.New(pipeline, transcode.New(cfg.FFmpegPath), log)
	return srv.ListenAndServe(ctx, cfg.ListenAddr)
}

// Run executes the version command.
func (cmd *VersionCmd) Run() error {
	fmt.Println(l10n.F("promoreel version %s", version))
	return nil
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Defaults(), nil
	}
	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func newLogger(quiet bool, level string) ports.Logger {
	if quiet {
		return logger.NewNoop()
	}
	return logger.NewConsole(ports.ParseLogLevel(level))
}

func handleSignals(cancel context.CancelFunc, log ports.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Interrupted, shutting down...")
		cancel()
	}()
}

// buildPipeline wires the capture pipeline from configuration: surface,
// encoder, recorder, image loader and renderer.
func buildPipeline(cfg config.Config, sink ports.DebugSink, log ports.Logger) (*capture.Pipeline, error) {
	layout := cfg.ToLayout()
	surface := ggsurface.New(layout.Width, layout.Height, layout.GradientBottom)

	var encoder ports.VideoEncoder
	switch cfg.Codec {
	case "h264":
		path, err := h264encoder.FindFFmpeg(cfg.FFmpegPath)
		if err != nil {
			return nil, err
		}
		encoder = h264encoder.New(path)
	default:
		encoder = mjpegencoder.New()
	}

	opts := ports.EncoderOptions{
		Quality: cfg.Quality,
		Bitrate: cfg.Bitrate,
	}
	recorder := streamrecorder.New(encoder, float64(cfg.FPS), opts, sink)

	loaderOpts := []httploader.Option{}
	if cfg.ImageProxyURL != "" {
		loaderOpts = append(loaderOpts, httploader.WithProxy(cfg.ImageProxyURL))
	}
	if cfg.MaxImageWidth > 0 && cfg.MaxImageHeight > 0 {
		loaderOpts = append(loaderOpts, httploader.WithMaxBounds(cfg.MaxImageWidth, cfg.MaxImageHeight))
	}
	loader := httploader.New(loaderOpts...)

	renderer := render.New(layout)

	return capture.New(surface, recorder, loader, renderer, log, capture.Config{
		FPS:             cfg.FPS,
		DurationSeconds: cfg.DurationSeconds,
	}), nil
}
