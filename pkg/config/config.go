// Package config provides configuration loading and management.
package config

import (
	"image/color"
	"os"

	"github.com/user/promoreel/pkg/render"
	"gopkg.in/yaml.v3"
)

// Config represents the full configuration for promoreel.
type Config struct {
	// Input/Output
	CatalogPath string `yaml:"catalog"`
	OutputDir   string `yaml:"output"`

	// Canvas
	CanvasWidth  int `yaml:"canvas_width"`
	CanvasHeight int `yaml:"canvas_height"`

	// Capture
	FPS             int `yaml:"fps"`
	DurationSeconds int `yaml:"duration_seconds"`

	// Encoding
	Codec      string `yaml:"codec"`
	Quality    int    `yaml:"quality"`
	Bitrate    int    `yaml:"bitrate"`
	FFmpegPath string `yaml:"ffmpeg_path"`
	Transcode  bool   `yaml:"transcode"`

	// Fonts
	TitleFontPath string `yaml:"title_font"`
	BodyFontPath  string `yaml:"body_font"`

	// Theme
	Theme ThemeConfig `yaml:"theme"`

	// Image loading
	ImageProxyURL    string `yaml:"image_proxy_url"`
	ImageTimeoutMs   int    `yaml:"image_timeout_ms"`
	MaxImageWidth    int    `yaml:"max_image_width"`
	MaxImageHeight   int    `yaml:"max_image_height"`

	// Server
	ListenAddr string `yaml:"listen_addr"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// ThemeConfig represents theming options for rendered frames.
type ThemeConfig struct {
	GradientTopColor    string `yaml:"gradient_top_color"`
	GradientBottomColor string `yaml:"gradient_bottom_color"`
	TextColor           string `yaml:"text_color"`
	AccentColor         string `yaml:"accent_color"`
	CTAText             string `yaml:"cta_text"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		OutputDir: "./out",

		// Canvas
		CanvasWidth:  1080,
		CanvasHeight: 1920,

		// Capture
		FPS:             30,
		DurationSeconds: 10,

		// Encoding
		Codec:   "mjpeg",
		Quality: 85,

		// Theme
		Theme: ThemeConfig{
			GradientTopColor:    "#0ea5e9",
			GradientBottomColor: "#1e293b",
			TextColor:           "#ffffff",
			AccentColor:         "#a5b4fc",
			CTAText:             "Disponible sur notre vitrine TikTok Shop",
		},

		// Image loading
		ImageTimeoutMs: 15000,
		MaxImageWidth:  2048,
		MaxImageHeight: 2048,

		// Server
		ListenAddr: ":8080",

		// Debug
		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// ParseColor parses a hex color string to color.Color.
func ParseColor(hex string) color.Color {
	if len(hex) == 0 {
		return color.Black
	}

	if hex[0] == '#' {
		hex = hex[1:]
	}

	if len(hex) != 6 {
		return color.Black
	}

	var r, g, b uint8
	for i, c := range []byte{hex[0], hex[1]} {
		v := hexValue(c)
		if i == 0 {
			r = v << 4
		} else {
			r |= v
		}
	}
	for i, c := range []byte{hex[2], hex[3]} {
		v := hexValue(c)
		if i == 0 {
			g = v << 4
		} else {
			g |= v
		}
	}
	for i, c := range []byte{hex[4], hex[5]} {
		v := hexValue(c)
		if i == 0 {
			b = v << 4
		} else {
			b |= v
		}
	}

	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// ToLayout converts Config to render.Layout, applying theme and font
// overrides on top of the default template.
func (c Config) ToLayout() render.Layout {
	layout := render.DefaultLayout()

	if c.CanvasWidth > 0 {
		layout.Width = c.CanvasWidth
	}
	if c.CanvasHeight > 0 {
		layout.Height = c.CanvasHeight
	}
	if c.Theme.GradientTopColor != "" {
		layout.GradientTop = ParseColor(c.Theme.GradientTopColor)
	}
	if c.Theme.GradientBottomColor != "" {
		layout.GradientBottom = ParseColor(c.Theme.GradientBottomColor)
	}
	if c.Theme.TextColor != "" {
		textColor := ParseColor(c.Theme.TextColor)
		layout.TitleColor = textColor
		layout.PriceColor = textColor
	}
	if c.Theme.AccentColor != "" {
		layout.CTAColor = ParseColor(c.Theme.AccentColor)
	}
	if c.Theme.CTAText != "" {
		layout.CTAText = c.Theme.CTAText
	}
	if c.BodyFontPath != "" {
		layout.FontPath = c.BodyFontPath
	}
	if c.TitleFontPath != "" {
		layout.BoldFontPath = c.TitleFontPath
	}

	return layout
}

func hexValue(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}
