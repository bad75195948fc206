// Package render implements the frame renderer: a deterministic function of
// (bitmap, frame index, title, price) drawing one vertical product frame
// onto a surface.
package render

import (
	"errors"
	"image"
	"image/color"
	"strings"

	"github.com/user/promoreel/pkg/ports"
)

// ErrNoFrames is returned when DrawFrame or Scale is called with a
// non-positive total frame count.
var ErrNoFrames = errors.New("render: total frames must be > 0")

// Layout carries the design constants of the single supported template.
// Positions are bottom-anchored offsets against a fixed portrait canvas:
// title above price badge above call-to-action, image in the upper
// two-thirds.
type Layout struct {
	Width  int
	Height int

	GradientTop    color.Color
	GradientBottom color.Color

	// Zoom animation bounds; the scale interpolates linearly from MinScale
	// at frame 0 towards MaxScale, never reaching it.
	MinScale float64
	MaxScale float64

	ImageWidthRatio float64 // image width budget as a fraction of canvas width
	ImageYOffset    float64 // upward offset from vertical center

	ShadowBlur  float64
	ShadowColor color.Color

	TitleFontSize    float64
	TitleLineHeight  float64
	TitleBottomY     float64 // offset from the bottom for the first line
	TitleWidthRatio  float64
	TitleMaxLines    int
	TitleColor       color.Color

	PriceFontSize   float64
	BadgePadX       float64
	BadgeHeight     float64
	BadgeBottomY    float64 // offset from the bottom
	BadgeRadius     float64
	BadgeFill       color.Color
	PriceColor      color.Color
	CurrencySuffix  string

	CTAText     string
	CTAFontSize float64
	CTAColor    color.Color
	CTABottomY  float64

	FontPath     string
	BoldFontPath string
}

// DefaultLayout returns the layout constants of the reference template.
func DefaultLayout() Layout {
	return Layout{
		Width:  1080,
		Height: 1920,

		GradientTop:    color.RGBA{R: 0x0e, G: 0xa5, B: 0xe9, A: 255},
		GradientBottom: color.RGBA{R: 0x1e, G: 0x29, B: 0x3b, A: 255},

		MinScale: 0.9,
		MaxScale: 1.1,

		ImageWidthRatio: 0.8,
		ImageYOffset:    40,

		ShadowBlur:  30,
		ShadowColor: color.RGBA{A: 64}, // black at 25%

		TitleFontSize:   56,
		TitleLineHeight: 60,
		TitleBottomY:    380,
		TitleWidthRatio: 0.9,
		TitleMaxLines:   2,
		TitleColor:      color.White,

		PriceFontSize:  44,
		BadgePadX:      24,
		BadgeHeight:    80,
		BadgeBottomY:   240,
		BadgeRadius:    18,
		BadgeFill:      color.NRGBA{R: 255, G: 255, B: 255, A: 38}, // white at 15%
		PriceColor:     color.White,
		CurrencySuffix: "€",

		CTAText:     "Disponible sur notre vitrine TikTok Shop",
		CTAFontSize: 36,
		CTAColor:    color.RGBA{R: 0xa5, G: 0xb4, B: 0xfc, A: 255},
		CTABottomY:  100,
	}
}

// Renderer draws product frames according to a fixed layout.
type Renderer struct {
	layout Layout
}

// New creates a renderer with the given layout.
func New(layout Layout) *Renderer {
	return &Renderer{layout: layout}
}

// Layout returns the renderer's layout constants.
func (r *Renderer) Layout() Layout {
	return r.layout
}

// Progress returns frameIndex/totalFrames, the interpolation fraction in
// [0,1). It returns an error when totalFrames is not positive.
func Progress(frameIndex, totalFrames int) (float64, error) {
	if totalFrames <= 0 {
		return 0, ErrNoFrames
	}
	return float64(frameIndex) / float64(totalFrames), nil
}

// Scale returns the zoom factor for a frame, linearly interpolated between
// the layout's scale bounds.
func (r *Renderer) Scale(frameIndex, totalFrames int) (float64, error) {
	progress, err := Progress(frameIndex, totalFrames)
	if err != nil {
		return 0, err
	}
	return r.layout.MinScale + (r.layout.MaxScale-r.layout.MinScale)*progress, nil
}

// NormalizePrice appends the currency suffix unless the price already ends
// with it.
func (r *Renderer) NormalizePrice(price string) string {
	if strings.HasSuffix(price, r.layout.CurrencySuffix) {
		return price
	}
	return price + " " + r.layout.CurrencySuffix
}

// WrapTitle word-wraps a title against a width budget using measured glyph
// widths: words are packed greedily into a line until the next word would
// overflow, then a new line starts. At most maxLines lines are returned;
// overflow is silently dropped. A single word wider than the budget still
// becomes its own line.
func WrapTitle(measure func(string) float64, title string, maxWidth float64, maxLines int) []string {
	words := strings.Fields(title)
	var lines []string
	var line string

	for _, w := range words {
		test := w
		if line != "" {
			test = line + " " + w
		}
		if measure(test) > maxWidth {
			if line != "" {
				lines = append(lines, line)
			}
			line = w
		} else {
			line = test
		}
	}
	if line != "" {
		lines = append(lines, line)
	}

	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}

// DrawFrame renders one animation frame onto the surface. Each call paints
// the full surface; no state carries over between frames.
func (r *Renderer) DrawFrame(s ports.Surface, img image.Image, frameIndex, totalFrames int, title, price string) error {
	scale, err := r.Scale(frameIndex, totalFrames)
	if err != nil {
		return err
	}

	l := r.layout
	width, height := s.Size()
	w := float64(width)
	h := float64(height)

	// Background
	s.FillGradient(l.GradientTop, l.GradientBottom)

	// Product image with zoom animation, centered with an upward offset to
	// reserve space for the text block below.
	bounds := img.Bounds()
	imgW := float64(bounds.Dx())
	imgH := float64(bounds.Dy())
	targetW := w * l.ImageWidthRatio
	if scaled := imgW * scale; scaled < targetW {
		targetW = scaled
	}
	targetH := imgH / imgW * targetW
	x := (w - targetW) / 2
	y := (h-targetH)/2 - l.ImageYOffset

	s.DrawImage(img, x, y, targetW, targetH, &ports.Shadow{
		Blur:  l.ShadowBlur,
		Color: l.ShadowColor,
	})

	// Title, wrapped to at most two centered lines.
	titleStyle := ports.TextStyle{
		FontSize: l.TitleFontSize,
		FontPath: l.BoldFontPath,
		Color:    l.TitleColor,
		Align:    ports.AlignCenter,
	}
	measure := func(text string) float64 {
		tw, _ := s.MeasureText(text, titleStyle)
		return tw
	}
	lines := WrapTitle(measure, title, w*l.TitleWidthRatio, l.TitleMaxLines)
	for i, line := range lines {
		s.DrawText(line, w/2, h-l.TitleBottomY+float64(i)*l.TitleLineHeight, titleStyle)
	}

	// Price badge
	if price != "" {
		badgeText := r.NormalizePrice(price)
		priceStyle := ports.TextStyle{
			FontSize: l.PriceFontSize,
			FontPath: l.BoldFontPath,
			Color:    l.PriceColor,
			Align:    ports.AlignCenter,
		}
		textW, _ := s.MeasureText(badgeText, priceStyle)
		bw := textW + l.BadgePadX*2
		bh := l.BadgeHeight
		bx := (w - bw) / 2
		by := h - l.BadgeBottomY

		s.FillRoundedRect(bx, by, bw, bh, l.BadgeRadius, l.BadgeFill)
		s.DrawText(badgeText, w/2, by+bh/2+4, priceStyle)
	}

	// Call to action
	s.DrawText(l.CTAText, w/2, h-l.CTABottomY, ports.TextStyle{
		FontSize: l.CTAFontSize,
		FontPath: l.FontPath,
		Color:    l.CTAColor,
		Align:    ports.AlignCenter,
	})

	return nil
}
