// Package ggsurface provides a drawing surface implementation using the gg
// library.
package ggsurface

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/user/promoreel/pkg/ports"
)

// Surface implements ports.Surface using gg.Context. All operations are
// serialized by a mutex so the recorder can snapshot the pixels while the
// renderer draws.
type Surface struct {
	mu sync.Mutex
	dc *gg.Context
}

// New creates a surface with the given dimensions, cleared to the
// background color.
func New(width, height int, bg color.Color) *Surface {
	dc := gg.NewContext(width, height)
	dc.SetColor(bg)
	dc.Clear()
	return &Surface{dc: dc}
}

// Size returns the surface dimensions.
func (s *Surface) Size() (int, int) {
	return s.dc.Width(), s.dc.Height()
}

// FillGradient paints the full surface with a vertical two-stop gradient.
func (s *Surface) FillGradient(top, bottom color.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := float64(s.dc.Width())
	h := float64(s.dc.Height())

	grad := gg.NewLinearGradient(0, 0, 0, h)
	grad.AddColorStop(0, top)
	grad.AddColorStop(1, bottom)

	s.dc.SetFillStyle(grad)
	s.dc.DrawRectangle(0, 0, w, h)
	s.dc.Fill()
}

// DrawImage draws an image scaled into the target rectangle. When a shadow
// is given, a blurred silhouette is composited first; the shadow never
// affects later draw calls.
func (s *Surface) DrawImage(img image.Image, x, y, width, height float64, shadow *ports.Shadow) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if shadow != nil {
		s.dc.DrawImage(shadowImage(int(width), int(height), shadow), int(x-2*shadow.Blur), int(y-2*shadow.Blur))
	}

	bounds := img.Bounds()
	scaleX := width / float64(bounds.Dx())
	scaleY := height / float64(bounds.Dy())

	s.dc.Push()
	s.dc.Translate(x, y)
	s.dc.Scale(scaleX, scaleY)
	s.dc.DrawImage(img, 0, 0)
	s.dc.Pop()
}

// shadowImage builds a blurred rectangle silhouette with a margin of twice
// the blur radius on each side.
func shadowImage(width, height int, shadow *ports.Shadow) image.Image {
	margin := int(2 * shadow.Blur)
	canvas := image.NewNRGBA(image.Rect(0, 0, width+2*margin, height+2*margin))
	rect := image.Rect(margin, margin, margin+width, margin+height)
	draw.Draw(canvas, rect, image.NewUniform(shadow.Color), image.Point{}, draw.Src)
	return imaging.Blur(canvas, shadow.Blur/2)
}

// MeasureText returns the width and height of the text.
func (s *Surface) MeasureText(text string, style ports.TextStyle) (float64, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.applyFont(style)
	return s.dc.MeasureString(text)
}

// DrawText draws text anchored at (x, y), vertically centered on y.
func (s *Surface) DrawText(text string, x, y float64, style ports.TextStyle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.applyFont(style)
	s.dc.SetColor(style.Color)

	ax := 0.0
	switch style.Align {
	case ports.AlignCenter:
		ax = 0.5
	case ports.AlignRight:
		ax = 1.0
	}

	s.dc.DrawStringAnchored(text, x, y, ax, 0.5)
}

// FillRoundedRect draws a filled rounded rectangle.
func (s *Surface) FillRoundedRect(x, y, width, height, radius float64, c color.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dc.SetColor(c)
	s.dc.DrawRoundedRectangle(x, y, width, height, radius)
	s.dc.Fill()
}

// Snapshot returns a copy of the current pixels.
func (s *Surface) Snapshot() image.Image {
	s.mu.Lock()
	defer s.mu.Unlock()

	src := s.dc.Image()
	bounds := src.Bounds()
	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	return dst
}

// applyFont loads the requested font face, falling back to the context's
// current face when the path is empty or unreadable.
func (s *Surface) applyFont(style ports.TextStyle) {
	if style.FontPath == "" {
		return
	}
	if err := s.dc.LoadFontFace(style.FontPath, style.FontSize); err != nil {
		// Fall back to the default face
		return
	}
}

// Ensure Surface implements ports.Surface
var _ ports.Surface = (*Surface)(nil)
