package ports

import (
	"image"
	"image/color"
)

// Surface is the 2D drawing target the frame renderer paints into.
// Implementations must be safe for a concurrent Snapshot while drawing,
// since the recorder samples on its own cadence.
type Surface interface {
	// Size returns the fixed logical dimensions of the surface.
	Size() (width, height int)

	// FillGradient paints the full surface with a vertical two-stop gradient.
	FillGradient(top, bottom color.Color)

	// DrawImage draws an image scaled into the target rectangle, optionally
	// with a soft drop shadow. Shadow state must not leak into later draws.
	DrawImage(img image.Image, x, y, width, height float64, shadow *Shadow)

	// MeasureText returns the rendered width and height of the text.
	MeasureText(text string, style TextStyle) (width, height float64)

	// DrawText draws text anchored at (x, y) according to the style's
	// alignment, vertically centered on y.
	DrawText(text string, x, y float64, style TextStyle)

	// FillRoundedRect draws a filled rounded rectangle.
	FillRoundedRect(x, y, width, height, radius float64, c color.Color)

	// Snapshot returns a copy of the current pixels.
	Snapshot() image.Image
}

// Shadow describes a soft drop shadow behind a drawn image.
type Shadow struct {
	Blur  float64
	Color color.Color
}

// TextStyle defines text rendering properties.
type TextStyle struct {
	FontSize float64
	FontPath string
	Color    color.Color
	Align    TextAlign
}

// TextAlign specifies text alignment.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)
