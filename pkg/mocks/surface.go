package mocks

import (
	"image"
	"image/color"
	"strings"
	"sync"

	"github.com/user/promoreel/pkg/ports"
)

// Surface is a deterministic fake implementation of ports.Surface.
// It records every drawing operation and measures text as a fixed width
// per rune, so layout logic can be tested without a graphics stack.
type Surface struct {
	W, H      int
	RuneWidth float64 // width charged per rune by MeasureText (default 10)

	mu  sync.Mutex
	ops []string

	GradientCalls    int
	DrawImageCalls   []DrawImageCall
	TextCalls        []TextCall
	RoundedRectCalls []RoundedRectCall
	SnapshotCalls    int
}

// DrawImageCall records a call to DrawImage.
type DrawImageCall struct {
	X, Y, Width, Height float64
	HasShadow           bool
}

// TextCall records a call to DrawText.
type TextCall struct {
	Text string
	X, Y float64
}

// RoundedRectCall records a call to FillRoundedRect.
type RoundedRectCall struct {
	X, Y, Width, Height, Radius float64
}

// NewSurface creates a fake surface with the given dimensions.
func NewSurface(w, h int) *Surface {
	return &Surface{W: w, H: h, RuneWidth: 10}
}

func (m *Surface) Size() (int, int) {
	return m.W, m.H
}

func (m *Surface) FillGradient(top, bottom color.Color) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GradientCalls++
	m.ops = append(m.ops, "gradient")
}

func (m *Surface) DrawImage(img image.Image, x, y, width, height float64, shadow *ports.Shadow) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DrawImageCalls = append(m.DrawImageCalls, DrawImageCall{
		X: x, Y: y, Width: width, Height: height,
		HasShadow: shadow != nil,
	})
	m.ops = append(m.ops, "image")
}

func (m *Surface) MeasureText(text string, style ports.TextStyle) (float64, float64) {
	return float64(len([]rune(text))) * m.RuneWidth, style.FontSize
}

func (m *Surface) DrawText(text string, x, y float64, style ports.TextStyle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TextCalls = append(m.TextCalls, TextCall{Text: text, X: x, Y: y})
	m.ops = append(m.ops, "text:"+text)
}

func (m *Surface) FillRoundedRect(x, y, width, height, radius float64, c color.Color) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RoundedRectCalls = append(m.RoundedRectCalls, RoundedRectCall{
		X: x, Y: y, Width: width, Height: height, Radius: radius,
	})
	m.ops = append(m.ops, "badge")
}

func (m *Surface) Snapshot() image.Image {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SnapshotCalls++
	return image.NewRGBA(image.Rect(0, 0, m.W, m.H))
}

// Ops returns the recorded operations in order (for test verification).
func (m *Surface) Ops() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.ops...)
}

// OpsString joins the recorded operations (for quick assertions).
func (m *Surface) OpsString() string {
	return strings.Join(m.Ops(), ",")
}

// Reset clears all recorded calls.
func (m *Surface) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = nil
	m.GradientCalls = 0
	m.DrawImageCalls = nil
	m.TextCalls = nil
	m.RoundedRectCalls = nil
	m.SnapshotCalls = 0
}

var _ ports.Surface = (*Surface)(nil)
