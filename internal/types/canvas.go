package types

import (
	"image"
	"image/color"
	"image/draw"
)

// FrameCanvas is an in-memory RGBA canvas. It backs both the hardware and
// simulation drivers and satisfies draw.Image so text and image blits can
// target it directly.
type FrameCanvas struct {
	img *image.RGBA
}

// NewFrameCanvas creates a cleared canvas of the given dimensions
func NewFrameCanvas(width, height int) *FrameCanvas {
	f := &FrameCanvas{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
	f.Clear()
	return f
}

// SetPixel sets the pixel at (x, y); out-of-bounds coordinates are ignored
func (f *FrameCanvas) SetPixel(x, y int, c color.Color) {
	if x < 0 || x >= f.Width() || y < 0 || y >= f.Height() {
		return
	}
	f.img.Set(x, y, c)
}

// Clear sets every pixel to black
func (f *FrameCanvas) Clear() {
	for i := range f.img.Pix {
		f.img.Pix[i] = 0
	}
	// Keep alpha opaque so the buffer stays a solid frame
	for i := 3; i < len(f.img.Pix); i += 4 {
		f.img.Pix[i] = 0xFF
	}
}

// Width returns the canvas width in pixels
func (f *FrameCanvas) Width() int {
	return f.img.Rect.Dx()
}

// Height returns the canvas height in pixels
func (f *FrameCanvas) Height() int {
	return f.img.Rect.Dy()
}

// At returns the color of the pixel at (x, y)
func (f *FrameCanvas) At(x, y int) color.Color {
	return f.img.At(x, y)
}

// Bounds returns the canvas bounds
func (f *FrameCanvas) Bounds() image.Rectangle {
	return f.img.Bounds()
}

// ColorModel returns the canvas color model
func (f *FrameCanvas) ColorModel() color.Model {
	return f.img.ColorModel()
}

// Set implements draw.Image
func (f *FrameCanvas) Set(x, y int, c color.Color) {
	f.SetPixel(x, y, c)
}

// RGBA returns the underlying image
func (f *FrameCanvas) RGBA() *image.RGBA {
	return f.img
}

var _ Canvas = (*FrameCanvas)(nil)
var _ draw.Image = (*FrameCanvas)(nil)
