package types

import "image/color"

// Canvas is a drawing surface for a single frame
type Canvas interface {
	// SetPixel sets the pixel at the given coordinates; out-of-bounds
	// coordinates are ignored
	SetPixel(x, y int, c color.Color)
	// Clear sets every pixel to black
	Clear()
	// Width returns the canvas width in pixels
	Width() int
	// Height returns the canvas height in pixels
	Height() int
}

// Matrix represents a display matrix with double-buffered output
type Matrix interface {
	// Width returns the panel width in pixels
	Width() int
	// Height returns the panel height in pixels
	Height() int
	// CreateFrameCanvas returns a new offscreen canvas to draw on
	CreateFrameCanvas() Canvas
	// SwapOnVSync presents the given canvas on the next vertical sync and
	// returns the canvas to draw the next frame on. The submitted canvas
	// must be fully drawn; at most one canvas is in flight at a time.
	SwapOnVSync(c Canvas) Canvas
	// SetBrightness sets the panel brightness as a percentage (0-100)
	SetBrightness(percent int) error
	// Clear blanks the visible panel
	Clear() error
	// Close releases the underlying hardware
	Close() error
}
