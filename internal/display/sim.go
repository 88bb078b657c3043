package display

import (
	"fmt"
	"sync"

	"github.com/fcurrie/cats-display-golang/internal/types"
)

// SimMatrix is an in-memory Matrix for running the display off-hardware and
// for the test suite. It keeps the last presented frame visible.
type SimMatrix struct {
	width, height int

	mu         sync.Mutex
	brightness int
	visible    *types.FrameCanvas
	swaps      int
}

// NewSimMatrix creates a simulation matrix of the given dimensions
func NewSimMatrix(width, height int) (*SimMatrix, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("display: invalid dimensions: %dx%d", width, height)
	}
	return &SimMatrix{
		width:      width,
		height:     height,
		brightness: 100,
		visible:    types.NewFrameCanvas(width, height),
	}, nil
}

// Width returns the panel width in pixels
func (m *SimMatrix) Width() int { return m.width }

// Height returns the panel height in pixels
func (m *SimMatrix) Height() int { return m.height }

// CreateFrameCanvas returns a new offscreen canvas
func (m *SimMatrix) CreateFrameCanvas() types.Canvas {
	return types.NewFrameCanvas(m.width, m.height)
}

// SwapOnVSync makes the submitted canvas visible and hands back the
// previously visible one as the next drawing target
func (m *SimMatrix) SwapOnVSync(c types.Canvas) types.Canvas {
	fc, ok := c.(*types.FrameCanvas)
	if !ok {
		return c
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	prev := m.visible
	m.visible = fc
	m.swaps++
	return prev
}

// SetBrightness sets the simulated brightness percentage
func (m *SimMatrix) SetBrightness(percent int) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("display: brightness must be between 0 and 100")
	}
	m.mu.Lock()
	m.brightness = percent
	m.mu.Unlock()
	return nil
}

// Brightness returns the current simulated brightness
func (m *SimMatrix) Brightness() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.brightness
}

// Visible returns the currently presented frame
func (m *SimMatrix) Visible() *types.FrameCanvas {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.visible
}

// Swaps returns how many frames have been presented
func (m *SimMatrix) Swaps() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.swaps
}

// Clear blanks the visible frame
func (m *SimMatrix) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.visible.Clear()
	return nil
}

// Close releases nothing for the simulation
func (m *SimMatrix) Close() error { return nil }

var _ types.Matrix = (*SimMatrix)(nil)
