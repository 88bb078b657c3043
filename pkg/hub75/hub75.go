// Package hub75 drives a HUB75 RGB LED matrix panel through the GPIO
// character device. It bit-bangs the panel's shift registers row by row and
// keeps the panel lit with a background scan loop.
package hub75

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/warthog618/go-gpiocdev"

	"github.com/fcurrie/cats-display-golang/internal/types"
)

// PinConfig holds the GPIO pin assignment for the HUB75 interface
type PinConfig struct {
	R1Pin  int // Red data for upper half
	G1Pin  int // Green data for upper half
	B1Pin  int // Blue data for upper half
	R2Pin  int // Red data for lower half
	G2Pin  int // Green data for lower half
	B2Pin  int // Blue data for lower half
	CLKPin int // Clock signal
	OEPin  int // Output enable
	LAPin  int // Latch signal
	APin   int // Address bit A
	BPin   int // Address bit B
	CPin   int // Address bit C
	DPin   int // Address bit D
	EPin   int // Address bit E
}

// DefaultPins returns the Adafruit RGB Matrix Bonnet pinout
func DefaultPins() PinConfig {
	return PinConfig{
		R1Pin:  5,
		G1Pin:  13,
		B1Pin:  6,
		R2Pin:  12,
		G2Pin:  16,
		B2Pin:  23,
		CLKPin: 17,
		OEPin:  4,
		LAPin:  21,
		APin:   22,
		BPin:   26,
		CPin:   27,
		DPin:   20,
		EPin:   24,
	}
}

// Config holds the configuration for the LED matrix
type Config struct {
	Width  int
	Height int
	Chip   string // GPIO chip name, e.g. "gpiochip0"
	Pins   PinConfig
}

// Matrix represents a HUB75 panel. It implements the display's pixel sink
// contract with double-buffered frame presentation.
type Matrix struct {
	cfg  Config
	rows int // addressable rows (height/2, upper and lower half share a scan)

	lines map[int]*gpiocdev.Line

	mu         sync.Mutex
	brightness int
	visible    *types.FrameCanvas

	stop chan struct{}
	done chan struct{}
}

// NewMatrix creates a matrix and starts the panel scan loop
func NewMatrix(cfg Config) (*Matrix, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Height%2 != 0 {
		return nil, fmt.Errorf("hub75: invalid dimensions: %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Chip == "" {
		cfg.Chip = "gpiochip0"
	}

	m := &Matrix{
		cfg:        cfg,
		rows:       cfg.Height / 2,
		lines:      make(map[int]*gpiocdev.Line),
		brightness: 100,
		visible:    types.NewFrameCanvas(cfg.Width, cfg.Height),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}

	pins := []int{
		cfg.Pins.R1Pin, cfg.Pins.G1Pin, cfg.Pins.B1Pin,
		cfg.Pins.R2Pin, cfg.Pins.G2Pin, cfg.Pins.B2Pin,
		cfg.Pins.CLKPin, cfg.Pins.OEPin, cfg.Pins.LAPin,
		cfg.Pins.APin, cfg.Pins.BPin, cfg.Pins.CPin,
		cfg.Pins.DPin, cfg.Pins.EPin,
	}
	for _, pin := range pins {
		line, err := gpiocdev.RequestLine(cfg.Chip, pin, gpiocdev.AsOutput(0))
		if err != nil {
			m.closeLines()
			return nil, fmt.Errorf("hub75: request GPIO pin %d: %w", pin, err)
		}
		m.lines[pin] = line
	}

	go m.scanLoop()
	return m, nil
}

// Width returns the panel width in pixels
func (m *Matrix) Width() int { return m.cfg.Width }

// Height returns the panel height in pixels
func (m *Matrix) Height() int { return m.cfg.Height }

// CreateFrameCanvas returns a new offscreen canvas to draw on
func (m *Matrix) CreateFrameCanvas() types.Canvas {
	return types.NewFrameCanvas(m.cfg.Width, m.cfg.Height)
}

// SwapOnVSync presents the submitted canvas and returns the previously
// visible one as the next drawing target. The scan loop picks the new frame
// up on its next full pass.
func (m *Matrix) SwapOnVSync(c types.Canvas) types.Canvas {
	fc, ok := c.(*types.FrameCanvas)
	if !ok {
		return c
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	prev := m.visible
	m.visible = fc
	return prev
}

// SetBrightness sets the panel brightness as a percentage (0-100)
func (m *Matrix) SetBrightness(percent int) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("hub75: brightness must be between 0 and 100")
	}
	m.mu.Lock()
	m.brightness = percent
	m.mu.Unlock()
	return nil
}

// Clear blanks the visible panel
func (m *Matrix) Clear() error {
	m.mu.Lock()
	m.visible = types.NewFrameCanvas(m.cfg.Width, m.cfg.Height)
	m.mu.Unlock()
	return nil
}

// Close stops the scan loop, blanks the panel and releases all GPIO lines
func (m *Matrix) Close() error {
	close(m.stop)
	<-m.done

	if err := m.setPin(m.cfg.Pins.OEPin, 1); err != nil {
		log.Printf("Error disabling output: %v", err)
	}
	m.closeLines()
	return nil
}

// scanLoop continuously strobes the visible frame out to the panel. Each pass
// works from a private snapshot taken under the lock, so the canvas handed
// back by SwapOnVSync is immediately writable while the scan is in flight.
func (m *Matrix) scanLoop() {
	defer close(m.done)
	frame := types.NewFrameCanvas(m.cfg.Width, m.cfg.Height)
	for {
		select {
		case <-m.stop:
			return
		default:
		}

		m.mu.Lock()
		copy(frame.RGBA().Pix, m.visible.RGBA().Pix)
		brightness := m.brightness
		m.mu.Unlock()

		for row := 0; row < m.rows; row++ {
			rowData := packRow(frame, row, m.rows, brightness)
			if err := m.updateRow(row, rowData); err != nil {
				log.Printf("Error updating row %d: %v", row, err)
			}
			// Small delay between rows to avoid flickering
			time.Sleep(50 * time.Microsecond)
		}
	}
}

// packRow packs one scan row of the frame into per-column R1G1B1/R2G2B2
// bits. The panel has one bit per channel, so channel values are thresholded
// after scaling by the brightness percentage.
func packRow(frame *types.FrameCanvas, row, rows, brightness int) []byte {
	img := frame.RGBA()
	width := frame.Width()
	data := make([]byte, width*6)
	for col := 0; col < width; col++ {
		upper := img.RGBAAt(col, row)
		lower := img.RGBAAt(col, row+rows)
		idx := col * 6
		data[idx+0] = channelBit(upper.R, brightness)
		data[idx+1] = channelBit(upper.G, brightness)
		data[idx+2] = channelBit(upper.B, brightness)
		data[idx+3] = channelBit(lower.R, brightness)
		data[idx+4] = channelBit(lower.G, brightness)
		data[idx+5] = channelBit(lower.B, brightness)
	}
	return data
}

func channelBit(v uint8, brightness int) byte {
	if int(v)*brightness/100 >= 0x80 {
		return 1
	}
	return 0
}

// updateRow shifts one row of data into the panel and latches it
func (m *Matrix) updateRow(rowIdx int, rowData []byte) error {
	// Address bits select the scan row
	addr := rowIdx & 0x1F
	if err := m.setPin(m.cfg.Pins.APin, (addr>>0)&1); err != nil {
		return err
	}
	if err := m.setPin(m.cfg.Pins.BPin, (addr>>1)&1); err != nil {
		return err
	}
	if err := m.setPin(m.cfg.Pins.CPin, (addr>>2)&1); err != nil {
		return err
	}
	if err := m.setPin(m.cfg.Pins.DPin, (addr>>3)&1); err != nil {
		return err
	}
	if err := m.setPin(m.cfg.Pins.EPin, (addr>>4)&1); err != nil {
		return err
	}

	// Disable output while the row data changes
	if err := m.setPin(m.cfg.Pins.OEPin, 1); err != nil {
		return err
	}

	for col := 0; col < m.cfg.Width; col++ {
		idx := col * 6
		if idx+5 >= len(rowData) {
			break
		}
		if err := m.setPin(m.cfg.Pins.R1Pin, int(rowData[idx+0])); err != nil {
			return err
		}
		if err := m.setPin(m.cfg.Pins.G1Pin, int(rowData[idx+1])); err != nil {
			return err
		}
		if err := m.setPin(m.cfg.Pins.B1Pin, int(rowData[idx+2])); err != nil {
			return err
		}
		if err := m.setPin(m.cfg.Pins.R2Pin, int(rowData[idx+3])); err != nil {
			return err
		}
		if err := m.setPin(m.cfg.Pins.G2Pin, int(rowData[idx+4])); err != nil {
			return err
		}
		if err := m.setPin(m.cfg.Pins.B2Pin, int(rowData[idx+5])); err != nil {
			return err
		}

		// Pulse the clock to shift the column in
		if err := m.setPin(m.cfg.Pins.CLKPin, 1); err != nil {
			return err
		}
		time.Sleep(time.Microsecond)
		if err := m.setPin(m.cfg.Pins.CLKPin, 0); err != nil {
			return err
		}
	}

	// Latch the row and re-enable output
	if err := m.setPin(m.cfg.Pins.LAPin, 1); err != nil {
		return err
	}
	time.Sleep(time.Microsecond)
	if err := m.setPin(m.cfg.Pins.LAPin, 0); err != nil {
		return err
	}
	return m.setPin(m.cfg.Pins.OEPin, 0)
}

func (m *Matrix) setPin(pin, value int) error {
	line, ok := m.lines[pin]
	if !ok {
		return nil
	}
	return line.SetValue(value)
}

func (m *Matrix) closeLines() {
	for pin, line := range m.lines {
		if line != nil {
			if err := line.Close(); err != nil {
				log.Printf("Error closing pin %d: %v", pin, err)
			}
		}
	}
	m.lines = make(map[int]*gpiocdev.Line)
}

var _ types.Matrix = (*Matrix)(nil)
