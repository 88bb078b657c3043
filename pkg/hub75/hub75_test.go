package hub75

import (
	"image/color"
	"testing"

	"github.com/warthog618/go-gpiocdev"

	"github.com/fcurrie/cats-display-golang/internal/types"
)

// scanMatrix builds a matrix without hardware: setPin no-ops on the empty
// line map, so the scan loop runs its full row protocol against nothing.
func scanMatrix(width, height int) *Matrix {
	return &Matrix{
		cfg:        Config{Width: width, Height: height},
		rows:       height / 2,
		lines:      map[int]*gpiocdev.Line{},
		brightness: 100,
		visible:    types.NewFrameCanvas(width, height),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// The canvas returned by SwapOnVSync must be writable immediately, even while
// the scan loop is mid-pass over the frame it was presenting. Run with -race.
func TestSwapReturnsWritableCanvas(t *testing.T) {
	m := scanMatrix(8, 8)
	go m.scanLoop()

	canvas := m.CreateFrameCanvas()
	for i := 0; i < 200; i++ {
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				canvas.SetPixel(x, y, color.RGBA{uint8(i), 255, 0, 255})
			}
		}
		canvas = m.SwapOnVSync(canvas)
	}

	if err := m.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}

func TestNewMatrixInvalidDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 32},
		{"zero height", 64, 0},
		{"negative", -64, 32},
		{"odd height", 64, 31},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMatrix(Config{Width: tt.width, Height: tt.height, Pins: DefaultPins()})
			if err == nil {
				t.Error("NewMatrix() error = nil, want error")
			}
		})
	}
}

func TestChannelBit(t *testing.T) {
	tests := []struct {
		v          uint8
		brightness int
		want       byte
	}{
		{0xFF, 100, 1},
		{0x80, 100, 1},
		{0x7F, 100, 0},
		{0x00, 100, 0},
		{0xFF, 50, 0},  // 255*50/100 = 127, below threshold
		{0xFF, 51, 1},  // 255*51/100 = 130
		{0xFF, 10, 0},  // dimmed panels drop mid-intensity channels
		{0x80, 0, 0},
	}
	for _, tt := range tests {
		if got := channelBit(tt.v, tt.brightness); got != tt.want {
			t.Errorf("channelBit(0x%02X, %d) = %d, want %d", tt.v, tt.brightness, got, tt.want)
		}
	}
}

func TestPackRow(t *testing.T) {
	frame := types.NewFrameCanvas(4, 8)
	// Upper half pixel at (1, 2): pure red. Lower half counterpart at
	// (1, 6) in frame space: green+blue.
	frame.SetPixel(1, 2, color.RGBA{255, 0, 0, 255})
	frame.SetPixel(1, 6, color.RGBA{0, 255, 255, 255})

	data := packRow(frame, 2, 4, 100)
	if len(data) != 4*6 {
		t.Fatalf("packed %d bytes, want %d", len(data), 4*6)
	}

	col1 := data[6:12]
	want := []byte{1, 0, 0, 0, 1, 1}
	for i := range want {
		if col1[i] != want[i] {
			t.Errorf("column 1 bits = %v, want %v", col1, want)
			break
		}
	}

	// Untouched columns stay dark
	for i, b := range data[0:6] {
		if b != 0 {
			t.Errorf("column 0 bit %d = %d, want 0", i, b)
		}
	}
}

func TestPackRowBrightnessZeroBlanks(t *testing.T) {
	frame := types.NewFrameCanvas(2, 4)
	frame.SetPixel(0, 0, color.RGBA{255, 255, 255, 255})
	frame.SetPixel(1, 2, color.RGBA{255, 255, 255, 255})

	for i, b := range packRow(frame, 0, 2, 0) {
		if b != 0 {
			t.Errorf("bit %d = %d at zero brightness, want 0", i, b)
		}
	}
}
