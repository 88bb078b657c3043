package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config represents the application configuration
type Config struct {
	Display DisplayConfig `json:"display"`
	Facts   FactsConfig   `json:"facts"`
}

// DisplayConfig holds the panel dimensions and the composite layout. The
// layout used to live as hardcoded constants in per-variant programs; one
// structure now feeds the single composition loop.
type DisplayConfig struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// Image slots
	LeftImageX  int `json:"left_image_x"`
	RightImageX int `json:"right_image_x"`
	ImageY      int `json:"image_y"`
	ImageWidth  int `json:"image_width"`
	ImageHeight int `json:"image_height"`

	// Clock gap between the two image slots
	ClockX     int `json:"clock_x"`
	ClockWidth int `json:"clock_width"`
	ClockY     int `json:"clock_y"`
	DateY      int `json:"date_y"`

	// Ticker band at the bottom of the panel
	TickerTop int `json:"ticker_top"`
	TickerY   int `json:"ticker_y"`

	// ScrollIntervalMS paces the static-image loop, tuned for smooth
	// scrolling rather than any animation delay
	ScrollIntervalMS int `json:"scroll_interval_ms"`

	// ClockFonts and TickerFonts are tried in order; the embedded face is
	// the final fallback
	ClockFonts     []string `json:"clock_fonts"`
	TickerFonts    []string `json:"ticker_fonts"`
	ClockFontSize  float64  `json:"clock_font_size"`
	TickerFontSize float64  `json:"ticker_font_size"`
}

// FactsConfig holds the daily fact refresh settings
type FactsConfig struct {
	Endpoint string `json:"endpoint"`
	CacheDir string `json:"cache_dir"`
}

// LoadConfig loads the configuration from a file
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	config := DefaultConfig()
	if err := json.NewDecoder(file).Decode(config); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return config, nil
}

// DefaultConfig returns the default configuration: a 64x32 panel with two
// 18x21 image slots, the clock centered in the 28 pixel gap and the ticker
// across the bottom rows.
func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			Width:       64,
			Height:      32,
			LeftImageX:  0,
			RightImageX: 46,
			ImageY:      1,
			ImageWidth:  18,
			ImageHeight: 21,

			ClockX:     18,
			ClockWidth: 28,
			ClockY:     10,
			DateY:      18,

			TickerTop: 20,
			TickerY:   30,

			ScrollIntervalMS: 8,

			ClockFonts: []string{
				"/opt/cats-display/fonts/5x7.ttf",
			},
			TickerFonts: []string{
				"/opt/cats-display/fonts/6x13.ttf",
				"/opt/cats-display/fonts/6x9.ttf",
				"/opt/cats-display/fonts/5x8.ttf",
			},
			ClockFontSize:  8,
			TickerFontSize: 11,
		},
		Facts: FactsConfig{
			Endpoint: "https://uselessfacts.jsph.pl/api/v2/facts/today",
			CacheDir: "/tmp/cats-cache",
		},
	}
}
