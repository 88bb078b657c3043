package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	d := cfg.Display
	if d.Width != 64 || d.Height != 32 {
		t.Errorf("panel = %dx%d, want 64x32", d.Width, d.Height)
	}
	if d.LeftImageX != 0 || d.RightImageX != 46 {
		t.Errorf("image slots at %d and %d, want 0 and 46", d.LeftImageX, d.RightImageX)
	}
	if d.RightImageX+d.ImageWidth != d.Width {
		t.Errorf("right image slot ends at %d, want flush with panel edge", d.RightImageX+d.ImageWidth)
	}
	if d.ClockX != d.LeftImageX+d.ImageWidth {
		t.Errorf("clock gap starts at %d, want adjacent to left slot", d.ClockX)
	}
	if d.ClockX+d.ClockWidth != d.RightImageX {
		t.Errorf("clock gap ends at %d, want adjacent to right slot", d.ClockX+d.ClockWidth)
	}
	if d.TickerY < d.TickerTop || d.TickerY >= d.Height {
		t.Errorf("ticker baseline %d outside band [%d,%d)", d.TickerY, d.TickerTop, d.Height)
	}
	if d.ScrollIntervalMS <= 0 {
		t.Error("scroll interval must be positive")
	}
	if len(d.TickerFonts) == 0 {
		t.Error("no ticker font candidates")
	}

	if cfg.Facts.Endpoint == "" || cfg.Facts.CacheDir == "" {
		t.Errorf("facts config incomplete: %+v", cfg.Facts)
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{
		"display": {
			"width": 128,
			"height": 64,
			"scroll_interval_ms": 12
		},
		"facts": {
			"cache_dir": "/var/cache/cats"
		}
	}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Display.Width != 128 || cfg.Display.Height != 64 {
		t.Errorf("panel = %dx%d, want overridden 128x64", cfg.Display.Width, cfg.Display.Height)
	}
	if cfg.Display.ScrollIntervalMS != 12 {
		t.Errorf("scroll interval = %d, want 12", cfg.Display.ScrollIntervalMS)
	}
	if cfg.Facts.CacheDir != "/var/cache/cats" {
		t.Errorf("cache dir = %q, want override", cfg.Facts.CacheDir)
	}

	// Fields absent from the file keep their defaults
	if cfg.Facts.Endpoint != DefaultConfig().Facts.Endpoint {
		t.Errorf("endpoint = %q, want default preserved", cfg.Facts.Endpoint)
	}
	if cfg.Display.TickerY != DefaultConfig().Display.TickerY {
		t.Errorf("ticker baseline = %d, want default preserved", cfg.Display.TickerY)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("LoadConfig() on missing file: error = nil, want error")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() on malformed file: error = nil, want error")
	}
}
