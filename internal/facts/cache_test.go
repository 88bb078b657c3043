package facts

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDateKey(t *testing.T) {
	ts := time.Date(2024, time.January, 2, 3, 4, 5, 0, time.Local)
	if got := DateKey(ts); got != "2024-01-02" {
		t.Errorf("DateKey() = %q, want 2024-01-02", got)
	}
}

func TestCacheMissOnUnwrittenKey(t *testing.T) {
	c := NewCache(t.TempDir())
	if text, ok := c.Get("2024-01-01"); ok {
		t.Errorf("Get() on unwritten key = %q, want miss", text)
	}
}

func TestCacheRoundTrip(t *testing.T) {
	c := NewCache(filepath.Join(t.TempDir(), "nested", "cache"))

	const key = "2024-06-15"
	const text = "Today's fact: a cat has 32 muscles in each ear"
	if err := c.Put(key, text); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, ok := c.Get(key)
	if !ok {
		t.Fatal("Get() after Put() missed")
	}
	if got != text {
		t.Errorf("Get() = %q, want %q", got, text)
	}

	// A different day is still a miss
	if _, ok := c.Get("2024-06-16"); ok {
		t.Error("Get() on different key hit")
	}
}

func TestCacheEmptyEntryIsMiss(t *testing.T) {
	dir := t.TempDir()
	c := NewCache(dir)

	const key = "2024-02-29"
	if err := os.WriteFile(filepath.Join(dir, key+".txt"), nil, 0644); err != nil {
		t.Fatalf("write empty entry: %v", err)
	}
	if text, ok := c.Get(key); ok {
		t.Errorf("Get() on empty entry = %q, want miss", text)
	}
}
