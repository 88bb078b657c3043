// Package facts fetches, caches and publishes the daily fact shown in the
// display's scrolling ticker.
package facts

import "sync"

// Board is the single slot of state shared between the refresh scheduler and
// the render loop. The scheduler is the only writer, the renderer the only
// reader; both hold the lock just long enough to copy the string.
type Board struct {
	mu   sync.Mutex
	text string
}

// NewBoard creates a board seeded with the given bootstrap text
func NewBoard(text string) *Board {
	return &Board{text: text}
}

// Publish overwrites the current text
func (b *Board) Publish(text string) {
	b.mu.Lock()
	b.text = text
	b.mu.Unlock()
}

// Current returns the most recently published text
func (b *Board) Current() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text
}
