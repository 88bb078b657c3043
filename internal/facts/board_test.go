package facts

import (
	"fmt"
	"sync"
	"testing"
)

func TestBoardPublishAndCurrent(t *testing.T) {
	b := NewBoard("bootstrap")
	if got := b.Current(); got != "bootstrap" {
		t.Errorf("Current() = %q, want seed text", got)
	}

	b.Publish("Today's fact: cats sleep a lot")
	if got := b.Current(); got != "Today's fact: cats sleep a lot" {
		t.Errorf("Current() = %q after Publish", got)
	}
}

func TestBoardConcurrentAccess(t *testing.T) {
	b := NewBoard("")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				b.Publish(fmt.Sprintf("writer %d iteration %d", i, j))
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = b.Current()
			}
		}()
	}
	wg.Wait()

	if b.Current() == "" {
		t.Error("Current() empty after concurrent publishes")
	}
}
