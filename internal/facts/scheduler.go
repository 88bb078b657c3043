package facts

import (
	"context"
	"log"
	"strings"
	"time"
)

const (
	// DefaultCheckInterval is coarse on purpose: the trigger is a calendar
	// date change, so a day boundary is detected within one wake of
	// crossing it
	DefaultCheckInterval = 30 * time.Minute
	// DefaultAttempts bounds the retry sequence of a single wake
	DefaultAttempts = 6
	// DefaultRetryWait is the fixed wait between attempts
	DefaultRetryWait = 10 * time.Second
)

// Scheduler watches the local calendar date and publishes a fresh fact into
// the board once per day, preferring the cache over the network.
type Scheduler struct {
	cache     *Cache
	fetcher   *Fetcher
	board     *Board
	interval  time.Duration
	attempts  int
	retryWait time.Duration

	// now is replaceable in tests
	now func() time.Time

	// lastKey is the date key of the last successful publish. It advances
	// only on success so a failed day is retried at the next wake.
	lastKey string
}

// NewScheduler creates a scheduler with the default cadence
func NewScheduler(cache *Cache, fetcher *Fetcher, board *Board) *Scheduler {
	return &Scheduler{
		cache:     cache,
		fetcher:   fetcher,
		board:     board,
		interval:  DefaultCheckInterval,
		attempts:  DefaultAttempts,
		retryWait: DefaultRetryWait,
		now:       time.Now,
	}
}

// Run loops until ctx is cancelled, checking for a date change at each wake.
// Cancellation is observed at the top of each wake; an in-flight fetch or
// sleep is not preempted beyond its own timeout.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		s.refresh(ctx)

		select {
		case <-ctx.Done():
			return
		case <-time.After(s.interval):
		}
	}
}

// refresh performs one wake: no-op unless the date key changed since the
// last successful publish, then cache lookup, then a bounded network fetch.
func (s *Scheduler) refresh(ctx context.Context) {
	today := DateKey(s.now())
	if today == s.lastKey {
		return
	}
	log.Printf("New day detected: %s (was: %q)", today, s.lastKey)

	if text, ok := s.cache.Get(today); ok {
		s.board.Publish(text)
		s.lastKey = today
		log.Printf("Loaded cached fact for %s", today)
		return
	}

	text := s.fetcher.FetchWithRetry(ctx, s.attempts, s.retryWait)
	if !strings.HasPrefix(text, Prefix) {
		// Keep showing the previous content; retried at the next wake
		log.Printf("Failed to fetch fact for %s, keeping current one", today)
		return
	}

	if err := s.cache.Put(today, text); err != nil {
		// Persistence is best effort; the fetched value still goes out
		log.Printf("Could not cache fact for %s: %v", today, err)
	}
	s.board.Publish(text)
	s.lastKey = today
	log.Printf("Fact loaded for %s: %s", today, text)
}
