// Package anim provides looping animation sources and the shared frame
// timeline that keeps two independently timed sources in step.
package anim

import (
	"errors"
	"image"
	"time"
)

// DefaultDelay is used when no source yields a positive frame delay
// (hundredths of a second, i.e. 100ms).
const DefaultDelay = 10

// Frame represents a single pre-scaled animation frame
type Frame struct {
	// Image is the fully composited frame (not a delta)
	Image *image.RGBA
	// Delay is the display time in hundredths of a second
	Delay int
}

// Source represents a looping sequence of frames. A source with exactly one
// frame is a static image.
type Source struct {
	frames []Frame
}

// NewSource creates a source from a non-empty frame sequence
func NewSource(frames []Frame) (*Source, error) {
	if len(frames) == 0 {
		return nil, errors.New("anim: source needs at least one frame")
	}
	return &Source{frames: frames}, nil
}

// Len returns the number of frames
func (s *Source) Len() int {
	return len(s.frames)
}

// Static reports whether the source is a single still image
func (s *Source) Static() bool {
	return len(s.frames) == 1
}

// FrameAt returns the frame displayed at shared counter f. The counter is
// unbounded; the source wraps at its own length, so two sources of lengths
// a and b resynchronize at lcm(a, b).
func (s *Source) FrameAt(f uint64) *image.RGBA {
	return s.frames[f%uint64(len(s.frames))].Image
}

// delayAt returns the source's delay contribution for raw index i, which is
// valid only while i is within the source's native length.
func (s *Source) delayAt(i uint64) (int, bool) {
	if i >= uint64(len(s.frames)) {
		return 0, false
	}
	return s.frames[i].Delay, true
}

// Timeline drives two sources from one shared frame counter
type Timeline struct {
	left, right *Source
	period      uint64
}

// NewTimeline creates a timeline over the two sources
func NewTimeline(left, right *Source) *Timeline {
	period := uint64(left.Len())
	if r := uint64(right.Len()); r > period {
		period = r
	}
	return &Timeline{left: left, right: right, period: period}
}

// Animated reports whether either source has more than one frame
func (t *Timeline) Animated() bool {
	return !t.left.Static() || !t.right.Static()
}

// Delay returns the effective display time of step f. The raw index wraps at
// the longer source's length; a source contributes its own delay only while
// the raw index is within its native length. Two contributions average
// (integer truncation), one is used as-is, and none falls back to
// DefaultDelay. This keeps two sources of different native frame rates on
// one coherent timeline.
func (t *Timeline) Delay(f uint64) time.Duration {
	raw := f % t.period

	delay := 0
	if d, ok := t.left.delayAt(raw); ok {
		delay = d
	}
	if d, ok := t.right.delayAt(raw); ok {
		if delay > 0 {
			delay = (delay + d) / 2
		} else {
			delay = d
		}
	}
	if delay <= 0 {
		delay = DefaultDelay
	}
	return time.Duration(delay) * 10 * time.Millisecond
}
