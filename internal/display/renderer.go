// Package display drives the composite render loop: two animation slots, a
// centered clock and the scrolling fact ticker on one pixel matrix.
package display

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"time"

	"golang.org/x/image/font"

	"github.com/fcurrie/cats-display-golang/internal/anim"
	"github.com/fcurrie/cats-display-golang/internal/config"
	"github.com/fcurrie/cats-display-golang/internal/facts"
	"github.com/fcurrie/cats-display-golang/internal/textdraw"
	"github.com/fcurrie/cats-display-golang/internal/types"
)

const (
	dimBrightness    = 10
	brightBrightness = 100

	// Brightness re-check cadence; transitions are only minute-precise so
	// the animated loop checks every minute and the static loop, which may
	// idle for long stretches, every half hour
	animatedBrightnessCheck = 60 * time.Second
	staticBrightnessCheck   = 30 * time.Minute
)

var (
	timeColor   = color.RGBA{255, 255, 255, 255}
	dateColor   = color.RGBA{180, 180, 180, 255}
	tickerColor = color.RGBA{100, 255, 100, 255}
)

// Renderer composites both animation sources, the clock and the ticker onto
// the matrix until its context is cancelled
type Renderer struct {
	cfg    config.DisplayConfig
	matrix types.Matrix
	board  *facts.Board

	left, right *anim.Source
	timeline    *anim.Timeline

	// either face may be nil, which skips that text overlay
	clockFace  font.Face
	tickerFace font.Face

	showClock  bool
	showTicker bool

	// now is replaceable in tests
	now func() time.Time
}

// NewRenderer creates a renderer for the given matrix and sources
func NewRenderer(cfg config.DisplayConfig, matrix types.Matrix, left, right *anim.Source, board *facts.Board) (*Renderer, error) {
	if matrix == nil {
		return nil, errors.New("display: matrix is nil")
	}
	if left == nil || right == nil {
		return nil, errors.New("display: both animation sources are required")
	}
	if board == nil {
		return nil, errors.New("display: board is nil")
	}
	return &Renderer{
		cfg:        cfg,
		matrix:     matrix,
		board:      board,
		left:       left,
		right:      right,
		timeline:   anim.NewTimeline(left, right),
		showClock:  true,
		showTicker: true,
		now:        time.Now,
	}, nil
}

// SetFaces sets the clock and ticker faces; a nil face disables that overlay
func (r *Renderer) SetFaces(clock, ticker font.Face) {
	r.clockFace = clock
	r.tickerFace = ticker
}

// SetOverlays enables or disables the clock and ticker overlays
func (r *Renderer) SetOverlays(clock, ticker bool) {
	r.showClock = clock
	r.showTicker = ticker
}

// Run drives the per-frame loop until ctx is cancelled. Cancellation is
// polled at the top of each iteration; the longest uninterrupted span is one
// frame delay.
func (r *Renderer) Run(ctx context.Context) error {
	canvas := r.matrix.CreateFrameCanvas()
	animated := r.timeline.Animated()

	brightnessCheck := staticBrightnessCheck
	if animated {
		brightnessCheck = animatedBrightnessCheck
	}
	scrollInterval := time.Duration(r.cfg.ScrollIntervalMS) * time.Millisecond
	if scrollInterval <= 0 {
		scrollInterval = 8 * time.Millisecond
	}

	scroll := scrollState{panelWidth: r.cfg.Width}
	var (
		frame               uint64
		lastTime            string
		lastFact            string
		lastOffset          = r.cfg.Width + 1
		lastBrightness      = -1
		lastBrightnessCheck time.Time
	)

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		now := r.now()
		timeStr := now.Format("15:04")
		dateStr := fmt.Sprintf("%d/%d", int(now.Month()), now.Day())

		if lastBrightnessCheck.IsZero() || now.Sub(lastBrightnessCheck) >= brightnessCheck {
			brightness := brightBrightness
			if DimHours(now) {
				brightness = dimBrightness
			}
			if brightness != lastBrightness {
				if err := r.matrix.SetBrightness(brightness); err != nil {
					log.Printf("Failed to set brightness: %v", err)
				} else {
					lastBrightness = brightness
				}
			}
			lastBrightnessCheck = now
		}

		fact := r.board.Current()
		factChanged := fact != lastFact
		if factChanged {
			lastFact = fact
			width := 0
			if r.tickerFace != nil {
				width = textdraw.StringWidth(r.tickerFace, fact)
			}
			scroll.reset(width)
		}

		tickerActive := r.showTicker && r.tickerFace != nil && fact != ""
		timeChanged := timeStr != lastTime
		redraw := animated || timeChanged || factChanged || (tickerActive && scroll.offset != lastOffset)

		if redraw {
			if animated || timeChanged {
				canvas.Clear()
			} else {
				// Only the ticker band moved; blank just those rows
				r.blankTickerBand(canvas)
			}

			blitFrame(canvas, r.left.FrameAt(frame), r.cfg.LeftImageX, r.cfg.ImageY)
			blitFrame(canvas, r.right.FrameAt(frame), r.cfg.RightImageX, r.cfg.ImageY)
			if r.showClock && r.clockFace != nil {
				r.drawClock(canvas, timeStr, dateStr)
			}
			if tickerActive {
				textdraw.Draw(canvas, r.tickerFace, scroll.offset, r.cfg.TickerY, tickerColor, fact)
			}

			canvas = r.matrix.SwapOnVSync(canvas)
			lastTime = timeStr
			lastOffset = scroll.offset
		}

		scroll.advance()

		delay := scrollInterval
		if animated {
			delay = r.timeline.Delay(frame)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		frame++
	}
}

// DimHours reports whether local time t falls in the dim window, 23:30
// through 07:59 inclusive of the lower bound
func DimHours(t time.Time) bool {
	hour, min := t.Hour(), t.Minute()
	if hour == 23 && min >= 30 {
		return true
	}
	return hour < 8
}

func (r *Renderer) blankTickerBand(c types.Canvas) {
	for y := r.cfg.TickerTop; y < r.cfg.Height; y++ {
		for x := 0; x < r.cfg.Width; x++ {
			c.SetPixel(x, y, color.Black)
		}
	}
}

func (r *Renderer) drawClock(c types.Canvas, timeStr, dateStr string) {
	timeX := r.cfg.ClockX + (r.cfg.ClockWidth-textdraw.StringWidth(r.clockFace, timeStr))/2
	dateX := r.cfg.ClockX + (r.cfg.ClockWidth-textdraw.StringWidth(r.clockFace, dateStr))/2
	textdraw.Draw(c, r.clockFace, timeX, r.cfg.ClockY, timeColor, timeStr)
	textdraw.Draw(c, r.clockFace, dateX, r.cfg.DateY, dateColor, dateStr)
}

// blitFrame copies a frame onto the canvas at the given offset; transparent
// pixels keep the background
func blitFrame(c types.Canvas, img *image.RGBA, offsetX, offsetY int) {
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			pix := img.RGBAAt(x, y)
			if pix.A < 0x80 {
				continue
			}
			c.SetPixel(x-bounds.Min.X+offsetX, y-bounds.Min.Y+offsetY, pix)
		}
	}
}

// scrollState tracks the ticker's horizontal position. The offset strictly
// decreases and re-enters from the right edge once the text has scrolled
// fully off-screen.
type scrollState struct {
	offset     int
	width      int
	panelWidth int
}

// reset is called whenever the ticker text changes
func (s *scrollState) reset(textWidth int) {
	s.width = textWidth
	s.offset = s.panelWidth
}

func (s *scrollState) advance() {
	s.offset--
	if s.offset < -s.width {
		s.offset = s.panelWidth
	}
}
