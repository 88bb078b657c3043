// cats-display shows two images side by side on a 64x32 LED matrix with a
// clock in the middle gap and a daily fact scrolling across the bottom rows.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/fcurrie/cats-display-golang/internal/anim"
	"github.com/fcurrie/cats-display-golang/internal/config"
	"github.com/fcurrie/cats-display-golang/internal/display"
	"github.com/fcurrie/cats-display-golang/internal/facts"
	"github.com/fcurrie/cats-display-golang/internal/textdraw"
	"github.com/fcurrie/cats-display-golang/internal/types"
	"github.com/fcurrie/cats-display-golang/pkg/hub75"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [options] <left-image> <right-image>\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Displays two images side by side on an LED matrix with a clock and a daily fact ticker.\n")
	fmt.Fprintf(os.Stderr, "Images may be animated GIFs, SVGs or any common raster format.\n\n")
	flag.PrintDefaults()
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("%v", err)
	}
}

// run carries the whole program so setup failures return through the deferred
// matrix teardown instead of exiting past it
func run() error {
	configPath := flag.String("config", "config.json", "Path to configuration file")
	sim := flag.Bool("sim", false, "Render to an in-memory matrix instead of the HUB75 panel")
	seedText := flag.String("text", "Waiting for network... fact loading in background",
		"Ticker text shown until the first fact is published")
	showClock := flag.Bool("clock", true, "Show the clock overlay")
	showTicker := flag.Bool("ticker", true, "Show the scrolling ticker overlay")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 2 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Printf("Failed to load config from %s: %v", *configPath, err)
		log.Printf("Using default configuration")
		cfg = config.DefaultConfig()
	}

	var matrix types.Matrix
	if *sim {
		matrix, err = display.NewSimMatrix(cfg.Display.Width, cfg.Display.Height)
	} else {
		matrix, err = hub75.NewMatrix(hub75.Config{
			Width:  cfg.Display.Width,
			Height: cfg.Display.Height,
			Pins:   hub75.DefaultPins(),
		})
	}
	if err != nil {
		return fmt.Errorf("create matrix: %w", err)
	}
	defer matrix.Close()

	// Font failures degrade to image-only rendering
	clockFace, err := textdraw.LoadFace(cfg.Display.ClockFonts, cfg.Display.ClockFontSize)
	if err != nil {
		log.Printf("Could not load clock font, clock disabled: %v", err)
	}
	tickerFace, err := textdraw.LoadFace(cfg.Display.TickerFonts, cfg.Display.TickerFontSize)
	if err != nil {
		log.Printf("Could not load ticker font, ticker disabled: %v", err)
	}

	// A failed decode fails startup outright; rendering one blank slot was
	// judged worse than a clear failure
	left, err := anim.LoadImageAndScale(flag.Arg(0), cfg.Display.ImageWidth, cfg.Display.ImageHeight)
	if err != nil {
		return fmt.Errorf("load left image: %w", err)
	}
	right, err := anim.LoadImageAndScale(flag.Arg(1), cfg.Display.ImageWidth, cfg.Display.ImageHeight)
	if err != nil {
		return fmt.Errorf("load right image: %w", err)
	}

	board := facts.NewBoard(*seedText)
	cache := facts.NewCache(cfg.Facts.CacheDir)
	fetcher := facts.NewFetcher(cfg.Facts.Endpoint)
	scheduler := facts.NewScheduler(cache, fetcher, board)

	renderer, err := display.NewRenderer(cfg.Display, matrix, left, right, board)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	renderer.SetFaces(clockFace, tickerFace)
	renderer.SetOverlays(*showClock, *showTicker)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down...")
		cancel()
	}()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		scheduler.Run(ctx)
	}()

	if err := renderer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("Renderer stopped: %v", err)
	}

	// Join the scheduler before tearing down anything it might still touch
	cancel()
	wg.Wait()

	if err := matrix.Clear(); err != nil {
		log.Printf("Failed to clear matrix: %v", err)
	}
	return nil
}
