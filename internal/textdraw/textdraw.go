// Package textdraw renders text onto a pixel canvas using opentype faces.
package textdraw

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/fcurrie/cats-display-golang/internal/types"
)

// LoadFace loads the first usable TTF/OTF face from paths at the given pixel
// size. When every path fails it falls back to the embedded gomono bold face
// so a missing font directory degrades instead of disabling text.
func LoadFace(paths []string, size float64) (font.Face, error) {
	opts := &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Could not read font %s: %v", path, err)
			continue
		}
		ft, err := opentype.Parse(data)
		if err != nil {
			log.Printf("Could not parse font %s: %v", path, err)
			continue
		}
		face, err := opentype.NewFace(ft, opts)
		if err != nil {
			log.Printf("Could not create face for %s: %v", path, err)
			continue
		}
		return face, nil
	}

	ft, err := opentype.Parse(gomonobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("textdraw: embedded fallback font: %w", err)
	}
	face, err := opentype.NewFace(ft, opts)
	if err != nil {
		return nil, fmt.Errorf("textdraw: embedded fallback face: %w", err)
	}
	return face, nil
}

// StringWidth returns the pixel width of s under face
func StringWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

// Draw renders s onto dst with its baseline at (x, y). Glyphs are rasterized
// into a scratch image first so partially visible characters clip cleanly at
// the canvas edges.
func Draw(dst types.Canvas, face font.Face, x, y int, col color.Color, s string) {
	if s == "" {
		return
	}

	width := StringWidth(face, s)
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	height := ascent + metrics.Descent.Ceil()
	if width <= 0 || height <= 0 {
		return
	}

	scratch := image.NewRGBA(image.Rect(0, 0, width, height))
	d := &font.Drawer{
		Dst:  scratch,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(0, ascent),
	}
	d.DrawString(s)

	for sy := 0; sy < height; sy++ {
		for sx := 0; sx < width; sx++ {
			_, _, _, a := scratch.At(sx, sy).RGBA()
			if a == 0 {
				continue
			}
			dst.SetPixel(x+sx, y-ascent+sy, scratch.At(sx, sy))
		}
	}
}
