package anim

import (
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	// Register decoders for formats imaging does not carry itself
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// LoadImageAndScale decodes the image at path and scales every frame to the
// target dimensions. Animated GIFs yield one self-contained frame per native
// frame with its delay; SVG and still raster formats yield a single frame.
func LoadImageAndScale(path string, width, height int) (*Source, error) {
	var (
		frames []Frame
		err    error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".gif":
		frames, err = decodeGIF(path, width, height)
	case ".svg":
		frames, err = decodeSVG(path, width, height)
	default:
		frames, err = decodeStill(path, width, height)
	}
	if err != nil {
		return nil, fmt.Errorf("anim: load %s: %w", path, err)
	}

	src, err := NewSource(frames)
	if err != nil {
		return nil, fmt.Errorf("anim: load %s: %w", path, err)
	}
	log.Printf("Loaded %s: %d frame(s), scaled to %dx%d", path, src.Len(), width, height)
	return src, nil
}

// decodeGIF decodes all frames and coalesces the partial frames GIF encoders
// emit, so every returned frame is a complete image. Delays are kept in the
// GIF's native unit (hundredths of a second).
func decodeGIF(path string, width, height int) ([]Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g, err := gif.DecodeAll(f)
	if err != nil {
		return nil, err
	}
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("no frames in gif")
	}

	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		bounds = g.Image[0].Bounds()
	}
	canvas := image.NewRGBA(bounds)

	frames := make([]Frame, 0, len(g.Image))
	for i, pal := range g.Image {
		var restore *image.RGBA
		if i < len(g.Disposal) && g.Disposal[i] == gif.DisposalPrevious {
			restore = image.NewRGBA(bounds)
			copy(restore.Pix, canvas.Pix)
		}

		draw.Draw(canvas, pal.Bounds(), pal, pal.Bounds().Min, draw.Over)

		full := image.NewRGBA(bounds)
		copy(full.Pix, canvas.Pix)

		delay := 0
		if i < len(g.Delay) {
			delay = g.Delay[i]
		}
		frames = append(frames, Frame{
			Image: scaleToRGBA(full, width, height),
			Delay: delay,
		})

		if i < len(g.Disposal) {
			switch g.Disposal[i] {
			case gif.DisposalBackground:
				draw.Draw(canvas, pal.Bounds(), image.Transparent, image.Point{}, draw.Src)
			case gif.DisposalPrevious:
				canvas = restore
			}
		}
	}
	return frames, nil
}

// decodeSVG rasterizes the vector source directly at the target size
func decodeSVG(path string, width, height int) ([]Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	icon, err := oksvg.ReadIconStream(f)
	if err != nil {
		return nil, err
	}

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	icon.SetTarget(0, 0, float64(width), float64(height))
	scanner := rasterx.NewScannerGV(width, height, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1.0)

	return []Frame{{Image: rgba}}, nil
}

// decodeStill decodes any registered raster format as a single frame
func decodeStill(path string, width, height int) ([]Frame, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, err
	}
	return []Frame{{Image: scaleToRGBA(img, width, height)}}, nil
}

func scaleToRGBA(img image.Image, width, height int) *image.RGBA {
	scaled := imaging.Resize(img, width, height, imaging.Lanczos)
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(out, out.Bounds(), scaled, scaled.Bounds().Min, draw.Src)
	return out
}
