/*
Package quantize maps an arbitrary image onto a fixed 128 by 64 monochrome grid.

The source is scaled to fit the canvas while keeping its aspect ratio and is
centered on a white background. Each canvas pixel is then reduced to its
BT.709 luminance and turned on when darker than the threshold, so dark ink on
a light background becomes lit cells.
*/
package quantize

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"github.com/ericpauley/go-quantize/quantize"

	"github.com/bethropolis/bitgrid/internal/grid"
	"github.com/bethropolis/bitgrid/internal/logger"
)

const (
	TargetWidth      = 128
	TargetHeight     = 64
	DefaultThreshold = 127.0
)

// Luminance returns the BT.709 luma of an 8-bit RGB triple.
func Luminance(r, g, b uint8) float64 {
	return 0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)
}

func colorLuminance(c color.Color) float64 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Luminance(n.R, n.G, n.B)
}

// Fit returns where a width x height image lands on the canvas. Wider
// images fill the width and are centered vertically; the rest fill the
// height and are centered horizontally.
func Fit(width, height int) image.Rectangle {
	if width <= 0 || height <= 0 {
		return image.Rectangle{}
	}
	imageRatio := float64(width) / float64(height)
	targetRatio := float64(TargetWidth) / float64(TargetHeight)

	var drawW, drawH, offX, offY int
	if imageRatio > targetRatio {
		drawW = TargetWidth
		drawH = int(math.Round(TargetWidth / imageRatio))
		offY = (TargetHeight - drawH) / 2
	} else {
		drawH = TargetHeight
		drawW = int(math.Round(TargetHeight * imageRatio))
		offX = (TargetWidth - drawW) / 2
	}
	return image.Rect(offX, offY, offX+drawW, offY+drawH)
}

// Canvas scales img into its Fit rectangle over an opaque white canvas.
// Transparent source pixels blend towards white.
func Canvas(img image.Image) *image.NRGBA {
	canvas := imaging.New(TargetWidth, TargetHeight, color.White)
	b := img.Bounds()
	r := Fit(b.Dx(), b.Dy())
	if r.Empty() {
		// Nothing to draw; a sliver that rounds to zero pixels leaves the
		// canvas blank.
		return canvas
	}
	scaled := imaging.Resize(img, r.Dx(), r.Dy(), imaging.Linear)
	return imaging.Overlay(canvas, scaled, r.Min, 1.0)
}

// Convert quantizes img into a fresh TargetWidth x TargetHeight grid. Pixels
// with luminance below threshold are on.
func Convert(img image.Image, threshold float64) (*grid.Grid, error) {
	canvas := Canvas(img)
	g, err := grid.Generate(TargetWidth, TargetHeight, func(y, x int) bool {
		i := canvas.PixOffset(x, y)
		return Luminance(canvas.Pix[i], canvas.Pix[i+1], canvas.Pix[i+2]) < threshold
	})
	if err != nil {
		return nil, err
	}
	logger.DebugTagf("quantize", "Quantize: %v source -> %d of %d cells on (threshold %.1f)",
		img.Bounds().Size(), g.Count(), TargetWidth*TargetHeight, threshold)
	return g, nil
}

// AutoThreshold picks a threshold halfway between the luminances of the two
// dominant colors of the composited canvas, found by median cut. Images
// that reduce to a single color get DefaultThreshold.
func AutoThreshold(img image.Image) float64 {
	q := quantize.MedianCutQuantizer{}
	p := q.Quantize(make(color.Palette, 0, 2), Canvas(img))
	if len(p) < 2 {
		return DefaultThreshold
	}
	l0, l1 := colorLuminance(p[0]), colorLuminance(p[1])
	if l0 == l1 {
		return DefaultThreshold
	}
	t := (l0 + l1) / 2
	logger.DebugTagf("quantize", "Quantize: auto threshold %.1f from %.1f/%.1f", t, l0, l1)
	return t
}

// Open loads an image file, honoring EXIF orientation.
func Open(path string) (image.Image, error) {
	return imaging.Open(path, imaging.AutoOrientation(true))
}

// Decode reads an image from r, honoring EXIF orientation.
func Decode(r io.Reader) (image.Image, error) {
	return imaging.Decode(r, imaging.AutoOrientation(true))
}
