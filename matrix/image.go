package matrix

import (
	"fmt"
	"image"
	"io"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/coreman2200/arcpixel/model"
)

// DrawImage copies img onto the canvas with img.Bounds().Min at (x, y).
// Transparent pixels are skipped, translucent ones are composited over
// black.
func (mx *Matrix) DrawImage(img image.Image, x, y int) {
	b := img.Bounds()
	for iy := b.Min.Y; iy < b.Max.Y; iy++ {
		for ix := b.Min.X; ix < b.Max.X; ix++ {
			r, g, bl, a := img.At(ix, iy).RGBA()
			if a == 0 {
				continue
			}
			mx.Set(x+ix-b.Min.X, y+iy-b.Min.Y, model.Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8)})
		}
	}
}

// Image renders the canvas as an NRGBA image.
func (mx *Matrix) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, mx.Width(), mx.Height()))
	for y := 0; y < mx.Height(); y++ {
		for x := 0; x < mx.Width(); x++ {
			img.SetNRGBA(x, y, mx.Get(x, y).NRGBA())
		}
	}
	return img
}

// RasterizeSVG renders an SVG document into a w x h image.
func RasterizeSVG(r io.Reader, w, h int) (*image.RGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("svg target %dx%d is empty", w, h)
	}
	icon, err := oksvg.ReadIconStream(r, oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("read svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return img, nil
}

// DrawSVG rasterises an SVG into a w x h box at (x, y).
func (mx *Matrix) DrawSVG(r io.Reader, x, y, w, h int) error {
	img, err := RasterizeSVG(r, w, h)
	if err != nil {
		return err
	}
	mx.DrawImage(img, x, y)
	return nil
}
