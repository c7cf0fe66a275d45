// Package matrix addresses a pixel buffer by (x, y) through a coordinate map
// and rasterises shapes, text and images onto it.
package matrix

import (
	"fmt"

	"github.com/coreman2200/arcpixel/layout"
	"github.com/coreman2200/arcpixel/led"
	"github.com/coreman2200/arcpixel/model"
)

// Config builds the coordinate map. When Map is set the other fields are
// ignored and the dimensions come from the map.
type Config struct {
	Width      int
	Height     int
	Serpentine bool
	// Rotation in degrees, see layout.Options.
	Rotation int
	YFlip    bool
	Map      *layout.Map
}

func (c Config) coordMap() (*layout.Map, error) {
	if c.Map != nil {
		return c.Map, nil
	}
	return layout.New(c.Width, c.Height, layout.Options{
		Serpentine: c.Serpentine,
		Rotation:   c.Rotation,
		YFlip:      c.YFlip,
	})
}

// Matrix is a 2-D canvas over a driver. Drawing is clipped to the canvas.
type Matrix struct {
	px  *model.Pixels
	m   *layout.Map
	drv led.Driver
}

// New builds the map, allocates one pixel per cell and sets up drv.
func New(drv led.Driver, cfg Config) (*Matrix, error) {
	m, err := cfg.coordMap()
	if err != nil {
		return nil, err
	}
	n := m.Len()
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if i := m.At(x, y); i < 0 || i >= n {
				return nil, fmt.Errorf("%w: index %d at (%d, %d) outside [0, %d)", layout.ErrShape, i, x, y, n)
			}
		}
	}
	mx := &Matrix{px: model.NewPixels(n), m: m, drv: drv}
	if err := drv.Setup(mx); err != nil {
		return nil, fmt.Errorf("driver setup: %w", err)
	}
	return mx, nil
}

func (mx *Matrix) Width() int  { return mx.m.Width() }
func (mx *Matrix) Height() int { return mx.m.Height() }

// Len is the number of pixels.
func (mx *Matrix) Len() int { return mx.px.Len() }

func (mx *Matrix) Map() *layout.Map      { return mx.m }
func (mx *Matrix) Pixels() *model.Pixels { return mx.px }
func (mx *Matrix) Driver() led.Driver    { return mx.drv }

// Positions maps every pixel index back to its (x, y).
func (mx *Matrix) Positions() []layout.Position {
	return mx.m.Positions(mx.px.Len())
}

// Set colors (x, y). Off-canvas coordinates are ignored.
func (mx *Matrix) Set(x, y int, c model.Color) {
	if !mx.m.Contains(x, y) {
		return
	}
	// indices were validated in New
	_ = mx.px.Set(mx.m.At(x, y), c)
}

// Get returns Off for off-canvas coordinates.
func (mx *Matrix) Get(x, y int) model.Color {
	if !mx.m.Contains(x, y) {
		return model.Off
	}
	return mx.px.Get(mx.m.At(x, y))
}

func (mx *Matrix) Clear() { mx.px.Clear() }

// Fill sets every pixel to c.
func (mx *Matrix) Fill(c model.Color) {
	for i := 0; i < mx.px.Len(); i++ {
		_ = mx.px.Set(i, c)
	}
}

// Update pushes the buffer to the driver.
func (mx *Matrix) Update() error {
	return mx.drv.Update(mx.px.Bytes())
}

// SetBrightness forwards to the driver. It reports false when the driver
// has no hardware brightness control.
func (mx *Matrix) SetBrightness(level uint8) (bool, error) {
	return mx.drv.SetMasterBrightness(level)
}

func (mx *Matrix) Close() error { return mx.drv.Close() }
