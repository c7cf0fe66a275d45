package model

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned by checked pixel access.
var ErrOutOfRange = errors.New("pixel index out of range")

// Pixels holds a flat [R,G,B,R,G,B,...] buffer. Channel order is always RGB
// here; reordering and gamma belong to the driver.
type Pixels struct {
	count int
	data  []byte
}

func NewPixels(count int) *Pixels {
	if count < 0 {
		count = 0
	}
	return &Pixels{
		count: count,
		data:  make([]byte, 3*count),
	}
}

// Len returns the number of pixels.
func (p *Pixels) Len() int {
	return p.count
}

// LastIndex is the index of the last pixel, -1 when empty.
func (p *Pixels) LastIndex() int {
	return p.count - 1
}

func (p *Pixels) Clear() {
	clear(p.data)
}

// Set writes one pixel.
func (p *Pixels) Set(i int, c Color) error {
	if i < 0 || i >= p.count {
		return fmt.Errorf("set %d of %d: %w", i, p.count, ErrOutOfRange)
	}
	p.data[i*3+0] = c.R
	p.data[i*3+1] = c.G
	p.data[i*3+2] = c.B
	return nil
}

func (p *Pixels) SetRGB(i int, r, g, b uint8) error {
	return p.Set(i, Color{r, g, b})
}

// Get reads one pixel. Out of range reads return Off.
func (p *Pixels) Get(i int) Color {
	c, err := p.At(i)
	if err != nil {
		return Off
	}
	return c
}

// At is the checked counterpart of Get.
func (p *Pixels) At(i int) (Color, error) {
	if i < 0 || i >= p.count {
		return Off, fmt.Errorf("get %d of %d: %w", i, p.count, ErrOutOfRange)
	}
	return Color{p.data[i*3+0], p.data[i*3+1], p.data[i*3+2]}, nil
}

// Bytes exposes the underlying buffer. Callers must not retain or modify it.
func (p *Pixels) Bytes() []byte {
	return p.data
}
