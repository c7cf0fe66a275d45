package matrix

import (
	"math"

	"github.com/coreman2200/arcpixel/model"
)

// ColorFunc returns the color of the step-th pixel drawn along a line.
type ColorFunc func(step int) model.Color

func flat(c model.Color) ColorFunc {
	return func(int) model.Color { return c }
}

// DrawLine draws from (x0, y0) to (x1, y1), both ends included.
func (mx *Matrix) DrawLine(x0, y0, x1, y1 int, c model.Color) {
	mx.bresenham(x0, y0, x1, y1, flat(c))
}

// DrawLineAA draws an antialiased line.
func (mx *Matrix) DrawLineAA(x0, y0, x1, y1 int, c model.Color) {
	mx.wu(float64(x0), float64(y0), float64(x1), float64(y1), flat(c))
}

// DrawLineFunc draws a line colored per pixel by f.
func (mx *Matrix) DrawLineFunc(x0, y0, x1, y1 int, f ColorFunc, aa bool) {
	if aa {
		mx.wu(float64(x0), float64(y0), float64(x1), float64(y1), f)
		return
	}
	mx.bresenham(x0, y0, x1, y1, f)
}

func (mx *Matrix) bresenham(x0, y0, x1, y1 int, f ColorFunc) {
	steep := abs(y1-y0) > abs(x1-x0)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}
	dx := x1 - x0
	dy := abs(y1 - y0)
	// doubled to keep dx/2 exact
	err := dx
	ystep := -1
	if y0 < y1 {
		ystep = 1
	}
	for x, step := x0, 0; x <= x1; x, step = x+1, step+1 {
		c := f(step)
		if steep {
			mx.Set(y0, x, c)
		} else {
			mx.Set(x, y0, c)
		}
		err -= 2 * dy
		if err < 0 {
			y0 += ystep
			err += 2 * dx
		}
	}
}

func (mx *Matrix) wu(x0, y0, x1, y1 float64, f ColorFunc) {
	step := 0
	plot := func(x, y int, coverage float64) {
		c := model.Scale(f(step), uint8(math.Round(255*coverage)))
		step++
		mx.Set(x, y, c)
	}

	steep := math.Abs(y1-y0) > math.Abs(x1-x0)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}
	dx := x1 - x0
	dy := y1 - y0
	gradient := 1.0
	if dx != 0 {
		gradient = dy / dx
	}
	pair := func(x, y int, cov float64) {
		if steep {
			plot(y, x, 1-cov)
			plot(y+1, x, cov)
		} else {
			plot(x, y, 1-cov)
			plot(x, y+1, cov)
		}
	}

	// first endpoint
	xend := math.Round(x0)
	yend := y0 + gradient*(xend-x0)
	xgap := rfpart(x0 + 0.5)
	xpxl1 := int(xend)
	if steep {
		plot(ipart(yend), xpxl1, rfpart(yend)*xgap)
		plot(ipart(yend)+1, xpxl1, fpart(yend)*xgap)
	} else {
		plot(xpxl1, ipart(yend), rfpart(yend)*xgap)
		plot(xpxl1, ipart(yend)+1, fpart(yend)*xgap)
	}
	intery := yend + gradient

	// second endpoint
	xend = math.Round(x1)
	yend = y1 + gradient*(xend-x1)
	xgap = fpart(x1 + 0.5)
	xpxl2 := int(xend)
	if steep {
		plot(ipart(yend), xpxl2, rfpart(yend)*xgap)
		plot(ipart(yend)+1, xpxl2, fpart(yend)*xgap)
	} else {
		plot(xpxl2, ipart(yend), rfpart(yend)*xgap)
		plot(xpxl2, ipart(yend)+1, fpart(yend)*xgap)
	}

	for x := xpxl1 + 1; x < xpxl2; x++ {
		pair(x, ipart(intery), fpart(intery))
		intery += gradient
	}
}

func ipart(x float64) int      { return int(x) }
func fpart(x float64) float64  { return x - math.Floor(x) }
func rfpart(x float64) float64 { return 1 - fpart(x) }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// vline draws h pixels down from (x, y).
func (mx *Matrix) vline(x, y, h int, c model.Color) {
	if h <= 0 {
		return
	}
	mx.DrawLine(x, y, x, y+h-1, c)
}

// hline draws w pixels right from (x, y).
func (mx *Matrix) hline(x, y, w int, c model.Color) {
	if w <= 0 {
		return
	}
	mx.DrawLine(x, y, x+w-1, y, c)
}
