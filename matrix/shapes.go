package matrix

import "github.com/coreman2200/arcpixel/model"

// Quadrant masks for the corner helpers.
const (
	cornerTopLeft     = 0x1
	cornerTopRight    = 0x2
	cornerBottomRight = 0x4
	cornerBottomLeft  = 0x8
)

// midpoint walks one octant of a circle of radius r, calling plot with the
// offsets (x, y) where x < y at every step.
func midpoint(r int, plot func(x, y int)) {
	f := 1 - r
	ddFx := 1
	ddFy := -2 * r
	x, y := 0, r
	for x < y {
		if f >= 0 {
			y--
			ddFy += 2
			f += ddFy
		}
		x++
		ddFx += 2
		f += ddFx
		plot(x, y)
	}
}

// DrawCircle outlines a circle centered on (x0, y0).
func (mx *Matrix) DrawCircle(x0, y0, r int, c model.Color) {
	mx.Set(x0, y0+r, c)
	mx.Set(x0, y0-r, c)
	mx.Set(x0+r, y0, c)
	mx.Set(x0-r, y0, c)
	midpoint(r, func(x, y int) {
		mx.Set(x0+x, y0+y, c)
		mx.Set(x0-x, y0+y, c)
		mx.Set(x0+x, y0-y, c)
		mx.Set(x0-x, y0-y, c)
		mx.Set(x0+y, y0+x, c)
		mx.Set(x0-y, y0+x, c)
		mx.Set(x0+y, y0-x, c)
		mx.Set(x0-y, y0-x, c)
	})
}

// circleCorners draws the quadrant arcs selected by mask.
func (mx *Matrix) circleCorners(x0, y0, r, mask int, c model.Color) {
	midpoint(r, func(x, y int) {
		if mask&cornerBottomRight != 0 {
			mx.Set(x0+x, y0+y, c)
			mx.Set(x0+y, y0+x, c)
		}
		if mask&cornerTopRight != 0 {
			mx.Set(x0+x, y0-y, c)
			mx.Set(x0+y, y0-x, c)
		}
		if mask&cornerBottomLeft != 0 {
			mx.Set(x0-y, y0+x, c)
			mx.Set(x0-x, y0+y, c)
		}
		if mask&cornerTopLeft != 0 {
			mx.Set(x0-y, y0-x, c)
			mx.Set(x0-x, y0-y, c)
		}
	})
}

// filledCorners fills the right (0x1) and/or left (0x2) half of a circle
// with vertical spans stretched by delta.
func (mx *Matrix) filledCorners(x0, y0, r, mask, delta int, c model.Color) {
	midpoint(r, func(x, y int) {
		if mask&0x1 != 0 {
			mx.vline(x0+x, y0-y, 2*y+1+delta, c)
			mx.vline(x0+y, y0-x, 2*x+1+delta, c)
		}
		if mask&0x2 != 0 {
			mx.vline(x0-x, y0-y, 2*y+1+delta, c)
			mx.vline(x0-y, y0-x, 2*x+1+delta, c)
		}
	})
}

// DrawCircleFilled fills a circle centered on (x0, y0).
func (mx *Matrix) DrawCircleFilled(x0, y0, r int, c model.Color) {
	mx.vline(x0, y0-r, 2*r+1, c)
	mx.filledCorners(x0, y0, r, 0x3, 0, c)
}

// DrawRect outlines a w x h rectangle with its top-left corner at (x, y).
func (mx *Matrix) DrawRect(x, y, w, h int, c model.Color) {
	mx.hline(x, y, w, c)
	mx.hline(x, y+h-1, w, c)
	mx.vline(x, y, h, c)
	mx.vline(x+w-1, y, h, c)
}

func (mx *Matrix) DrawRectFilled(x, y, w, h int, c model.Color) {
	for i := x; i < x+w; i++ {
		mx.vline(i, y, h, c)
	}
}

// DrawRoundRect outlines a rectangle with corners of radius r.
func (mx *Matrix) DrawRoundRect(x, y, w, h, r int, c model.Color) {
	mx.hline(x+r, y, w-2*r, c)
	mx.hline(x+r, y+h-1, w-2*r, c)
	mx.vline(x, y+r, h-2*r, c)
	mx.vline(x+w-1, y+r, h-2*r, c)

	mx.circleCorners(x+r, y+r, r, cornerTopLeft, c)
	mx.circleCorners(x+w-r-1, y+r, r, cornerTopRight, c)
	mx.circleCorners(x+w-r-1, y+h-r-1, r, cornerBottomRight, c)
	mx.circleCorners(x+r, y+h-r-1, r, cornerBottomLeft, c)
}

func (mx *Matrix) DrawRoundRectFilled(x, y, w, h, r int, c model.Color) {
	mx.DrawRectFilled(x+r, y, w-2*r, h, c)
	mx.filledCorners(x+w-r-1, y+r, r, 0x1, h-2*r-1, c)
	mx.filledCorners(x+r, y+r, r, 0x2, h-2*r-1, c)
}

// DrawTriangle outlines the triangle through three points.
func (mx *Matrix) DrawTriangle(x0, y0, x1, y1, x2, y2 int, c model.Color, aa bool) {
	line := mx.DrawLine
	if aa {
		line = mx.DrawLineAA
	}
	line(x0, y0, x1, y1, c)
	line(x1, y1, x2, y2, c)
	line(x2, y2, x0, y0, c)
}
