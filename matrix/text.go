package matrix

import (
	"github.com/coreman2200/arcpixel/font"
	"github.com/coreman2200/arcpixel/model"
)

// TextOpts style DrawChar and DrawText.
type TextOpts struct {
	Color model.Color
	// Background fills clear glyph bits when set and different from Color.
	Background *model.Color
	// Font defaults to font.Standard.
	Font *font.Font
	// Scale replicates every glyph pixel into a Scale x Scale block. Values
	// below 1 mean 1.
	Scale int
}

func (o TextOpts) norm() TextOpts {
	if o.Font == nil {
		o.Font = font.Standard()
	}
	if o.Scale < 1 {
		o.Scale = 1
	}
	if o.Background != nil && *o.Background == o.Color {
		o.Background = nil
	}
	return o
}

func (mx *Matrix) block(x, y, scale int, c model.Color) {
	if scale == 1 {
		mx.Set(x, y, c)
		return
	}
	mx.DrawRectFilled(x, y, scale, scale, c)
}

// DrawChar draws r with its top-left corner at (x, y) and returns its
// unscaled advance.
func (mx *Matrix) DrawChar(x, y int, r rune, o TextOpts) int {
	o = o.norm()
	f, s := o.Font, o.Scale
	glyph := f.Glyph(r)
	fw := len(glyph)
	for i := 0; i < fw+f.Sep; i++ {
		xPos := x + i*s
		if xPos >= mx.Width() || xPos+fw*s-1 < 0 {
			continue
		}
		var col uint16
		if i < fw {
			col = glyph[i]
		}
		for j := 0; j < f.Height; j++ {
			yPos := y + j*s
			if yPos < mx.Height() && yPos+f.Height*s-1 >= 0 {
				switch {
				case col&0x1 != 0:
					mx.block(xPos, yPos, s, o.Color)
				case o.Background != nil:
					mx.block(xPos, yPos, s, *o.Background)
				}
			}
			col >>= 1
		}
	}
	return fw + f.Sep
}

// DrawText draws text starting at (x, y). A newline returns to x = 0 on the
// next text row; drawing stops once a line runs off the right edge.
func (mx *Matrix) DrawText(text string, x, y int, o TextOpts) {
	o = o.norm()
	for _, r := range text {
		switch r {
		case '\n':
			x = 0
			y += o.Scale * o.Font.Height
		case '\r':
		default:
			x += o.Scale * mx.DrawChar(x, y, r, o)
			if x >= mx.Width() {
				return
			}
		}
	}
}
