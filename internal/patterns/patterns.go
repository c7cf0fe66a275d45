package patterns

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/coreman2200/arcpixel/font"
	"github.com/coreman2200/arcpixel/matrix"
	"github.com/coreman2200/arcpixel/model"
)

type Kind string

const (
	None       Kind = ""
	IndexSweep Kind = "index_sweep"
	RGBTest    Kind = "rgb_channels"
	RowSweep   Kind = "row_sweep"
	Rainbow    Kind = "rainbow"
	Demo       Kind = "demo"
)

// rainbowFrames is one full hue rotation.
const rainbowFrames = 30

var kinds = []Kind{IndexSweep, RGBTest, RowSweep, Rainbow, Demo}

// Kinds lists the runnable patterns.
func Kinds() []Kind { return append([]Kind(nil), kinds...) }

func ParseKind(s string) (Kind, error) {
	for _, k := range kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return None, fmt.Errorf("unknown pattern %q", s)
}

type Plan struct {
	Kind Kind
	// Cycles repeats cyclic patterns. Values below 1 mean 1.
	Cycles int
}

type Runner struct {
	plan Plan
	step int
}

func NewRunner(plan Plan) *Runner {
	if plan.Cycles < 1 {
		plan.Cycles = 1
	}
	return &Runner{plan: plan}
}

func (r *Runner) Kind() Kind { return r.plan.Kind }

// Step draws the next frame into mx; returns false when complete.
func (r *Runner) Step(mx *matrix.Matrix) bool {
	mx.Clear()
	px := mx.Pixels()

	switch r.plan.Kind {
	case IndexSweep:
		if r.step >= px.Len() {
			return false
		}
		_ = px.Set(r.step, model.White)
	case RGBTest:
		if r.step >= 3*r.plan.Cycles {
			return false
		}
		mx.Fill([]model.Color{model.Red, model.Green, model.Blue}[r.step%3])
	case RowSweep:
		if r.step >= mx.Height() {
			return false
		}
		mx.DrawLine(0, r.step, mx.Width()-1, r.step, model.Color{G: 255, B: 255})
	case Rainbow:
		if r.step >= rainbowFrames*r.plan.Cycles {
			return false
		}
		rainbow(mx, float64(r.step%rainbowFrames)*360/rainbowFrames)
	case Demo:
		if r.step >= len(scenes)*r.plan.Cycles {
			return false
		}
		scenes[r.step%len(scenes)](mx)
	default:
		return false
	}
	r.step++
	return true
}

// scenes exercise every rasteriser, scaled to the canvas.
var scenes = []func(mx *matrix.Matrix){
	func(mx *matrix.Matrix) {
		w, h := mx.Width(), mx.Height()
		mx.DrawCircle(w/2, h/2, min(w, h)/2-1, model.Red)
	},
	func(mx *matrix.Matrix) {
		w, h := mx.Width(), mx.Height()
		mx.DrawCircleFilled(w/2, h/2, min(w, h)/3, model.Orange)
	},
	func(mx *matrix.Matrix) {
		mx.DrawRect(0, 0, mx.Width(), mx.Height(), model.Green)
		mx.DrawRectFilled(2, 2, mx.Width()-4, mx.Height()-4, model.Blue)
	},
	func(mx *matrix.Matrix) {
		r := min(mx.Width(), mx.Height()) / 4
		mx.DrawRoundRect(0, 0, mx.Width(), mx.Height(), r, model.Purple)
		mx.DrawRoundRectFilled(r, r, mx.Width()-2*r, mx.Height()-2*r, r/2, model.White)
	},
	func(mx *matrix.Matrix) {
		w, h := mx.Width()-1, mx.Height()-1
		mx.DrawLineFunc(0, 0, w, h, gradient(max(w, h)+1), false)
		mx.DrawLineAA(0, h, w, 0, model.White)
	},
	func(mx *matrix.Matrix) {
		w, h := mx.Width()-1, mx.Height()-1
		mx.DrawTriangle(w/2, 0, w, h, 0, h, model.Red, true)
	},
	func(mx *matrix.Matrix) {
		mx.DrawText("Hi!", 0, 0, matrix.TextOpts{Color: model.Green, Font: font.Standard()})
	},
}

// rainbow spreads the hue wheel across the columns, starting at shift degrees.
func rainbow(mx *matrix.Matrix, shift float64) {
	w := mx.Width()
	for x := 0; x < w; x++ {
		h := shift + float64(x)*360/float64(w)
		for h >= 360 {
			h -= 360
		}
		r, g, b := colorful.Hsv(h, 1, 1).RGB255()
		mx.DrawLine(x, 0, x, mx.Height()-1, model.Color{R: r, G: g, B: b})
	}
}

// gradient fades red into blue over n steps.
func gradient(n int) matrix.ColorFunc {
	return func(i int) model.Color {
		v := uint8(255 * i / max(1, n-1))
		return model.Color{R: 255 - v, B: v}
	}
}
