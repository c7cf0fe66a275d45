package patterns

import (
	"strings"

	"github.com/coreman2200/arcpixel/font"
	"github.com/coreman2200/arcpixel/matrix"
)

// Marquee scrolls one line of text from the right edge until it has left
// the canvas.
type Marquee struct {
	Text string
	Opts matrix.TextOpts
	// Y is the top row of the text.
	Y int

	x       int
	width   int
	started bool
}

// Step draws the next frame; returns false once the text is gone.
func (m *Marquee) Step(mx *matrix.Matrix) bool {
	if !m.started {
		if m.Opts.Font == nil {
			m.Opts.Font = font.Standard()
		}
		m.Text = strings.ReplaceAll(m.Text, "\n", " ")
		m.width = max(1, m.Opts.Scale) * m.Opts.Font.Measure(m.Text)
		m.x = mx.Width()
		m.started = true
	}
	if m.x+m.width <= 0 {
		return false
	}
	mx.Clear()
	mx.DrawText(m.Text, m.x, m.Y, m.Opts)
	m.x--
	return true
}
