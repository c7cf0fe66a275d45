package led

import (
	"fmt"
	"math"
	"strings"
)

// ChannelOrder lists, per output channel, which input channel feeds it.
type ChannelOrder [3]int

var (
	RGB = ChannelOrder{0, 1, 2}
	RBG = ChannelOrder{0, 2, 1}
	GRB = ChannelOrder{1, 0, 2}
	GBR = ChannelOrder{1, 2, 0}
	BRG = ChannelOrder{2, 0, 1}
	BGR = ChannelOrder{2, 1, 0}
)

// ParseChannelOrder accepts names like "GRB". An empty string is RGB.
func ParseChannelOrder(s string) (ChannelOrder, error) {
	if s == "" {
		return RGB, nil
	}
	s = strings.ToUpper(s)
	if len(s) != 3 {
		return RGB, fmt.Errorf("invalid channel order: %q", s)
	}
	var o ChannelOrder
	var seen [3]bool
	for i := 0; i < 3; i++ {
		c := strings.IndexByte("RGB", s[i])
		if c < 0 || seen[c] {
			return RGB, fmt.Errorf("invalid channel order: %q", s)
		}
		seen[c] = true
		o[i] = c
	}
	return o, nil
}

func (o ChannelOrder) String() string {
	return string([]byte{"RGB"[o[0]], "RGB"[o[1]], "RGB"[o[2]]})
}

// Gamma is a per-channel lookup table applied right before transmission.
type Gamma [256]byte

// LinearGamma leaves values untouched.
var LinearGamma = func() *Gamma {
	var g Gamma
	for i := range g {
		g[i] = byte(i)
	}
	return &g
}()

// NewGamma builds a power-law table. Exponents of 0 or 1 give LinearGamma.
func NewGamma(exp float64) *Gamma {
	if exp <= 0 || exp == 1 {
		return LinearGamma
	}
	var g Gamma
	for i := range g {
		g[i] = byte(math.Round(255 * math.Pow(float64(i)/255, exp)))
	}
	return &g
}

// Options are shared by every driver.
type Options struct {
	Order ChannelOrder
	// Gamma defaults to LinearGamma.
	Gamma *Gamma
	// Power, when set, limits every fixed frame.
	Power *PowerLimit
}

// Base holds the per-driver working buffer and applies channel order and
// gamma. Drivers embed it.
type Base struct {
	opts Options
	num  int
	buf  []byte
}

func NewBase(opts Options) Base {
	if opts.Gamma == nil {
		opts.Gamma = LinearGamma
	}
	if opts.Order == (ChannelOrder{}) {
		opts.Order = RGB
	}
	return Base{opts: opts}
}

// Setup sizes the working buffer for src.
func (b *Base) Setup(src Source) error {
	b.num = src.Len()
	b.buf = make([]byte, 3*b.num)
	return nil
}

// Len is the pixel count recorded at Setup.
func (b *Base) Len() int { return b.num }

// ByteCount is the size of one fixed frame.
func (b *Base) ByteCount() int { return 3 * b.num }

func (b *Base) Order() ChannelOrder { return b.opts.Order }

// Fix copies data into the working buffer, reordering channels and applying
// gamma and the power limit. The returned slice is reused by the next call.
func (b *Base) Fix(data []byte) []byte {
	g := b.opts.Gamma
	if g == nil {
		g = LinearGamma
	}
	n := b.num
	if len(data)/3 < n {
		n = len(data) / 3
	}
	for i := 0; i < n; i++ {
		px := data[i*3 : i*3+3]
		out := b.buf[i*3 : i*3+3]
		for a, c := range b.opts.Order {
			out[a] = g[px[c]]
		}
	}
	b.opts.Power.Apply(b.buf)
	return b.buf
}

// SetMasterBrightness is unsupported by default.
func (b *Base) SetMasterBrightness(level uint8) (bool, error) {
	return false, nil
}
