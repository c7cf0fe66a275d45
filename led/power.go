package led

import "math"

// PowerLimit scales frames so the estimated strip current stays within
// budget. It runs after gamma, on the bytes that reach the LEDs.
type PowerLimit struct {
	// ChannelMA is the draw of one channel at full scale. WS2812 is about 20.
	ChannelMA float64
	// BudgetMA is the total allowed draw; 0 disables the global stage.
	BudgetMA float64
	// WhiteCap caps R+G+B per pixel (0..765); 0 disables the per-pixel stage.
	WhiteCap int
	// Knee is the fraction of BudgetMA where soft scaling begins. Default 0.9.
	Knee float64
}

// Current estimates the draw of rgb in mA.
func (p *PowerLimit) Current(rgb []byte) float64 {
	ma := p.ChannelMA
	if ma <= 0 {
		ma = 20
	}
	var sum int
	for _, v := range rgb {
		sum += int(v)
	}
	return float64(sum) * ma / 255
}

// Apply limits rgb in place.
func (p *PowerLimit) Apply(rgb []byte) {
	if p == nil {
		return
	}
	if p.WhiteCap > 0 && p.WhiteCap < 765 {
		for i := 0; i+2 < len(rgb); i += 3 {
			px := rgb[i : i+3]
			s := int(px[0]) + int(px[1]) + int(px[2])
			if s > p.WhiteCap {
				scale(px, float64(p.WhiteCap)/float64(s))
			}
		}
	}
	if p.BudgetMA <= 0 {
		return
	}
	total := p.Current(rgb)
	if total <= 0 {
		return
	}
	knee := p.Knee
	if knee <= 0 || knee >= 1 {
		knee = 0.9
	}
	k := knee * p.BudgetMA
	if total <= k {
		return
	}
	// compress the excess over the knee so the result approaches the budget
	span := p.BudgetMA - k
	target := k + span*(1-math.Exp(-(total-k)/span))
	scale(rgb, target/total)
}

func scale(b []byte, s float64) {
	if s >= 1 {
		return
	}
	for i, v := range b {
		b[i] = byte(float64(v) * s)
	}
}
