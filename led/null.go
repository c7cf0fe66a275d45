package led

import (
	"github.com/rs/zerolog/log"
)

// Null runs frames through the fix-up and drops them. It keeps only a
// frame counter, so it is safe for long headless runs.
type Null struct {
	Base
	frames uint64
	ready  bool
}

func NewNull(opts Options) *Null {
	return &Null{Base: NewBase(opts)}
}

func (d *Null) Setup(src Source) error {
	if err := d.Base.Setup(src); err != nil {
		return err
	}
	d.ready = true
	return nil
}

func (d *Null) Update(rgb []byte) error {
	if !d.ready {
		return errNotSetup
	}
	d.Fix(rgb)
	d.frames++
	if d.frames%1000 == 0 {
		log.Debug().Uint64("frames", d.frames).Msg("null driver")
	}
	return nil
}

// Frames is the number of frames dropped so far.
func (d *Null) Frames() uint64 { return d.frames }

func (d *Null) Close() error {
	d.ready = false
	return nil
}
