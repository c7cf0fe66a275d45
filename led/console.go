package led

import (
	"periph.io/x/extra/devices/screen"
)

// Console prints frames as ANSI color blocks on stdout.
type Console struct {
	Base
	dev *screen.Dev
}

func NewConsole(opts Options) *Console {
	return &Console{Base: NewBase(opts)}
}

func (d *Console) Setup(src Source) error {
	if err := d.Base.Setup(src); err != nil {
		return err
	}
	d.dev = screen.New(src.Len())
	return nil
}

func (d *Console) Update(rgb []byte) error {
	if d.dev == nil {
		return errNotSetup
	}
	_, err := d.dev.Write(d.Fix(rgb))
	return err
}

func (d *Console) Close() error {
	if d.dev == nil {
		return nil
	}
	err := d.dev.Halt()
	d.dev = nil
	return err
}
