package led

import (
	"fmt"

	"github.com/coreman2200/arcpixel/layout"
	"github.com/coreman2200/arcpixel/model"
)

// Strip is a 1-D pixel buffer bound to a driver.
type Strip struct {
	*model.Pixels
	drv Driver
}

// NewStrip allocates n pixels and runs drv.Setup.
func NewStrip(drv Driver, n int) (*Strip, error) {
	s := &Strip{Pixels: model.NewPixels(n), drv: drv}
	if err := drv.Setup(s); err != nil {
		return nil, fmt.Errorf("driver setup: %w", err)
	}
	return s, nil
}

func (s *Strip) Positions() []layout.Position {
	return layout.Strip(s.Len())
}

// Update pushes the current buffer to the driver.
func (s *Strip) Update() error {
	return s.drv.Update(s.Bytes())
}

func (s *Strip) Driver() Driver { return s.drv }
