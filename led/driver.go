package led

import (
	"errors"

	"github.com/coreman2200/arcpixel/layout"
)

var errNotSetup = errors.New("driver not set up")

// Source is the pixel container a driver is bound to.
type Source interface {
	// Len is the number of pixels.
	Len() int
	// Positions returns the physical location of every pixel index.
	Positions() []layout.Position
}

// Driver abstracts an LED output sink.
type Driver interface {
	// Setup records the pixel count and allocates working buffers. It is
	// called once, before the first Update.
	Setup(src Source) error
	// Update pushes one RGB frame. len(rgb) must be 3*N.
	Update(rgb []byte) error
	// SetMasterBrightness reports false for drivers without hardware
	// brightness control.
	SetMasterBrightness(level uint8) (bool, error)
	// Close releases resources. Calling it more than once is allowed.
	Close() error
}
