package led

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/host/v3"
)

// DefaultSPIFreq drives WS281x strips over SPI.
const DefaultSPIFreq = 2500 * physic.KiloHertz

type SPIConfig struct {
	// Dev is a spireg name such as "/dev/spidev0.0". Empty picks the first
	// registered port.
	Dev  string
	Freq physic.Frequency
	Options
}

// SPI drives NRZ (WS281x) strips through a periph SPI port.
type SPI struct {
	Base
	cfg    SPIConfig
	port   spi.Port
	closer spi.PortCloser
	dev    *nrzled.Dev
}

// OpenSPI initialises the host and opens cfg.Dev.
func OpenSPI(cfg SPIConfig) (*SPI, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}
	p, err := spireg.Open(cfg.Dev)
	if err != nil {
		return nil, fmt.Errorf("open spi %q: %w", cfg.Dev, err)
	}
	d := NewSPI(p, cfg)
	d.closer = p
	return d, nil
}

// NewSPI wraps an already opened port. The port is not closed by Close.
func NewSPI(p spi.Port, cfg SPIConfig) *SPI {
	if cfg.Freq == 0 {
		cfg.Freq = DefaultSPIFreq
	}
	return &SPI{Base: NewBase(cfg.Options), cfg: cfg, port: p}
}

func (d *SPI) Setup(src Source) error {
	if err := d.Base.Setup(src); err != nil {
		return err
	}
	opts := nrzled.Opts{
		NumPixels: src.Len(),
		Channels:  3,
		Freq:      d.cfg.Freq,
	}
	dev, err := nrzled.NewSPI(d.port, &opts)
	if err != nil {
		return fmt.Errorf("nrzled: %w", err)
	}
	if err := dev.Halt(); err != nil {
		return fmt.Errorf("nrzled halt: %w", err)
	}
	d.dev = dev
	log.Info().Str("dev", dev.String()).Int("pixels", src.Len()).Str("freq", d.cfg.Freq.String()).Msg("spi driver ready")
	return nil
}

func (d *SPI) Update(rgb []byte) error {
	if d.dev == nil {
		return errNotSetup
	}
	if _, err := d.dev.Write(d.Fix(rgb)); err != nil {
		return fmt.Errorf("spi write: %w", err)
	}
	return nil
}

func (d *SPI) Close() error {
	var err error
	if d.dev != nil {
		err = d.dev.Halt()
		d.dev = nil
	}
	if d.closer != nil {
		if cerr := d.closer.Close(); err == nil {
			err = cerr
		}
		d.closer = nil
	}
	return err
}
