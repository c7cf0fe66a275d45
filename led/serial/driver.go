package serial

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/arcpixel/led"
)

// State of a serial connection.
type State int

const (
	Disconnected State = iota
	Connecting
	Configuring
	RebootPending
	Ready
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Configuring:
		return "configuring"
	case RebootPending:
		return "reboot-pending"
	case Ready:
		return "ready"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Config for a Serial driver. Zero values take the documented defaults.
type Config struct {
	Type Chipset
	// Device is the port path. Empty discovers it through HardwareID.
	Device string
	// HardwareID is a case-insensitive pattern matched against the port
	// name and USB identifiers. Defaults to DefaultHardwareID.
	HardwareID string
	// SPISpeed in MHz, 1 to 24, only for SPI chipsets. Defaults to 2.
	SPISpeed int
	// DeviceID selects among several discovered controllers.
	DeviceID *int
	// RestartTimeout is the wait for a controller to reboot after it was
	// reconfigured. Defaults to 3s.
	RestartTimeout time.Duration
	// ReadTimeout bounds every status read. Defaults to 5s.
	ReadTimeout time.Duration

	led.Options
}

func (c *Config) validate() error {
	if c.Type > P9813 {
		return &ConfigError{Field: "type", Msg: fmt.Sprintf("unknown chipset %d", c.Type)}
	}
	if c.DeviceID != nil && (*c.DeviceID < 0 || *c.DeviceID > 255) {
		return &ConfigError{Field: "device_id", Msg: "must be between 0 and 255"}
	}
	if c.HardwareID == "" {
		c.HardwareID = DefaultHardwareID
	}
	if _, err := matcher(c.HardwareID); err != nil {
		return err
	}
	if c.SPISpeed == 0 {
		c.SPISpeed = 2
	}
	if c.RestartTimeout <= 0 {
		c.RestartTimeout = DefaultRestartTimeout
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	return nil
}

// Serial drives one controller. It is not safe for concurrent use.
type Serial struct {
	led.Base
	cfg   Config
	reg   *Registry
	speed byte

	port   Port
	dev    string
	devVer int
	pad    int
	state  State

	sleep func(time.Duration)
}

// New validates cfg. reg opens ports and resolves discovery and is
// required even with an explicit Device. Nothing is opened before Setup.
func New(reg *Registry, cfg Config) (*Serial, error) {
	if reg == nil {
		return nil, &ConfigError{Field: "registry", Msg: "is required"}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Serial{
		Base:  led.NewBase(cfg.Options),
		cfg:   cfg,
		reg:   reg,
		speed: cfg.Type.SPISpeed(cfg.SPISpeed),
		dev:   cfg.Device,
		sleep: time.Sleep,
	}, nil
}

func (d *Serial) State() State { return d.state }

// Device is the port in use, empty until discovery ran.
func (d *Serial) Device() string { return d.dev }

// Setup runs the configuration handshake. A controller asking for a reboot
// is reopened once after RestartTimeout. A port left open by an earlier
// Setup is closed first.
func (d *Serial) Setup(src led.Source) error {
	if err := d.closePort(); err != nil {
		log.Debug().Err(err).Str("dev", d.dev).Msg("close previous port")
	}
	d.state = Disconnected
	if err := d.Base.Setup(src); err != nil {
		return err
	}
	st, err := d.connect()
	if err != nil {
		d.fail()
		return err
	}
	switch st {
	case StatusSuccess:
	case StatusReboot:
		log.Info().Str("dev", d.dev).Dur("wait", d.cfg.RestartTimeout).Msg("reconfigure and reboot needed, waiting for controller to restart")
		if err := d.closePort(); err != nil {
			d.fail()
			return d.transportError("close", err)
		}
		d.state = RebootPending
		d.sleep(d.cfg.RestartTimeout)
		st, err = d.connect()
		if err != nil {
			d.fail()
			return err
		}
		if st != StatusSuccess {
			d.fail()
			return d.protocolError("setup", st)
		}
		log.Info().Str("dev", d.dev).Msg("reconfigure success")
	default:
		d.fail()
		return d.protocolError("setup", st)
	}
	d.state = Ready
	if d.cfg.Type.IsSPI() {
		log.Info().Int("mhz", int(d.speed)).Msg("using SPI speed")
	}
	return nil
}

func (d *Serial) resolve() error {
	if d.dev != "" {
		return nil
	}
	dev, err := d.reg.Select(d.cfg.HardwareID, d.cfg.DeviceID)
	if err != nil {
		return &TransportError{Op: "discover", Err: err}
	}
	d.dev, d.devVer = dev.Port, dev.Version
	log.Info().Str("dev", dev.Port).Int("device_id", dev.ID).Int("version", dev.Version).Msg("using serial port")
	return nil
}

// connect opens the port and sends the setup packet.
func (d *Serial) connect() (Status, error) {
	d.state = Connecting
	if err := d.resolve(); err != nil {
		return 0, err
	}
	p, err := d.reg.opener.Open(d.dev, d.cfg.ReadTimeout)
	if err != nil {
		return 0, d.transportError("open", err)
	}
	d.port = p
	d.state = Configuring

	d.pad = d.cfg.Type.Padding(d.Len(), d.devVer)
	pkt := SetupPacket(d.cfg.Type, d.ByteCount()+d.pad, d.speed)
	if _, err := p.Write(pkt); err != nil {
		return 0, d.transportError("write", err)
	}
	st, err := readStatus(p, "setup")
	if err != nil {
		var perr *ProtocolError
		if errors.As(err, &perr) {
			return 0, err
		}
		return 0, d.transportError("read", err)
	}
	return st, nil
}

func (d *Serial) transportError(op string, err error) error {
	ports, perr := d.reg.Ports(d.cfg.HardwareID)
	if perr != nil {
		log.Debug().Err(perr).Msg("list ports")
	}
	return &TransportError{Op: op, Device: d.dev, Ports: ports, Err: err}
}

func (d *Serial) protocolError(op string, st Status) error {
	e := &ProtocolError{Op: op, Status: st}
	log.Error().Str("dev", d.dev).Stringer("status", st).Msg(e.Message())
	return e
}

// fail releases the port after an I/O or handshake failure.
func (d *Serial) fail() {
	if err := d.closePort(); err != nil {
		log.Debug().Err(err).Str("dev", d.dev).Msg("close port")
	}
	d.state = Disconnected
}

func (d *Serial) closePort() error {
	if d.port == nil {
		return nil
	}
	log.Info().Str("dev", d.dev).Msg("closing connection")
	err := d.port.Close()
	d.port = nil
	return err
}

// command writes pkt and checks the status byte. Transport failures close
// the connection.
func (d *Serial) command(op string, pkt []byte) error {
	if d.state != Ready {
		return ErrNotReady
	}
	if _, err := d.port.Write(pkt); err != nil {
		terr := d.transportError("write", err)
		d.fail()
		return terr
	}
	st, err := readStatus(d.port, op)
	if err != nil {
		var perr *ProtocolError
		if errors.As(err, &perr) {
			return err
		}
		terr := d.transportError("read", err)
		d.fail()
		return terr
	}
	if st != StatusSuccess {
		return d.protocolError(op, st)
	}
	return nil
}

// Update sends one frame plus chipset padding.
func (d *Serial) Update(rgb []byte) error {
	if err := d.command("update", PixelPacket(d.Fix(rgb), d.pad)); err != nil {
		return err
	}
	if err := d.port.ResetInputBuffer(); err != nil {
		log.Debug().Err(err).Msg("flush input")
	}
	return nil
}

func (d *Serial) SetMasterBrightness(level uint8) (bool, error) {
	if err := d.command("brightness", BrightnessPacket(level)); err != nil {
		return false, err
	}
	return true, nil
}

// Close is safe to call more than once.
func (d *Serial) Close() error {
	err := d.closePort()
	d.state = Disconnected
	return err
}
