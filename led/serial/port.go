package serial

import (
	"fmt"
	"io"
	"time"

	goserial "go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// Read timeouts used by the protocol.
const (
	DefaultReadTimeout    = 5 * time.Second
	VersionReadTimeout    = 500 * time.Millisecond
	DefaultRestartTimeout = 3 * time.Second
)

// DefaultBaudRate is ignored by USB CDC controllers but required to open.
const DefaultBaudRate = 115200

// Port is an open serial link. A Read that times out returns 0, nil.
type Port interface {
	io.ReadWriteCloser
	// ResetInputBuffer discards unread input.
	ResetInputBuffer() error
}

// Opener opens a device path with the given read timeout.
type Opener interface {
	Open(dev string, timeout time.Duration) (Port, error)
}

// PortInfo describes one serial port found by an Enumerator.
type PortInfo struct {
	Name   string
	VID    string
	PID    string
	Serial string
}

// HWID formats the USB identifiers the way device filters match them.
func (p PortInfo) HWID() string {
	return fmt.Sprintf("USB VID:PID=%s:%s SER=%s", p.VID, p.PID, p.Serial)
}

type Enumerator interface {
	Ports() ([]PortInfo, error)
}

// System opens and lists the host's serial ports.
var System = system{}

type system struct{}

func (system) Open(dev string, timeout time.Duration) (Port, error) {
	p, err := goserial.Open(dev, &goserial.Mode{BaudRate: DefaultBaudRate})
	if err != nil {
		return nil, err
	}
	if err := p.SetReadTimeout(timeout); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

func (system) Ports() ([]PortInfo, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, err
	}
	out := make([]PortInfo, 0, len(details))
	for _, d := range details {
		pi := PortInfo{Name: d.Name}
		if d.IsUSB {
			pi.VID, pi.PID, pi.Serial = d.VID, d.PID, d.SerialNumber
		}
		out = append(out, pi)
	}
	return out, nil
}

// readStatus reads one status byte.
func readStatus(p Port, op string) (Status, error) {
	var b [1]byte
	n, err := p.Read(b[:])
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, &ProtocolError{Op: op, NoResponse: true}
	}
	return Status(b[0]), nil
}
