package serial

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotReady is returned by frame and brightness commands before a
// successful Setup or after Close.
var ErrNotReady = errors.New("serial: connection not ready")

// ConfigError rejects a driver configuration before any I/O happens.
type ConfigError struct {
	Field string
	Msg   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("serial config %s: %s", e.Field, e.Msg)
}

// TransportError wraps a failure of the serial link itself. Ports lists the
// matching devices that were discoverable when it happened.
type TransportError struct {
	Op     string
	Device string
	Ports  []string
	Err    error
}

func (e *TransportError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "serial %s", e.Op)
	if e.Device != "" {
		fmt.Fprintf(&b, " %s", e.Device)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	if len(e.Ports) > 0 {
		fmt.Fprintf(&b, " (try one of: %s)", strings.Join(e.Ports, ", "))
	} else {
		b.WriteString(" (no serial ports available)")
	}
	return b.String()
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolError is a non-success answer from the controller, or no answer
// at all.
type ProtocolError struct {
	Op         string
	Status     Status
	NoResponse bool
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("serial %s: %s", e.Op, e.Message())
}

// Message is the human readable category of the status.
func (e *ProtocolError) Message() string {
	if e.NoResponse {
		return "unknown error communicating with the device"
	}
	switch e.Status {
	case StatusErrorSize:
		return "data packet size incorrect"
	case StatusErrorUnsupported:
		return "unsupported configuration attempted"
	case StatusErrorPixelCount:
		return "too many pixels specified for device"
	case StatusErrorBadCmd:
		return "unsupported protocol command, check your device version"
	case StatusReboot:
		return "device requested a second reboot"
	}
	return "unknown error occurred"
}

// Is matches another *ProtocolError with the same status.
func (e *ProtocolError) Is(target error) bool {
	t, ok := target.(*ProtocolError)
	if !ok {
		return false
	}
	return t.Status == e.Status && t.NoResponse == e.NoResponse
}
