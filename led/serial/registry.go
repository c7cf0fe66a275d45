package serial

import (
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultHardwareID matches AllPixel style controllers.
const DefaultHardwareID = "1D50:60AB"

// Device is a discovered controller.
type Device struct {
	Port    string
	ID      int
	Version int
}

// Registry discovers controllers and caches the result per hardware ID until
// Reset. It is owned by the process entry point and shared by drivers.
type Registry struct {
	opener Opener
	enum   Enumerator

	mu    sync.Mutex
	found map[string][]Device
}

func NewRegistry(opener Opener, enum Enumerator) *Registry {
	return &Registry{opener: opener, enum: enum, found: map[string][]Device{}}
}

func matcher(hardwareID string) (*regexp.Regexp, error) {
	if hardwareID == "" {
		hardwareID = DefaultHardwareID
	}
	re, err := regexp.Compile("(?i)" + hardwareID)
	if err != nil {
		return nil, &ConfigError{Field: "hardware_id", Msg: err.Error()}
	}
	return re, nil
}

// Ports lists the names of ports matching hardwareID without talking to them.
func (r *Registry) Ports(hardwareID string) ([]string, error) {
	re, err := matcher(hardwareID)
	if err != nil {
		return nil, err
	}
	all, err := r.enum.Ports()
	if err != nil {
		return nil, err
	}
	var names []string
	for _, p := range all {
		if re.MatchString(p.Name) || re.MatchString(p.HWID()) {
			names = append(names, p.Name)
		}
	}
	return names, nil
}

// Find probes every matching port for its ID and firmware version. Ports
// that do not answer the ID request are skipped. A non-empty result is
// cached.
func (r *Registry) Find(hardwareID string) ([]Device, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if devs, ok := r.found[hardwareID]; ok {
		return devs, nil
	}
	names, err := r.Ports(hardwareID)
	if err != nil {
		return nil, err
	}
	var devs []Device
	for _, name := range names {
		id, err := r.GetDeviceID(name)
		if err != nil {
			log.Error().Err(err).Str("dev", name).Msg("problem connecting to serial device")
			continue
		}
		ver, err := r.GetDeviceVersion(name)
		if err != nil {
			log.Warn().Err(err).Str("dev", name).Msg("unable to read firmware version")
		}
		devs = append(devs, Device{Port: name, ID: id, Version: ver})
	}
	if len(devs) > 0 {
		r.found[hardwareID] = devs
	}
	return devs, nil
}

// Reset drops every cached discovery.
func (r *Registry) Reset() {
	r.mu.Lock()
	r.found = map[string][]Device{}
	r.mu.Unlock()
}

// Select picks the device with the given ID, or the first one when id is nil.
func (r *Registry) Select(hardwareID string, id *int) (Device, error) {
	devs, err := r.Find(hardwareID)
	if err != nil {
		return Device{}, err
	}
	if id == nil {
		if len(devs) == 0 {
			return Device{}, fmt.Errorf("no devices matching %q", hardwareID)
		}
		return devs[0], nil
	}
	for _, d := range devs {
		if d.ID == *id {
			return d, nil
		}
	}
	return Device{}, fmt.Errorf("unable to find device with ID: %d", *id)
}

func (r *Registry) exchange(dev string, timeout time.Duration, packet []byte, read int) ([]byte, error) {
	p, err := r.opener.Open(dev, timeout)
	if err != nil {
		return nil, &TransportError{Op: "open", Device: dev, Err: err}
	}
	defer p.Close()
	if _, err := p.Write(packet); err != nil {
		return nil, &TransportError{Op: "write", Device: dev, Err: err}
	}
	resp := make([]byte, 0, read)
	var b [1]byte
	for len(resp) < read {
		n, err := p.Read(b[:])
		if err != nil {
			return resp, &TransportError{Op: "read", Device: dev, Err: err}
		}
		if n == 0 {
			break
		}
		resp = append(resp, b[0])
	}
	return resp, nil
}

// GetDeviceID asks the controller on dev for its ID.
func (r *Registry) GetDeviceID(dev string) (int, error) {
	resp, err := r.exchange(dev, DefaultReadTimeout, header(CmdGetID, 0), 1)
	if err != nil {
		return -1, err
	}
	if len(resp) == 0 {
		return -1, &ProtocolError{Op: "get id", NoResponse: true}
	}
	return int(resp[0]), nil
}

// SetDeviceID stores a new ID on the controller on dev.
func (r *Registry) SetDeviceID(dev string, id int) error {
	if id < 0 || id > 255 {
		return &ConfigError{Field: "device_id", Msg: fmt.Sprintf("%d is not an unsigned byte", id)}
	}
	resp, err := r.exchange(dev, DefaultReadTimeout, SetIDPacket(uint8(id)), 1)
	if err != nil {
		return err
	}
	if len(resp) == 0 {
		return &ProtocolError{Op: "set id", NoResponse: true}
	}
	if st := Status(resp[0]); st != StatusSuccess {
		return &ProtocolError{Op: "set id", Status: st}
	}
	return nil
}

// GetDeviceVersion reads the firmware version. Controllers predating the
// command do not answer and report version 0.
func (r *Registry) GetDeviceVersion(dev string) (int, error) {
	resp, err := r.exchange(dev, VersionReadTimeout, header(CmdGetVersion, 0), 2)
	if err != nil {
		return 0, err
	}
	if len(resp) < 2 || Status(resp[0]) != StatusSuccess {
		return 0, nil
	}
	return int(resp[1]), nil
}
