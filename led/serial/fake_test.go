package serial

import (
	"bytes"
	"errors"
	"time"
)

// fakeBus answers packets written to any port it opened.
type fakeBus struct {
	opens    []string
	timeouts []time.Duration
	ports    []*fakePort
	openErr  error
	infos    []PortInfo
	listed   int

	// answer returns the bytes the controller replies with.
	answer func(p *fakePort, pkt []byte) []byte
}

func (b *fakeBus) Open(dev string, timeout time.Duration) (Port, error) {
	if b.openErr != nil {
		return nil, b.openErr
	}
	p := &fakePort{bus: b, name: dev, open: len(b.opens)}
	b.opens = append(b.opens, dev)
	b.timeouts = append(b.timeouts, timeout)
	b.ports = append(b.ports, p)
	return p, nil
}

func (b *fakeBus) Ports() ([]PortInfo, error) {
	b.listed++
	return b.infos, nil
}

type fakePort struct {
	bus    *fakeBus
	name   string
	open   int
	in     bytes.Buffer
	writes [][]byte
	resets int
	closed bool

	writeErr error
}

func (p *fakePort) Write(b []byte) (int, error) {
	if p.closed {
		return 0, errors.New("port closed")
	}
	if p.writeErr != nil {
		return 0, p.writeErr
	}
	p.writes = append(p.writes, append([]byte(nil), b...))
	if p.bus.answer != nil {
		p.in.Write(p.bus.answer(p, b))
	}
	return len(b), nil
}

func (p *fakePort) Read(b []byte) (int, error) {
	if p.in.Len() == 0 {
		return 0, nil
	}
	return p.in.Read(b)
}

func (p *fakePort) ResetInputBuffer() error {
	p.resets++
	p.in.Reset()
	return nil
}

func (p *fakePort) Close() error {
	p.closed = true
	return nil
}

// setupAnswers replies to the n-th setup packet with statuses[n], repeating
// the last one, and acknowledges everything else.
func setupAnswers(statuses ...Status) func(*fakePort, []byte) []byte {
	n := 0
	return func(p *fakePort, pkt []byte) []byte {
		if Command(pkt[0]) != CmdSetupData {
			return []byte{byte(StatusSuccess)}
		}
		st := statuses[len(statuses)-1]
		if n < len(statuses) {
			st = statuses[n]
		}
		n++
		return []byte{byte(st)}
	}
}
