package serial

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/arcpixel/led"
	"github.com/coreman2200/arcpixel/model"
)

func newDriver(t *testing.T, bus *fakeBus, cfg Config) (*Serial, *[]time.Duration) {
	t.Helper()
	d, err := New(NewRegistry(bus, bus), cfg)
	require.NoError(t, err)
	var slept []time.Duration
	d.sleep = func(dur time.Duration) { slept = append(slept, dur) }
	return d, &slept
}

func TestSetupSuccess(t *testing.T) {
	bus := &fakeBus{answer: setupAnswers(StatusSuccess)}
	d, slept := newDriver(t, bus, Config{Type: WS2811, Device: "/dev/ttyACM0"})

	_, err := led.NewStrip(d, 10)
	require.NoError(t, err)
	assert.Equal(t, Ready, d.State())
	assert.Empty(t, *slept)
	require.Len(t, bus.ports, 1)
	assert.Equal(t, []byte{1, 4, 0, 3, 30, 0, 1}, bus.ports[0].writes[0])
	assert.Equal(t, DefaultReadTimeout, bus.timeouts[0])
}

func TestSetupRebootThenSuccess(t *testing.T) {
	bus := &fakeBus{answer: setupAnswers(StatusReboot, StatusSuccess)}
	d, slept := newDriver(t, bus, Config{Type: WS2811, Device: "/dev/ttyACM0", RestartTimeout: time.Second})

	_, err := led.NewStrip(d, 4)
	require.NoError(t, err)
	assert.Equal(t, Ready, d.State())
	assert.Equal(t, []string{"/dev/ttyACM0", "/dev/ttyACM0"}, bus.opens)
	assert.True(t, bus.ports[0].closed)
	assert.False(t, bus.ports[1].closed)
	assert.Equal(t, []time.Duration{time.Second}, *slept)
}

func TestSetupDoubleReboot(t *testing.T) {
	bus := &fakeBus{answer: setupAnswers(StatusReboot)}
	d, _ := newDriver(t, bus, Config{Type: WS2811, Device: "/dev/ttyACM0"})

	_, err := led.NewStrip(d, 4)
	var perr *ProtocolError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, StatusReboot, perr.Status)
	assert.Len(t, bus.opens, 2)
	assert.Equal(t, Disconnected, d.State())
	assert.True(t, bus.ports[1].closed)
}

func TestSetupPixelCountError(t *testing.T) {
	bus := &fakeBus{answer: setupAnswers(StatusErrorPixelCount)}
	d, slept := newDriver(t, bus, Config{Type: WS2811, Device: "/dev/ttyACM0"})

	_, err := led.NewStrip(d, 5000)
	require.Error(t, err)
	assert.ErrorIs(t, err, &ProtocolError{Status: StatusErrorPixelCount})
	assert.Contains(t, err.Error(), "too many pixels")
	assert.NotEqual(t, Ready, d.State())
	assert.Len(t, bus.opens, 1)
	assert.True(t, bus.ports[0].closed)
	assert.Empty(t, *slept)

	assert.ErrorIs(t, d.Update(make([]byte, 3)), ErrNotReady)
}

func TestSetupNoResponse(t *testing.T) {
	bus := &fakeBus{}
	d, _ := newDriver(t, bus, Config{Type: WS2811, Device: "/dev/ttyACM0"})

	_, err := led.NewStrip(d, 1)
	var perr *ProtocolError
	require.ErrorAs(t, err, &perr)
	assert.True(t, perr.NoResponse)
	assert.Equal(t, Disconnected, d.State())
}

func TestSetupOpenFailureListsPorts(t *testing.T) {
	bus := &fakeBus{
		openErr: errors.New("permission denied"),
		infos: []PortInfo{
			{Name: "/dev/ttyACM0", VID: "1d50", PID: "60ab", Serial: "1"},
			{Name: "/dev/ttyS0"},
		},
	}
	d, _ := newDriver(t, bus, Config{Type: WS2811, Device: "/dev/ttyUSB9"})

	_, err := led.NewStrip(d, 1)
	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "open", terr.Op)
	assert.Equal(t, []string{"/dev/ttyACM0"}, terr.Ports)
	assert.Equal(t, Disconnected, d.State())
}

func TestUpdateSendsPaddedFrame(t *testing.T) {
	bus := &fakeBus{answer: setupAnswers(StatusSuccess)}
	d, _ := newDriver(t, bus, Config{Type: APA102, Device: "/dev/ttyACM0", SPISpeed: 12, Options: led.Options{Order: led.GRB}})

	s, err := led.NewStrip(d, 2)
	require.NoError(t, err)
	port := bus.ports[0]
	assert.Equal(t, []byte{1, 4, 0, 9, 9, 0, 12}, port.writes[0])

	require.NoError(t, s.Set(0, model.Color{R: 1, G: 2, B: 3}))
	require.NoError(t, s.Update())
	assert.Equal(t, []byte{2, 9, 0, 2, 1, 3, 0, 0, 0, 0, 0, 0}, port.writes[1])
	assert.Equal(t, 1, port.resets)
}

func TestUpdateErrorStatus(t *testing.T) {
	bus := &fakeBus{}
	bus.answer = func(p *fakePort, pkt []byte) []byte {
		if Command(pkt[0]) == CmdPixelData {
			return []byte{byte(StatusErrorSize)}
		}
		return []byte{byte(StatusSuccess)}
	}
	d, _ := newDriver(t, bus, Config{Type: WS2811, Device: "/dev/ttyACM0"})
	s, err := led.NewStrip(d, 1)
	require.NoError(t, err)

	err = s.Update()
	assert.ErrorIs(t, err, &ProtocolError{Status: StatusErrorSize})
	assert.Equal(t, Ready, d.State())
}

func TestUpdateWriteFailureDisconnects(t *testing.T) {
	bus := &fakeBus{answer: setupAnswers(StatusSuccess)}
	d, _ := newDriver(t, bus, Config{Type: WS2811, Device: "/dev/ttyACM0"})
	s, err := led.NewStrip(d, 1)
	require.NoError(t, err)

	bus.ports[0].writeErr = errors.New("device vanished")
	var terr *TransportError
	require.ErrorAs(t, s.Update(), &terr)
	assert.Equal(t, "write", terr.Op)
	assert.Equal(t, Disconnected, d.State())
	assert.True(t, bus.ports[0].closed)
}

func TestMasterBrightness(t *testing.T) {
	bus := &fakeBus{answer: setupAnswers(StatusSuccess)}
	d, _ := newDriver(t, bus, Config{Type: WS2811, Device: "/dev/ttyACM0"})
	_, err := led.NewStrip(d, 1)
	require.NoError(t, err)

	ok, err := d.SetMasterBrightness(64)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte{3, 1, 0, 64}, bus.ports[0].writes[1])
}

func TestCloseIsIdempotent(t *testing.T) {
	bus := &fakeBus{answer: setupAnswers(StatusSuccess)}
	d, _ := newDriver(t, bus, Config{Type: WS2811, Device: "/dev/ttyACM0"})
	_, err := led.NewStrip(d, 1)
	require.NoError(t, err)

	require.NoError(t, d.Close())
	require.NoError(t, d.Close())
	assert.True(t, bus.ports[0].closed)
	assert.Equal(t, Disconnected, d.State())
	ok, err := d.SetMasterBrightness(1)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestSetupTwiceReleasesFirstPort(t *testing.T) {
	bus := &fakeBus{answer: setupAnswers(StatusSuccess)}
	d, _ := newDriver(t, bus, Config{Type: WS2811, Device: "/dev/ttyACM0"})
	s, err := led.NewStrip(d, 2)
	require.NoError(t, err)

	require.NoError(t, d.Setup(s))
	require.Len(t, bus.ports, 2)
	assert.True(t, bus.ports[0].closed)
	assert.False(t, bus.ports[1].closed)
	assert.Equal(t, Ready, d.State())

	require.NoError(t, s.Update())
	assert.Len(t, bus.ports[1].writes, 2)
	assert.Len(t, bus.ports[0].writes, 1)
}

func TestNewRequiresRegistry(t *testing.T) {
	_, err := New(nil, Config{Type: WS2811, Device: "/dev/ttyACM0"})
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "registry", cerr.Field)
}

func TestConfigValidation(t *testing.T) {
	bad := 300
	_, err := New(NewRegistry(&fakeBus{}, &fakeBus{}), Config{DeviceID: &bad})
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "device_id", cerr.Field)

	_, err = New(NewRegistry(&fakeBus{}, &fakeBus{}), Config{Type: 12})
	assert.ErrorAs(t, err, &cerr)

	_, err = New(NewRegistry(&fakeBus{}, &fakeBus{}), Config{HardwareID: "("})
	assert.ErrorAs(t, err, &cerr)
}
