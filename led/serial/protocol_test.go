package serial

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChipsetAliases(t *testing.T) {
	assert.Equal(t, WS2811, WS2812B)
	assert.Equal(t, WS2811, NeoPixel)
	assert.Equal(t, TM1809, TM1804)

	c, err := ParseChipset("NEOPIXEL")
	require.NoError(t, err)
	assert.Equal(t, Chipset(3), c)

	_, err = ParseChipset("WS9999")
	var cerr *ConfigError
	assert.ErrorAs(t, err, &cerr)
}

func TestSPISpeedClamp(t *testing.T) {
	cases := []struct {
		chip Chipset
		mhz  int
		want byte
	}{
		{APA102, 12, 12},
		{APA102, 0, 1},
		{APA102, 25, 1},
		{LPD8806, 24, 24},
		{WS2811, 12, 1},
		{Generic, 2, 1},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.chip.SPISpeed(c.mhz), "%d @ %d", c.chip, c.mhz)
	}
}

func TestPadding(t *testing.T) {
	assert.Equal(t, 3, APA102.Padding(10, 0))
	assert.Equal(t, 6, APA102.Padding(64, 1))
	assert.Equal(t, 6, APA102.Padding(100, 0))
	assert.Equal(t, 0, APA102.Padding(100, 2))
	assert.Equal(t, 0, WS2811.Padding(100, 0))
}

func TestPackets(t *testing.T) {
	assert.Equal(t, []byte{1, 4, 0, 9, 0x32, 0x01, 12}, SetupPacket(APA102, 306, 12))
	assert.Equal(t, []byte{3, 1, 0, 128}, BrightnessPacket(128))
	assert.Equal(t, []byte{5, 1, 0, 7}, SetIDPacket(7))
	assert.Equal(t, []byte{2, 5, 0, 1, 2, 3, 0, 0}, PixelPacket([]byte{1, 2, 3}, 2))
	assert.Equal(t, []byte{2, 0x2C, 0x01}, PixelPacket(make([]byte, 300), 0)[:3])
}

func TestProtocolErrorMessages(t *testing.T) {
	cases := map[Status]string{
		StatusErrorSize:        "data packet size incorrect",
		StatusErrorUnsupported: "unsupported configuration attempted",
		StatusErrorPixelCount:  "too many pixels specified for device",
		StatusErrorBadCmd:      "unsupported protocol command, check your device version",
		StatusError:            "unknown error occurred",
	}
	for st, msg := range cases {
		e := &ProtocolError{Op: "setup", Status: st}
		assert.Equal(t, msg, e.Message())
		assert.Equal(t, "serial setup: "+msg, e.Error())
	}
	assert.Contains(t, (&ProtocolError{NoResponse: true}).Message(), "communicating")
}

func TestProtocolErrorIs(t *testing.T) {
	err := error(&ProtocolError{Op: "update", Status: StatusErrorSize})
	assert.True(t, errors.Is(err, &ProtocolError{Status: StatusErrorSize}))
	assert.False(t, errors.Is(err, &ProtocolError{Status: StatusErrorBadCmd}))
}

func TestTransportErrorListsPorts(t *testing.T) {
	cause := errors.New("no such file")
	e := &TransportError{Op: "open", Device: "/dev/ttyX", Ports: []string{"/dev/ttyACM0", "/dev/ttyACM1"}, Err: cause}
	assert.ErrorIs(t, e, cause)
	assert.Contains(t, e.Error(), "/dev/ttyACM0, /dev/ttyACM1")

	e.Ports = nil
	assert.Contains(t, e.Error(), "no serial ports available")
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "REBOOT", StatusReboot.String())
	assert.Equal(t, "STATUS(99)", Status(99).String())
	assert.Equal(t, "ready", Ready.String())
}
