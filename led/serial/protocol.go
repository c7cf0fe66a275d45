// Package serial drives LED controllers attached over a USB serial link
// using a small length-prefixed command protocol.
package serial

import "fmt"

// Command is the first byte of every packet.
type Command byte

const (
	CmdSetupData  Command = 1
	CmdPixelData  Command = 2
	CmdBrightness Command = 3
	CmdGetID      Command = 4
	CmdSetID      Command = 5
	CmdGetVersion Command = 6
	CmdSync       Command = 7
)

// Status is the single byte a controller answers with.
type Status byte

const (
	StatusError            Status = 0
	StatusErrorSize        Status = 1
	StatusErrorUnsupported Status = 2
	StatusErrorPixelCount  Status = 3
	StatusErrorBadCmd      Status = 4
	StatusReboot           Status = 42
	StatusSuccess          Status = 255
)

func (s Status) String() string {
	switch s {
	case StatusError:
		return "ERROR"
	case StatusErrorSize:
		return "ERROR_SIZE"
	case StatusErrorUnsupported:
		return "ERROR_UNSUPPORTED"
	case StatusErrorPixelCount:
		return "ERROR_PIXEL_COUNT"
	case StatusErrorBadCmd:
		return "ERROR_BAD_CMD"
	case StatusReboot:
		return "REBOOT"
	case StatusSuccess:
		return "SUCCESS"
	}
	return fmt.Sprintf("STATUS(%d)", byte(s))
}

// Chipset identifies the LED controller IC family.
type Chipset byte

const (
	// Generic is for controllers that only support one chipset.
	Generic    Chipset = 0
	LPD8806    Chipset = 1
	WS2801     Chipset = 2
	WS2811     Chipset = 3
	WS2811_400 Chipset = 4
	TM1809     Chipset = 5
	TM1803     Chipset = 6
	UCS1903    Chipset = 7
	SM16716    Chipset = 8
	APA102     Chipset = 9
	LPD1886    Chipset = 10
	P9813      Chipset = 11

	WS2812   = WS2811
	WS2812B  = WS2811
	NeoPixel = WS2811
	APA104   = WS2811
	TM1804   = TM1809
)

var chipsetNames = map[string]Chipset{
	"GENERIC":    Generic,
	"LPD8806":    LPD8806,
	"WS2801":     WS2801,
	"WS2811":     WS2811,
	"WS2812":     WS2812,
	"WS2812B":    WS2812B,
	"NEOPIXEL":   NeoPixel,
	"APA104":     APA104,
	"WS2811_400": WS2811_400,
	"TM1809":     TM1809,
	"TM1804":     TM1804,
	"TM1803":     TM1803,
	"UCS1903":    UCS1903,
	"SM16716":    SM16716,
	"APA102":     APA102,
	"LPD1886":    LPD1886,
	"P9813":      P9813,
}

// ParseChipset accepts the upper-case chipset names, aliases included.
func ParseChipset(name string) (Chipset, error) {
	c, ok := chipsetNames[name]
	if !ok {
		return Generic, &ConfigError{Field: "type", Msg: fmt.Sprintf("unknown chipset %q", name)}
	}
	return c, nil
}

// IsSPI reports whether the chipset is clocked, making the SPI speed byte
// meaningful.
func (c Chipset) IsSPI() bool {
	switch c {
	case LPD8806, WS2801, SM16716, APA102, P9813:
		return true
	}
	return false
}

// Padding is the number of trailing filler bytes the chipset needs after
// count pixels. Firmware version 2 and later pads APA102 itself.
func (c Chipset) Padding(count, version int) int {
	if c == APA102 && version < 2 {
		return (count/64 + 1) * 3
	}
	return 0
}

// SPISpeed clamps a requested SPI speed in MHz. Out of range values and non
// SPI chipsets get 1.
func (c Chipset) SPISpeed(mhz int) byte {
	if mhz < 1 || mhz > 24 || !c.IsSPI() {
		return 1
	}
	return byte(mhz)
}

// header frames a payload of size bytes.
func header(cmd Command, size int) []byte {
	return []byte{byte(cmd), byte(size & 0xFF), byte(size >> 8)}
}

// SetupPacket configures chipset type, byte count and SPI speed.
func SetupPacket(c Chipset, byteCount int, spiSpeed byte) []byte {
	p := header(CmdSetupData, 4)
	return append(p, byte(c), byte(byteCount&0xFF), byte(byteCount>>8), spiSpeed)
}

// PixelPacket carries one frame followed by pad zero bytes.
func PixelPacket(buf []byte, pad int) []byte {
	p := make([]byte, 3, 3+len(buf)+pad)
	copy(p, header(CmdPixelData, len(buf)+pad))
	p = append(p, buf...)
	return append(p, make([]byte, pad)...)
}

func BrightnessPacket(level uint8) []byte {
	return append(header(CmdBrightness, 1), level)
}

func SetIDPacket(id uint8) []byte {
	return append(header(CmdSetID, 1), id)
}
