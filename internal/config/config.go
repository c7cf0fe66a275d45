package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Matrix struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Serpentine bool `yaml:"serpentine"`
	Rotation   int  `yaml:"rotation"`
	YFlip      bool `yaml:"y_flip"`
}

type Serial struct {
	// Type is a chipset name, e.g. WS2812B.
	Type             string `yaml:"type"`
	// Dev empty discovers the port by HardwareID.
	Dev              string `yaml:"dev"`
	HardwareID       string `yaml:"hardware_id"`
	SPISpeedMHz      int    `yaml:"spi_speed_mhz"`
	DeviceID         *int   `yaml:"device_id,omitempty"`
	RestartTimeoutMs int    `yaml:"restart_timeout_ms"`
}

type SPI struct {
	Dev     string `yaml:"dev"`      // e.g. /dev/spidev0.0
	SpeedHz int    `yaml:"speed_hz"` // e.g. 2500000
}

// Power is the optional current limiter. Zero values disable it.
type Power struct {
	ChannelMA float64 `yaml:"channel_ma"`
	BudgetMA  float64 `yaml:"budget_ma"`
	WhiteCap  int     `yaml:"white_cap"`
}

type Sim struct {
	Addr string `yaml:"addr"`
}

type Config struct {
	// Driver is one of serial, sim, spi, console, null.
	Driver     string  `yaml:"driver"`
	ColorOrder string  `yaml:"color_order"`
	Gamma      float64 `yaml:"gamma"`
	// Brightness 0..255 is applied by drivers with hardware brightness.
	Brightness int     `yaml:"brightness"`
	FPS        int     `yaml:"fps"`
	Font       string  `yaml:"font"`

	Matrix Matrix `yaml:"matrix"`
	Serial Serial `yaml:"serial,omitempty"`
	SPI    SPI    `yaml:"spi,omitempty"`
	Sim    Sim    `yaml:"sim,omitempty"`
	Power  Power  `yaml:"power,omitempty"`
}

// Default is a 16x16 serpentine matrix on the simulator.
func Default() *Config {
	return &Config{
		Driver:     "sim",
		ColorOrder: "RGB",
		Gamma:      1,
		Brightness: 255,
		FPS:        30,
		Font:       "5x7",
		Matrix:     Matrix{Width: 16, Height: 16, Serpentine: true},
		Serial: Serial{
			Type:             "WS2812B",
			HardwareID:       "1D50:60AB",
			SPISpeedMHz:      2,
			RestartTimeoutMs: 3000,
		},
		SPI: SPI{Dev: "/dev/spidev0.0", SpeedHz: 2500000},
		Sim: Sim{Addr: ":1337"},
	}
}

// Load reads path over Default, so missing keys keep their defaults.
func Load(path string) (*Config, error) {
	c := Default()
	if err := LoadInto(path, c); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadInto reads path over c. Keys absent from the file leave c untouched,
// so values set from flags survive unless the file names them.
func LoadInto(path string, c *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, c)
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
