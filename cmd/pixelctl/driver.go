package main

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/physic"

	"github.com/coreman2200/arcpixel/internal/config"
	"github.com/coreman2200/arcpixel/internal/ws"
	"github.com/coreman2200/arcpixel/led"
	"github.com/coreman2200/arcpixel/led/serial"
)

// env holds the process-wide registries drivers share.
type env struct {
	serial *serial.Registry
	sims   *ws.Cache
}

func newEnv() *env {
	return &env{
		serial: serial.NewRegistry(serial.System, serial.System),
		sims:   ws.NewCache(),
	}
}

func (e *env) Close() error { return e.sims.CloseAll() }

func driverOptions(cfg *config.Config) (led.Options, error) {
	order, err := led.ParseChannelOrder(cfg.ColorOrder)
	if err != nil {
		return led.Options{}, err
	}
	opts := led.Options{Order: order, Gamma: led.NewGamma(cfg.Gamma)}
	if p := cfg.Power; p.BudgetMA > 0 || p.WhiteCap > 0 {
		opts.Power = &led.PowerLimit{ChannelMA: p.ChannelMA, BudgetMA: p.BudgetMA, WhiteCap: p.WhiteCap}
	}
	return opts, nil
}

// buildDriver returns an unopened driver; the matrix runs Setup.
func buildDriver(e *env, cfg *config.Config) (led.Driver, error) {
	opts, err := driverOptions(cfg)
	if err != nil {
		return nil, err
	}
	switch cfg.Driver {
	case "serial":
		chip, err := serial.ParseChipset(cfg.Serial.Type)
		if err != nil {
			return nil, err
		}
		return serial.New(e.serial, serial.Config{
			Type:           chip,
			Device:         cfg.Serial.Dev,
			HardwareID:     cfg.Serial.HardwareID,
			SPISpeed:       cfg.Serial.SPISpeedMHz,
			DeviceID:       cfg.Serial.DeviceID,
			RestartTimeout: time.Duration(cfg.Serial.RestartTimeoutMs) * time.Millisecond,
			Options:        opts,
		})
	case "sim":
		return led.NewSim(e.sims, led.SimConfig{Addr: cfg.Sim.Addr, Options: opts}), nil
	case "spi":
		return led.OpenSPI(led.SPIConfig{
			Dev:     cfg.SPI.Dev,
			Freq:    physic.Frequency(cfg.SPI.SpeedHz) * physic.Hertz,
			Options: opts,
		})
	case "console":
		return led.NewConsole(opts), nil
	case "null":
		return led.NewNull(opts), nil
	}
	return nil, fmt.Errorf("unknown driver %q (want serial, sim, spi, console or null)", cfg.Driver)
}
