package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/arcpixel/internal/config"
	"github.com/coreman2200/arcpixel/led"
	"github.com/coreman2200/arcpixel/led/serial"
)

func nullConfig() *config.Config {
	cfg := config.Default()
	cfg.Driver = "null"
	cfg.FPS = 1000
	cfg.Matrix = config.Matrix{Width: 2, Height: 2}
	return cfg
}

func TestBuildDriver(t *testing.T) {
	e := newEnv()
	defer e.Close()

	cfg := nullConfig()
	cfg.ColorOrder = "GRB"
	d, err := buildDriver(e, cfg)
	require.NoError(t, err)
	null, ok := d.(*led.Null)
	require.True(t, ok)
	assert.Equal(t, led.GRB, null.Order())

	cfg.Driver = "console"
	d, err = buildDriver(e, cfg)
	require.NoError(t, err)
	assert.IsType(t, &led.Console{}, d)

	cfg.Driver = "sim"
	d, err = buildDriver(e, cfg)
	require.NoError(t, err)
	assert.IsType(t, &led.Sim{}, d)

	cfg.Driver = "serial"
	d, err = buildDriver(e, cfg)
	require.NoError(t, err)
	assert.IsType(t, &serial.Serial{}, d)

	cfg.Serial.Type = "WS9999"
	_, err = buildDriver(e, cfg)
	assert.Error(t, err)

	cfg.Driver = "dmx"
	_, err = buildDriver(e, cfg)
	assert.ErrorContains(t, err, `unknown driver "dmx"`)
}

func TestBuildDriverBadOrder(t *testing.T) {
	cfg := nullConfig()
	cfg.ColorOrder = "RGBW"
	_, err := buildDriver(newEnv(), cfg)
	assert.Error(t, err)
}

func TestDriverOptionsPower(t *testing.T) {
	cfg := nullConfig()
	opts, err := driverOptions(cfg)
	require.NoError(t, err)
	assert.Nil(t, opts.Power)

	cfg.Power.BudgetMA = 500
	opts, err = driverOptions(cfg)
	require.NoError(t, err)
	require.NotNil(t, opts.Power)
	assert.Equal(t, 500.0, opts.Power.BudgetMA)
}

func TestLoadConfigOverFlags(t *testing.T) {
	dir := t.TempDir()
	cfg := nullConfig()
	cfg.Matrix.Width = 8

	require.NoError(t, loadConfig(filepath.Join(dir, "missing.yaml"), cfg))
	assert.Equal(t, "null", cfg.Driver)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fps: 12\n"), 0644))
	require.NoError(t, loadConfig(path, cfg))
	assert.Equal(t, "null", cfg.Driver)
	assert.Equal(t, 8, cfg.Matrix.Width)
	assert.Equal(t, 12, cfg.FPS)

	require.NoError(t, os.WriteFile(path, []byte("driver: [sim\n"), 0644))
	assert.Error(t, loadConfig(path, cfg))
	assert.Equal(t, "null", cfg.Driver)
	assert.Equal(t, 12, cfg.FPS)
}

func TestRunPattern(t *testing.T) {
	e := newEnv()
	defer e.Close()
	require.NoError(t, run(e, nullConfig(), []string{"test", "index_sweep"}))
	require.NoError(t, run(e, nullConfig(), []string{"text", "hi"}))
}

func TestRunArgs(t *testing.T) {
	e := newEnv()
	defer e.Close()
	cfg := nullConfig()

	assert.ErrorContains(t, run(e, cfg, []string{"blink"}), `unknown command "blink"`)
	assert.Error(t, run(e, cfg, []string{"test"}))
	assert.Error(t, run(e, cfg, []string{"test", "plane_z"}))
	assert.Error(t, run(e, cfg, []string{"text"}))
	assert.Error(t, run(e, cfg, []string{"getid"}))
	assert.Error(t, run(e, cfg, []string{"setid", "/dev/ttyACM0"}))
	assert.Error(t, run(e, cfg, []string{"setid", "/dev/ttyACM0", "x"}))
}
