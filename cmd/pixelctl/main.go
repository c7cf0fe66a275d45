package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/arcpixel/font"
	"github.com/coreman2200/arcpixel/internal/config"
	"github.com/coreman2200/arcpixel/internal/patterns"
	"github.com/coreman2200/arcpixel/matrix"
	"github.com/coreman2200/arcpixel/model"
)

const usage = `usage: pixelctl [flags] <command> [args]

commands:
  demo              cycle through the drawing demo (default)
  test <pattern>    run a test pattern: index_sweep, rgb_channels, row_sweep, rainbow, demo
  text <message>    scroll a message across the matrix
  devices           list serial controllers
  getid <dev>       read a controller's device ID
  setid <dev> <id>  store a controller's device ID
  version <dev>     read a controller's firmware version
`

func main() {
	// ---- Flags (config.yaml overrides them) ----
	var (
		width      = flag.Int("width", 16, "matrix width")
		height     = flag.Int("height", 16, "matrix height")
		serpentine = flag.Bool("serpentine", true, "alternate rows are wired in reverse")
		rotation   = flag.Int("rotation", 0, "rotation in degrees (0, 90, 180, 270)")
		yFlip      = flag.Bool("y-flip", false, "flip the matrix along Y")
		driver     = flag.String("driver", "sim", "driver: serial | sim | spi | console | null")
		colorOrder = flag.String("color", "RGB", "LED color order (e.g. GRB, RGB)")
		fps        = flag.Int("fps", 30, "target frames per second")
		brightness = flag.Int("brightness", 255, "hardware brightness 0..255")
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		hardwareID = flag.String("hardware-id", "1D50:60AB", "serial controller USB VID:PID pattern")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg := config.Default()
	cfg.Matrix = config.Matrix{Width: *width, Height: *height, Serpentine: *serpentine, Rotation: *rotation, YFlip: *yFlip}
	cfg.Driver, cfg.ColorOrder, cfg.FPS, cfg.Brightness = *driver, *colorOrder, *fps, *brightness
	cfg.Serial.HardwareID = *hardwareID
	if err := loadConfig(*configPath, cfg); err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with flags")
	}

	e := newEnv()
	defer e.Close()

	if err := run(e, cfg, flag.Args()); err != nil {
		log.Error().Err(err).Msg("pixelctl")
		e.Close()
		os.Exit(1)
	}
}

// loadConfig applies the file over the flag-built cfg. A missing file is not
// an error. On a parse error cfg keeps its flag values.
func loadConfig(path string, cfg *config.Config) error {
	next := *cfg
	if err := config.LoadInto(path, &next); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	*cfg = next
	return nil
}

func run(e *env, cfg *config.Config, args []string) error {
	cmd := "demo"
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}
	switch cmd {
	case "devices":
		return listDevices(e, cfg.Serial.HardwareID)
	case "getid", "version":
		if len(args) != 1 {
			return fmt.Errorf("%s needs a device path", cmd)
		}
		var v int
		var err error
		if cmd == "getid" {
			v, err = e.serial.GetDeviceID(args[0])
		} else {
			v, err = e.serial.GetDeviceVersion(args[0])
		}
		if err != nil {
			return err
		}
		fmt.Println(v)
		return nil
	case "setid":
		if len(args) != 2 {
			return errors.New("setid needs a device path and an ID")
		}
		id, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("device ID: %w", err)
		}
		if err := e.serial.SetDeviceID(args[0], id); err != nil {
			return err
		}
		log.Info().Str("dev", args[0]).Int("device_id", id).Msg("device ID stored")
		return nil
	case "demo":
		return animate(e, cfg, patterns.NewRunner(patterns.Plan{Kind: patterns.Demo, Cycles: 1 << 30}))
	case "test":
		if len(args) != 1 {
			return fmt.Errorf("test needs a pattern: %v", patterns.Kinds())
		}
		k, err := patterns.ParseKind(args[0])
		if err != nil {
			return err
		}
		return animate(e, cfg, patterns.NewRunner(patterns.Plan{Kind: k}))
	case "text":
		if len(args) == 0 {
			return errors.New("text needs a message")
		}
		f, err := font.Lookup(cfg.Font)
		if err != nil {
			return err
		}
		return animate(e, cfg, &patterns.Marquee{
			Text: args[0],
			Opts: matrix.TextOpts{Color: model.White, Font: f},
		})
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func listDevices(e *env, hardwareID string) error {
	devs, err := e.serial.Find(hardwareID)
	if err != nil {
		return err
	}
	if len(devs) == 0 {
		fmt.Println("no devices found")
		return nil
	}
	for _, d := range devs {
		fmt.Printf("%s\tid=%d\tversion=%d\n", d.Port, d.ID, d.Version)
	}
	return nil
}

func newMatrix(e *env, cfg *config.Config) (*matrix.Matrix, error) {
	drv, err := buildDriver(e, cfg)
	if err != nil {
		return nil, err
	}
	mx, err := matrix.New(drv, matrix.Config{
		Width:      cfg.Matrix.Width,
		Height:     cfg.Matrix.Height,
		Serpentine: cfg.Matrix.Serpentine,
		Rotation:   cfg.Matrix.Rotation,
		YFlip:      cfg.Matrix.YFlip,
	})
	if err != nil {
		drv.Close()
		return nil, err
	}
	if cfg.Brightness >= 0 && cfg.Brightness < 255 {
		ok, err := mx.SetBrightness(uint8(cfg.Brightness))
		if err != nil {
			mx.Close()
			return nil, err
		}
		if !ok {
			log.Debug().Str("driver", cfg.Driver).Msg("driver has no hardware brightness")
		}
	}
	log.Info().Str("driver", cfg.Driver).Int("width", mx.Width()).Int("height", mx.Height()).Msg("matrix ready")
	return mx, nil
}

// animate runs s at cfg.FPS until it finishes or the process is signalled.
func animate(e *env, cfg *config.Config, s patterns.Stepper) error {
	mx, err := newMatrix(e, cfg)
	if err != nil {
		return err
	}
	defer mx.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return (&patterns.Looper{FPS: cfg.FPS}).Run(ctx, mx, s)
}
