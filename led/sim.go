package led

import (
	"github.com/coreman2200/arcpixel/internal/ws"
	"github.com/coreman2200/arcpixel/layout"
)

// DefaultSimAddr is where the visualiser connects by default.
const DefaultSimAddr = ":1337"

type SimConfig struct {
	Addr string
	// Positions overrides the positions reported by the pixel source.
	Positions []layout.Position
	Hub       ws.Options
	Options
}

// Sim streams frames to browser visualisers. Hubs are shared through the
// cache, so several drivers may publish on the same address.
type Sim struct {
	Base
	cfg   SimConfig
	cache *ws.Cache
	hub   *ws.Hub
}

func NewSim(cache *ws.Cache, cfg SimConfig) *Sim {
	if cfg.Addr == "" {
		cfg.Addr = DefaultSimAddr
	}
	return &Sim{Base: NewBase(cfg.Options), cfg: cfg, cache: cache}
}

func (d *Sim) Setup(src Source) error {
	if err := d.Base.Setup(src); err != nil {
		return err
	}
	hub, err := d.cache.Get(d.cfg.Addr, d.cfg.Hub)
	if err != nil {
		return err
	}
	d.hub = hub
	pos := d.cfg.Positions
	if pos == nil {
		pos = src.Positions()
	}
	hub.SetPositions(pos)
	return nil
}

// Hub is the server backing the driver, nil before Setup.
func (d *Sim) Hub() *ws.Hub { return d.hub }

func (d *Sim) Update(rgb []byte) error {
	if d.hub == nil {
		return errNotSetup
	}
	d.hub.Broadcast(d.Fix(rgb))
	return nil
}

// Close detaches the driver. The hub keeps serving other drivers and
// connected visualisers until the cache owner calls CloseAll.
func (d *Sim) Close() error {
	d.hub = nil
	return nil
}
