package ws

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

type cached struct {
	hub  *Hub
	opts Options
}

// Cache shares one Hub per listen address between drivers. The owner closes
// it with CloseAll on shutdown.
type Cache struct {
	mu   sync.Mutex
	hubs map[string]cached
}

func NewCache() *Cache {
	return &Cache{hubs: map[string]cached{}}
}

// Get returns the hub bound to addr, starting one if needed. A cached hub is
// reused even when opts differ.
func (c *Cache) Get(addr string, opts Options) (*Hub, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.hubs[addr]; ok {
		if e.opts != opts {
			log.Warn().Str("addr", addr).Msg("simulator already running with different options, reusing it")
		}
		return e.hub, nil
	}
	h, err := Listen(addr, opts)
	if err != nil {
		return nil, err
	}
	c.hubs[addr] = cached{hub: h, opts: opts}
	return h, nil
}

// Close stops and forgets the hub bound to addr.
func (c *Cache) Close(addr string) error {
	c.mu.Lock()
	e, ok := c.hubs[addr]
	delete(c.hubs, addr)
	c.mu.Unlock()
	if !ok {
		return nil
	}
	return e.hub.Close()
}

func (c *Cache) CloseAll() error {
	c.mu.Lock()
	hubs := c.hubs
	c.hubs = map[string]cached{}
	c.mu.Unlock()

	var errs []error
	for _, e := range hubs {
		if err := e.hub.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Len is the number of running hubs.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.hubs)
}
