// Package ws serves pixel frames to browser visualisers over websockets.
package ws

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/arcpixel/layout"
)

// Message kinds, first byte of every binary message.
const (
	MsgPositions byte = 0x00
	MsgFrame     byte = 0x02
)

const defaultWriteTimeout = 200 * time.Millisecond

// Options configure a Hub.
type Options struct {
	// WriteTimeout bounds every client write. Defaults to 200ms.
	WriteTimeout time.Duration
}

func (o Options) writeTimeout() time.Duration {
	if o.WriteTimeout <= 0 {
		return defaultWriteTimeout
	}
	return o.WriteTimeout
}

// Hub is a websocket server broadcasting frames to every connected client.
type Hub struct {
	opts  Options
	ln    net.Listener
	srv   *http.Server
	start time.Time

	mu        sync.RWMutex
	clients   map[*websocket.Conn]bool
	positions []byte
	frameID   uint64
	count     int
	closed    bool

	// gorilla allows one concurrent writer per connection
	wmu sync.Mutex
}

// Listen binds addr and starts serving in the background.
func Listen(addr string, opts Options) (*Hub, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return nil, fmt.Errorf("simulator address %s already in use: %w", addr, err)
		}
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	h := &Hub{
		opts:      opts,
		ln:        ln,
		start:     time.Now(),
		clients:   map[*websocket.Conn]bool{},
		positions: []byte{MsgPositions},
	}
	h.srv = &http.Server{Handler: h.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := h.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Str("addr", h.Addr()).Msg("simulator server stopped")
		}
	}()
	log.Info().Str("addr", h.Addr()).Msg("simulator listening")
	return h, nil
}

// Addr is the bound address, useful when listening on port 0.
func (h *Hub) Addr() string { return h.ln.Addr().String() }

func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", h.handleWS)
	mux.HandleFunc("/health", h.handleHealth)
	return mux
}

func (h *Hub) handleWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		log.Debug().Err(err).Msg("websocket upgrade")
		return
	}
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[conn] = true
	pos := h.positions
	h.mu.Unlock()
	log.Info().Str("remote", r.RemoteAddr).Msg("simulator client connected")

	h.wmu.Lock()
	h.write(conn, pos)
	h.wmu.Unlock()

	go func() {
		defer func() {
			h.mu.Lock()
			delete(h.clients, conn)
			h.mu.Unlock()
			conn.Close()
			log.Info().Str("remote", r.RemoteAddr).Msg("simulator client disconnected")
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *Hub) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	resp := map[string]any{
		"frame_id": h.frameID,
		"uptime_s": time.Since(h.start).Seconds(),
		"count":    h.count,
		"clients":  len(h.clients),
	}
	h.mu.RUnlock()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// EncodePositions packs positions as little-endian int16 x, y, z triples
// behind a MsgPositions byte.
func EncodePositions(pos []layout.Position) []byte {
	b := make([]byte, 1, 1+6*len(pos))
	b[0] = MsgPositions
	for _, p := range pos {
		b = binary.LittleEndian.AppendUint16(b, uint16(int16(p.X)))
		b = binary.LittleEndian.AppendUint16(b, uint16(int16(p.Y)))
		b = binary.LittleEndian.AppendUint16(b, uint16(int16(p.Z)))
	}
	return b
}

// SetPositions stores the pixel positions and pushes them to every client.
func (h *Hub) SetPositions(pos []layout.Position) {
	msg := EncodePositions(pos)
	h.mu.Lock()
	h.positions = msg
	h.count = len(pos)
	h.mu.Unlock()
	h.broadcast(msg)
}

// Broadcast sends one RGB frame.
func (h *Hub) Broadcast(rgb []byte) {
	msg := make([]byte, 1+len(rgb))
	msg[0] = MsgFrame
	copy(msg[1:], rgb)
	h.mu.Lock()
	h.frameID++
	h.mu.Unlock()
	h.broadcast(msg)
}

func (h *Hub) broadcast(msg []byte) {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for c := range h.clients {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	h.wmu.Lock()
	defer h.wmu.Unlock()
	for _, c := range conns {
		h.write(c, msg)
	}
}

func (h *Hub) write(c *websocket.Conn, msg []byte) {
	c.SetWriteDeadline(time.Now().Add(h.opts.writeTimeout()))
	if err := c.WriteMessage(websocket.BinaryMessage, msg); err != nil {
		log.Debug().Err(err).Msg("write frame")
	}
}

// FrameID is the number of frames broadcast so far.
func (h *Hub) FrameID() uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.frameID
}

// Close stops the server and drops every client.
func (h *Hub) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	conns := h.clients
	h.clients = map[*websocket.Conn]bool{}
	h.mu.Unlock()

	for c := range conns {
		c.Close()
	}
	return h.srv.Close()
}
