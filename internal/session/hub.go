package session

import (
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/katalvlaran/pathviz/grid"
	"github.com/katalvlaran/pathviz/playback"
)

const (
	sendBuffer   = 1024
	writeTimeout = 10 * time.Second
)

// Message is one server-to-client websocket payload.
type Message struct {
	Type   string           `json:"type"` // "snapshot" | "frame" | "status" | "error"
	Frame  *playback.Frame  `json:"frame,omitempty"`
	Grid   *GridView        `json:"grid,omitempty"`
	Status *playback.Status `json:"status,omitempty"`
	Error  string           `json:"error,omitempty"`
}

// Command is one client-to-server websocket payload.
type Command struct {
	Type      string      `json:"type"` // "toggle" | "solve" | "maze" | "clear"
	Point     *grid.Point `json:"point,omitempty"`
	Algorithm string      `json:"algorithm,omitempty"`
}

// GridView is the wire form of a grid: one string per Y in the layout
// alphabet of grid.Parse.
type GridView struct {
	Rows   int        `json:"rows"`
	Cols   int        `json:"cols"`
	Start  grid.Point `json:"start"`
	End    grid.Point `json:"end"`
	Layout []string   `json:"layout"`
}

// ViewOf renders g for the wire.
func ViewOf(g *grid.Grid) GridView {
	return GridView{
		Rows:   g.Rows(),
		Cols:   g.Cols(),
		Start:  g.Start(),
		End:    g.End(),
		Layout: strings.Split(g.String(), "\n"),
	}
}

// Hub fans frames out to websocket clients. It is the session's
// playback.Renderer, so Draw never blocks: a client whose buffer is full is
// dropped.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
	log     zerolog.Logger
}

type client struct {
	conn *websocket.Conn
	send chan Message
}

// NewHub returns an empty hub.
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{clients: make(map[*client]struct{}), log: logger}
}

// Draw implements playback.Renderer.
func (h *Hub) Draw(f playback.Frame) {
	h.Broadcast(Message{Type: "frame", Frame: &f})
}

// Broadcast queues m for every client.
func (h *Hub) Broadcast(m Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- m:
		default:
			h.log.Warn().Str("remote", c.conn.RemoteAddr().String()).Msg("slow websocket client dropped")
			h.removeLocked(c)
		}
	}
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Serve registers conn, sends first, and reads commands into handle until the
// connection fails. It blocks for the life of the connection.
func (h *Hub) Serve(conn *websocket.Conn, first Message, handle func(Command)) {
	c := &client{conn: conn, send: make(chan Message, sendBuffer)}
	c.send <- first

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.Close()
		return
	}
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go c.writeLoop()

	defer func() {
		h.mu.Lock()
		h.removeLocked(c)
		h.mu.Unlock()
	}()
	for {
		var cmd Command
		if err := conn.ReadJSON(&cmd); err != nil {
			return
		}
		if handle != nil {
			handle(cmd)
		}
	}
}

// Close disconnects every client and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		h.removeLocked(c)
	}
}

// removeLocked ends c's writer; the writer closes the connection.
func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

func (c *client) writeLoop() {
	defer c.conn.Close()
	for m := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteJSON(m); err != nil {
			// Closing fails the reader, which unregisters c and closes send.
			_ = c.conn.Close()
			for range c.send {
			}
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
