package devserver

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"go.trai.ch/ngbuild/internal/core/ports"
)

// sendBuffer is the number of messages queued per connection before further
// broadcasts skip it.
const sendBuffer = 4

type message struct {
	Action string `json:"action"`
}

var reloadMessage, _ = json.Marshal(message{Action: "reload"})

// socket is the writing side of a websocket connection.
type socket interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type client struct {
	conn      socket
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newClient(conn socket) *client {
	return &client{conn: conn, send: make(chan []byte, sendBuffer), done: make(chan struct{})}
}

// writeLoop writes queued messages until send is closed or a write fails. done
// is closed once it returns.
func (c *client) writeLoop() {
	defer close(c.done)
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

func (c *client) close() {
	c.closeOnce.Do(func() { close(c.send) })
}

// Hub tracks live reload connections.
type Hub struct {
	logger ports.Logger

	mu      sync.RWMutex
	clients map[*client]struct{}
}

// NewHub creates an empty Hub.
func NewHub(logger ports.Logger) *Hub {
	return &Hub{logger: logger, clients: make(map[*client]struct{})}
}

// Serve registers conn and blocks until the browser disconnects.
func (h *Hub) Serve(conn *websocket.Conn) {
	// The wrapper is recycled once Serve returns, so the writer holds the
	// underlying connection.
	c := newClient(conn.Conn)
	h.add(c)
	defer h.remove(c)

	go c.writeLoop()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("live reload connection closed: " + err.Error())
			}
			return
		}
	}
}

// Reload asks every connected browser to reload the page and returns the
// number of connections the message was queued for. Connections whose queue is
// full are skipped.
func (h *Hub) Reload() int {
	return h.broadcast(reloadMessage)
}

func (h *Hub) broadcast(msg []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	sent := 0
	for c := range h.clients {
		select {
		case c.send <- msg:
			sent++
		default:
		}
	}
	return sent
}

// Len returns the number of connected browsers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every browser.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.close()
		_ = c.conn.Close()
		delete(h.clients, c)
	}
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

// remove unregisters c and waits for its writer, so the connection is not
// written to after Serve returns.
func (h *Hub) remove(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	c.close()
	h.mu.Unlock()

	<-c.done
}
