package ipc

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// Client is a connection registered with the hub. Outbound envelopes queue
// on send and a dedicated writer drains them, so one slow shell never
// stalls the others.
type Client struct {
	conn *Connection
	send chan Envelope
}

// Hub fans broadcasts out to every registered connection.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Envelope
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	count      atomic.Int64
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Envelope, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run owns the client set until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		for c := range h.clients {
			close(c.send)
			delete(h.clients, c)
		}
		h.count.Store(0)
		close(h.done)
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.clients[c] = true
			h.count.Store(int64(len(h.clients)))
			slog.Info("client registered", "player", c.conn.Player, "clients", len(h.clients))
		case c := <-h.unregister:
			if h.clients[c] {
				delete(h.clients, c)
				close(c.send)
				h.count.Store(int64(len(h.clients)))
				slog.Info("client unregistered", "player", c.conn.Player, "clients", len(h.clients))
			}
		case env := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- env:
				default:
					slog.Warn("dropping slow client", "player", c.conn.Player)
					close(c.send)
					delete(h.clients, c)
					h.count.Store(int64(len(h.clients)))
				}
			}
		}
	}
}

// Register starts delivering broadcasts to conn. It returns nil once the
// hub has stopped.
func (h *Hub) Register(conn *Connection) *Client {
	c := &Client{conn: conn, send: make(chan Envelope, 256)}
	select {
	case h.register <- c:
	case <-h.done:
		return nil
	}
	go c.writePump()
	return c
}

// Unregister stops delivery to c.
func (h *Hub) Unregister(c *Client) {
	if c == nil {
		return
	}
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Broadcast queues env for every client. It drops the envelope once the
// hub has stopped.
func (h *Hub) Broadcast(env Envelope) {
	select {
	case h.broadcast <- env:
	case <-h.done:
	}
}

// Clients is the number of registered clients.
func (h *Hub) Clients() int { return int(h.count.Load()) }

func (c *Client) writePump() {
	for env := range c.send {
		if err := c.conn.Write(env); err != nil {
			slog.Info("client write failed", "player", c.conn.Player, "error", err)
			c.conn.Close()
			// Keep draining until the hub closes the channel.
			for range c.send {
			}
			return
		}
	}
}
