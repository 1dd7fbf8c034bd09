package ipc

import (
	"log/slog"
	"net"
	"sync"
)

// Handler processes a received envelope. Return nil to send no reply.
type Handler func(env Envelope) (*Envelope, error)

// Transport moves whole envelopes. Reads happen on one goroutine; writes
// are serialised by Connection.
type Transport interface {
	Read() (Envelope, error)
	Write(Envelope) error
	Close() error
}

// StreamTransport frames envelopes over a byte stream such as a unix socket.
type StreamTransport struct {
	conn net.Conn
}

func NewStreamTransport(conn net.Conn) *StreamTransport {
	return &StreamTransport{conn: conn}
}

func (t *StreamTransport) Read() (Envelope, error)  { return ReadEnvelope(t.conn) }
func (t *StreamTransport) Write(env Envelope) error { return WriteEnvelope(t.conn, env) }
func (t *StreamTransport) Close() error             { return t.conn.Close() }

// Connection is one shell session. Handlers run on the read loop; Send may
// be called from any goroutine.
type Connection struct {
	transport Transport
	handlers  map[string]Handler
	writeMu   sync.Mutex
	closeOnce sync.Once
	Player    string
}

func NewConnection(t Transport, handlers map[string]Handler) *Connection {
	if handlers == nil {
		handlers = make(map[string]Handler)
	}
	return &Connection{
		transport: t,
		handlers:  handlers,
	}
}

func (c *Connection) RegisterHandler(msgType string, handler Handler) {
	c.handlers[msgType] = handler
}

func (c *Connection) Send(msgType string, data any) error {
	env, err := NewEnvelope(msgType, data)
	if err != nil {
		return err
	}
	return c.Write(env)
}

// Write sends a prepared envelope.
func (c *Connection) Write(env Envelope) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.transport.Write(env)
}

// Close shuts the transport down, which ends ReadLoop.
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() { err = c.transport.Close() })
	return err
}

// ReadLoop blocks until the connection closes or errors. It owns the
// connection's lifetime.
func (c *Connection) ReadLoop() {
	defer c.Close()

	for {
		env, err := c.transport.Read()
		if err != nil {
			slog.Info("connection read ended", "player", c.Player, "error", err)
			return
		}

		handler, ok := c.handlers[env.Type]
		if !ok {
			slog.Warn("no handler for message type", "type", env.Type)
			continue
		}

		resp, err := handler(env)
		if err != nil {
			slog.Error("handler error", "type", env.Type, "error", err)
			continue
		}

		if resp != nil {
			if err := c.Write(*resp); err != nil {
				slog.Error("failed to send response", "type", resp.Type, "error", err)
				return
			}
			slog.Debug("sent response", "type", resp.Type, "player", c.Player)
		}
	}
}
