package ws

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/calc-climb/internal/multiplayer"
)

// Client is a terminal's connection to a remote coordinator. It satisfies
// the TUI's relay interface.
type Client struct {
	id     multiplayer.SessionID
	conn   *websocket.Conn
	events chan multiplayer.SessionEvent
	send   chan Envelope
	done   chan struct{}
	once   sync.Once
}

// Dial connects to a server's /ws endpoint, e.g. ws://host:8080/ws.
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("ws: dial %s: %w", url, err)
	}

	c := &Client{
		id:     multiplayer.NewSessionID(),
		conn:   conn,
		events: make(chan multiplayer.SessionEvent, eventBuffer),
		send:   make(chan Envelope, eventBuffer),
		done:   make(chan struct{}),
	}
	go c.readPump()
	go c.writePump()
	return c, nil
}

// ID returns a local identifier. The server assigns its own.
func (c *Client) ID() multiplayer.SessionID {
	return c.id
}

// Send queues a message. Messages that cannot be encoded, or that arrive
// after Close, are dropped.
func (c *Client) Send(msg multiplayer.CoordinatorMessage) {
	env, err := EncodeMessage(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- env:
	case <-c.done:
	}
}

// Events returns decoded server events.
func (c *Client) Events() <-chan multiplayer.SessionEvent {
	return c.events
}

// Done closes when the connection ends.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Close ends the connection. Safe to call multiple times.
func (c *Client) Close() {
	c.once.Do(func() {
		close(c.done)
	})
}

func (c *Client) readPump() {
	defer c.Close()

	c.conn.SetReadLimit(maxMessageSize)
	//nolint:errcheck // a failed deadline surfaces on the next read
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPingHandler(func(data string) error {
		//nolint:errcheck // refreshed again by the next ping
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return c.conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(writeWait))
	})

	for {
		var env Envelope
		if err := c.conn.ReadJSON(&env); err != nil {
			return
		}
		evt, err := DecodeEvent(env)
		if err != nil {
			continue
		}
		select {
		case c.events <- evt:
		case <-c.done:
			return
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for {
		select {
		case env := <-c.send:
			//nolint:errcheck // a failed deadline surfaces on the next write
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(env); err != nil {
				c.Close()
				return
			}

		case <-c.done:
			//nolint:errcheck // the server may already be gone
			c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}
