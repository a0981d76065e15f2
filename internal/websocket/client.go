package websocket

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

// Connection timing. The ping period must stay below the pong wait or
// the read deadline expires before the peer gets a chance to answer.
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512

	sendBufferSize = 256
)

// Client is one admin dashboard connection. The hub never touches the
// underlying conn directly; it talks to the client through the buffered
// send channel, and the two pump goroutines own all socket I/O.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	logger *slog.Logger
}

func NewClient(hub *Hub, conn *websocket.Conn, logger *slog.Logger) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		logger: logger,
	}
}

// ReadPump consumes inbound frames until the connection drops, routing
// subscribe and unsubscribe requests to the hub. It unregisters the
// client on exit so the hub can reclaim the send channel.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) && c.logger != nil {
				c.logger.Error("websocket read error", slog.Any("error", err))
			}
			return
		}
		c.handleMessage(message)
	}
}

// WritePump drains the send channel onto the socket and keeps the
// connection alive with periodic pings. A closed send channel means the
// hub evicted this client, so a close frame is sent and the pump exits.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				c.conn.SetWriteDeadline(time.Now().Add(writeWait))
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.writeText(message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) writeText(message []byte) error {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	w, err := c.conn.NextWriter(websocket.TextMessage)
	if err != nil {
		return err
	}
	if _, err := w.Write(message); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func (c *Client) handleMessage(data []byte) {
	var msg WSMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.sendError("invalid message format")
		return
	}

	switch msg.Type {
	case MessageTypeSubscribe, MessageTypeUnsubscribe:
		if msg.ThreadID == "" {
			c.sendError("thread_id is required")
			return
		}
		if msg.Type == MessageTypeSubscribe {
			c.hub.Subscribe(c, msg.ThreadID)
		} else {
			c.hub.Unsubscribe(c, msg.ThreadID)
		}

	default:
		c.sendError("unknown message type")
	}
}

// sendError pushes an error frame without blocking. If the client's
// buffer is full the frame is dropped rather than stalling the caller.
func (c *Client) sendError(errMsg string) {
	data, err := json.Marshal(WSMessage{Type: MessageTypeError, Error: errMsg})
	if err != nil {
		return
	}

	select {
	case c.send <- data:
	default:
	}
}
