package chathub

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/githubzohaib/Forest-MGT/internal/models"
	apperrors "github.com/githubzohaib/Forest-MGT/pkg/errors"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// InboundHandler consumes a submit payload read off the wire. The bound
// identity comes from the connection, never from the payload. A returned
// error is acked back to the submitting client as an ErrorFrame.
type InboundHandler func(req models.SubmitRequest) error

// WebSocketConn implements Connection over a gorilla WebSocket session.
type WebSocketConn struct {
	id       string
	userID   string
	Conn     *websocket.Conn
	Registry *Registry

	onMessage InboundHandler
	send      chan models.Message
	fail      chan models.ErrorFrame
	done      chan struct{}
	closeOnce sync.Once
}

func NewWebSocketConn(userID string, conn *websocket.Conn, registry *Registry, onMessage InboundHandler) *WebSocketConn {
	return &WebSocketConn{
		id:        uuid.New().String(),
		userID:    userID,
		Conn:      conn,
		Registry:  registry,
		onMessage: onMessage,
		send:      make(chan models.Message, 256),
		fail:      make(chan models.ErrorFrame, 16),
		done:      make(chan struct{}),
	}
}

func (c *WebSocketConn) ID() string                  { return c.id }
func (c *WebSocketConn) UserID() string              { return c.userID }
func (c *WebSocketConn) Send() chan<- models.Message { return c.send }

// Run starts the read and write pumps.
func (c *WebSocketConn) Run() {
	go c.writePump()
	go c.readPump()
}

// Close signals the write pump to stop. The send channel is never closed,
// so a router holding a stale snapshot of this connection cannot panic on
// push; its sends just land in a buffer nobody drains. Idempotent:
// disconnect signals can arrive more than once.
func (c *WebSocketConn) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

func (c *WebSocketConn) readPump() {
	defer func() {
		c.Registry.Unregister(c)
		c.Close()
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, payload, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading message: %v", err)
			}
			break
		}

		var req models.SubmitRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			log.Printf("Error decoding JSON from user %s: %v", c.userID, err)
			continue // skip the malformed frame
		}

		if err := c.onMessage(req); err != nil {
			frame := models.ErrorFrame{
				Code:  string(apperrors.CodeOf(err)),
				Error: err.Error(),
			}
			select {
			case c.fail <- frame:
			default: // a client flooding rejected submits loses acks, not the connection
			}
		}
	}
}

// writePump drains the send channel into the WebSocket and keeps the
// connection alive with pings.
func (c *WebSocketConn) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case <-c.done:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case message := <-c.send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			data, err := json.Marshal(message)
			if err != nil {
				log.Printf("Error encoding JSON for user %s: %v", c.userID, err)
				continue
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

			// Flush whatever else is already queued.
			n := len(c.send)
			for i := 0; i < n; i++ {
				next := <-c.send
				extra, err := json.Marshal(next)
				if err != nil {
					continue
				}
				if err := c.Conn.WriteMessage(websocket.TextMessage, extra); err != nil {
					return
				}
			}

		case frame := <-c.fail:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			data, err := json.Marshal(frame)
			if err != nil {
				continue
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
