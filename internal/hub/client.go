package hub

import (
	"time"

	"github.com/gorilla/websocket"

	"github.com/beaubranton4/d1-picks/internal/logger"
	"github.com/beaubranton4/d1-picks/pkg/models"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Clients only ping; anything bigger is a protocol violation
	maxMessageSize = 512

	sendBufferSize = 8
)

// Client is one WebSocket subscriber
type Client struct {
	ID   string
	conn *websocket.Conn
	hub  *Hub
	send chan *models.PickSheet
}

// NewClient wraps an upgraded connection
func NewClient(id string, conn *websocket.Conn, h *Hub) *Client {
	return &Client{
		ID:   id,
		conn: conn,
		hub:  h,
		send: make(chan *models.PickSheet, sendBufferSize),
	}
}

// TrySend queues a sheet without blocking; false means the buffer is full
func (c *Client) TrySend(sheet *models.PickSheet) bool {
	select {
	case c.send <- sheet:
		return true
	default:
		return false
	}
}

// ReadPump drains control messages from the peer and unregisters on close.
// The server never expects data frames; reads exist to process pongs and
// detect disconnects.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("client %s read error: %v", c.ID, err)
			}
			return
		}
	}
}

// WritePump delivers queued sheets to the peer and keeps the connection
// alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case sheet, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(sheet); err != nil {
				logger.Debug("client %s write error: %v", c.ID, err)
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
