package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/avvvet/cardgame-services/internal/comm"
	"github.com/avvvet/cardgame-services/internal/gamesvc/models"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
	sendBuffer     = 256
)

// Client is one websocket connection. All writes to the socket go through the
// send queue drained by WritePump.
type Client struct {
	ID   string
	conn *websocket.Conn
	send chan []byte

	mu        sync.Mutex
	closed    bool
	sessionID int64        // room the client is in, 0 when none
	user      *models.User // identity used for the current room
}

func NewClient(id string, conn *websocket.Conn) *Client {
	return &Client{
		ID:   id,
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
}

// Send queues msg for delivery. It reports false when the client is closed or
// too slow to keep up, in which case the message is dropped.
func (c *Client) Send(msg *comm.WSMessage) bool {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Errorf("unable to marshal %s message for socket %s: %v", msg.Type, c.ID, err)
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		log.Warnf("send buffer full for socket %s, dropping %s", c.ID, msg.Type)
		return false
	}
}

// Outbox exposes queued frames.
func (c *Client) Outbox() <-chan []byte {
	return c.send
}

// Room returns the session the client currently belongs to and the identity it
// joined with.
func (c *Client) Room() (int64, *models.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID, c.user
}

func (c *Client) setRoom(sessionID int64, user *models.User) {
	c.mu.Lock()
	c.sessionID = sessionID
	c.user = user
	c.mu.Unlock()
}

// Close stops the send queue. WritePump then sends a close frame and exits.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// PrepareRead applies read limits and keepalive deadlines to the connection.
func (c *Client) PrepareRead() {
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
}

// WritePump pumps queued messages to the websocket and keeps it alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Debugf("write to socket %s failed: %v", c.ID, err)
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
