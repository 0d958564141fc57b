package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"recruitdesk_backend/internal/auth"
	"recruitdesk_backend/internal/logger"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 4096
)

// Client is one websocket connection. ID is the socket id the channel
// authorization endpoint binds its grants to.
type Client struct {
	ID     string
	UserID string

	conn *websocket.Conn
	hub  *Hub
	tm   *auth.TokenManager

	// sendMu guards send against the hub closing it while readPump is
	// replying to a subscribe. All sends and the close go through it.
	sendMu sync.Mutex
	send   chan Event
	closed bool
}

// incomingMessage is what clients send: subscribe/unsubscribe requests.
// Subscriptions carry the grant issued by POST /api/v1/realtime/auth.
type incomingMessage struct {
	Action  string `json:"action"`
	Channel string `json:"channel"`
	Auth    string `json:"auth,omitempty"`
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, msgBytes, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("realtime: read error", "socket_id", c.ID, "error", err)
			}
			return
		}

		var msg incomingMessage
		if err := json.Unmarshal(msgBytes, &msg); err != nil {
			logger.Warn("realtime: malformed client message", "socket_id", c.ID, "error", err)
			continue
		}
		c.handleMessage(msg)
	}
}

func (c *Client) handleMessage(msg incomingMessage) {
	switch msg.Action {
	case "subscribe":
		// The grant must cover this exact socket and channel.
		channel, err := c.tm.ParseChannelToken(msg.Auth, c.ID)
		if err != nil || channel != msg.Channel {
			logger.Warn("realtime: subscribe rejected", "socket_id", c.ID, "channel", msg.Channel)
			c.enqueue(Event{Channel: msg.Channel, Event: "subscription:error", Data: map[string]string{"reason": "unauthorized"}})
			return
		}
		c.hub.subscribe(c, msg.Channel)
		c.enqueue(Event{Channel: msg.Channel, Event: "subscription:succeeded"})
	case "unsubscribe":
		c.hub.unsubscribe(c, msg.Channel)
	default:
		logger.Debug("realtime: unknown action", "socket_id", c.ID, "action", msg.Action)
	}
}

// enqueue is a non-blocking send to this client's own queue. Safe to call
// after the hub has dropped the client; the event is then discarded.
func (c *Client) enqueue(event Event) {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- event:
	default:
	}
}

// closeSend shuts the queue exactly once, waking writePump. Idempotent.
func (c *Client) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
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
