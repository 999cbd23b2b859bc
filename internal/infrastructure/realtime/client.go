package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/johnquangdev/idea-hub/internal/domain/events"
)

type client struct {
	hub  *Hub
	conn *websocket.Conn
	sub  Subscriber
	send chan []byte

	mu     sync.RWMutex
	topics map[string]bool

	closeOnce sync.Once
}

func (c *client) isSubscribed(topic string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for sub := range c.topics {
		if events.Matches(sub, topic) {
			return true
		}
	}
	return false
}

// enqueue reports false when the send buffer is full or the client is closed
func (c *client) enqueue(frame []byte) (ok bool) {
	defer func() {
		// send on a closed channel means the client is already gone
		if recover() != nil {
			ok = false
		}
	}()

	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

func (c *client) sendMessage(msg Message) {
	frame, err := json.Marshal(msg)
	if err != nil {
		return
	}
	c.enqueue(frame)
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

// readPump handles subscription frames until the connection fails
func (c *client) readPump(ctx context.Context) {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
		c.hub.logger.Info("🔌 Realtime client disconnected", zap.String("user_id", c.sub.UserID.String()))
	}()

	pongWait := c.hub.opts.PingInterval * 2
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Warn("⚠️ Realtime read error", zap.Error(err))
			}
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))

		switch msg.Type {
		case ActionSubscribe:
			if _, _, ok := events.ParseTopic(msg.Topic); !ok {
				c.sendMessage(Message{Type: "error", Topic: msg.Topic, Data: "unknown topic"})
				continue
			}
			if !c.hub.authorize(ctx, c.sub, msg.Topic) {
				c.sendMessage(Message{Type: "error", Topic: msg.Topic, Data: "forbidden"})
				continue
			}
			c.mu.Lock()
			c.topics[msg.Topic] = true
			c.mu.Unlock()
			c.sendMessage(Message{Type: "subscribed", Topic: msg.Topic})

		case ActionUnsubscribe:
			c.mu.Lock()
			delete(c.topics, msg.Topic)
			c.mu.Unlock()
			c.sendMessage(Message{Type: "unsubscribed", Topic: msg.Topic})

		case ActionPing:
			c.sendMessage(Message{Type: "pong"})

		default:
			c.sendMessage(Message{Type: "error", Data: "unknown message type"})
		}
	}
}

// writePump owns all writes to the connection
func (c *client) writePump() {
	ticker := time.NewTicker(c.hub.opts.PingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.hub.opts.WriteTimeout))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.hub.opts.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
