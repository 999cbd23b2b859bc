package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/johnquangdev/idea-hub/internal/domain/events"
)

const (
	sendBuffer     = 64
	maxMessageSize = 4096
)

// Message is the envelope of every websocket frame in both directions
type Message struct {
	Type  string      `json:"type"`
	Topic string      `json:"topic,omitempty"`
	Data  interface{} `json:"data,omitempty"`
}

// Client message types
const (
	ActionSubscribe   = "subscribe"
	ActionUnsubscribe = "unsubscribe"
	ActionPing        = "ping"
)

// Subscriber identifies the account behind a connection
type Subscriber struct {
	UserID  uuid.UUID
	IsAdmin bool
}

// AuthorizeFunc decides whether a subscriber may follow a topic
type AuthorizeFunc func(ctx context.Context, sub Subscriber, topic string) bool

// Backplane fans events out across API instances
type Backplane interface {
	Publish(ctx context.Context, data []byte) error
	// Subscribe streams published payloads until ctx is done
	Subscribe(ctx context.Context) (<-chan []byte, error)
}

// Options tune the hub
type Options struct {
	WriteTimeout   time.Duration
	PingInterval   time.Duration
	AllowedOrigins []string
}

// Hub keeps websocket clients and routes events to their subscriptions.
// Without a backplane events are delivered in-process only.
type Hub struct {
	logger    *zap.Logger
	opts      Options
	backplane Backplane
	authorize AuthorizeFunc
	upgrader  websocket.Upgrader

	mu      sync.RWMutex
	clients map[*client]struct{}
}

// NewHub creates a hub; backplane and authorize may be nil
func NewHub(logger *zap.Logger, opts Options, backplane Backplane, authorize AuthorizeFunc) *Hub {
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 10 * time.Second
	}
	if opts.PingInterval <= 0 {
		opts.PingInterval = 30 * time.Second
	}
	if authorize == nil {
		authorize = func(context.Context, Subscriber, string) bool { return true }
	}

	h := &Hub{
		logger:    logger,
		opts:      opts,
		backplane: backplane,
		authorize: authorize,
		clients:   make(map[*client]struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func (h *Hub) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(h.opts.AllowedOrigins) == 0 {
		return true
	}
	for _, allowed := range h.opts.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// Publish sends an event to every matching subscription, through the backplane when configured
func (h *Hub) Publish(ctx context.Context, event events.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("❌ Failed to encode event", zap.String("type", string(event.Type)), zap.Error(err))
		return
	}

	if h.backplane == nil {
		h.deliver(event.Topic, data)
		return
	}

	if err := h.backplane.Publish(ctx, data); err != nil {
		// keep local clients current even when the broker is down
		h.logger.Warn("⚠️ Backplane publish failed, delivering locally",
			zap.String("topic", event.Topic),
			zap.Error(err),
		)
		h.deliver(event.Topic, data)
	}
}

// Run consumes the backplane until ctx is done. It returns immediately without one.
func (h *Hub) Run(ctx context.Context) error {
	if h.backplane == nil {
		<-ctx.Done()
		h.closeAll()
		return nil
	}

	stream, err := h.backplane.Subscribe(ctx)
	if err != nil {
		return err
	}

	h.logger.Info("🚀 Realtime hub listening on backplane")
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return nil
		case data, ok := <-stream:
			if !ok {
				h.closeAll()
				return nil
			}
			var event events.Event
			if err := json.Unmarshal(data, &event); err != nil {
				h.logger.Warn("⚠️ Dropping malformed backplane message", zap.Error(err))
				continue
			}
			h.deliver(event.Topic, data)
		}
	}
}

// deliver writes an encoded event to local clients subscribed to topic
func (h *Hub) deliver(topic string, event []byte) {
	frame, err := json.Marshal(Message{Type: "event", Topic: topic, Data: json.RawMessage(event)})
	if err != nil {
		return
	}

	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		if c.isSubscribed(topic) {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if !c.enqueue(frame) {
			h.logger.Warn("⚠️ Client too slow, disconnecting", zap.String("user_id", c.sub.UserID.String()))
			h.unregister(c)
		}
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeWS upgrades the request and serves the connection until it closes
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, sub Subscriber) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &client{
		hub:    h,
		conn:   conn,
		sub:    sub,
		send:   make(chan []byte, sendBuffer),
		topics: make(map[string]bool),
	}
	h.register(c)

	h.logger.Info("🔌 Realtime client connected",
		zap.String("user_id", sub.UserID.String()),
		zap.Int("clients", h.ClientCount()),
	)

	c.sendMessage(Message{Type: "connected"})

	go c.writePump()
	c.readPump(r.Context())
	return nil
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()

	if ok {
		c.close()
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[*client]struct{})
	h.mu.Unlock()

	for c := range clients {
		c.close()
	}
}
