package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/johnquangdev/idea-hub/internal/domain/events"
)

func dialHub(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.ServeWS(w, r, Subscriber{UserID: uuid.New()})
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	assert.Equal(t, "connected", readMessage(t, conn).Type)
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func subscribe(t *testing.T, conn *websocket.Conn, topic string) Message {
	t.Helper()
	require.NoError(t, conn.WriteJSON(Message{Type: ActionSubscribe, Topic: topic}))
	return readMessage(t, conn)
}

func decodeEvent(t *testing.T, msg Message) events.Event {
	t.Helper()
	raw, err := json.Marshal(msg.Data)
	require.NoError(t, err)
	var ev events.Event
	require.NoError(t, json.Unmarshal(raw, &ev))
	return ev
}

func TestHub_DeliversOnlySubscribedTopics(t *testing.T) {
	hub := NewHub(zap.NewNop(), Options{}, nil, nil)
	conn := dialHub(t, hub)

	watched, other := uuid.New(), uuid.New()
	assert.Equal(t, "subscribed", subscribe(t, conn, events.IdeaTopic(watched)).Type)

	hub.Publish(context.Background(), events.ForIdea(events.VoteCast, other, 2, nil))
	hub.Publish(context.Background(), events.ForIdea(events.CommentCreated, watched, 3, nil))

	msg := readMessage(t, conn)
	require.Equal(t, "event", msg.Type)
	ev := decodeEvent(t, msg)
	assert.Equal(t, events.CommentCreated, ev.Type)
	assert.Equal(t, watched, ev.ID)
	assert.Equal(t, 3, ev.Version)

	// the event for the other idea was never queued, so the next frame is the pong
	require.NoError(t, conn.WriteJSON(Message{Type: ActionPing}))
	assert.Equal(t, "pong", readMessage(t, conn).Type)
}

func TestHub_Wildcard(t *testing.T) {
	hub := NewHub(zap.NewNop(), Options{}, nil, nil)
	conn := dialHub(t, hub)

	assert.Equal(t, "subscribed", subscribe(t, conn, "meeting:*").Type)

	id := uuid.New()
	hub.Publish(context.Background(), events.ForMeeting(events.AgendaChanged, id, 1, nil))
	assert.Equal(t, id, decodeEvent(t, readMessage(t, conn)).ID)
}

func TestHub_RejectsForbiddenAndUnknownTopics(t *testing.T) {
	hub := NewHub(zap.NewNop(), Options{}, nil, func(_ context.Context, sub Subscriber, topic string) bool {
		return !strings.HasPrefix(topic, "meeting:")
	})
	conn := dialHub(t, hub)

	msg := subscribe(t, conn, events.MeetingTopic(uuid.New()))
	assert.Equal(t, "error", msg.Type)
	assert.Equal(t, "forbidden", msg.Data)

	msg = subscribe(t, conn, "room:1")
	assert.Equal(t, "error", msg.Type)
	assert.Equal(t, "unknown topic", msg.Data)
}

type chanBackplane struct {
	ch chan []byte
}

func (b *chanBackplane) Publish(_ context.Context, data []byte) error {
	b.ch <- data
	return nil
}

func (b *chanBackplane) Subscribe(context.Context) (<-chan []byte, error) {
	return b.ch, nil
}

func TestHub_DeliversThroughBackplane(t *testing.T) {
	bp := &chanBackplane{ch: make(chan []byte, 4)}
	hub := NewHub(zap.NewNop(), Options{}, bp, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = hub.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	conn := dialHub(t, hub)
	id := uuid.New()
	subscribe(t, conn, events.IdeaTopic(id))

	hub.Publish(context.Background(), events.ForIdea(events.DecisionRecorded, id, 7, map[string]string{"status": "approved"}))

	ev := decodeEvent(t, readMessage(t, conn))
	assert.Equal(t, events.DecisionRecorded, ev.Type)
	assert.Equal(t, 7, ev.Version)
}

func TestHub_CheckOrigin(t *testing.T) {
	hub := NewHub(zap.NewNop(), Options{AllowedOrigins: []string{"https://app.example.com"}}, nil, nil)

	r := httptest.NewRequest(http.MethodGet, "/ws", nil)
	assert.True(t, hub.checkOrigin(r))

	r.Header.Set("Origin", "https://app.example.com")
	assert.True(t, hub.checkOrigin(r))

	r.Header.Set("Origin", "https://evil.example.com")
	assert.False(t, hub.checkOrigin(r))
}
