// services/realtime_channel.go
package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

// Live channel event names used by the platform socket.
const (
	ChannelEventNotification      = "notification"
	ChannelEventLeaderboardUpdate = "leaderboard_update"
)

// Leaderboard update payload tags.
const (
	LeaderboardUpdateStats      = "stats_update"
	LeaderboardUpdateVisibility = "visibility_change"
)

// ChannelNotification is the display payload of a "notification" event.
type ChannelNotification struct {
	Text string `json:"text"`
	Type string `json:"type,omitempty"`
}

// LeaderboardUpdate is the payload of a "leaderboard_update" event.
type LeaderboardUpdate struct {
	Type string `json:"type"`
}

type channelFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Channel is the operator's push connection to the platform socket. It is
// best-effort: CRUD correctness never depends on it. After an unexpected
// disconnect it retries a fixed number of times with a fixed delay; a manual
// Close stops any retrying.
type Channel struct {
	url string

	mu       sync.Mutex
	conn     *websocket.Conn
	handlers map[string]func(json.RawMessage)
	closed   bool

	maxRetries int
	retryDelay time.Duration
}

// NewChannel builds a channel keyed by the operator's identity. http(s)
// schemes are rewritten to ws(s) so the configured API base can be reused.
func NewChannel(socketURL, operatorID string) (*Channel, error) {
	u, err := url.Parse(socketURL)
	if err != nil {
		return nil, fmt.Errorf("invalid socket URL %q: %w", socketURL, err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	q := u.Query()
	q.Set("userId", operatorID)
	u.RawQuery = q.Encode()

	return &Channel{
		url:        u.String(),
		handlers:   make(map[string]func(json.RawMessage)),
		maxRetries: 5,
		retryDelay: time.Second,
	}, nil
}

// On registers a handler for a named event. Register handlers before calling
// Connect; unknown events are ignored.
func (ch *Channel) On(event string, fn func(json.RawMessage)) {
	ch.mu.Lock()
	ch.handlers[event] = fn
	ch.mu.Unlock()
}

// Connect dials the socket and starts the read loop.
func (ch *Channel) Connect(ctx context.Context) error {
	conn, err := ch.dial(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect live channel: %w", err)
	}
	log.Printf("🔌 [WS] Connected to %s", ch.url)
	go ch.readLoop(ctx, conn)
	return nil
}

func (ch *Channel) dial(ctx context.Context) (*websocket.Conn, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, ch.url, nil)
	if err != nil {
		return nil, err
	}
	ch.mu.Lock()
	ch.conn = conn
	ch.mu.Unlock()
	return conn, nil
}

func (ch *Channel) readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		var frame channelFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if ch.isClosed() || ctx.Err() != nil {
				return
			}
			log.Printf("⚠️  [WS] Connection lost: %v", err)
			conn = ch.reconnect(ctx)
			if conn == nil {
				return
			}
			continue
		}
		ch.dispatch(frame)
	}
}

// reconnect retries up to maxRetries with a fixed delay between attempts.
func (ch *Channel) reconnect(ctx context.Context) *websocket.Conn {
	for attempt := 1; attempt <= ch.maxRetries; attempt++ {
		select {
		case <-time.After(ch.retryDelay):
		case <-ctx.Done():
			return nil
		}
		if ch.isClosed() {
			return nil
		}
		conn, err := ch.dial(ctx)
		if err == nil {
			log.Printf("🔌 [WS] Reconnected on attempt %d", attempt)
			return conn
		}
		log.Printf("⚠️  [WS] Reconnect attempt %d/%d failed: %v", attempt, ch.maxRetries, err)
	}
	log.Printf("❌ [WS] Giving up after %d reconnect attempts", ch.maxRetries)
	return nil
}

func (ch *Channel) dispatch(frame channelFrame) {
	ch.mu.Lock()
	fn := ch.handlers[frame.Event]
	ch.mu.Unlock()
	if fn != nil {
		fn(frame.Data)
	}
}

// Emit sends a named event upstream. Fails when the channel is not connected.
func (ch *Channel) Emit(event string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode %q payload: %w", event, err)
	}

	ch.mu.Lock()
	defer ch.mu.Unlock()
	if ch.conn == nil || ch.closed {
		return fmt.Errorf("live channel is not connected")
	}
	return ch.conn.WriteJSON(channelFrame{Event: event, Data: payload})
}

// Close tears the connection down without retrying.
func (ch *Channel) Close() {
	ch.mu.Lock()
	ch.closed = true
	conn := ch.conn
	ch.conn = nil
	ch.mu.Unlock()
	if conn != nil {
		_ = conn.Close()
	}
}

func (ch *Channel) isClosed() bool {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.closed
}
