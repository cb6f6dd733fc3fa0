package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChannelRewritesSchemeAndSetsOperator(t *testing.T) {
	ch, err := NewChannel("https://api.gramx.io/socket", "ada@gramx.io")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ch.url, "wss://api.gramx.io/socket"))
	assert.Contains(t, ch.url, "userId=ada%40gramx.io")

	ch, err = NewChannel("http://localhost:4000", "u1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ch.url, "ws://localhost:4000"))
}

// socketServer upgrades connections and pushes the given frames to each one.
func socketServer(t *testing.T, frames []channelFrame, gotUserID chan<- string) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if gotUserID != nil {
			select {
			case gotUserID <- r.URL.Query().Get("userId"):
			default:
			}
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		for _, frame := range frames {
			if err := conn.WriteJSON(frame); err != nil {
				return
			}
		}
		// Hold the connection open until the client goes away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
}

func TestChannelDispatchesNamedEvents(t *testing.T) {
	note, err := json.Marshal(ChannelNotification{Text: "You earned 50 tokens", Type: "success"})
	require.NoError(t, err)
	update, err := json.Marshal(LeaderboardUpdate{Type: LeaderboardUpdateStats})
	require.NoError(t, err)

	gotUserID := make(chan string, 1)
	srv := socketServer(t, []channelFrame{
		{Event: ChannelEventNotification, Data: note},
		{Event: ChannelEventLeaderboardUpdate, Data: update},
		{Event: "unknown_event", Data: nil},
	}, gotUserID)
	defer srv.Close()

	ch, err := NewChannel(srv.URL, "ada@gramx.io")
	require.NoError(t, err)

	notes := make(chan ChannelNotification, 1)
	updates := make(chan LeaderboardUpdate, 1)
	ch.On(ChannelEventNotification, func(data json.RawMessage) {
		var n ChannelNotification
		if json.Unmarshal(data, &n) == nil {
			notes <- n
		}
	})
	ch.On(ChannelEventLeaderboardUpdate, func(data json.RawMessage) {
		var u LeaderboardUpdate
		if json.Unmarshal(data, &u) == nil {
			updates <- u
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, ch.Connect(ctx))
	defer ch.Close()

	assert.Equal(t, "ada@gramx.io", <-gotUserID)

	select {
	case n := <-notes:
		assert.Equal(t, "You earned 50 tokens", n.Text)
	case <-time.After(time.Second):
		t.Fatal("notification handler never fired")
	}
	select {
	case u := <-updates:
		assert.Equal(t, LeaderboardUpdateStats, u.Type)
	case <-time.After(time.Second):
		t.Fatal("leaderboard handler never fired")
	}
}

func TestChannelConnectFailsWhenServerUnreachable(t *testing.T) {
	ch, err := NewChannel("ws://127.0.0.1:1", "u1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	assert.Error(t, ch.Connect(ctx))
}

func TestChannelEmitRequiresConnection(t *testing.T) {
	ch, err := NewChannel("ws://127.0.0.1:1", "u1")
	require.NoError(t, err)
	assert.Error(t, ch.Emit("ping", nil))
}

func TestChannelCloseStopsRetrying(t *testing.T) {
	srv := socketServer(t, nil, nil)

	ch, err := NewChannel(srv.URL, "u1")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, ch.Connect(ctx))

	// A manual close must not trigger the reconnect loop.
	ch.Close()
	srv.Close()

	time.Sleep(50 * time.Millisecond)
	assert.Error(t, ch.Emit("ping", nil), "closed channel stays closed")
}
