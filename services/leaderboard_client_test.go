package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gramx-admin-gateway/models"
)

func TestLeaderboardListRendersDeletedUsers(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/leaderboard", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"_id":"e1","position":1,"userId":{"name":"Ada","email":"ada@gramx.io"},"coins":900,"shares":12},
			{"_id":"e2","position":2,"userId":null,"coins":750,"shares":8}
		]`))
	}))
	defer upstream.Close()

	gw, err := NewGateway(upstream.URL)
	require.NoError(t, err)
	client := NewLeaderboardClient(gw)

	entries, err := client.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "Ada", entries[0].User.Name)
	require.NotNil(t, entries[1].User, "null user reference must be rendered, not dropped")
	assert.Equal(t, "Deleted User", entries[1].User.Name)
	assert.Empty(t, entries[1].User.Email)
}

func TestLeaderboardCreateSuccess(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"_id":"e9","position":3,"userId":{"name":"Ada","email":"ada@gramx.io"},"coins":500,"shares":5}`))
	}))
	defer upstream.Close()

	gw, err := NewGateway(upstream.URL)
	require.NoError(t, err)
	client := NewLeaderboardClient(gw)

	entry, err := client.Create(context.Background(), models.LeaderboardEntryInput{
		UserID: "u1", Coins: 500, Shares: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, "e9", entry.ID)
	assert.Equal(t, 3, entry.Position)
}

func TestLeaderboardCreateRejectionIsAnError(t *testing.T) {
	// The upstream answers 200 with a bare {message} when the score does not
	// qualify. That must come back on the error side, never as created data.
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":"score below qualification threshold"}`))
	}))
	defer upstream.Close()

	gw, err := NewGateway(upstream.URL)
	require.NoError(t, err)
	client := NewLeaderboardClient(gw)

	entry, err := client.Create(context.Background(), models.LeaderboardEntryInput{
		UserID: "u1", Coins: 1,
	})
	assert.Nil(t, entry)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "score below qualification threshold", apiErr.Message)
	assert.Zero(t, apiErr.Status, "domain rejection is not an HTTP failure")
}

func TestLeaderboardGetRendersDeletedUser(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/leaderboard/e2", r.URL.Path)
		_, _ = w.Write([]byte(`{"_id":"e2","position":2,"userId":null,"coins":750,"shares":8}`))
	}))
	defer upstream.Close()

	gw, err := NewGateway(upstream.URL)
	require.NoError(t, err)
	client := NewLeaderboardClient(gw)

	entry, err := client.Get(context.Background(), "e2")
	require.NoError(t, err)
	require.NotNil(t, entry.User)
	assert.Equal(t, "Deleted User", entry.User.Name)
}

func TestLeaderboardMutationKeys(t *testing.T) {
	client := NewLeaderboardClient(nil)
	assert.Equal(t, []string{"leaderboard"}, client.MutationKeys(""))
	assert.Equal(t, []string{"leaderboard", "leaderboard/e1"}, client.MutationKeys("e1"))
}
