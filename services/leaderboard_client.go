// services/leaderboard_client.go
package services

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"gramx-admin-gateway/models"
)

// LeaderboardClient is the typed facade for leaderboard entries. Positions
// are ranked upstream, so there is no update call — only list, get, create
// and delete.
type LeaderboardClient struct {
	gw *Gateway
}

func NewLeaderboardClient(gw *Gateway) *LeaderboardClient {
	return &LeaderboardClient{gw: gw}
}

// MutationKeys lists the cache keys a mutation on the given entry affects.
func (c *LeaderboardClient) MutationKeys(id string) []string {
	if id == "" {
		return []string{LeaderboardCacheKey}
	}
	return []string{LeaderboardCacheKey, LeaderboardCacheKey + "/" + id}
}

func (c *LeaderboardClient) List(ctx context.Context) ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	if err := c.gw.Get(ctx, "/admin/leaderboard", &entries); err != nil {
		return nil, NormalizeError(err)
	}
	for i := range entries {
		if entries[i].User == nil {
			// The upstream keeps entries whose user account was deleted and
			// sends a null reference; render them like the dashboard does.
			entries[i].User = &models.UserRef{Name: "Deleted User"}
		}
	}
	return entries, nil
}

func (c *LeaderboardClient) Get(ctx context.Context, id string) (*models.LeaderboardEntry, error) {
	var entry models.LeaderboardEntry
	if err := c.gw.Get(ctx, "/admin/leaderboard/"+id, &entry); err != nil {
		return nil, NormalizeError(err)
	}
	if entry.User == nil {
		entry.User = &models.UserRef{Name: "Deleted User"}
	}
	return &entry, nil
}

// Create submits a new entry. The upstream answers 2xx either with the
// created entry or with a bare {message} when the score is below the
// qualification threshold. The rejection is reported on the error side,
// never as created data.
func (c *LeaderboardClient) Create(ctx context.Context, input models.LeaderboardEntryInput) (*models.LeaderboardEntry, error) {
	var raw json.RawMessage
	if err := c.gw.Post(ctx, "/admin/leaderboard", input, &raw); err != nil {
		return nil, NormalizeError(err)
	}

	var probe struct {
		ID      string `json:"_id"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, NormalizeError(fmt.Errorf("failed to decode leaderboard response: %w", err))
	}
	if probe.ID == "" && probe.Message != "" {
		return nil, &APIError{Message: probe.Message}
	}

	var entry models.LeaderboardEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, NormalizeError(fmt.Errorf("failed to decode leaderboard entry: %w", err))
	}
	return &entry, nil
}

func (c *LeaderboardClient) Delete(ctx context.Context, id string) error {
	if err := c.gw.Delete(ctx, "/admin/leaderboard/"+id); err != nil {
		return NormalizeError(err)
	}
	return nil
}
