package models

import "time"

// UserRef is the user identity embedded in a leaderboard entry. The upstream
// sends null here when the referenced user was deleted.
type UserRef struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LeaderboardEntry is one ranked row. Position is assigned upstream from the
// coins/shares ranking and is never written by this service.
type LeaderboardEntry struct {
	ID       string   `json:"_id"`
	Position int      `json:"position"`
	User     *UserRef `json:"userId"`
	Coins    float64  `json:"coins"`
	Shares   float64  `json:"shares"`
}

// LeaderboardEntryInput is the create payload. The upstream may reject it
// with a {message} response when the score is below the qualification
// threshold; that is a normal domain outcome, not a transport failure.
type LeaderboardEntryInput struct {
	UserID string  `json:"userId"`
	Coins  float64 `json:"coins"`
	Shares float64 `json:"shares"`
}

// LeaderboardMirror is the local snapshot of an upstream leaderboard entry,
// with the user reference flattened for plain SQL queries.
type LeaderboardMirror struct {
	ID        string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	SourceID  string    `gorm:"uniqueIndex;not null" json:"source_id"`
	Position  int       `gorm:"index" json:"position"`
	UserName  string    `json:"user_name"`
	UserEmail string    `json:"user_email,omitempty"`
	Coins     float64   `json:"coins"`
	Shares    float64   `json:"shares"`
	SyncedAt  time.Time `gorm:"index" json:"synced_at"`
}
