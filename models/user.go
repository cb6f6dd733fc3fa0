package models

import "time"

// User is a platform user as served by the upstream admin API. IDs are
// upstream-assigned and immutable after creation.
type User struct {
	ID           string  `json:"_id"`
	Name         string  `json:"name"`
	ReferralCode string  `json:"referralCode"`
	Tokens       float64 `json:"tokens"`
	Shares       float64 `json:"shares"`
	ProfileImage string  `json:"profileImage,omitempty"`
}

// UserInput carries the writable user fields for create and update calls.
// Numeric fields are pointers so a zero value can be distinguished from
// "leave unchanged"; the upstream is the validation authority.
type UserInput struct {
	Name         string   `json:"name,omitempty"`
	ReferralCode string   `json:"referralCode,omitempty"`
	Tokens       *float64 `json:"tokens,omitempty"`
	Shares       *float64 `json:"shares,omitempty"`
	ProfileImage string   `json:"profileImage,omitempty"`
}

// UserMirror is the local snapshot of an upstream user, kept by the snapshot
// worker. The upstream copy stays authoritative.
type UserMirror struct {
	ID           string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	SourceID     string    `gorm:"uniqueIndex;not null" json:"source_id"`
	Name         string    `gorm:"index" json:"name"`
	ReferralCode string    `json:"referral_code"`
	Tokens       float64   `json:"tokens"`
	Shares       float64   `json:"shares"`
	ProfileImage string    `gorm:"type:text" json:"profile_image,omitempty"`
	SyncedAt     time.Time `gorm:"index" json:"synced_at"`
}
