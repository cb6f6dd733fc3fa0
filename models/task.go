package models

import "time"

// TaskPlatform is the social platform a task targets.
type TaskPlatform string

const (
	TaskPlatformTwitter   TaskPlatform = "twitter"
	TaskPlatformYoutube   TaskPlatform = "youtube"
	TaskPlatformInstagram TaskPlatform = "instagram"
	TaskPlatformTelegram  TaskPlatform = "telegram"
	TaskPlatformOther     TaskPlatform = "other"
)

// VerificationMethod is how task completion gets verified upstream.
type VerificationMethod string

const (
	VerificationAPI        VerificationMethod = "api"
	VerificationManual     VerificationMethod = "manual"
	VerificationScreenshot VerificationMethod = "screenshot"
	VerificationOAuth      VerificationMethod = "oauth"
)

// Task is a reward task in the extended upstream schema. The older minimal
// {task, reward} variant is deprecated; deployments still on it only differ
// in route prefix, not in how the extra fields are ignored.
type Task struct {
	ID                 string             `json:"_id"`
	Task               string             `json:"task"`
	Description        string             `json:"description,omitempty"`
	Reward             float64            `json:"reward"`
	Platform           TaskPlatform       `json:"platform,omitempty"`
	PlatformID         string             `json:"platformId,omitempty"`
	VerificationMethod VerificationMethod `json:"verificationMethod,omitempty"`
}

// TaskInput carries the writable task fields for create and update calls.
type TaskInput struct {
	Task               string             `json:"task,omitempty"`
	Description        string             `json:"description,omitempty"`
	Reward             *float64           `json:"reward,omitempty"`
	Platform           TaskPlatform       `json:"platform,omitempty"`
	PlatformID         string             `json:"platformId,omitempty"`
	VerificationMethod VerificationMethod `json:"verificationMethod,omitempty"`
}

// TaskMirror is the local snapshot of an upstream task.
type TaskMirror struct {
	ID                 string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	SourceID           string    `gorm:"uniqueIndex;not null" json:"source_id"`
	Task               string    `json:"task"`
	Description        string    `gorm:"type:text" json:"description,omitempty"`
	Reward             float64   `json:"reward"`
	Platform           string    `gorm:"size:16" json:"platform,omitempty"`
	PlatformID         string    `json:"platform_id,omitempty"`
	VerificationMethod string    `gorm:"size:16" json:"verification_method,omitempty"`
	SyncedAt           time.Time `gorm:"index" json:"synced_at"`
}
