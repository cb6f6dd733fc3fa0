package models

import "time"

// BatchStatus is the lifecycle state of a token-sale batch. Not every upstream
// schema variant carries it, so it stays optional on the wire.
type BatchStatus string

const (
	BatchStatusActive    BatchStatus = "active"
	BatchStatusCompleted BatchStatus = "completed"
	BatchStatusPending   BatchStatus = "pending"
)

// Batch is one token-sale batch. The upstream does not guarantee
// tokensSold <= totalTokens, so nothing here assumes it.
type Batch struct {
	ID           string      `json:"_id"`
	BatchNumber  int         `json:"batchNumber"`
	CurrentPrice float64     `json:"currentPrice"`
	NextPrice    float64     `json:"nextPrice"`
	TokensSold   float64     `json:"tokensSold"`
	TotalTokens  float64     `json:"totalTokens"`
	Status       BatchStatus `json:"status,omitempty"`
}

// BatchInput carries the writable batch fields for create and update calls.
type BatchInput struct {
	BatchNumber  *int        `json:"batchNumber,omitempty"`
	CurrentPrice *float64    `json:"currentPrice,omitempty"`
	NextPrice    *float64    `json:"nextPrice,omitempty"`
	TokensSold   *float64    `json:"tokensSold,omitempty"`
	TotalTokens  *float64    `json:"totalTokens,omitempty"`
	Status       BatchStatus `json:"status,omitempty"`
}

// BatchMirror is the local snapshot of an upstream batch.
type BatchMirror struct {
	ID           string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	SourceID     string    `gorm:"uniqueIndex;not null" json:"source_id"`
	BatchNumber  int       `gorm:"index" json:"batch_number"`
	CurrentPrice float64   `json:"current_price"`
	NextPrice    float64   `json:"next_price"`
	TokensSold   float64   `json:"tokens_sold"`
	TotalTokens  float64   `json:"total_tokens"`
	Status       string    `gorm:"size:16" json:"status,omitempty"`
	SyncedAt     time.Time `gorm:"index" json:"synced_at"`
}
