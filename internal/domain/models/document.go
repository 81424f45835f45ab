package models

import "time"

// ProcessingStatus tracks a document through ingestion.
type ProcessingStatus string

const (
	StatusPending   ProcessingStatus = "pending"
	StatusProcessed ProcessingStatus = "processed"
	StatusFailed    ProcessingStatus = "failed"
)

// Document is one stored upload. ContentHash is a pure function of the raw
// bytes, so two identical uploads share a hash. After creation only Status
// changes.
type Document struct {
	ID          int64            `json:"id" db:"id"`
	AccountID   int64            `json:"account_id" db:"account_id"`
	Filename    string           `json:"filename" db:"filename"`
	Locator     string           `json:"locator" db:"locator"`
	FileSize    int64            `json:"file_size" db:"file_size"`
	ContentHash string           `json:"content_hash" db:"content_hash"`
	Status      ProcessingStatus `json:"processing_status" db:"processing_status"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at" db:"updated_at"`
}
