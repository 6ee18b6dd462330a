package models

import "time"

// Attachment records metadata for a file stored externally.
// The blob itself lives in object storage; only the URL is kept here.
type Attachment struct {
	ID        string    `gorm:"type:varchar(36);primarykey" json:"id"`
	TaskID    uint64    `gorm:"not null;index" json:"task_id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	URL       string    `gorm:"type:varchar(1000);not null" json:"url"`
	MimeType  string    `gorm:"type:varchar(100)" json:"mime_type"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}
