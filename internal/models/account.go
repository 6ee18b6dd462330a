package models

import (
	"time"

	"gorm.io/gorm"
)

// Account is a credential record for a third-party service the team uses
// (Canva, Grammarly, ...). CredentialRef points at the secret in the
// external vault; the secret itself is never stored or returned.
type Account struct {
	ID            uint64         `gorm:"primarykey" json:"id"`
	Service       string         `gorm:"type:varchar(255);not null" json:"service"`
	Username      string         `gorm:"type:varchar(255);not null" json:"username"`
	CredentialRef string         `gorm:"type:varchar(500)" json:"credential_ref,omitempty"`
	Notes         string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
