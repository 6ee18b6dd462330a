package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleDesigner Role = "designer"
	RoleReviewer Role = "reviewer"
)

// ParseRole normalizes a role string to one of the four known roles.
// Returns false for anything outside the closed set.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleManager:
		return RoleManager, true
	case RoleDesigner:
		return RoleDesigner, true
	case RoleReviewer:
		return RoleReviewer, true
	default:
		return "", false
	}
}

type UserStatus string

const (
	UserStatusAvailable UserStatus = "available"
	UserStatusBusy      UserStatus = "busy"
	UserStatusOnLeave   UserStatus = "on_leave"
)

// ParseUserStatus normalizes an availability status string.
func ParseUserStatus(s string) (UserStatus, bool) {
	switch UserStatus(strings.ToLower(strings.TrimSpace(s))) {
	case UserStatusAvailable:
		return UserStatusAvailable, true
	case UserStatusBusy:
		return UserStatusBusy, true
	case UserStatusOnLeave:
		return UserStatusOnLeave, true
	default:
		return "", false
	}
}

// User is a staff profile. The Role column is the single authoritative
// role record: authorization always reads it fresh, never a cached claim.
type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	Role         Role           `gorm:"type:varchar(20);not null;default:'designer'" json:"role"`
	Status       UserStatus     `gorm:"type:varchar(20);not null;default:'available'" json:"status"`
	Workplace    string         `gorm:"type:varchar(255)" json:"workplace,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	CreatedTasks  []Task `gorm:"foreignKey:CreatorID" json:"-"`
	DesignerTasks []Task `gorm:"foreignKey:DesignerID" json:"-"`
	ReviewerTasks []Task `gorm:"foreignKey:ReviewerID" json:"-"`
}
