package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "not_started"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusInReview   TaskStatus = "in_review"
	TaskStatusCompleted  TaskStatus = "completed"
)

// ParseTaskStatus normalizes a status string to one of the four states.
func ParseTaskStatus(s string) (TaskStatus, bool) {
	switch TaskStatus(s) {
	case TaskStatusNotStarted:
		return TaskStatusNotStarted, true
	case TaskStatusInProgress:
		return TaskStatusInProgress, true
	case TaskStatusInReview:
		return TaskStatusInReview, true
	case TaskStatusCompleted:
		return TaskStatusCompleted, true
	default:
		return "", false
	}
}

// Service catalog. Tasks must carry at least one of these.
const (
	ServiceCVWriting       = "CV Writing"
	ServiceCoverLetter     = "Cover Letter"
	ServiceLinkedInProfile = "LinkedIn Profile"
)

// ServiceCatalog lists every offered service.
var ServiceCatalog = []string{ServiceCVWriting, ServiceCoverLetter, ServiceLinkedInProfile}

type PaymentMethod string

const (
	PaymentMethodInstapay PaymentMethod = "instapay"
	PaymentMethodPaysky   PaymentMethod = "paysky"
	PaymentMethodOther    PaymentMethod = "other"
)

type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPending PaymentStatus = "pending"
)

type Task struct {
	ID        uint64 `gorm:"primarykey" json:"id"`
	Reference string `gorm:"type:varchar(50);uniqueIndex;not null" json:"reference"`

	// Client details
	ClientName   string     `gorm:"type:varchar(255);not null" json:"client_name"`
	Birthdate    *time.Time `json:"birthdate"`
	ContactPhone string     `gorm:"type:varchar(50)" json:"contact_phone,omitempty"`
	ContactEmail string     `gorm:"type:varchar(255)" json:"contact_email,omitempty"`
	Address      string     `gorm:"type:varchar(500)" json:"address,omitempty"`

	// Professional profile
	JobTitle        string                      `gorm:"type:varchar(255);not null" json:"job_title"`
	Education       string                      `gorm:"type:varchar(500);not null" json:"education"`
	ExperienceYears int                         `gorm:"not null;default:0" json:"experience_years"`
	Skills          datatypes.JSONSlice[string] `json:"skills"`
	Services        datatypes.JSONSlice[string] `json:"services"`

	// Workflow
	Status        TaskStatus    `gorm:"type:varchar(20);not null;default:'not_started'" json:"status"`
	DesignerID    *uint64       `gorm:"index" json:"designer_id"`
	ReviewerID    *uint64       `gorm:"index" json:"reviewer_id"`
	DesignerNotes string        `gorm:"type:text" json:"designer_notes,omitempty"`
	ReviewerNotes string        `gorm:"type:text" json:"reviewer_notes,omitempty"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(20);not null" json:"payment_method"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null" json:"payment_status"`

	// Ratings are only set once a task reaches completed.
	DesignerRating   *int   `json:"designer_rating"`
	DesignerFeedback string `gorm:"type:text" json:"designer_feedback,omitempty"`
	ReviewerRating   *int   `json:"reviewer_rating"`
	ReviewerFeedback string `gorm:"type:text" json:"reviewer_feedback,omitempty"`

	CreatorID uint64         `gorm:"not null;index" json:"creator_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Creator     User         `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Designer    *User        `gorm:"foreignKey:DesignerID" json:"designer,omitempty"`
	Reviewer    *User        `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	Attachments []Attachment `gorm:"foreignKey:TaskID" json:"attachments"`
}

// IsAssignedDesigner reports whether the given user is the task's designer.
func (t *Task) IsAssignedDesigner(userID uint64) bool {
	return t.DesignerID != nil && *t.DesignerID == userID
}

// IsAssignedReviewer reports whether the given user is the task's reviewer.
func (t *Task) IsAssignedReviewer(userID uint64) bool {
	return t.ReviewerID != nil && *t.ReviewerID == userID
}
