package repository

import (
	"github.com/cvassist/task-api/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// UpdateStatus performs a conditional write: the update only succeeds
	// if the stored status still equals from. Returns ErrStaleStatus when
	// the row was concurrently moved past the observed state.
	UpdateStatus(taskID uint64, from models.TaskStatus, updates map[string]interface{}) error

	// AddAttachment appends attachment metadata to a task
	AddAttachment(attachment *models.Attachment) error

	// CountByStatus returns the number of tasks per lifecycle state
	CountByStatus() (map[models.TaskStatus]int64, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	Status     *models.TaskStatus
	DesignerID *uint64
	CreatorID  *uint64
	Page       int
	PageSize   int
}

// UserRepository defines the interface for staff profile data access
type UserRepository interface {
	// Create provisions the credential and profile record as one unit
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// List returns all staff profiles
	List() ([]models.User, error)

	// UpdateRole changes a user's role
	UpdateRole(id uint64, role models.Role) error

	// UpdateStatus changes a user's availability status
	UpdateStatus(id uint64, status models.UserStatus) error
}

// AccountRepository defines the interface for external-service credential records
type AccountRepository interface {
	Create(account *models.Account) error
	FindByID(id uint64) (*models.Account, error)
	List() ([]models.Account, error)
	Update(account *models.Account) error
	Delete(id uint64) error
}
