package repository

import (
	"errors"

	"github.com/cvassist/task-api/internal/database"
	"github.com/cvassist/task-api/internal/models"
	"github.com/cvassist/task-api/internal/utils"
	"gorm.io/gorm"
)

// ErrStaleStatus is returned when a conditional status write matched no
// row: the task moved past the state the caller observed.
var ErrStaleStatus = errors.New("task repository: stored status no longer matches expected status")

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks with filtering and pagination
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{})

	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.DesignerID != nil {
		query = query.Where("tasks.designer_id = ?", *filter.DesignerID)
	}
	if filter.CreatorID != nil {
		query = query.Where("tasks.creator_id = ?", *filter.CreatorID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("tasks.created_at DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Limit:  filter.PageSize,
			Offset: (filter.Page - 1) * filter.PageSize,
		}))
	}

	if err := listQuery.Preload("Creator").Preload("Designer").Preload("Reviewer").Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// UpdateStatus performs the read-check-write discipline as a single
// conditional UPDATE. updates must contain the target status; the WHERE
// clause pins the previously observed one.
func (r *GormTaskRepository) UpdateStatus(taskID uint64, from models.TaskStatus, updates map[string]interface{}) error {
	result := r.db.Model(&models.Task{}).
		Where("id = ? AND status = ?", taskID, from).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStaleStatus
	}
	return nil
}

// AddAttachment appends attachment metadata to a task
func (r *GormTaskRepository) AddAttachment(attachment *models.Attachment) error {
	return r.db.Create(attachment).Error
}

// CountByStatus returns the number of tasks per lifecycle state
func (r *GormTaskRepository) CountByStatus() (map[models.TaskStatus]int64, error) {
	type statusCount struct {
		Status models.TaskStatus
		Count  int64
	}

	var rows []statusCount
	err := r.db.Model(&models.Task{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.TaskStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}

	return counts, nil
}
