package dto

import (
	"time"

	"github.com/cvassist/task-api/internal/models"
)

// AttachmentDTO represents attachment metadata in API responses
type AttachmentDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	MimeType string `json:"mime_type,omitempty"`
	Size     int64  `json:"size"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID               uint64               `json:"id"`
	Reference        string               `json:"reference"`
	ClientName       string               `json:"client_name"`
	Birthdate        *time.Time           `json:"birthdate,omitempty"`
	ContactPhone     string               `json:"contact_phone,omitempty"`
	ContactEmail     string               `json:"contact_email,omitempty"`
	Address          string               `json:"address,omitempty"`
	JobTitle         string               `json:"job_title"`
	Education        string               `json:"education"`
	ExperienceYears  int                  `json:"experience_years"`
	Skills           []string             `json:"skills"`
	Services         []string             `json:"services"`
	Status           models.TaskStatus    `json:"status"`
	DesignerID       *uint64              `json:"designer_id"`
	ReviewerID       *uint64              `json:"reviewer_id"`
	DesignerNotes    string               `json:"designer_notes,omitempty"`
	ReviewerNotes    string               `json:"reviewer_notes,omitempty"`
	PaymentMethod    models.PaymentMethod `json:"payment_method"`
	PaymentStatus    models.PaymentStatus `json:"payment_status"`
	DesignerRating   *int                 `json:"designer_rating"`
	DesignerFeedback string               `json:"designer_feedback,omitempty"`
	ReviewerRating   *int                 `json:"reviewer_rating"`
	ReviewerFeedback string               `json:"reviewer_feedback,omitempty"`
	CreatorID        uint64               `json:"creator_id"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
	Creator          *UserDTO             `json:"creator,omitempty"`
	Designer         *UserDTO             `json:"designer,omitempty"`
	Reviewer         *UserDTO             `json:"reviewer,omitempty"`
	Attachments      []AttachmentDTO      `json:"attachments"`
}

// TaskListItemDTO represents a task in list responses (minimal data)
type TaskListItemDTO struct {
	ID         uint64            `json:"id"`
	Reference  string            `json:"reference"`
	ClientName string            `json:"client_name"`
	Services   []string          `json:"services"`
	Status     models.TaskStatus `json:"status"`
	DesignerID *uint64           `json:"designer_id"`
	ReviewerID *uint64           `json:"reviewer_id"`
	CreatorID  uint64            `json:"creator_id"`
	CreatedAt  time.Time         `json:"created_at"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskListItemDTO `json:"tasks"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalCount int64             `json:"total_count"`
	TotalPages int               `json:"total_pages"`
}

// ToAttachmentDTO converts an Attachment model to AttachmentDTO
func ToAttachmentDTO(attachment models.Attachment) AttachmentDTO {
	return AttachmentDTO{
		ID:       attachment.ID,
		Name:     attachment.Name,
		URL:      attachment.URL,
		MimeType: attachment.MimeType,
		Size:     attachment.Size,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:               task.ID,
		Reference:        task.Reference,
		ClientName:       task.ClientName,
		Birthdate:        task.Birthdate,
		ContactPhone:     task.ContactPhone,
		ContactEmail:     task.ContactEmail,
		Address:          task.Address,
		JobTitle:         task.JobTitle,
		Education:        task.Education,
		ExperienceYears:  task.ExperienceYears,
		Skills:           task.Skills,
		Services:         task.Services,
		Status:           task.Status,
		DesignerID:       task.DesignerID,
		ReviewerID:       task.ReviewerID,
		DesignerNotes:    task.DesignerNotes,
		ReviewerNotes:    task.ReviewerNotes,
		PaymentMethod:    task.PaymentMethod,
		PaymentStatus:    task.PaymentStatus,
		DesignerRating:   task.DesignerRating,
		DesignerFeedback: task.DesignerFeedback,
		ReviewerRating:   task.ReviewerRating,
		ReviewerFeedback: task.ReviewerFeedback,
		CreatorID:        task.CreatorID,
		CreatedAt:        task.CreatedAt,
		UpdatedAt:        task.UpdatedAt,
	}

	if dto.Skills == nil {
		dto.Skills = []string{}
	}

	// Include relations if preloaded
	if task.Creator.ID != 0 {
		creator := ToUserDTO(task.Creator)
		dto.Creator = &creator
	}
	if task.Designer != nil && task.Designer.ID != 0 {
		designer := ToUserDTO(*task.Designer)
		dto.Designer = &designer
	}
	if task.Reviewer != nil && task.Reviewer.ID != 0 {
		reviewer := ToUserDTO(*task.Reviewer)
		dto.Reviewer = &reviewer
	}

	dto.Attachments = make([]AttachmentDTO, len(task.Attachments))
	for i, attachment := range task.Attachments {
		dto.Attachments[i] = ToAttachmentDTO(attachment)
	}

	return dto
}

// ToTaskListItemDTO converts a Task model to TaskListItemDTO
func ToTaskListItemDTO(task models.Task) TaskListItemDTO {
	return TaskListItemDTO{
		ID:         task.ID,
		Reference:  task.Reference,
		ClientName: task.ClientName,
		Services:   task.Services,
		Status:     task.Status,
		DesignerID: task.DesignerID,
		ReviewerID: task.ReviewerID,
		CreatorID:  task.CreatorID,
		CreatedAt:  task.CreatedAt,
	}
}

// ToTaskListResponse converts a slice of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, page, pageSize int, totalCount int64) TaskListResponse {
	items := make([]TaskListItemDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskListItemDTO(task)
	}

	totalPages := 0
	if pageSize > 0 {
		totalPages = int(totalCount) / pageSize
		if int(totalCount)%pageSize > 0 {
			totalPages++
		}
	}

	return TaskListResponse{
		Tasks:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}
