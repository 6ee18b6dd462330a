package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cvassist/task-api/internal/authz"
	"github.com/cvassist/task-api/internal/constants"
	"github.com/cvassist/task-api/internal/models"
	"github.com/cvassist/task-api/internal/repository"
	"github.com/cvassist/task-api/internal/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrStaleTask           = errors.New("task status changed concurrently")
	ErrTaskNotCompleted    = errors.New("task must be completed before it can be rated")
	ErrReviewerAssignState = errors.New("a reviewer can only be assigned while the task is in progress or in review")
	ErrReferenceGeneration = errors.New("failed to generate task reference")
	ErrAssigneeNotFound    = errors.New("assignee does not exist")
)

// PermissionError carries a structured deny decision from the policy.
type PermissionError struct {
	Decision authz.Decision
}

func (e *PermissionError) Error() string {
	return e.Decision.Message
}

// Unauthenticated reports whether the denial was for a missing identity
// rather than an insufficient role.
func (e *PermissionError) Unauthenticated() bool {
	return e.Decision.Reason == authz.ReasonUnauthenticated
}

// ValidationError names every offending payload field, not just the
// first, so the caller can correct the whole request at once.
type ValidationError struct {
	MissingFields []string
	InvalidFields []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.MissingFields) > 0 {
		parts = append(parts, "missing required fields: "+strings.Join(e.MissingFields, ", "))
	}
	if len(e.InvalidFields) > 0 {
		parts = append(parts, "invalid fields: "+strings.Join(e.InvalidFields, ", "))
	}
	if len(parts) == 0 {
		return "invalid payload"
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) empty() bool {
	return len(e.MissingFields) == 0 && len(e.InvalidFields) == 0
}

// TransitionError reports an illegal state-machine edge, naming both the
// current and the requested state.
type TransitionError struct {
	From models.TaskStatus
	To   models.TaskStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot transition task from %s to %s", e.From, e.To)
}

// taskTransitions is the closed edge set of the lifecycle state machine.
// completed is terminal.
var taskTransitions = map[models.TaskStatus][]models.TaskStatus{
	models.TaskStatusNotStarted: {models.TaskStatusInProgress},
	models.TaskStatusInProgress: {models.TaskStatusInReview},
	models.TaskStatusInReview:   {models.TaskStatusCompleted, models.TaskStatusInProgress},
	models.TaskStatusCompleted:  {},
}

func transitionAllowed(from, to models.TaskStatus) bool {
	for _, next := range taskTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// roleEdgeAllowed restricts designers and reviewers to the edges of
// their own workflow step. Admin and manager may drive any legal edge.
func roleEdgeAllowed(role models.Role, from, to models.TaskStatus) bool {
	switch role {
	case models.RoleDesigner:
		return (from == models.TaskStatusNotStarted && to == models.TaskStatusInProgress) ||
			(from == models.TaskStatusInProgress && to == models.TaskStatusInReview)
	case models.RoleReviewer:
		return from == models.TaskStatusInReview
	default:
		return true
	}
}

// TaskService owns the task lifecycle: validation, normalization,
// creation, transitions, assignments and ratings.
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	policy   *authz.Policy
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, policy *authz.Policy) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		policy:   policy,
	}
}

func (s *TaskService) reload(id uint64) (*models.Task, error) {
	return s.taskRepo.FindByID(id, "Creator", "Designer", "Reviewer", "Attachments")
}

func (s *TaskService) loadTask(id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

func ownershipOf(task *models.Task, userID uint64) authz.Ownership {
	return authz.Ownership{
		AssignedDesigner: task.IsAssignedDesigner(userID),
		AssignedReviewer: task.IsAssignedReviewer(userID),
		TaskInReview:     task.Status == models.TaskStatusInReview,
	}
}

// CreateTaskInput carries the raw creation payload. Payload is kept
// untyped because the write boundary accepts lenient input (skills as a
// list or a comma-separated string, experienceYears as number or text).
type CreateTaskInput struct {
	Payload     map[string]interface{}
	CreatorID   uint64
	CreatorRole models.Role
}

// CreateTask validates and normalizes the payload and persists a task in
// its initial state.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if decision := s.policy.Authorize(input.CreatorRole, authz.OpCreateTask, authz.Ownership{}); !decision.Allowed {
		return nil, &PermissionError{Decision: decision}
	}

	task, verr := buildTask(input.Payload)
	if !verr.empty() {
		return nil, verr
	}

	reference, err := utils.GenerateTaskReference()
	if err != nil {
		return nil, ErrReferenceGeneration
	}

	task.Reference = reference
	task.Status = models.TaskStatusNotStarted
	task.CreatorID = input.CreatorID
	task.Attachments = []models.Attachment{}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.reload(task.ID)
}

// buildTask validates required fields (collecting every missing one) and
// normalizes the lenient parts of the payload into a Task.
func buildTask(payload map[string]interface{}) (*models.Task, *ValidationError) {
	verr := &ValidationError{}

	required := []string{"clientName", "jobTitle", "education", "services", "paymentMethod", "paymentStatus"}
	for _, field := range required {
		if isMissing(payload[field]) {
			verr.MissingFields = append(verr.MissingFields, field)
		}
	}

	// Required text fields must actually be strings; a present non-string
	// value would otherwise coerce to "" and defeat the non-empty check.
	for _, field := range []string{"clientName", "jobTitle", "education"} {
		if v := payload[field]; v != nil && !isMissing(v) {
			if _, ok := v.(string); !ok {
				verr.InvalidFields = append(verr.InvalidFields, field)
			}
		}
	}

	task := &models.Task{
		ClientName: stringField(payload, "clientName"),
		JobTitle:   stringField(payload, "jobTitle"),
		Education:  stringField(payload, "education"),
		Address:    stringField(payload, "address"),
	}

	if contact, ok := payload["contactInfo"].(map[string]interface{}); ok {
		task.ContactPhone = strings.TrimSpace(toString(contact["phone"]))
		task.ContactEmail = strings.TrimSpace(toString(contact["email"]))
	}

	if services, ok := normalizeServices(payload["services"]); ok {
		task.Services = services
	} else if !isMissing(payload["services"]) {
		verr.InvalidFields = append(verr.InvalidFields, "services")
	}

	if method, ok := normalizePaymentMethod(payload["paymentMethod"]); ok {
		task.PaymentMethod = method
	} else if !isMissing(payload["paymentMethod"]) {
		verr.InvalidFields = append(verr.InvalidFields, "paymentMethod")
	}

	if status, ok := normalizePaymentStatus(payload["paymentStatus"]); ok {
		task.PaymentStatus = status
	} else if !isMissing(payload["paymentStatus"]) {
		verr.InvalidFields = append(verr.InvalidFields, "paymentStatus")
	}

	task.Skills = NormalizeSkills(payload["skills"])
	task.ExperienceYears = NormalizeExperienceYears(payload["experienceYears"])
	task.DesignerNotes = stringField(payload, "designerNotes")
	task.ReviewerNotes = stringField(payload, "reviewerNotes")

	if birthdate, ok := ParseBirthdate(payload["birthdate"]); ok {
		task.Birthdate = birthdate
	} else {
		verr.InvalidFields = append(verr.InvalidFields, "birthdate")
	}

	if !verr.empty() {
		return nil, verr
	}

	return task, verr
}

func isMissing(v interface{}) bool {
	switch value := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(value) == ""
	case []interface{}:
		return len(value) == 0
	case []string:
		return len(value) == 0
	default:
		return false
	}
}

func stringField(payload map[string]interface{}, key string) string {
	return strings.TrimSpace(toString(payload[key]))
}

func toString(v interface{}) string {
	s, _ := v.(string)
	return s
}

// NormalizeSkills accepts either an already-split list or a single
// comma-separated string and always yields a trimmed list with empty
// segments dropped. An empty result is legal for skills.
func NormalizeSkills(v interface{}) []string {
	var raw []string

	switch value := v.(type) {
	case string:
		raw = strings.Split(value, ",")
	case []string:
		raw = value
	case []interface{}:
		for _, item := range value {
			if s, ok := item.(string); ok {
				raw = append(raw, s)
			}
		}
	}

	skills := make([]string, 0, len(raw))
	for _, s := range raw {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}

	return skills
}

// NormalizeExperienceYears coerces the input to a non-negative integer.
// Non-numeric or missing input yields 0, never an error. Fractional
// values truncate toward zero.
func NormalizeExperienceYears(v interface{}) int {
	var years int

	switch value := v.(type) {
	case float64:
		years = int(value)
	case int:
		years = value
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return 0
		}
		years = parsed
	default:
		return 0
	}

	if years < 0 {
		return 0
	}
	return years
}

// ParseBirthdate parses an optional birthdate. Absent or null stays
// absent; a present but unparsable value is a validation failure.
func ParseBirthdate(v interface{}) (*time.Time, bool) {
	if v == nil {
		return nil, true
	}

	s, ok := v.(string)
	if !ok {
		return nil, false
	}
	if strings.TrimSpace(s) == "" {
		return nil, true
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, true
		}
	}

	return nil, false
}

func normalizeServices(v interface{}) ([]string, bool) {
	var raw []string

	switch value := v.(type) {
	case []string:
		raw = value
	case []interface{}:
		for _, item := range value {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			raw = append(raw, s)
		}
	default:
		return nil, false
	}

	if len(raw) == 0 {
		return nil, false
	}

	catalog := make(map[string]struct{}, len(models.ServiceCatalog))
	for _, s := range models.ServiceCatalog {
		catalog[s] = struct{}{}
	}

	services := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if _, ok := catalog[s]; !ok {
			return nil, false
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		services = append(services, s)
	}

	return services, true
}

func normalizePaymentMethod(v interface{}) (models.PaymentMethod, bool) {
	switch models.PaymentMethod(strings.ToLower(toString(v))) {
	case models.PaymentMethodInstapay:
		return models.PaymentMethodInstapay, true
	case models.PaymentMethodPaysky:
		return models.PaymentMethodPaysky, true
	case models.PaymentMethodOther:
		return models.PaymentMethodOther, true
	default:
		return "", false
	}
}

func normalizePaymentStatus(v interface{}) (models.PaymentStatus, bool) {
	switch models.PaymentStatus(strings.ToLower(toString(v))) {
	case models.PaymentStatusPaid:
		return models.PaymentStatusPaid, true
	case models.PaymentStatusUnpaid:
		return models.PaymentStatusUnpaid, true
	case models.PaymentStatusPending:
		return models.PaymentStatusPending, true
	default:
		return "", false
	}
}

// TransitionInput represents a status-change request.
type TransitionInput struct {
	TaskID    uint64
	Target    models.TaskStatus
	ActorID   uint64
	ActorRole models.Role
}

// Transition moves a task along a legal state-machine edge. The write is
// conditional on the status the actor observed, so two concurrent
// requests can never both succeed.
func (s *TaskService) Transition(input TransitionInput) (*models.Task, error) {
	task, err := s.loadTask(input.TaskID)
	if err != nil {
		return nil, err
	}

	decision := s.policy.Authorize(input.ActorRole, authz.OpTransitionStatus, ownershipOf(task, input.ActorID))
	if !decision.Allowed {
		return nil, &PermissionError{Decision: decision}
	}

	if !transitionAllowed(task.Status, input.Target) {
		return nil, &TransitionError{From: task.Status, To: input.Target}
	}

	if !roleEdgeAllowed(input.ActorRole, task.Status, input.Target) {
		return nil, &PermissionError{Decision: authz.Decision{
			Reason:  authz.ReasonPermissionDenied,
			Message: fmt.Sprintf("role %s may not move a task from %s to %s", input.ActorRole, task.Status, input.Target),
		}}
	}

	err = s.taskRepo.UpdateStatus(task.ID, task.Status, map[string]interface{}{
		"status": input.Target,
	})
	if err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return nil, ErrStaleTask
		}
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	return s.reload(task.ID)
}

// AssignDesignerInput represents a designer assignment request.
type AssignDesignerInput struct {
	TaskID     uint64
	DesignerID uint64
	ActorID    uint64
	ActorRole  models.Role
}

// AssignDesigner sets the task's designer. Assigning a designer to a
// not_started task is the edge that starts work: the task moves to
// in_progress in the same conditional write.
func (s *TaskService) AssignDesigner(input AssignDesignerInput) (*models.Task, error) {
	task, err := s.loadTask(input.TaskID)
	if err != nil {
		return nil, err
	}

	decision := s.policy.Authorize(input.ActorRole, authz.OpAssignTask, ownershipOf(task, input.ActorID))
	if !decision.Allowed {
		return nil, &PermissionError{Decision: decision}
	}

	if err := s.ensureRole(input.DesignerID, models.RoleDesigner, "designerId"); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"designer_id": input.DesignerID,
	}
	if task.Status == models.TaskStatusNotStarted {
		updates["status"] = models.TaskStatusInProgress
	}

	err = s.taskRepo.UpdateStatus(task.ID, task.Status, updates)
	if err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return nil, ErrStaleTask
		}
		return nil, fmt.Errorf("failed to assign designer: %w", err)
	}

	return s.reload(task.ID)
}

// AssignReviewerInput represents a reviewer assignment request.
type AssignReviewerInput struct {
	TaskID     uint64
	ReviewerID uint64
	ActorID    uint64
	ActorRole  models.Role
}

// AssignReviewer sets the task's reviewer while the work is in progress
// or already in review.
func (s *TaskService) AssignReviewer(input AssignReviewerInput) (*models.Task, error) {
	task, err := s.loadTask(input.TaskID)
	if err != nil {
		return nil, err
	}

	decision := s.policy.Authorize(input.ActorRole, authz.OpAssignTask, ownershipOf(task, input.ActorID))
	if !decision.Allowed {
		return nil, &PermissionError{Decision: decision}
	}

	if task.Status != models.TaskStatusInProgress && task.Status != models.TaskStatusInReview {
		return nil, ErrReviewerAssignState
	}

	if err := s.ensureRole(input.ReviewerID, models.RoleReviewer, "reviewerId"); err != nil {
		return nil, err
	}

	err = s.taskRepo.UpdateStatus(task.ID, task.Status, map[string]interface{}{
		"reviewer_id": input.ReviewerID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return nil, ErrStaleTask
		}
		return nil, fmt.Errorf("failed to assign reviewer: %w", err)
	}

	return s.reload(task.ID)
}

func (s *TaskService) ensureRole(userID uint64, role models.Role, field string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssigneeNotFound
		}
		return fmt.Errorf("failed to verify assignee: %w", err)
	}
	if user.Role != role {
		return &ValidationError{InvalidFields: []string{field}}
	}
	return nil
}

// RatingTarget selects which rating a rate request sets.
type RatingTarget string

const (
	RateDesigner RatingTarget = "designer"
	RateReviewer RatingTarget = "reviewer"
)

// RateInput represents a rating submission.
type RateInput struct {
	TaskID    uint64
	Target    RatingTarget
	Rating    int
	Feedback  string
	ActorID   uint64
	ActorRole models.Role
}

// Rate records a rating on a completed task. The range check runs before
// any role logic so out-of-range values always fail validation.
func (s *TaskService) Rate(input RateInput) (*models.Task, error) {
	if input.Rating < constants.MinRating || input.Rating > constants.MaxRating {
		return nil, &ValidationError{InvalidFields: []string{"rating"}}
	}
	if input.Target != RateDesigner && input.Target != RateReviewer {
		return nil, &ValidationError{InvalidFields: []string{"target"}}
	}

	task, err := s.loadTask(input.TaskID)
	if err != nil {
		return nil, err
	}

	decision := s.policy.Authorize(input.ActorRole, authz.OpRateTask, ownershipOf(task, input.ActorID))
	if !decision.Allowed {
		return nil, &PermissionError{Decision: decision}
	}

	// Only admin and manager may rate the reviewer's work.
	if input.Target == RateReviewer && input.ActorRole == models.RoleReviewer {
		return nil, &PermissionError{Decision: authz.Decision{
			Reason:  authz.ReasonPermissionDenied,
			Message: "reviewers cannot rate their own review work",
		}}
	}

	if task.Status != models.TaskStatusCompleted {
		return nil, ErrTaskNotCompleted
	}

	updates := map[string]interface{}{}
	switch input.Target {
	case RateDesigner:
		updates["designer_rating"] = input.Rating
		updates["designer_feedback"] = input.Feedback
	case RateReviewer:
		updates["reviewer_rating"] = input.Rating
		updates["reviewer_feedback"] = input.Feedback
	}

	err = s.taskRepo.UpdateStatus(task.ID, models.TaskStatusCompleted, updates)
	if err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return nil, ErrStaleTask
		}
		return nil, fmt.Errorf("failed to record rating: %w", err)
	}

	return s.reload(task.ID)
}

// AttachmentInput carries attachment metadata; the file itself lives in
// external storage.
type AttachmentInput struct {
	TaskID    uint64
	Name      string
	URL       string
	MimeType  string
	Size      int64
	ActorID   uint64
	ActorRole models.Role
}

// AddAttachment appends attachment metadata to a task.
func (s *TaskService) AddAttachment(input AttachmentInput) (*models.Attachment, error) {
	verr := &ValidationError{}
	if strings.TrimSpace(input.Name) == "" {
		verr.MissingFields = append(verr.MissingFields, "name")
	}
	if strings.TrimSpace(input.URL) == "" {
		verr.MissingFields = append(verr.MissingFields, "url")
	}
	if !verr.empty() {
		return nil, verr
	}

	task, err := s.loadTask(input.TaskID)
	if err != nil {
		return nil, err
	}

	decision := s.policy.Authorize(input.ActorRole, authz.OpViewTask, ownershipOf(task, input.ActorID))
	if !decision.Allowed {
		return nil, &PermissionError{Decision: decision}
	}

	attachment := &models.Attachment{
		ID:       uuid.NewString(),
		TaskID:   task.ID,
		Name:     strings.TrimSpace(input.Name),
		URL:      strings.TrimSpace(input.URL),
		MimeType: input.MimeType,
		Size:     input.Size,
	}

	if err := s.taskRepo.AddAttachment(attachment); err != nil {
		return nil, fmt.Errorf("failed to add attachment: %w", err)
	}

	return attachment, nil
}

// NotesInput represents a notes update. Nil fields are left untouched.
type NotesInput struct {
	TaskID        uint64
	DesignerNotes *string
	ReviewerNotes *string
	ActorID       uint64
	ActorRole     models.Role
}

// UpdateNotes edits the designer/reviewer notes. Designers may only edit
// their own notes field, reviewers theirs; admin and manager edit both.
func (s *TaskService) UpdateNotes(input NotesInput) (*models.Task, error) {
	task, err := s.loadTask(input.TaskID)
	if err != nil {
		return nil, err
	}

	decision := s.policy.Authorize(input.ActorRole, authz.OpUpdateNotes, ownershipOf(task, input.ActorID))
	if !decision.Allowed {
		return nil, &PermissionError{Decision: decision}
	}

	updates := map[string]interface{}{}
	if input.DesignerNotes != nil {
		if input.ActorRole == models.RoleReviewer {
			return nil, &PermissionError{Decision: authz.Decision{
				Reason:  authz.ReasonPermissionDenied,
				Message: "reviewers may only edit reviewer notes",
			}}
		}
		updates["designer_notes"] = *input.DesignerNotes
	}
	if input.ReviewerNotes != nil {
		if input.ActorRole == models.RoleDesigner {
			return nil, &PermissionError{Decision: authz.Decision{
				Reason:  authz.ReasonPermissionDenied,
				Message: "designers may only edit designer notes",
			}}
		}
		updates["reviewer_notes"] = *input.ReviewerNotes
	}

	if len(updates) == 0 {
		return s.reload(task.ID)
	}

	err = s.taskRepo.UpdateStatus(task.ID, task.Status, updates)
	if err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return nil, ErrStaleTask
		}
		return nil, fmt.Errorf("failed to update notes: %w", err)
	}

	return s.reload(task.ID)
}

// ListTasksInput represents filters for listing tasks.
type ListTasksInput struct {
	ActorID   uint64
	ActorRole models.Role
	Status    *models.TaskStatus
	Page      int
	PageSize  int
}

// ListTasks returns the tasks the actor may see: admin and manager see
// everything, designers their assigned tasks, reviewers the review queue.
func (s *TaskService) ListTasks(input ListTasksInput) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{
		Status:   input.Status,
		Page:     input.Page,
		PageSize: input.PageSize,
	}

	switch input.ActorRole {
	case models.RoleAdmin, models.RoleManager:
		// unrestricted
	case models.RoleDesigner:
		filter.DesignerID = &input.ActorID
	case models.RoleReviewer:
		inReview := models.TaskStatusInReview
		filter.Status = &inReview
	default:
		return nil, 0, &PermissionError{Decision: authz.Decision{
			Reason:  authz.ReasonPermissionDenied,
			Message: fmt.Sprintf("role %s may not list tasks", input.ActorRole),
		}}
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// CanSuggestSummary checks whether the actor may request a drafted
// summary for the task. Designers only for their own assignments.
func (s *TaskService) CanSuggestSummary(task *models.Task, actorID uint64, actorRole models.Role) error {
	decision := s.policy.Authorize(actorRole, authz.OpSuggestSummary, ownershipOf(task, actorID))
	if !decision.Allowed {
		return &PermissionError{Decision: decision}
	}
	return nil
}

// GetTask returns a task with related data if the actor may view it.
func (s *TaskService) GetTask(taskID, actorID uint64, actorRole models.Role) (*models.Task, error) {
	task, err := s.reload(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	decision := s.policy.Authorize(actorRole, authz.OpViewTask, ownershipOf(task, actorID))
	if !decision.Allowed {
		return nil, &PermissionError{Decision: decision}
	}

	return task, nil
}

// TaskStats reports the number of tasks in each lifecycle state.
type TaskStats struct {
	NotStarted int64 `json:"not_started"`
	InProgress int64 `json:"in_progress"`
	InReview   int64 `json:"in_review"`
	Completed  int64 `json:"completed"`
}

// Stats returns dashboard counts for admin and manager.
func (s *TaskService) Stats(actorRole models.Role) (*TaskStats, error) {
	if decision := s.policy.Authorize(actorRole, authz.OpViewAllTasks, authz.Ownership{}); !decision.Allowed {
		return nil, &PermissionError{Decision: decision}
	}

	counts, err := s.taskRepo.CountByStatus()
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	return &TaskStats{
		NotStarted: counts[models.TaskStatusNotStarted],
		InProgress: counts[models.TaskStatusInProgress],
		InReview:   counts[models.TaskStatusInReview],
		Completed:  counts[models.TaskStatusCompleted],
	}, nil
}
