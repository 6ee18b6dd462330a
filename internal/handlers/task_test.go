package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/cvassist/task-api/internal/authz"
	"github.com/cvassist/task-api/internal/constants"
	"github.com/cvassist/task-api/internal/database"
	"github.com/cvassist/task-api/internal/dto"
	"github.com/cvassist/task-api/internal/models"
	"github.com/cvassist/task-api/internal/repository"
	"github.com/cvassist/task-api/internal/services"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *TaskHandler
	service *services.TaskService

	admin    *models.User
	manager  *models.User
	designer *models.User
	reviewer *models.User
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	// Run migrations
	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Attachment{},
	)
	suite.Require().NoError(err)

	// Set the test DB as the default database
	database.SetDB(suite.db)

	taskRepo := repository.NewTaskRepository(suite.db)
	userRepo := repository.NewUserRepository(suite.db)
	suite.service = services.NewTaskService(taskRepo, userRepo, authz.NewPolicy(authz.Options{}))

	// No summary-suggestion service in tests
	suite.handler = NewTaskHandler(suite.service, nil)

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)

	suite.admin = suite.createTestUser("admin@cvassist.test", models.RoleAdmin)
	suite.manager = suite.createTestUser("manager@cvassist.test", models.RoleManager)
	suite.designer = suite.createTestUser("designer@cvassist.test", models.RoleDesigner)
	suite.reviewer = suite.createTestUser("reviewer@cvassist.test", models.RoleReviewer)
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskHandlerTestSuite) createTestUser(email string, role models.Role) *models.User {
	user := &models.User{
		Name:         email,
		Email:        email,
		PasswordHash: "hashedpassword",
		Role:         role,
		Status:       models.UserStatusAvailable,
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

// routerAs builds a router whose requests run as the given user, the
// same shape RequireAuth leaves in the context.
func (suite *TaskHandlerTestSuite) routerAs(user *models.User) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUser, *user)
		c.Next()
	})

	r.GET("/api/tasks", suite.handler.ListTasks)
	r.POST("/api/tasks", suite.handler.CreateTask)
	r.GET("/api/tasks/stats", suite.handler.Stats)
	r.GET("/api/tasks/:id", suite.handler.GetTask)
	r.POST("/api/tasks/:id/transition", suite.handler.Transition)
	r.POST("/api/tasks/:id/assign-designer", suite.handler.AssignDesigner)
	r.POST("/api/tasks/:id/assign-reviewer", suite.handler.AssignReviewer)
	r.POST("/api/tasks/:id/rate", suite.handler.Rate)
	r.POST("/api/tasks/:id/attachments", suite.handler.AddAttachment)
	r.PATCH("/api/tasks/:id/notes", suite.handler.UpdateNotes)

	return r
}

func (suite *TaskHandlerTestSuite) doJSON(r *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		suite.Require().NoError(json.NewEncoder(&body).Encode(payload))
	}

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func taskPayload() map[string]interface{} {
	return map[string]interface{}{
		"clientName":      "Amina Hassan",
		"jobTitle":        "Product Manager",
		"education":       "BSc Computer Science, Cairo University",
		"services":        []string{"CV Writing"},
		"paymentMethod":   "instapay",
		"paymentStatus":   "paid",
		"skills":          "Leadership, Agile",
		"experienceYears": "7",
	}
}

func (suite *TaskHandlerTestSuite) createTask() *models.Task {
	task, err := suite.service.CreateTask(services.CreateTaskInput{
		Payload:     taskPayload(),
		CreatorID:   suite.manager.ID,
		CreatorRole: models.RoleManager,
	})
	suite.Require().NoError(err)
	return task
}

func (suite *TaskHandlerTestSuite) TestCreateTask_Success() {
	r := suite.routerAs(suite.manager)

	w := suite.doJSON(r, http.MethodPost, "/api/tasks", taskPayload())

	suite.Require().Equal(http.StatusCreated, w.Code)

	var response struct {
		Status string      `json:"status"`
		TaskID string      `json:"taskId"`
		Task   dto.TaskDTO `json:"task"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal("success", response.Status)
	suite.NotEmpty(response.TaskID)
	suite.Equal(models.TaskStatusNotStarted, response.Task.Status)
	suite.Equal([]string{"Leadership", "Agile"}, response.Task.Skills)
	suite.Equal(7, response.Task.ExperienceYears)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_MissingFields() {
	r := suite.routerAs(suite.manager)

	w := suite.doJSON(r, http.MethodPost, "/api/tasks", map[string]interface{}{
		"clientName": "Amina Hassan",
	})

	suite.Require().Equal(http.StatusBadRequest, w.Code)

	var response struct {
		Code    string `json:"code"`
		Details struct {
			MissingFields []string `json:"missing_fields"`
		} `json:"details"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal("INVALID_ARGUMENT", response.Code)
	suite.ElementsMatch(
		[]string{"jobTitle", "education", "services", "paymentMethod", "paymentStatus"},
		response.Details.MissingFields,
	)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_DesignerForbidden() {
	r := suite.routerAs(suite.designer)

	w := suite.doJSON(r, http.MethodPost, "/api/tasks", taskPayload())

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *TaskHandlerTestSuite) TestGetTask_NotFound() {
	r := suite.routerAs(suite.admin)

	w := suite.doJSON(r, http.MethodGet, "/api/tasks/424242", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestGetTask_UnassignedDesignerForbidden() {
	task := suite.createTask()
	r := suite.routerAs(suite.designer)

	w := suite.doJSON(r, http.MethodGet, fmt.Sprintf("/api/tasks/%d", task.ID), nil)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *TaskHandlerTestSuite) TestTransition_Success() {
	task := suite.createTask()
	r := suite.routerAs(suite.manager)

	w := suite.doJSON(r, http.MethodPost, fmt.Sprintf("/api/tasks/%d/transition", task.ID),
		map[string]string{"status": "in_progress"})

	suite.Require().Equal(http.StatusOK, w.Code)

	var response dto.TaskDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal(models.TaskStatusInProgress, response.Status)
}

func (suite *TaskHandlerTestSuite) TestTransition_IllegalEdgeConflict() {
	task := suite.createTask()
	r := suite.routerAs(suite.manager)

	w := suite.doJSON(r, http.MethodPost, fmt.Sprintf("/api/tasks/%d/transition", task.ID),
		map[string]string{"status": "completed"})

	suite.Require().Equal(http.StatusConflict, w.Code)

	var response struct {
		Code string `json:"code"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal("INVALID_TRANSITION", response.Code)
}

func (suite *TaskHandlerTestSuite) TestTransition_UnknownStatus() {
	task := suite.createTask()
	r := suite.routerAs(suite.manager)

	w := suite.doJSON(r, http.MethodPost, fmt.Sprintf("/api/tasks/%d/transition", task.ID),
		map[string]string{"status": "archived"})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestAssignDesigner_StartsWork() {
	task := suite.createTask()
	r := suite.routerAs(suite.manager)

	w := suite.doJSON(r, http.MethodPost, fmt.Sprintf("/api/tasks/%d/assign-designer", task.ID),
		map[string]uint64{"designer_id": suite.designer.ID})

	suite.Require().Equal(http.StatusOK, w.Code)

	var response dto.TaskDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal(models.TaskStatusInProgress, response.Status)
	suite.Require().NotNil(response.DesignerID)
	suite.Equal(suite.designer.ID, *response.DesignerID)
}

func (suite *TaskHandlerTestSuite) TestAssignReviewer_WrongStateConflict() {
	task := suite.createTask()
	r := suite.routerAs(suite.manager)

	w := suite.doJSON(r, http.MethodPost, fmt.Sprintf("/api/tasks/%d/assign-reviewer", task.ID),
		map[string]uint64{"reviewer_id": suite.reviewer.ID})

	suite.Require().Equal(http.StatusConflict, w.Code)

	var response struct {
		Code string `json:"code"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal("FAILED_PRECONDITION", response.Code)
}

func (suite *TaskHandlerTestSuite) TestRate_OutOfRange() {
	task := suite.createTask()
	r := suite.routerAs(suite.manager)

	w := suite.doJSON(r, http.MethodPost, fmt.Sprintf("/api/tasks/%d/rate", task.ID),
		map[string]interface{}{"rating": 6})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestRate_NotCompletedConflict() {
	task := suite.createTask()
	r := suite.routerAs(suite.manager)

	w := suite.doJSON(r, http.MethodPost, fmt.Sprintf("/api/tasks/%d/rate", task.ID),
		map[string]interface{}{"rating": 4, "feedback": "Solid work"})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *TaskHandlerTestSuite) TestRate_CompletedTask() {
	task := suite.createTask()
	suite.Require().NoError(
		suite.db.Model(&models.Task{}).Where("id = ?", task.ID).
			Update("status", models.TaskStatusCompleted).Error,
	)
	r := suite.routerAs(suite.manager)

	w := suite.doJSON(r, http.MethodPost, fmt.Sprintf("/api/tasks/%d/rate", task.ID),
		map[string]interface{}{"rating": 5, "feedback": "Excellent CV"})

	suite.Require().Equal(http.StatusOK, w.Code)

	var response dto.TaskDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().NotNil(response.DesignerRating)
	suite.Equal(5, *response.DesignerRating)
}

func (suite *TaskHandlerTestSuite) TestAddAttachment() {
	task := suite.createTask()
	r := suite.routerAs(suite.manager)

	w := suite.doJSON(r, http.MethodPost, fmt.Sprintf("/api/tasks/%d/attachments", task.ID),
		map[string]interface{}{
			"name": "cv-final.pdf",
			"url":  "https://files.cvassist.test/cv-final.pdf",
		})

	suite.Require().Equal(http.StatusCreated, w.Code)

	var response dto.AttachmentDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.NotEmpty(response.ID)
	suite.Equal("cv-final.pdf", response.Name)
}

func (suite *TaskHandlerTestSuite) TestListTasks_DesignerScoped() {
	task := suite.createTask()
	suite.createTask()
	suite.Require().NoError(
		suite.db.Model(&models.Task{}).Where("id = ?", task.ID).
			Update("designer_id", suite.designer.ID).Error,
	)

	r := suite.routerAs(suite.designer)
	w := suite.doJSON(r, http.MethodGet, "/api/tasks", nil)

	suite.Require().Equal(http.StatusOK, w.Code)

	var response dto.TaskListResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal(int64(1), response.TotalCount)
	suite.Require().Len(response.Tasks, 1)
	suite.Equal(task.ID, response.Tasks[0].ID)
}

func (suite *TaskHandlerTestSuite) TestStats() {
	suite.createTask()
	r := suite.routerAs(suite.admin)

	w := suite.doJSON(r, http.MethodGet, "/api/tasks/stats", nil)

	suite.Require().Equal(http.StatusOK, w.Code)

	var response services.TaskStats
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal(int64(1), response.NotStarted)
}

// TestTaskHandlerTestSuite runs the test suite
func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
