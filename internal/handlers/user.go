package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/cvassist/task-api/internal/dto"
	apierrors "github.com/cvassist/task-api/internal/errors"
	"github.com/cvassist/task-api/internal/middleware"
	"github.com/cvassist/task-api/internal/models"
	"github.com/cvassist/task-api/internal/services"
	"github.com/gin-gonic/gin"
)

// UserHandler coordinates staff-directory HTTP handlers.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func respondUserError(c *gin.Context, err error) {
	var permErr *services.PermissionError

	switch {
	case errors.As(err, &permErr):
		if permErr.Unauthenticated() {
			apierrors.Unauthenticated(c, permErr.Error())
			return
		}
		apierrors.PermissionDenied(c, permErr.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}

// ListStaff returns all staff members for assignment pickers.
func (h *UserHandler) ListStaff(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthenticated(c, "")
		return
	}

	staff, err := h.userService.ListStaff(user.Role)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": dto.ToUserDTOs(staff)})
}

// ChangeRole updates a staff member's role. Admin only.
func (h *UserHandler) ChangeRole(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthenticated(c, "")
		return
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.InvalidArgument(c, "Invalid user ID")
		return
	}

	type RoleRequest struct {
		Role string `json:"role" binding:"required"`
	}

	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidArgument(c, "Invalid request body")
		return
	}

	role, valid := models.ParseRole(req.Role)
	if !valid {
		apierrors.InvalidArgument(c, "Unknown role: "+req.Role)
		return
	}

	updated, err := h.userService.ChangeRole(targetID, role, user.Role)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*updated))
}

// ChangeStatus lets the caller update their own availability.
func (h *UserHandler) ChangeStatus(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthenticated(c, "")
		return
	}

	type StatusRequest struct {
		Status string `json:"status" binding:"required"`
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidArgument(c, "Invalid request body")
		return
	}

	status, valid := models.ParseUserStatus(req.Status)
	if !valid {
		apierrors.InvalidArgument(c, "Unknown status: "+req.Status)
		return
	}

	updated, err := h.userService.ChangeStatus(user.ID, status)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*updated))
}
