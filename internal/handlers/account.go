package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/cvassist/task-api/internal/dto"
	apierrors "github.com/cvassist/task-api/internal/errors"
	"github.com/cvassist/task-api/internal/middleware"
	"github.com/cvassist/task-api/internal/services"
	"github.com/gin-gonic/gin"
)

// AccountHandler coordinates shared-account registry HTTP handlers.
// All routes are admin-gated.
type AccountHandler struct {
	accountService *services.AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService *services.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

func respondAccountError(c *gin.Context, err error) {
	var permErr *services.PermissionError
	var validationErr *services.ValidationError

	switch {
	case errors.As(err, &permErr):
		if permErr.Unauthenticated() {
			apierrors.Unauthenticated(c, permErr.Error())
			return
		}
		apierrors.PermissionDenied(c, permErr.Error())
	case errors.As(err, &validationErr):
		apierrors.InvalidArgumentWithDetails(c, validationErr.Error(), gin.H{
			"missing_fields": validationErr.MissingFields,
			"invalid_fields": validationErr.InvalidFields,
		})
	case errors.Is(err, services.ErrAccountNotFound):
		apierrors.NotFound(c, "Account not found")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}

func accountIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.InvalidArgument(c, "Invalid account ID")
		return 0, false
	}
	return id, true
}

// List returns every shared service account.
func (h *AccountHandler) List(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthenticated(c, "")
		return
	}

	accounts, err := h.accountService.List(user.Role)
	if err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accounts": dto.ToAccountDTOs(accounts)})
}

type accountRequest struct {
	Service       string `json:"service"`
	Username      string `json:"username"`
	CredentialRef string `json:"credential_ref"`
	Notes         string `json:"notes"`
}

func (r accountRequest) toInput() services.AccountInput {
	return services.AccountInput{
		Service:       r.Service,
		Username:      r.Username,
		CredentialRef: r.CredentialRef,
		Notes:         r.Notes,
	}
}

// Create registers a shared account.
func (h *AccountHandler) Create(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthenticated(c, "")
		return
	}

	var req accountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidArgument(c, "Invalid request body")
		return
	}

	account, err := h.accountService.Create(req.toInput(), user.Role)
	if err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountDTO(*account))
}

// Update edits a shared account.
func (h *AccountHandler) Update(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthenticated(c, "")
		return
	}

	id, ok := accountIDParam(c)
	if !ok {
		return
	}

	var req accountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidArgument(c, "Invalid request body")
		return
	}

	account, err := h.accountService.Update(id, req.toInput(), user.Role)
	if err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountDTO(*account))
}

// Delete removes a shared account from the registry.
func (h *AccountHandler) Delete(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthenticated(c, "")
		return
	}

	id, ok := accountIDParam(c)
	if !ok {
		return
	}

	if err := h.accountService.Delete(id, user.Role); err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}
