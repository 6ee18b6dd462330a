package services

import (
	"errors"
	"fmt"

	"github.com/cvassist/task-api/internal/authz"
	"github.com/cvassist/task-api/internal/models"
	"github.com/cvassist/task-api/internal/repository"
	"gorm.io/gorm"
)

// UserService handles staff directory operations.
type UserService struct {
	userRepo repository.UserRepository
	policy   *authz.Policy
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, policy *authz.Policy) *UserService {
	return &UserService{
		userRepo: userRepo,
		policy:   policy,
	}
}

// ListStaff returns all staff profiles for admin and manager.
func (s *UserService) ListStaff(actorRole models.Role) ([]models.User, error) {
	if decision := s.policy.Authorize(actorRole, authz.OpViewStaff, authz.Ownership{}); !decision.Allowed {
		return nil, &PermissionError{Decision: decision}
	}

	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}

	return users, nil
}

// ChangeRole updates a user's role. Admin only: this is the single
// sanctioned way a role changes after provisioning, and it takes effect
// on the target's next request because authorization always re-reads
// the profile row.
func (s *UserService) ChangeRole(targetID uint64, role models.Role, actorRole models.Role) (*models.User, error) {
	if decision := s.policy.Authorize(actorRole, authz.OpManageUsers, authz.Ownership{}); !decision.Allowed {
		return nil, &PermissionError{Decision: decision}
	}

	if err := s.userRepo.UpdateRole(targetID, role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	return s.userRepo.FindByID(targetID)
}

// ChangeStatus updates the caller's own availability status.
func (s *UserService) ChangeStatus(userID uint64, status models.UserStatus) (*models.User, error) {
	if err := s.userRepo.UpdateStatus(userID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	return s.userRepo.FindByID(userID)
}
