package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cvassist/task-api/internal/authz"
	"github.com/cvassist/task-api/internal/models"
	"github.com/cvassist/task-api/internal/repository"
	"gorm.io/gorm"
)

var ErrAccountNotFound = errors.New("account not found")

// AccountService handles the external-service credential records. Every
// operation is admin-only.
type AccountService struct {
	accountRepo repository.AccountRepository
	policy      *authz.Policy
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo repository.AccountRepository, policy *authz.Policy) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		policy:      policy,
	}
}

// AccountInput represents an account create/update payload.
type AccountInput struct {
	Service       string
	Username      string
	CredentialRef string
	Notes         string
}

func (in AccountInput) validate() *ValidationError {
	verr := &ValidationError{}
	if strings.TrimSpace(in.Service) == "" {
		verr.MissingFields = append(verr.MissingFields, "service")
	}
	if strings.TrimSpace(in.Username) == "" {
		verr.MissingFields = append(verr.MissingFields, "username")
	}
	return verr
}

func (s *AccountService) authorize(actorRole models.Role) error {
	if decision := s.policy.Authorize(actorRole, authz.OpManageAccounts, authz.Ownership{}); !decision.Allowed {
		return &PermissionError{Decision: decision}
	}
	return nil
}

// List returns all account records.
func (s *AccountService) List(actorRole models.Role) ([]models.Account, error) {
	if err := s.authorize(actorRole); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	return accounts, nil
}

// Create adds an account record.
func (s *AccountService) Create(input AccountInput, actorRole models.Role) (*models.Account, error) {
	if err := s.authorize(actorRole); err != nil {
		return nil, err
	}

	if verr := input.validate(); !verr.empty() {
		return nil, verr
	}

	account := &models.Account{
		Service:       strings.TrimSpace(input.Service),
		Username:      strings.TrimSpace(input.Username),
		CredentialRef: strings.TrimSpace(input.CredentialRef),
		Notes:         input.Notes,
	}

	if err := s.accountRepo.Create(account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return account, nil
}

// Update edits an account record.
func (s *AccountService) Update(id uint64, input AccountInput, actorRole models.Role) (*models.Account, error) {
	if err := s.authorize(actorRole); err != nil {
		return nil, err
	}

	if verr := input.validate(); !verr.empty() {
		return nil, verr
	}

	account, err := s.accountRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	account.Service = strings.TrimSpace(input.Service)
	account.Username = strings.TrimSpace(input.Username)
	account.CredentialRef = strings.TrimSpace(input.CredentialRef)
	account.Notes = input.Notes

	if err := s.accountRepo.Update(account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	return account, nil
}

// Delete removes an account record.
func (s *AccountService) Delete(id uint64, actorRole models.Role) error {
	if err := s.authorize(actorRole); err != nil {
		return err
	}

	if _, err := s.accountRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("failed to find account: %w", err)
	}

	if err := s.accountRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	return nil
}
