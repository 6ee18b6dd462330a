package dto

import (
	"time"

	"github.com/cvassist/task-api/internal/models"
)

// AccountDTO represents an external-service account record. The secured
// credential itself is never part of any response, only its reference.
type AccountDTO struct {
	ID            uint64    `json:"id"`
	Service       string    `json:"service"`
	Username      string    `json:"username"`
	CredentialRef string    `json:"credential_ref,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToAccountDTO converts an Account model to AccountDTO
func ToAccountDTO(account models.Account) AccountDTO {
	return AccountDTO{
		ID:            account.ID,
		Service:       account.Service,
		Username:      account.Username,
		CredentialRef: account.CredentialRef,
		Notes:         account.Notes,
		CreatedAt:     account.CreatedAt,
	}
}

// ToAccountDTOs converts a slice of accounts
func ToAccountDTOs(accounts []models.Account) []AccountDTO {
	dtos := make([]AccountDTO, len(accounts))
	for i, account := range accounts {
		dtos[i] = ToAccountDTO(account)
	}
	return dtos
}
