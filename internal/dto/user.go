package dto

import (
	"time"

	"github.com/cvassist/task-api/internal/models"
)

// UserDTO represents a staff member in API responses
type UserDTO struct {
	ID        uint64            `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Role      models.Role       `json:"role"`
	Status    models.UserStatus `json:"status"`
	Workplace string            `json:"workplace,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Status:    user.Status,
		Workplace: user.Workplace,
		CreatedAt: user.CreatedAt,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = ToUserDTO(user)
	}
	return dtos
}
