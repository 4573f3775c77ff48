package dto

import (
	"time"

	"github.com/visipakalpojumi/backend/internal/models"
)

type UserResponse struct {
	ID                string            `json:"id"`
	Email             string            `json:"email"`
	Role              models.UserRole   `json:"role"`
	Status            models.UserStatus `json:"status"`
	FirstName         string            `json:"first_name"`
	LastName          string            `json:"last_name"`
	Phone             string            `json:"phone"`
	IsVerified        bool              `json:"is_verified"`
	IsProfileVerified bool              `json:"is_profile_verified"`
	CreatedAt         time.Time         `json:"created_at"`
}

func ToUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:                user.ID,
		Email:             user.Email,
		Role:              user.Role,
		Status:            user.Status,
		FirstName:         user.FirstName,
		LastName:          user.LastName,
		Phone:             user.Phone,
		IsVerified:        user.IsVerified,
		IsProfileVerified: user.IsProfileVerified,
		CreatedAt:         user.CreatedAt,
	}
}

type UpdateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}
