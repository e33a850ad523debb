package response

import (
	"time"

	"sigac-rental/internal/data/entity"
)

// AuthResponse is returned by login and refresh. Tokens travel in cookies; expiry is exposed for clients.
type AuthResponse struct {
	User             UserResponse `json:"user"`
	AccessExpiresAt  time.Time    `json:"access_expires_at"`
	RefreshExpiresAt time.Time    `json:"refresh_expires_at"`
}

type UserResponse struct {
	CPF           string          `json:"cpf"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Phone         *string         `json:"phone,omitempty"`
	Role          entity.UserRole `json:"role"`
	DriverLicense *string         `json:"driver_license,omitempty"`
	Position      *string         `json:"position,omitempty"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Helper converters
func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		CPF:           user.CPF,
		Name:          user.Name,
		Email:         user.Email,
		Phone:         user.Phone,
		Role:          user.Role,
		DriverLicense: user.DriverLicense,
		Position:      user.Position,
		IsActive:      user.IsActive,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}
