package entity

import (
	"time"

	"github.com/sangkips/stockflow-dashboard/internal/domain/enum"
)

// User is a dashboard operator as returned by the backend
type User struct {
	ID        string        `json:"id" validate:"required"`
	Email     string        `json:"email" validate:"required"`
	Name      string        `json:"name"`
	Role      enum.UserRole `json:"role" validate:"required"`
	IsActive  bool          `json:"isActive"`
	CreatedAt time.Time     `json:"createdAt"`
}

// UserRef is the short user reference embedded in sales and stock logs
type UserRef struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// AuthResult is the payload of login, register and refresh
type AuthResult struct {
	User         User   `json:"user"`
	Token        string `json:"token" validate:"required"`
	RefreshToken string `json:"refreshToken"`
}

// Credentials is the login request body
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the register request body
type Registration struct {
	Email    string        `json:"email"`
	Password string        `json:"password"`
	Name     string        `json:"name"`
	Role     enum.UserRole `json:"role"`
}
