package request

import "github.com/sangkips/stockflow-dashboard/internal/domain/enum"

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string        `json:"email" binding:"required,email"`
	Password string        `json:"password" binding:"required,min=6"`
	Name     string        `json:"name" binding:"required,min=2,max=255"`
	Role     enum.UserRole `json:"role" binding:"omitempty,oneof=OWNER MANAGER TECHNICIAN"`
}
