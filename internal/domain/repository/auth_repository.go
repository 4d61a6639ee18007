package repository

import (
	"context"

	"github.com/sangkips/stockflow-dashboard/internal/domain/entity"
)

// AuthRepository defines the backend authentication operations
type AuthRepository interface {
	Login(ctx context.Context, creds entity.Credentials) (*entity.AuthResult, error)
	Register(ctx context.Context, reg entity.Registration) (*entity.AuthResult, error)
	Me(ctx context.Context) (*entity.User, error)
	Refresh(ctx context.Context, refreshToken string) (*entity.AuthResult, error)
	Logout(ctx context.Context, refreshToken string) error
	LogoutAll(ctx context.Context) error
}

// DashboardRepository reads aggregated statistics
type DashboardRepository interface {
	Stats(ctx context.Context) (*entity.DashboardStats, error)
}
