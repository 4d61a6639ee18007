package backend

import (
	"context"

	"github.com/sangkips/stockflow-dashboard/internal/domain/entity"
	domainRepo "github.com/sangkips/stockflow-dashboard/internal/domain/repository"
)

type authRepository struct {
	c *Client
}

// NewAuthRepository creates the auth repository backed by /auth
func NewAuthRepository(c *Client) domainRepo.AuthRepository {
	return &authRepository{c: c}
}

type userData struct {
	User entity.User `json:"user"`
}

type refreshBody struct {
	RefreshToken string `json:"refreshToken,omitempty"`
}

func (r *authRepository) Login(ctx context.Context, creds entity.Credentials) (*entity.AuthResult, error) {
	var out entity.AuthResult
	if err := r.c.post(ctx, "/auth/login", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *authRepository) Register(ctx context.Context, reg entity.Registration) (*entity.AuthResult, error) {
	var out entity.AuthResult
	if err := r.c.post(ctx, "/auth/register", reg, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *authRepository) Me(ctx context.Context) (*entity.User, error) {
	var out userData
	if err := r.c.get(ctx, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (r *authRepository) Refresh(ctx context.Context, refreshToken string) (*entity.AuthResult, error) {
	var out entity.AuthResult
	if err := r.c.post(ctx, "/auth/refresh", refreshBody{RefreshToken: refreshToken}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *authRepository) Logout(ctx context.Context, refreshToken string) error {
	return r.c.post(ctx, "/auth/logout", refreshBody{RefreshToken: refreshToken}, nil)
}

func (r *authRepository) LogoutAll(ctx context.Context) error {
	return r.c.post(ctx, "/auth/logout-all", nil, nil)
}
