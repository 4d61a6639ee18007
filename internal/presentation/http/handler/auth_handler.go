package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockflow-dashboard/internal/application/service"
	"github.com/sangkips/stockflow-dashboard/internal/presentation/http/dto/request"
	"github.com/sangkips/stockflow-dashboard/internal/presentation/http/dto/response"
	"github.com/sangkips/stockflow-dashboard/internal/presentation/http/middleware"
)

// AuthHandler handles sign-in, sign-out and the session cookie
type AuthHandler struct {
	sessions *service.SessionManager
	cookie   middleware.SessionCookie
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessions *service.SessionManager, cookie middleware.SessionCookie) *AuthHandler {
	return &AuthHandler{sessions: sessions, cookie: cookie}
}

func sessionBody(sess *service.Session) gin.H {
	return gin.H{
		"user":      sess.User(),
		"expiresAt": sess.ExpiresAt(),
	}
}

// Login handles operator login
// @Summary Login
// @Description Authenticate against the backend and open a dashboard session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Login credentials"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	sess, err := h.sessions.Login(c.Request.Context(), &service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.cookie.Set(c, sess.ID)
	response.OK(c, "Login successful", sessionBody(sess))
}

// Register handles operator registration
// @Summary Register
// @Description Create an operator account and sign it in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.RegisterRequest true "Registration data"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req request.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	sess, err := h.sessions.Register(c.Request.Context(), &service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     req.Role,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.cookie.Set(c, sess.ID)
	response.Created(c, "Registration successful", sessionBody(sess))
}

// Me returns the signed-in operator, re-read from the backend
func (h *AuthHandler) Me(c *gin.Context) {
	sess, ok := GetSession(c)
	if !ok {
		return
	}

	user, err := h.sessions.RefreshUser(c.Request.Context(), sess)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "User retrieved successfully", user)
}

// Refresh exchanges the session's refresh token for a new pair
func (h *AuthHandler) Refresh(c *gin.Context) {
	sess, ok := GetSession(c)
	if !ok {
		return
	}

	if err := h.sessions.RefreshTokens(c.Request.Context(), sess); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Session refreshed", sessionBody(sess))
}

// Logout ends the current session
func (h *AuthHandler) Logout(c *gin.Context) {
	sess, ok := GetSession(c)
	if !ok {
		return
	}

	if err := h.sessions.Logout(c.Request.Context(), sess); err != nil {
		response.Error(c, err)
		return
	}
	h.cookie.Clear(c)
	response.OK(c, "Logged out successfully", gin.H{"redirect": response.LoginPath})
}

// LogoutAll signs the operator out everywhere
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	sess, ok := GetSession(c)
	if !ok {
		return
	}

	if err := h.sessions.LogoutAll(c.Request.Context(), sess); err != nil {
		response.Error(c, err)
		return
	}
	h.cookie.Clear(c)
	response.OK(c, "Logged out from all sessions", gin.H{"redirect": response.LoginPath})
}
