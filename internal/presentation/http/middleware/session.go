package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockflow-dashboard/internal/application/service"
	"github.com/sangkips/stockflow-dashboard/internal/infrastructure/backend"
	"github.com/sangkips/stockflow-dashboard/internal/presentation/http/dto/response"
	"github.com/sangkips/stockflow-dashboard/pkg/apperror"
)

const (
	// SessionKey is the gin context key holding the *service.Session
	SessionKey = "session"
	// UserIDKey is the gin context key holding the signed-in operator's ID
	UserIDKey = "user_id"
)

// SessionRestorer resolves a session ID to a live session
type SessionRestorer interface {
	Restore(ctx context.Context, id string) (*service.Session, error)
}

// SessionCookie describes the cookie carrying the session ID
type SessionCookie struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

// Set writes the session cookie
func (sc SessionCookie) Set(c *gin.Context, sessionID string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sc.Name, sessionID, int(sc.MaxAge.Seconds()), "/", "", sc.Secure, true)
}

// Clear expires the session cookie
func (sc SessionCookie) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sc.Name, "", -1, "/", "", sc.Secure, true)
}

// SessionAuth requires a live session. The session ID comes from the cookie,
// or from an Authorization: Bearer header for non-browser clients. Backend
// calls made while handling the request carry the session's token.
func SessionAuth(sessions SessionRestorer, cookie SessionCookie) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(response.ClearSessionKey, cookie.Clear)

		id := sessionID(c, cookie.Name)
		if id == "" {
			response.Unauthenticated(c, "Not authenticated")
			c.Abort()
			return
		}

		sess, err := sessions.Restore(c.Request.Context(), id)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(SessionKey, sess)
		c.Set(UserIDKey, sess.User().ID)
		c.Request = c.Request.WithContext(backend.WithTokens(c.Request.Context(), sess))
		c.Next()
	}
}

func sessionID(c *gin.Context, cookieName string) string {
	if v, err := c.Cookie(cookieName); err == nil && v != "" {
		return v
	}
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// GetSession returns the session attached by SessionAuth, or nil
func GetSession(c *gin.Context) *service.Session {
	v, ok := c.Get(SessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*service.Session)
	return sess
}

// RequireSession answers 401 unless the request carries a session
func RequireSession(c *gin.Context) (*service.Session, bool) {
	sess := GetSession(c)
	if sess == nil || !sess.Valid() {
		response.Error(c, apperror.ErrUnauthorized)
		return nil, false
	}
	return sess, true
}
