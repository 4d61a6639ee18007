package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockflow-dashboard/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestSessionIDSources(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		cookie string
		auth   string
		want   string
	}{
		{"cookie", "abc", "", "abc"},
		{"cookie wins", "abc", "Bearer xyz", "abc"},
		{"bearer", "", "Bearer xyz", "xyz"},
		{"lowercase scheme", "", "bearer xyz", "xyz"},
		{"basic ignored", "", "Basic xyz", ""},
		{"nothing", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				c.Request.AddCookie(&http.Cookie{Name: "sid", Value: tt.cookie})
			}
			if tt.auth != "" {
				c.Request.Header.Set("Authorization", tt.auth)
			}
			assert.Equal(t, tt.want, sessionID(c, "sid"))
		})
	}
}

func TestRateLimiterRejectsBurstOverflow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewSessionRateLimiter(context.Background(), RateLimiterConfig{RequestsPerSecond: 0.001, BurstSize: 2})

	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
	assert.Equal(t, 1, rl.Stats()["active_clients"])
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewSessionRateLimiter(context.Background(), RateLimiterConfig{RequestsPerSecond: 1, BurstSize: 1, EntryTTL: time.Minute})
	rl.getLimiter("ip:1")
	rl.limiters["ip:1"].lastSeen = time.Now().Add(-2 * time.Minute)
	rl.getLimiter("ip:2")

	rl.cleanup()
	assert.Len(t, rl.limiters, 1)
	_, ok := rl.limiters["ip:2"]
	assert.True(t, ok)
}

func TestRateLimiterConfigFor(t *testing.T) {
	cfg := RateLimiterConfigFor(120, 60)
	assert.Equal(t, 2.0, cfg.RequestsPerSecond)
	assert.Equal(t, 120, cfg.BurstSize)

	assert.Equal(t, DefaultRateLimiterConfig(), RateLimiterConfigFor(0, 60))
}

func TestWithRequiredHeaders(t *testing.T) {
	got := withRequired([]string{"Origin", "content-type"}, requiredAllowHeaders)
	assert.Equal(t, []string{"Origin", "content-type", "Authorization", RequestIDHeader, IdempotencyKeyHeader}, got)
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		origins []string
		origin  string
		allowed bool
	}{
		{"configured origin", []string{"https://pos.example.com"}, "https://pos.example.com", true},
		{"other origin", []string{"https://pos.example.com"}, "https://evil.example.com", false},
		{"wildcard reflects", []string{"*"}, "https://anywhere.example.com", true},
		{"default dev origin", nil, "http://localhost:3000", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(CORSMiddleware(&config.CORSConfig{AllowedOrigins: tt.origins}))
			r.POST("/api/v1/pos/checkout", func(c *gin.Context) { c.Status(http.StatusCreated) })

			req := httptest.NewRequest(http.MethodOptions, "/api/v1/pos/checkout", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			req.Header.Set("Access-Control-Request-Headers", IdempotencyKeyHeader)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if !tt.allowed {
				assert.Equal(t, http.StatusForbidden, w.Code)
				return
			}
			assert.Equal(t, http.StatusNoContent, w.Code)
			assert.Equal(t, tt.origin, w.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		})
	}
}
