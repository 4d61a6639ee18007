package middleware

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockflow-dashboard/internal/config"
)

// Headers the dashboard itself depends on, added to whatever is configured
var (
	requiredAllowHeaders = []string{"Content-Type", "Authorization", RequestIDHeader, IdempotencyKeyHeader}
	exposedHeaders       = []string{
		"Content-Disposition",
		RequestIDHeader,
		IdempotencyReplayedHeader,
		"X-RateLimit-Limit",
		"X-RateLimit-Remaining",
		"Retry-After",
	}
)

// CORSMiddleware allows the dashboard front end to call the API with its
// session cookie. A "*" origin reflects the caller's origin, since
// credentialed requests cannot use a wildcard.
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     withRequired(cfg.AllowedHeaders, requiredAllowHeaders),
		ExposeHeaders:    exposedHeaders,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	switch {
	case slices.Contains(cfg.AllowedOrigins, "*"):
		corsConfig.AllowOriginFunc = func(string) bool { return true }
	case len(cfg.AllowedOrigins) == 0:
		corsConfig.AllowOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	default:
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}

	if len(corsConfig.AllowMethods) == 0 {
		corsConfig.AllowMethods = []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		}
	}

	return cors.New(corsConfig)
}

func withRequired(headers, required []string) []string {
	out := slices.Clone(headers)
	for _, h := range required {
		if !slices.ContainsFunc(out, func(v string) bool { return strings.EqualFold(v, h) }) {
			out = append(out, h)
		}
	}
	return out
}
