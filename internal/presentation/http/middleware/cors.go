package middleware

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/config"
)

var (
	defaultOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}
	defaultMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	defaultHeaders = []string{"Accept", "Content-Type", "Origin", RequestIDHeader}
	// the back-office screens send these, so they are always allowed
	requiredHeaders = []string{IdempotencyKeyHeader, RequestIDHeader}
)

// CORSMiddleware creates a CORS middleware with the provided configuration.
// Empty lists fall back to the local front-end defaults.
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	headers := orDefault(cfg.AllowedHeaders, defaultHeaders)
	for _, h := range requiredHeaders {
		if !slices.Contains(headers, h) {
			headers = append(headers, h)
		}
	}

	return cors.New(cors.Config{
		AllowOrigins:     orDefault(cfg.AllowedOrigins, defaultOrigins),
		AllowMethods:     orDefault(cfg.AllowedMethods, defaultMethods),
		AllowHeaders:     headers,
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", RequestIDHeader, "X-Idempotency-Replayed"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

func orDefault(values, fallback []string) []string {
	if len(values) == 0 {
		return slices.Clone(fallback)
	}
	return slices.Clone(values)
}
