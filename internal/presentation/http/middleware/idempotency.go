package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/entity"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/repository"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/logger"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/presentation/http/dto/response"
	"github.com/VictorHFerreira016/parkmoveis-sistema/pkg/apperror"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// DefaultIdempotencyTTL is used when the config leaves the TTL unset
	DefaultIdempotencyTTL = 24 * time.Hour

	maxIdempotencyKeyLen = 255
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
	TTL  time.Duration
	Now  func() time.Time
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency replays the stored response when a request repeats an
// Idempotency-Key on the same endpoint. Reusing a key with a different body
// is a conflict. Only 2xx responses are stored, so a rejected request can be
// retried with the same key.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	if config.TTL <= 0 {
		config.TTL = DefaultIdempotencyTTL
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLen {
			response.BadRequest(c, "Idempotency-Key is too long")
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		log := logger.WithContext(ctx)

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.BadRequest(c, "Failed to read request body")
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		sum := sha256.Sum256(body)
		requestHash := hex.EncodeToString(sum[:])
		endpoint := c.Request.Method + " " + c.Request.URL.Path
		now := config.Now()

		existing, err := config.Repo.GetByKey(ctx, endpoint, key)
		if err != nil {
			response.Error(c, apperror.NewPersistenceError("idempotency lookup", err))
			c.Abort()
			return
		}

		if existing != nil && !existing.IsExpired(now) {
			if existing.RequestHash != requestHash {
				response.Error(c, apperror.NewConflictError("Idempotency-Key was already used with a different request"))
				c.Abort()
				return
			}
			log.Debug().Str("endpoint", endpoint).Str("key", key).Msg("replaying idempotent response")
			c.Header("X-Idempotency-Replayed", "true")
			c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
			c.Abort()
			return
		}

		blw := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		ikey := &entity.IdempotencyKey{
			Key:          key,
			Endpoint:     endpoint,
			RequestHash:  requestHash,
			ResponseCode: status,
			ResponseBody: blw.body.String(),
			ExpiresAt:    now.Add(config.TTL),
		}
		if err := config.Repo.Create(ctx, ikey); err != nil {
			log.Error().Err(err).Str("endpoint", endpoint).Msg("failed to store idempotency key")
		}
	}
}
