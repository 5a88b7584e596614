package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/entity"
)

type memoryIdempotencyRepo struct {
	mu   sync.Mutex
	keys map[string]*entity.IdempotencyKey
}

func newMemoryIdempotencyRepo() *memoryIdempotencyRepo {
	return &memoryIdempotencyRepo{keys: map[string]*entity.IdempotencyKey{}}
}

func (r *memoryIdempotencyRepo) GetByKey(_ context.Context, endpoint, key string) (*entity.IdempotencyKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.keys[endpoint+"|"+key], nil
}

func (r *memoryIdempotencyRepo) Create(_ context.Context, ikey *entity.IdempotencyKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys[ikey.Endpoint+"|"+ikey.Key] = ikey
	return nil
}

func (r *memoryIdempotencyRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for k, v := range r.keys {
		if v.IsExpired(now) {
			delete(r.keys, k)
			n++
		}
	}
	return n, nil
}

func idempotentRouter(repo *memoryIdempotencyRepo, now *time.Time, calls *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/payments", Idempotency(IdempotencyConfig{
		Repo: repo,
		TTL:  time.Hour,
		Now:  func() time.Time { return *now },
	}), func(c *gin.Context) {
		*calls++
		var body struct{ Amount int }
		if err := c.ShouldBindJSON(&body); err != nil || body.Amount <= 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "call": *calls})
	})
	return r
}

func post(r *gin.Engine, body, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestIdempotencyReplaysSuccess(t *testing.T) {
	repo := newMemoryIdempotencyRepo()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	calls := 0
	r := idempotentRouter(repo, &now, &calls)

	first := post(r, `{"amount":50}`, "k1")
	require.Equal(t, http.StatusCreated, first.Code)

	second := post(r, `{"amount":50}`, "k1")
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, calls)
}

func TestIdempotencyRejectsDifferentBody(t *testing.T) {
	repo := newMemoryIdempotencyRepo()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	calls := 0
	r := idempotentRouter(repo, &now, &calls)

	require.Equal(t, http.StatusCreated, post(r, `{"amount":50}`, "k1").Code)

	rec := post(r, `{"amount":60}`, "k1")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, 1, calls)
}

func TestIdempotencyDoesNotStoreFailures(t *testing.T) {
	repo := newMemoryIdempotencyRepo()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	calls := 0
	r := idempotentRouter(repo, &now, &calls)

	assert.Equal(t, http.StatusUnprocessableEntity, post(r, `{"amount":0}`, "k1").Code)
	assert.Equal(t, http.StatusUnprocessableEntity, post(r, `{"amount":0}`, "k1").Code)
	assert.Equal(t, 2, calls)
	assert.Empty(t, repo.keys)
}

func TestIdempotencyKeyExpires(t *testing.T) {
	repo := newMemoryIdempotencyRepo()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	calls := 0
	r := idempotentRouter(repo, &now, &calls)

	require.Equal(t, http.StatusCreated, post(r, `{"amount":50}`, "k1").Code)

	now = now.Add(2 * time.Hour)
	rec := post(r, `{"amount":50}`, "k1")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, 2, calls)
}

func TestIdempotencyWithoutKey(t *testing.T) {
	repo := newMemoryIdempotencyRepo()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	calls := 0
	r := idempotentRouter(repo, &now, &calls)

	post(r, `{"amount":50}`, "")
	post(r, `{"amount":50}`, "")
	assert.Equal(t, 2, calls)

	rec := post(r, `{"amount":50}`, strings.Repeat("x", 300))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
