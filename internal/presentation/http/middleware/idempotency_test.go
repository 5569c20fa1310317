package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/salonhq/salon-api/internal/domain/entity"
	"github.com/salonhq/salon-api/internal/infrastructure/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newIdempotencyRouter(t *testing.T, handler gin.HandlerFunc) (*gin.Engine, uuid.UUID) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&entity.IdempotencyKey{}))

	userID := uuid.New()
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	router.POST("/finalize", IdempotencyRequired(IdempotencyConfig{
		Repo: repository.NewIdempotencyRepository(db),
	}), handler)

	return router, userID
}

func postFinalize(router *gin.Engine, key string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/finalize", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestIdempotencyRequired_MissingKey(t *testing.T) {
	router, _ := newIdempotencyRouter(t, func(c *gin.Context) {
		c.JSON(201, gin.H{"ok": true})
	})

	w := postFinalize(router, "")
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "Idempotency-Key header is required")
}

func TestIdempotencyRequired_ReplaysCachedResponse(t *testing.T) {
	calls := 0
	router, _ := newIdempotencyRouter(t, func(c *gin.Context) {
		calls++
		c.JSON(201, gin.H{"invoice": calls})
	})

	first := postFinalize(router, "key-1")
	assert.Equal(t, 201, first.Code)
	assert.Empty(t, first.Header().Get("X-Idempotency-Replayed"))

	second := postFinalize(router, "key-1")
	assert.Equal(t, 201, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, calls)

	// A different key runs the handler again.
	third := postFinalize(router, "key-2")
	assert.Equal(t, 201, third.Code)
	assert.Equal(t, 2, calls)
}

func TestIdempotencyRequired_FailuresNotCached(t *testing.T) {
	calls := 0
	router, _ := newIdempotencyRouter(t, func(c *gin.Context) {
		calls++
		if calls == 1 {
			c.JSON(422, gin.H{"error": "insufficient stock"})
			return
		}
		c.JSON(201, gin.H{"ok": true})
	})

	first := postFinalize(router, "retry-key")
	assert.Equal(t, 422, first.Code)

	// The failure was not cached, so the retry reaches the handler.
	second := postFinalize(router, "retry-key")
	assert.Equal(t, 201, second.Code)
	assert.Equal(t, 2, calls)
}
