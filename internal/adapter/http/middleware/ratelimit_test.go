package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	redisStore "brokerwallet/internal/adapter/storage/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func newRateLimitTestRouter(t *testing.T, rule RateLimitRule) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := redisStore.NewRateLimitStore(client)

	router := gin.New()
	router.GET("/test", RateLimiter(store, "test", rule, zerolog.Nop()), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	return router, mr
}

func TestRateLimiter_AllowsWithinLimit(t *testing.T) {
	router, _ := newRateLimitTestRouter(t, RateLimitRule{Limit: 3, Window: time.Minute})

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	router, _ := newRateLimitTestRouter(t, RateLimitRule{Limit: 2, Window: time.Minute})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimiter_SetsHeaders(t *testing.T) {
	router, _ := newRateLimitTestRouter(t, RateLimitRule{Limit: 5, Window: time.Minute})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("X-RateLimit-Reset"))
}

func TestRateLimiter_DegradedModeAllowsOnStoreError(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	store := redisStore.NewRateLimitStore(client)

	router := gin.New()
	router.GET("/test", RateLimiter(store, "test", RateLimitRule{Limit: 1, Window: time.Minute}, zerolog.Nop()), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	// Kill the backing store; requests must still pass.
	mr.Close()
	_ = client.Close()

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiter_PerUserIsolation(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := redisStore.NewRateLimitStore(client)

	userA := "11111111-1111-1111-1111-111111111111"
	userB := "22222222-2222-2222-2222-222222222222"

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		res, err := store.Allow(ctx, userA+":withdraw", 2, time.Minute)
		assert.NoError(t, err)
		assert.True(t, res.Allowed)
	}

	// userA exhausted, userB untouched
	resA, err := store.Allow(ctx, userA+":withdraw", 2, time.Minute)
	assert.NoError(t, err)
	assert.False(t, resA.Allowed)

	resB, err := store.Allow(ctx, userB+":withdraw", 2, time.Minute)
	assert.NoError(t, err)
	assert.True(t, resB.Allowed)
}
