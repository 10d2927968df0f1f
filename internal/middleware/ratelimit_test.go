package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"team-project-api/internal/repository/mocks"
)

func newRateLimitedRouter(limiter *mocks.RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(RateLimit(limiter, 2, time.Minute))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestRateLimit(t *testing.T) {
	limiter := mocks.NewRateLimiter(t)
	limiter.On("CheckRateLimit", mock.Anything, "192.0.2.1", 2, time.Minute).Return(false, nil).Once()
	limiter.On("CheckRateLimit", mock.Anything, "192.0.2.1", 2, time.Minute).Return(true, nil).Once()
	router := newRateLimitedRouter(limiter)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:1234"

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
}

func TestRateLimit_LimiterErrorAllowsRequest(t *testing.T) {
	limiter := mocks.NewRateLimiter(t)
	limiter.On("CheckRateLimit", mock.Anything, mock.Anything, 2, time.Minute).Return(false, errors.New("redis down")).Once()
	router := newRateLimitedRouter(limiter)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit_InvalidArgumentsPanic(t *testing.T) {
	assert.Panics(t, func() { RateLimit(nil, 1, time.Second) })
	assert.Panics(t, func() { RateLimit(mocks.NewRateLimiter(t), 0, time.Second) })
	assert.Panics(t, func() { RateLimit(mocks.NewRateLimiter(t), 1, 0) })
}
