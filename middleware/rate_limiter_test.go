package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newLimitedRouter(perMin int) *gin.Engine {
	r := gin.New()
	r.Use(RateLimitMiddleware(perMin))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pong": true})
	})
	return r
}

func doPing(r *gin.Engine, ip string) int {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Forwarded-For", ip)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitMiddleware_BurstThenReject(t *testing.T) {
	r := newLimitedRouter(2)

	assert.Equal(t, http.StatusOK, doPing(r, "10.1.1.1"))
	assert.Equal(t, http.StatusOK, doPing(r, "10.1.1.1"))
	assert.Equal(t, http.StatusTooManyRequests, doPing(r, "10.1.1.1"))
}

func TestRateLimitMiddleware_PerIPIsolation(t *testing.T) {
	r := newLimitedRouter(1)

	assert.Equal(t, http.StatusOK, doPing(r, "10.2.2.1"))
	assert.Equal(t, http.StatusTooManyRequests, doPing(r, "10.2.2.1"))
	// A different client keeps its own budget.
	assert.Equal(t, http.StatusOK, doPing(r, "10.2.2.2"))
}

func TestGetClientIP(t *testing.T) {
	r := gin.New()
	var got string
	r.GET("/ip", func(c *gin.Context) {
		got = getClientIP(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	r.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "203.0.113.7", got)

	req = httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.Header.Set("X-Real-IP", "203.0.113.9")
	r.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "203.0.113.9", got)

	req = httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.RemoteAddr = "192.0.2.4:51000"
	r.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "192.0.2.4", got)
}
