package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testContext() *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c
}

func TestGetClientIPFromRemoteAddr(t *testing.T) {
	c := testContext()
	c.Request.RemoteAddr = "10.0.0.1:4321"
	assert.Equal(t, "10.0.0.1", getClientIP(c))
}

func TestGetClientIPPrefersForwardedFor(t *testing.T) {
	c := testContext()
	c.Request.RemoteAddr = "10.0.0.1:4321"
	c.Request.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", getClientIP(c))
}

func TestGetClientIPFallsBackToRealIP(t *testing.T) {
	c := testContext()
	c.Request.RemoteAddr = "10.0.0.1:4321"
	c.Request.Header.Set("X-Real-IP", "198.51.100.2")
	assert.Equal(t, "198.51.100.2", getClientIP(c))
}
