package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestTokenBucketPerIPLimitsBursts(t *testing.T) {
	t.Setenv("RATE_LIMIT_RPS", "1")
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(TokenBucketPerIP())
	router.GET("/ping", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want %d", first.Code, http.StatusOK)
	}

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("burst request status = %d, want %d", second.Code, http.StatusTooManyRequests)
	}
	if !strings.Contains(second.Body.String(), "too many requests from this address") {
		t.Errorf("limited response body = %q", second.Body.String())
	}
}
