package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(limiter *Limiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(limiter.Middleware())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router
}

func get(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLimiterRejectsWhenBucketEmpty(t *testing.T) {
	router := newTestRouter(New(1, 2))

	if w := get(router, "10.0.0.1:1234"); w.Code != http.StatusOK {
		t.Fatalf("first request = %d, want 200", w.Code)
	}
	if w := get(router, "10.0.0.1:1234"); w.Code != http.StatusOK {
		t.Fatalf("second request = %d, want 200 within burst", w.Code)
	}
	if w := get(router, "10.0.0.1:1234"); w.Code != http.StatusTooManyRequests {
		t.Fatalf("third request = %d, want 429", w.Code)
	}
}

func TestLimiterTracksClientsSeparately(t *testing.T) {
	router := newTestRouter(New(1, 1))

	if w := get(router, "10.0.0.1:1234"); w.Code != http.StatusOK {
		t.Fatalf("client A = %d, want 200", w.Code)
	}
	if w := get(router, "10.0.0.1:1234"); w.Code != http.StatusTooManyRequests {
		t.Fatalf("client A repeat = %d, want 429", w.Code)
	}
	if w := get(router, "10.0.0.2:1234"); w.Code != http.StatusOK {
		t.Fatalf("client B = %d, want 200; buckets must be per client", w.Code)
	}
}
