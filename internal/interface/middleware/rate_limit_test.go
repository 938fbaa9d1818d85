package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimitWithoutRedisIsNoop(t *testing.T) {
	r := gin.New()
	r.POST("/login", RateLimit(nil, 1, time.Minute, KeyByIPAndPath(), nil), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: code = %d", i, w.Code)
		}
	}
}

func TestKeyByIPAndPathUsesRoutePattern(t *testing.T) {
	var key string
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("real_ip", "198.51.100.9")
		c.Next()
	})
	r.GET("/posts/:id", func(c *gin.Context) { key = KeyByIPAndPath()(c) })
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/posts/42", nil))
	if key != "rl:path:/posts/:id:ip:198.51.100.9" {
		t.Fatalf("key = %q", key)
	}
}

func TestAllowPrivateIP(t *testing.T) {
	allow := AllowPrivateIP()
	for ip, want := range map[string]bool{"127.0.0.1": true, "10.1.2.3": true, "192.168.0.5": true, "8.8.8.8": false} {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Set("real_ip", ip)
		if got := allow(c); got != want {
			t.Errorf("AllowPrivateIP(%s) = %v, want %v", ip, got, want)
		}
	}
}
