package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-ddd-content-platform/internal/interface/middleware"
)

// Limits configures the per-IP limiters on unauthenticated write routes.
// A nil Redis disables limiting.
type Limits struct {
	Redis        *redis.Client
	Login        int
	Register     int
	Window       time.Duration
	AllowPrivate bool
}

func (l Limits) limiter(max int) gin.HandlerFunc {
	var allow middleware.AllowFunc
	if l.AllowPrivate {
		allow = middleware.AllowPrivateIP()
	}
	return middleware.RateLimit(l.Redis, max, l.Window, middleware.KeyByIPAndPath(), allow)
}
