package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-ddd-content-platform/internal/interface/http"
)

// AuthModule: POST /api/auth/login, /api/auth/refresh, /api/auth/logout
type AuthModule struct {
	Handler *handlers.AuthHandler
	Limits  Limits
}

func NewAuthModule(h *handlers.AuthHandler, limits Limits) *AuthModule {
	return &AuthModule{Handler: h, Limits: limits}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/login", m.Limits.limiter(m.Limits.Login), m.Handler.Login)
	auth.POST("/refresh", m.Handler.Refresh)
	auth.POST("/logout", m.Handler.Logout)
}
