package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-content-platform/internal/domain/entity"
	handlers "github.com/oksasatya/go-ddd-content-platform/internal/interface/http"
	"github.com/oksasatya/go-ddd-content-platform/internal/interface/middleware"
)

// MemberModule wires registration, the caller's profile and the admin
// member endpoints.
type MemberModule struct {
	Handler *handlers.MemberHandler
	Guard   middleware.Authorizer
	Limits  Limits
}

func NewMemberModule(h *handlers.MemberHandler, g middleware.Authorizer, limits Limits) *MemberModule {
	return &MemberModule{Handler: h, Guard: g, Limits: limits}
}

func (m *MemberModule) Register(rg *gin.RouterGroup) {
	members := rg.Group("/members")
	members.POST("/register", m.Limits.limiter(m.Limits.Register), m.Handler.Register)
	members.PUT("/profile", middleware.Guard(m.Guard, entity.RoleMember), m.Handler.UpdateProfile)

	me := members.Group("/me", middleware.Authenticated(m.Guard))
	{
		me.GET("", m.Handler.Me)
		me.GET("/drafts", m.Handler.Drafts)
	}

	admin := rg.Group("/admin", middleware.Guard(m.Guard, entity.RoleAdmin))
	{
		admin.GET("/members", m.Handler.List)
		admin.PUT("/members/:id/deactivate", m.Handler.Deactivate)
		admin.PUT("/members/:id/activate", m.Handler.Activate)
	}
}
