package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-content-platform/internal/domain/entity"
	handlers "github.com/oksasatya/go-ddd-content-platform/internal/interface/http"
	"github.com/oksasatya/go-ddd-content-platform/internal/interface/middleware"
)

type PostModule struct {
	Handler *handlers.PostHandler
	Guard   middleware.Authorizer
}

func NewPostModule(h *handlers.PostHandler, g middleware.Authorizer) *PostModule {
	return &PostModule{Handler: h, Guard: g}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	member := middleware.Guard(m.Guard, entity.RoleMember)
	authed := middleware.Authenticated(m.Guard)

	rg.GET("/posts", m.Handler.List)
	rg.GET("/posts/:id", m.Handler.Get)
	rg.GET("/search/posts", m.Handler.Search)

	rg.POST("/posts", member, m.Handler.Create)
	rg.PUT("/posts/:id", member, m.Handler.Update)
	rg.PUT("/posts/:id/publish", authed, m.Handler.Publish)
	rg.DELETE("/posts/:id", authed, m.Handler.Delete)
}
