package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-content-platform/internal/domain/entity"
	handlers "github.com/oksasatya/go-ddd-content-platform/internal/interface/http"
	"github.com/oksasatya/go-ddd-content-platform/internal/interface/middleware"
)

type CommentModule struct {
	Handler *handlers.CommentHandler
	Guard   middleware.Authorizer
}

func NewCommentModule(h *handlers.CommentHandler, g middleware.Authorizer) *CommentModule {
	return &CommentModule{Handler: h, Guard: g}
}

func (m *CommentModule) Register(rg *gin.RouterGroup) {
	member := middleware.Guard(m.Guard, entity.RoleMember)

	rg.GET("/posts/:id/comments", m.Handler.List)
	rg.POST("/posts/:id/comments", member, m.Handler.Create)
	rg.PUT("/comments/:id", member, m.Handler.Update)
	rg.DELETE("/comments/:id", member, m.Handler.Delete)
}
