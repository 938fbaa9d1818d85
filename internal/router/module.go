package router

import "github.com/gin-gonic/gin"

// Module is one feature area (auth, members, posts, comments). It mounts
// its own routes and guards on the shared /api group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
