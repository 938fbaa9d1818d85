package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-content-platform/internal/application"
	"github.com/oksasatya/go-ddd-content-platform/internal/domain/entity"
	"github.com/oksasatya/go-ddd-content-platform/pkg/response"
)

const (
	CtxPrincipalKey = "principal"
	CtxUserIDKey    = "userID"
)

// Authorizer is satisfied by *application.Guard.
type Authorizer interface {
	Authorize(ctx context.Context, authHeader string, required entity.Role) (application.Principal, error)
}

// Guard authenticates the bearer token and, when role is not empty,
// requires exactly that role. The principal is stored in the context for
// handlers; rejected requests never reach them.
func Guard(g Authorizer, role entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := g.Authorize(c.Request.Context(), c.GetHeader("Authorization"), role)
		if err != nil {
			abortRejected(c, err)
			return
		}
		c.Set(CtxPrincipalKey, p)
		c.Set(CtxUserIDKey, p.ID.String())
		c.Next()
	}
}

// Authenticated requires a valid token with any role.
func Authenticated(g Authorizer) gin.HandlerFunc { return Guard(g, "") }

func abortRejected(c *gin.Context, err error) {
	var rej *application.RejectError
	if !errors.As(err, &rej) {
		response.Abort(c, response.Error(c, http.StatusInternalServerError, "authorization failed", "INTERNAL", nil))
		return
	}
	status, msg, code := http.StatusUnauthorized, "authentication required", "UNAUTHENTICATED"
	if rej.Forbidden() {
		status, msg, code = http.StatusForbidden, "insufficient permissions", "FORBIDDEN"
	} else {
		c.Header("WWW-Authenticate", `Bearer realm="api"`)
	}
	response.Abort(c, response.Error(c, status, msg, code, map[string]any{"reason": rej.Reason}))
}

// PrincipalFrom returns the principal stored by Guard.
func PrincipalFrom(c *gin.Context) (application.Principal, bool) {
	v, ok := c.Get(CtxPrincipalKey)
	if !ok {
		return application.Principal{}, false
	}
	p, ok := v.(application.Principal)
	return p, ok
}
