package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-content-platform/internal/application"
	"github.com/oksasatya/go-ddd-content-platform/internal/domain/entity"
	"github.com/oksasatya/go-ddd-content-platform/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-content-platform/pkg/response"
)

type MemberHandler struct {
	Svc    *application.MemberService
	Posts  *application.PostService
	Logger *logrus.Logger
}

func NewMemberHandler(svc *application.MemberService, posts *application.PostService, logger *logrus.Logger) *MemberHandler {
	return &MemberHandler{Svc: svc, Posts: posts, Logger: logger}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type updateProfileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// Register POST /api/members/register
func (h *MemberHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	v, err := h.Svc.Register(c.Request.Context(), application.RegisterMemberCommand{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Write(c, response.Success(c, http.StatusCreated, v, "member registered"))
}

// UpdateProfile PUT /api/members/profile
func (h *MemberHandler) UpdateProfile(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	v, err := h.Svc.UpdateProfile(c.Request.Context(), application.UpdateProfileCommand{
		MemberID: p.ID,
		Name:     req.Name,
		Email:    req.Email,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Write(c, response.Success(c, http.StatusOK, v, "profile updated"))
}

// Me GET /api/members/me
func (h *MemberHandler) Me(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	v, err := h.Svc.Get(c.Request.Context(), p.ID)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Write(c, response.Success(c, http.StatusOK, v, ""))
}

// Drafts GET /api/members/me/drafts lists the caller's unpublished posts.
func (h *MemberHandler) Drafts(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	pg, ok := bindPage(c)
	if !ok {
		return
	}
	published := false
	page, err := h.Posts.List(c.Request.Context(), application.ListPostsQuery{
		Published:  &published,
		AuthorID:   p.ID,
		Pagination: pg,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Write(c, response.Success(c, http.StatusOK, page, ""))
}

// List GET /api/admin/members
func (h *MemberHandler) List(c *gin.Context) {
	pg, ok := bindPage(c)
	if !ok {
		return
	}
	page, err := h.Svc.List(c.Request.Context(), pg)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Write(c, response.Success(c, http.StatusOK, page, ""))
}

// Deactivate PUT /api/admin/members/:id/deactivate
func (h *MemberHandler) Deactivate(c *gin.Context) { h.setActive(c, false) }

// Activate PUT /api/admin/members/:id/activate
func (h *MemberHandler) Activate(c *gin.Context) { h.setActive(c, true) }

func (h *MemberHandler) setActive(c *gin.Context, active bool) {
	v, err := h.Svc.SetActive(c.Request.Context(), application.SetMemberActiveCommand{
		MemberID: entity.MemberID(c.Param("id")),
		Active:   active,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	msg := "member deactivated"
	if active {
		msg = "member activated"
	}
	response.Write(c, response.Success(c, http.StatusOK, v, msg))
}
