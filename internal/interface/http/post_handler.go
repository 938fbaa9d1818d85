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

type PostHandler struct {
	Svc    *application.PostService
	Logger *logrus.Logger
}

func NewPostHandler(svc *application.PostService, logger *logrus.Logger) *PostHandler {
	return &PostHandler{Svc: svc, Logger: logger}
}

type createPostRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// updatePostRequest leaves absent fields untouched.
type updatePostRequest struct {
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	Tags    *[]string `json:"tags"`
}

type listPostsQuery struct {
	AuthorID string `form:"author_id"`
}

type searchQuery struct {
	Q string `form:"q"`
}

// Create POST /api/posts
func (h *PostHandler) Create(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	v, err := h.Svc.Create(c.Request.Context(), application.CreatePostCommand{
		AuthorID: p.ID,
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Write(c, response.Success(c, http.StatusCreated, v, "post created"))
}

// Update PUT /api/posts/:id
func (h *PostHandler) Update(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	cmd := application.UpdatePostCommand{
		PostID:      entity.PostID(c.Param("id")),
		RequesterID: p.ID,
		Title:       req.Title,
		Content:     req.Content,
	}
	if req.Tags != nil {
		cmd.Tags = *req.Tags
		if cmd.Tags == nil {
			cmd.Tags = []string{}
		}
	}
	v, err := h.Svc.Update(c.Request.Context(), cmd)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Write(c, response.Success(c, http.StatusOK, v, "post updated"))
}

// Publish PUT /api/posts/:id/publish
func (h *PostHandler) Publish(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	v, err := h.Svc.Publish(c.Request.Context(), application.PostActionCommand{
		PostID:      entity.PostID(c.Param("id")),
		RequesterID: p.ID,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Write(c, response.Success(c, http.StatusOK, v, "post published"))
}

// Delete DELETE /api/posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	err := h.Svc.Delete(c.Request.Context(), application.PostActionCommand{
		PostID:      entity.PostID(c.Param("id")),
		RequesterID: p.ID,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Write(c, response.Success[any](c, http.StatusOK, nil, "post deleted"))
}

// Get GET /api/posts/:id counts a view.
func (h *PostHandler) Get(c *gin.Context) {
	v, err := h.Svc.Get(c.Request.Context(), entity.PostID(c.Param("id")))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Write(c, response.Success(c, http.StatusOK, v, ""))
}

// List GET /api/posts lists published posts, newest first.
func (h *PostHandler) List(c *gin.Context) {
	pg, ok := bindPage(c)
	if !ok {
		return
	}
	var q listPostsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBindError(c, err)
		return
	}
	page, err := h.Svc.List(c.Request.Context(), application.ListPostsQuery{
		AuthorID:   entity.MemberID(q.AuthorID),
		Pagination: pg,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Write(c, response.Success(c, http.StatusOK, page, ""))
}

// Search GET /api/search/posts?q=
func (h *PostHandler) Search(c *gin.Context) {
	pg, ok := bindPage(c)
	if !ok {
		return
	}
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBindError(c, err)
		return
	}
	page, err := h.Svc.Search(c.Request.Context(), q.Q, pg)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Write(c, response.Success(c, http.StatusOK, page, ""))
}
