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

type CommentHandler struct {
	Svc    *application.CommentService
	Logger *logrus.Logger
}

func NewCommentHandler(svc *application.CommentService, logger *logrus.Logger) *CommentHandler {
	return &CommentHandler{Svc: svc, Logger: logger}
}

type commentRequest struct {
	Content string `json:"content"`
}

// Create POST /api/posts/:id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	v, err := h.Svc.Create(c.Request.Context(), application.CreateCommentCommand{
		PostID:   entity.PostID(c.Param("id")),
		AuthorID: p.ID,
		Content:  req.Content,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Write(c, response.Success(c, http.StatusCreated, v, "comment created"))
}

// List GET /api/posts/:id/comments lists live comments, oldest first.
func (h *CommentHandler) List(c *gin.Context) {
	pg, ok := bindPage(c)
	if !ok {
		return
	}
	page, err := h.Svc.List(c.Request.Context(), application.ListCommentsQuery{
		PostID:     entity.PostID(c.Param("id")),
		Pagination: pg,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Write(c, response.Success(c, http.StatusOK, page, ""))
}

// Update PUT /api/comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	v, err := h.Svc.Update(c.Request.Context(), application.UpdateCommentCommand{
		CommentID:   entity.CommentID(c.Param("id")),
		RequesterID: p.ID,
		Content:     req.Content,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Write(c, response.Success(c, http.StatusOK, v, "comment updated"))
}

// Delete DELETE /api/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	err := h.Svc.Delete(c.Request.Context(), application.DeleteCommentCommand{
		CommentID:   entity.CommentID(c.Param("id")),
		RequesterID: p.ID,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Write(c, response.Success[any](c, http.StatusOK, nil, "comment deleted"))
}
