package application

import (
	"time"

	"github.com/oksasatya/go-ddd-content-platform/internal/domain/entity"
)

type MemberView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewMemberView(m *entity.Member) MemberView {
	return MemberView{
		ID:        m.ID().String(),
		Email:     m.Email().String(),
		Name:      m.Name(),
		Role:      string(m.Role()),
		IsActive:  m.IsActive(),
		CreatedAt: m.CreatedAt(),
		UpdatedAt: m.UpdatedAt(),
	}
}

type PostView struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Status      string     `json:"status"`
	AuthorID    string     `json:"author_id"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Tags        []string   `json:"tags"`
	ViewCount   uint64     `json:"view_count"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func NewPostView(p *entity.Post) PostView {
	return PostView{
		ID:          p.ID().String(),
		Title:       p.Title().String(),
		Content:     p.Content().String(),
		Status:      string(p.Status()),
		AuthorID:    p.AuthorID().String(),
		PublishedAt: p.PublishedAt(),
		Tags:        p.Tags(),
		ViewCount:   p.ViewCount(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}

// PostSummary is the list form of a post: the body is cut to a preview.
type PostSummary struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	ContentPreview string     `json:"content_preview"`
	Status         string     `json:"status"`
	AuthorID       string     `json:"author_id"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
	Tags           []string   `json:"tags"`
	ViewCount      uint64     `json:"view_count"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func NewPostSummary(p *entity.Post) PostSummary {
	return NewPostView(p).Summary()
}

// Summary cuts the view down to its list form.
func (v PostView) Summary() PostSummary {
	return PostSummary{
		ID:             v.ID,
		Title:          v.Title,
		ContentPreview: entity.Preview(v.Content, entity.DefaultPreviewLength),
		Status:         v.Status,
		AuthorID:       v.AuthorID,
		PublishedAt:    v.PublishedAt,
		Tags:           v.Tags,
		ViewCount:      v.ViewCount,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}

type CommentView struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	AuthorID  string    `json:"author_id"`
	PostID    string    `json:"post_id"`
	IsDeleted bool      `json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewCommentView(c *entity.Comment) CommentView {
	return CommentView{
		ID:        c.ID().String(),
		Content:   c.Content().String(),
		AuthorID:  c.AuthorID().String(),
		PostID:    c.PostID().String(),
		IsDeleted: c.IsDeleted(),
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}
}
