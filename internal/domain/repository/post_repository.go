package repository

import (
	"context"

	"github.com/oksasatya/go-ddd-content-platform/internal/domain/entity"
)

// PostRepository persists posts. FindByID returns (nil, nil) for an unknown
// or deleted post.
type PostRepository interface {
	Save(ctx context.Context, p *entity.Post) error
	FindByID(ctx context.Context, id entity.PostID) (*entity.Post, error)
	Update(ctx context.Context, p *entity.Post) error
	Delete(ctx context.Context, id entity.PostID) error
	IncrementViewCount(ctx context.Context, id entity.PostID) error
}
