package repository

import (
	"context"

	"github.com/oksasatya/go-ddd-content-platform/internal/domain/entity"
)

type CommentRepository interface {
	Save(ctx context.Context, c *entity.Comment) error
	FindByID(ctx context.Context, id entity.CommentID) (*entity.Comment, error)
	Update(ctx context.Context, c *entity.Comment) error
	Delete(ctx context.Context, id entity.CommentID) error
}
