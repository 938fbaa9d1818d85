package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/oksasatya/go-ddd-content-platform/internal/domain/entity"
	"github.com/oksasatya/go-ddd-content-platform/internal/domain/errs"
)

// CommentRepository returns soft-deleted comments from FindByID so that
// edits on them can be rejected with a precise error.
type CommentRepository struct {
	mu       sync.RWMutex
	comments map[entity.CommentID]entity.CommentSnapshot
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{comments: make(map[entity.CommentID]entity.CommentSnapshot)}
}

func (r *CommentRepository) Save(_ context.Context, c *entity.Comment) error {
	s := c.Snapshot()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[s.ID]; ok {
		return errs.AlreadyExists(errs.ResourceComment, s.ID.String())
	}
	r.comments[s.ID] = s
	return nil
}

func (r *CommentRepository) FindByID(_ context.Context, id entity.CommentID) (*entity.Comment, error) {
	r.mu.RLock()
	s, ok := r.comments[id]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return entity.RestoreComment(s)
}

func (r *CommentRepository) Update(_ context.Context, c *entity.Comment) error {
	s := c.Snapshot()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[s.ID]; !ok {
		return errs.NotFound(errs.ResourceComment, s.ID.String())
	}
	r.comments[s.ID] = s
	return nil
}

func (r *CommentRepository) Delete(_ context.Context, id entity.CommentID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[id]; !ok {
		return errs.NotFound(errs.ResourceComment, id.String())
	}
	delete(r.comments, id)
	return nil
}

// activeByPost returns the live comments of a post, oldest first.
func (r *CommentRepository) activeByPost(postID entity.PostID) []entity.CommentSnapshot {
	r.mu.RLock()
	var out []entity.CommentSnapshot
	for _, s := range r.comments {
		if s.PostID == postID && !s.IsDeleted {
			out = append(out, s)
		}
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
