package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/oksasatya/go-ddd-content-platform/internal/domain/entity"
	"github.com/oksasatya/go-ddd-content-platform/internal/domain/errs"
)

// PostRepository removes a post physically on Delete.
type PostRepository struct {
	mu    sync.RWMutex
	posts map[entity.PostID]entity.PostSnapshot
}

func NewPostRepository() *PostRepository {
	return &PostRepository{posts: make(map[entity.PostID]entity.PostSnapshot)}
}

func (r *PostRepository) Save(_ context.Context, p *entity.Post) error {
	s := p.Snapshot()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[s.ID]; ok {
		return errs.AlreadyExists(errs.ResourcePost, s.ID.String())
	}
	r.posts[s.ID] = s
	return nil
}

func (r *PostRepository) FindByID(_ context.Context, id entity.PostID) (*entity.Post, error) {
	r.mu.RLock()
	s, ok := r.posts[id]
	r.mu.RUnlock()
	if !ok || s.IsDeleted {
		return nil, nil
	}
	return entity.RestorePost(s)
}

func (r *PostRepository) Update(_ context.Context, p *entity.Post) error {
	s := p.Snapshot()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[s.ID]; !ok {
		return errs.NotFound(errs.ResourcePost, s.ID.String())
	}
	r.posts[s.ID] = s
	return nil
}

func (r *PostRepository) Delete(_ context.Context, id entity.PostID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return errs.NotFound(errs.ResourcePost, id.String())
	}
	delete(r.posts, id)
	return nil
}

func (r *PostRepository) IncrementViewCount(_ context.Context, id entity.PostID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.posts[id]
	if !ok || s.IsDeleted {
		return errs.NotFound(errs.ResourcePost, id.String())
	}
	s.ViewCount++
	r.posts[id] = s
	return nil
}

// snapshots returns live posts matching keep, newest first.
func (r *PostRepository) snapshots(keep func(entity.PostSnapshot) bool) []entity.PostSnapshot {
	r.mu.RLock()
	out := make([]entity.PostSnapshot, 0, len(r.posts))
	for _, s := range r.posts {
		if !s.IsDeleted && keep(s) {
			out = append(out, s)
		}
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
