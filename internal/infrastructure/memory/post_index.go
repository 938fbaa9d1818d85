package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/oksasatya/go-ddd-content-platform/internal/application"
	"github.com/oksasatya/go-ddd-content-platform/internal/domain/entity"
)

// PostIndex is a substring search over indexed posts, used when
// Elasticsearch is not configured.
type PostIndex struct {
	mu    sync.RWMutex
	posts map[string]application.PostView
}

func NewPostIndex() *PostIndex {
	return &PostIndex{posts: make(map[string]application.PostView)}
}

func (x *PostIndex) Index(_ context.Context, p application.PostView) error {
	x.mu.Lock()
	x.posts[p.ID] = p
	x.mu.Unlock()
	return nil
}

func (x *PostIndex) Remove(_ context.Context, id entity.PostID) error {
	x.mu.Lock()
	delete(x.posts, id.String())
	x.mu.Unlock()
	return nil
}

// Search matches every whitespace-separated term against title, content
// and tags, case-insensitively. Title hits rank first.
func (x *PostIndex) Search(_ context.Context, q string, pg application.Pagination) (application.Page[application.PostSummary], error) {
	terms := strings.Fields(strings.ToLower(q))
	type hit struct {
		view  application.PostView
		score int
	}
	var hits []hit
	x.mu.RLock()
	for _, p := range x.posts {
		if score := matchScore(p, terms); score > 0 {
			hits = append(hits, hit{view: p, score: score})
		}
	}
	x.mu.RUnlock()
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].view.CreatedAt.After(hits[j].view.CreatedAt)
	})
	window := application.Slice(hits, pg)
	out := make([]application.PostSummary, 0, len(window))
	for _, h := range window {
		out = append(out, h.view.Summary())
	}
	return application.NewPage(out, len(hits), pg), nil
}

func matchScore(p application.PostView, terms []string) int {
	if len(terms) == 0 {
		return 0
	}
	title := strings.ToLower(p.Title)
	content := strings.ToLower(p.Content)
	tags := strings.ToLower(strings.Join(p.Tags, " "))
	score := 0
	for _, t := range terms {
		switch {
		case strings.Contains(title, t):
			score += 3
		case strings.Contains(tags, t):
			score += 2
		case strings.Contains(content, t):
			score++
		default:
			return 0
		}
	}
	return score
}
