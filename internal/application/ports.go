package application

import (
	"context"
	"errors"
	"time"

	"github.com/oksasatya/go-ddd-content-platform/internal/domain/entity"
	"github.com/oksasatya/go-ddd-content-platform/pkg/helpers"
)

// TokenService issues and verifies bearer tokens. *helpers.JWTManager
// satisfies it.
type TokenService interface {
	GenerateAccessToken(sub, email, role string) (string, time.Time, error)
	GenerateRefreshToken(sub, email, role string) (string, time.Time, error)
	VerifyAccessToken(token string) (*helpers.Claims, error)
	VerifyRefreshToken(token string) (*helpers.Claims, error)
}

// Event names published after a use case commits.
const (
	EventMemberRegistered = "member.registered"
	EventPostPublished    = "post.published"
	EventCommentCreated   = "comment.created"
)

type Event struct {
	Name       string            `json:"name"`
	OccurredAt time.Time         `json:"occurred_at"`
	Payload    map[string]string `json:"payload"`
}

// EventPublisher delivers events to other processes. Delivery is best
// effort: a failed publish is logged and never fails the use case.
type EventPublisher interface {
	Publish(ctx context.Context, e Event) error
}

// PostIndex keeps a searchable copy of published posts.
type PostIndex interface {
	Index(ctx context.Context, p PostView) error
	Remove(ctx context.Context, id entity.PostID) error
	Search(ctx context.Context, q string, pg Pagination) (Page[PostSummary], error)
}

// PostFilter selects posts for listing. A nil Status lists published posts.
type PostFilter struct {
	Status   *entity.PostStatus
	AuthorID entity.MemberID
}

// PostQueries, CommentQueries and MemberQueries are the read side. They
// return plain views, never aggregates.
type PostQueries interface {
	ListPosts(ctx context.Context, f PostFilter, pg Pagination) (Page[PostSummary], error)
}

type CommentQueries interface {
	ListActiveByPost(ctx context.Context, postID entity.PostID, pg Pagination) (Page[CommentView], error)
}

type MemberQueries interface {
	ListMembers(ctx context.Context, pg Pagination) (Page[MemberView], error)
}

var errSearchDisabled = errors.New("post search is not configured")
