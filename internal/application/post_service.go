package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-content-platform/internal/domain/entity"
	"github.com/oksasatya/go-ddd-content-platform/internal/domain/errs"
	"github.com/oksasatya/go-ddd-content-platform/internal/domain/repository"
	"github.com/oksasatya/go-ddd-content-platform/pkg/helpers"
)

type CreatePostCommand struct {
	AuthorID entity.MemberID
	Title    string
	Content  string
	Tags     []string
}

// UpdatePostCommand leaves nil fields untouched. A non-nil empty Tags
// clears the tags.
type UpdatePostCommand struct {
	PostID      entity.PostID
	RequesterID entity.MemberID
	Title       *string
	Content     *string
	Tags        []string
}

type PostActionCommand struct {
	PostID      entity.PostID
	RequesterID entity.MemberID
}

// ListPostsQuery lists published posts unless Published is explicitly false,
// in which case drafts are listed.
type ListPostsQuery struct {
	Published *bool
	AuthorID  entity.MemberID
	Pagination
}

type PostService struct {
	Posts   repository.PostRepository
	Queries PostQueries
	Index   PostIndex
	Events  EventPublisher
	Locks   *helpers.KeyLock
	Logger  *logrus.Logger
}

func NewPostService(posts repository.PostRepository, queries PostQueries, index PostIndex, events EventPublisher, locks *helpers.KeyLock, logger *logrus.Logger) *PostService {
	return &PostService{
		Posts:   posts,
		Queries: queries,
		Index:   index,
		Events:  events,
		Locks:   orNewLocks(locks),
		Logger:  orNop(logger),
	}
}

func (s *PostService) Create(ctx context.Context, cmd CreatePostCommand) (PostView, error) {
	title, err := entity.NewTitle(cmd.Title)
	if err != nil {
		return PostView{}, err
	}
	content, err := entity.NewPostContent(cmd.Content)
	if err != nil {
		return PostView{}, err
	}
	p := entity.NewPost(title, content, cmd.AuthorID, cmd.Tags)
	if err := s.Posts.Save(ctx, p); err != nil {
		return PostView{}, errs.Wrap("save post", err)
	}
	s.Logger.WithFields(logrus.Fields{"post_id": p.ID(), "author_id": p.AuthorID()}).Info("post created")
	return NewPostView(p), nil
}

func (s *PostService) Update(ctx context.Context, cmd UpdatePostCommand) (PostView, error) {
	unlock := s.Locks.Lock(postKey(cmd.PostID))
	defer unlock()

	p, err := s.find(ctx, cmd.PostID)
	if err != nil {
		return PostView{}, err
	}
	if cmd.Title != nil {
		if err := p.UpdateTitle(*cmd.Title, cmd.RequesterID); err != nil {
			return PostView{}, err
		}
	}
	if cmd.Content != nil {
		if err := p.UpdateContent(*cmd.Content, cmd.RequesterID); err != nil {
			return PostView{}, err
		}
	}
	if cmd.Tags != nil {
		if err := p.UpdateTags(cmd.Tags, cmd.RequesterID); err != nil {
			return PostView{}, err
		}
	}
	if err := s.Posts.Update(ctx, p); err != nil {
		return PostView{}, errs.Wrap("update post", err)
	}
	view := NewPostView(p)
	if p.IsPublished() {
		s.index(ctx, view)
	}
	return view, nil
}

func (s *PostService) Publish(ctx context.Context, cmd PostActionCommand) (PostView, error) {
	unlock := s.Locks.Lock(postKey(cmd.PostID))
	defer unlock()

	p, err := s.find(ctx, cmd.PostID)
	if err != nil {
		return PostView{}, err
	}
	if err := p.Publish(cmd.RequesterID); err != nil {
		return PostView{}, err
	}
	if err := s.Posts.Update(ctx, p); err != nil {
		return PostView{}, errs.Wrap("update post", err)
	}
	view := NewPostView(p)
	s.index(ctx, view)
	s.Logger.WithField("post_id", p.ID()).Info("post published")
	publishEvent(ctx, s.Events, s.Logger, EventPostPublished, map[string]string{
		"post_id":   view.ID,
		"author_id": view.AuthorID,
		"title":     view.Title,
	})
	return view, nil
}

// Get returns a post and counts the view.
func (s *PostService) Get(ctx context.Context, id entity.PostID) (PostView, error) {
	unlock := s.Locks.Lock(postKey(id))
	defer unlock()

	p, err := s.find(ctx, id)
	if err != nil {
		return PostView{}, err
	}
	if err := s.Posts.IncrementViewCount(ctx, id); err != nil {
		return PostView{}, errs.Wrap("increment view count", err)
	}
	p.IncrementViewCount()
	return NewPostView(p), nil
}

func (s *PostService) List(ctx context.Context, q ListPostsQuery) (Page[PostSummary], error) {
	status := entity.PostStatusPublished
	if q.Published != nil && !*q.Published {
		status = entity.PostStatusDraft
	}
	page, err := s.Queries.ListPosts(ctx, PostFilter{Status: &status, AuthorID: q.AuthorID}, q.Pagination.Normalize(DefaultPostLimit))
	if err != nil {
		return Page[PostSummary]{}, errs.Wrap("list posts", err)
	}
	return page, nil
}

// Search runs a full-text query over published posts.
func (s *PostService) Search(ctx context.Context, q string, pg Pagination) (Page[PostSummary], error) {
	pg = pg.Normalize(DefaultPostLimit)
	if strings.TrimSpace(q) == "" {
		return NewPage[PostSummary](nil, 0, pg), nil
	}
	if s.Index == nil {
		return Page[PostSummary]{}, errs.Internal("search posts", errSearchDisabled)
	}
	page, err := s.Index.Search(ctx, q, pg)
	if err != nil {
		s.Logger.WithError(err).Warn("post search failed")
		return Page[PostSummary]{}, errs.Wrap("search posts", err)
	}
	return page, nil
}

// Delete archives and soft-deletes the post. Its comments are left alone.
func (s *PostService) Delete(ctx context.Context, cmd PostActionCommand) error {
	unlock := s.Locks.Lock(postKey(cmd.PostID))
	defer unlock()

	p, err := s.find(ctx, cmd.PostID)
	if err != nil {
		return err
	}
	if err := p.Delete(cmd.RequesterID); err != nil {
		return err
	}
	if err := s.Posts.Delete(ctx, p.ID()); err != nil {
		return errs.Wrap("delete post", err)
	}
	if s.Index != nil {
		if err := s.Index.Remove(ctx, p.ID()); err != nil {
			s.Logger.WithError(err).WithField("post_id", p.ID()).Warn("remove post from index failed")
		}
	}
	s.Logger.WithField("post_id", p.ID()).Info("post deleted")
	return nil
}

func (s *PostService) index(ctx context.Context, v PostView) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, v); err != nil {
		s.Logger.WithError(err).WithField("post_id", v.ID).Warn("index post failed")
	}
}

func (s *PostService) find(ctx context.Context, id entity.PostID) (*entity.Post, error) {
	p, err := s.Posts.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Wrap("find post", err)
	}
	if p == nil {
		return nil, errs.NotFound(errs.ResourcePost, id.String())
	}
	return p, nil
}
