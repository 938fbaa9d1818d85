package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-content-platform/internal/domain/entity"
	"github.com/oksasatya/go-ddd-content-platform/internal/domain/errs"
	"github.com/oksasatya/go-ddd-content-platform/internal/domain/repository"
	"github.com/oksasatya/go-ddd-content-platform/pkg/helpers"
)

type CreateCommentCommand struct {
	PostID   entity.PostID
	AuthorID entity.MemberID
	Content  string
}

type UpdateCommentCommand struct {
	CommentID   entity.CommentID
	RequesterID entity.MemberID
	Content     string
}

type DeleteCommentCommand struct {
	CommentID   entity.CommentID
	RequesterID entity.MemberID
}

type ListCommentsQuery struct {
	PostID entity.PostID
	Pagination
}

type CommentService struct {
	Comments repository.CommentRepository
	Posts    repository.PostRepository
	Members  repository.MemberRepository
	Queries  CommentQueries
	Events   EventPublisher
	Locks    *helpers.KeyLock
	Logger   *logrus.Logger
}

func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository, members repository.MemberRepository, queries CommentQueries, events EventPublisher, locks *helpers.KeyLock, logger *logrus.Logger) *CommentService {
	return &CommentService{
		Comments: comments,
		Posts:    posts,
		Members:  members,
		Queries:  queries,
		Events:   events,
		Locks:    orNewLocks(locks),
		Logger:   orNop(logger),
	}
}

// Create holds the post lock so the post cannot be archived between the
// published check and the save.
func (s *CommentService) Create(ctx context.Context, cmd CreateCommentCommand) (CommentView, error) {
	unlock := s.Locks.Lock(postKey(cmd.PostID))
	defer unlock()

	post, err := s.Posts.FindByID(ctx, cmd.PostID)
	if err != nil {
		return CommentView{}, errs.Wrap("find post", err)
	}
	if post == nil {
		return CommentView{}, errs.NotFound(errs.ResourcePost, cmd.PostID.String())
	}
	c, err := entity.NewComment(cmd.Content, cmd.AuthorID, post)
	if err != nil {
		return CommentView{}, err
	}
	if err := s.Comments.Save(ctx, c); err != nil {
		return CommentView{}, errs.Wrap("save comment", err)
	}
	s.Logger.WithFields(logrus.Fields{"comment_id": c.ID(), "post_id": post.ID()}).Info("comment created")
	s.notifyAuthor(ctx, post, c)
	return NewCommentView(c), nil
}

// notifyAuthor tells the post author about a comment by someone else.
func (s *CommentService) notifyAuthor(ctx context.Context, post *entity.Post, c *entity.Comment) {
	if s.Events == nil || post.AuthorID() == c.AuthorID() || s.Members == nil {
		return
	}
	author, err := s.Members.FindByID(ctx, post.AuthorID())
	if err != nil || author == nil || !author.IsActive() {
		return
	}
	publishEvent(ctx, s.Events, s.Logger, EventCommentCreated, map[string]string{
		"comment_id":   c.ID().String(),
		"post_id":      post.ID().String(),
		"post_title":   post.Title().String(),
		"author_email": author.Email().String(),
		"author_name":  author.Name(),
		"commenter_id": c.AuthorID().String(),
		"preview":      entity.Preview(c.Content().String(), 0),
	})
}

func (s *CommentService) Update(ctx context.Context, cmd UpdateCommentCommand) (CommentView, error) {
	unlock := s.Locks.Lock(commentKey(cmd.CommentID))
	defer unlock()

	c, err := s.find(ctx, cmd.CommentID)
	if err != nil {
		return CommentView{}, err
	}
	if err := c.UpdateContent(cmd.Content, cmd.RequesterID); err != nil {
		return CommentView{}, err
	}
	if err := s.Comments.Update(ctx, c); err != nil {
		return CommentView{}, errs.Wrap("update comment", err)
	}
	return NewCommentView(c), nil
}

// Delete soft-deletes the comment; the row stays for auditing.
func (s *CommentService) Delete(ctx context.Context, cmd DeleteCommentCommand) error {
	unlock := s.Locks.Lock(commentKey(cmd.CommentID))
	defer unlock()

	c, err := s.find(ctx, cmd.CommentID)
	if err != nil {
		return err
	}
	if err := c.Delete(cmd.RequesterID); err != nil {
		return err
	}
	if err := s.Comments.Update(ctx, c); err != nil {
		return errs.Wrap("update comment", err)
	}
	s.Logger.WithField("comment_id", c.ID()).Info("comment deleted")
	return nil
}

// List returns the comments of a post that are not deleted, oldest first.
func (s *CommentService) List(ctx context.Context, q ListCommentsQuery) (Page[CommentView], error) {
	page, err := s.Queries.ListActiveByPost(ctx, q.PostID, q.Pagination.Normalize(DefaultCommentLimit))
	if err != nil {
		return Page[CommentView]{}, errs.Wrap("list comments", err)
	}
	return page, nil
}

func (s *CommentService) find(ctx context.Context, id entity.CommentID) (*entity.Comment, error) {
	c, err := s.Comments.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Wrap("find comment", err)
	}
	if c == nil {
		return nil, errs.NotFound(errs.ResourceComment, id.String())
	}
	return c, nil
}
