package entity

import (
	"github.com/oksasatya/go-ddd-content-platform/internal/domain/errs"
)

type Comment struct {
	aggregateRoot[CommentID]
	content  CommentContent
	authorID MemberID
	postID   PostID
}

// NewComment only accepts comments on a published post.
func NewComment(raw string, authorID MemberID, post *Post) (*Comment, error) {
	if post == nil || !post.IsPublished() {
		var postID string
		if post != nil {
			postID = post.ID().String()
		}
		return nil, &errs.CommentOnUnpublishedPostError{PostID: postID, ActorID: authorID.String()}
	}
	c, err := NewCommentContent(raw)
	if err != nil {
		return nil, err
	}
	return &Comment{
		aggregateRoot: newAggregateRoot(NewCommentID()),
		content:       c,
		authorID:      authorID,
		postID:        post.ID(),
	}, nil
}

func (c *Comment) Content() CommentContent { return c.content }
func (c *Comment) AuthorID() MemberID      { return c.authorID }
func (c *Comment) PostID() PostID          { return c.postID }

func (c *Comment) UpdateContent(raw string, requester MemberID) error {
	if c.isDeleted {
		return &errs.DeletedCommentUpdateError{CommentID: c.id.String()}
	}
	if c.authorID != requester {
		return errs.Unauthorized(errs.ActionUpdate, errs.ResourceComment, c.id.String(), requester.String())
	}
	content, err := NewCommentContent(raw)
	if err != nil {
		return err
	}
	c.content = content
	c.touch()
	return nil
}

// Delete soft-deletes the comment. A comment that is already deleted
// cannot be deleted again, even by its author.
func (c *Comment) Delete(requester MemberID) error {
	if c.authorID != requester || c.isDeleted {
		return errs.Unauthorized(errs.ActionDelete, errs.ResourceComment, c.id.String(), requester.String())
	}
	c.markDeleted()
	return nil
}

type CommentSnapshot struct {
	RootSnapshot[CommentID]
	Content  string
	AuthorID MemberID
	PostID   PostID
}

func (c *Comment) Snapshot() CommentSnapshot {
	return CommentSnapshot{
		RootSnapshot: c.rootSnapshot(),
		Content:      c.content.String(),
		AuthorID:     c.authorID,
		PostID:       c.postID,
	}
}

func RestoreComment(s CommentSnapshot) (*Comment, error) {
	content, err := NewCommentContent(s.Content)
	if err != nil {
		return nil, err
	}
	return &Comment{
		aggregateRoot: restoreAggregateRoot(s.RootSnapshot),
		content:       content,
		authorID:      s.AuthorID,
		postID:        s.PostID,
	}, nil
}
