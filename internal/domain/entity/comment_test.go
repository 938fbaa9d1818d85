package entity

import (
	"errors"
	"testing"

	"github.com/oksasatya/go-ddd-content-platform/internal/domain/errs"
)

func TestNewCommentRequiresPublishedPost(t *testing.T) {
	p := mustPost(t, "author")

	_, err := NewComment("hi", "reader", p)
	wantKind(t, err, errs.KindCommentOnUnpublishedPost)
	var ce *errs.CommentOnUnpublishedPostError
	if !errors.As(err, &ce) || ce.PostID != p.ID().String() || ce.ActorID != "reader" {
		t.Fatalf("err = %#v", err)
	}

	_, err = NewComment("hi", "reader", nil)
	wantKind(t, err, errs.KindCommentOnUnpublishedPost)

	if err := p.Publish("author"); err != nil {
		t.Fatal(err)
	}
	c, err := NewComment("  hi  ", "reader", p)
	if err != nil {
		t.Fatal(err)
	}
	if c.PostID() != p.ID() || c.AuthorID() != "reader" || c.Content().String() != "hi" {
		t.Fatalf("comment = %+v", c.Snapshot())
	}
}

func TestCommentUpdateAndDelete(t *testing.T) {
	c := publishedComment(t)

	wantKind(t, c.UpdateContent("edit", "someone"), errs.KindUnauthorized)
	wantKind(t, c.UpdateContent("", "reader"), errs.KindValidation)
	if err := c.UpdateContent("edited", "reader"); err != nil {
		t.Fatal(err)
	}

	wantKind(t, c.Delete("someone"), errs.KindUnauthorized)
	if err := c.Delete("reader"); err != nil {
		t.Fatal(err)
	}
	if !c.IsDeleted() || c.DeletedAt() == nil {
		t.Fatal("comment should be soft-deleted")
	}

	wantKind(t, c.UpdateContent("again", "reader"), errs.KindDeletedCommentUpdate)
	wantKind(t, c.UpdateContent("again", "someone"), errs.KindDeletedCommentUpdate)
	wantKind(t, c.Delete("reader"), errs.KindUnauthorized)
}

func publishedComment(t *testing.T) *Comment {
	t.Helper()
	p := mustPost(t, "author")
	if err := p.Publish("author"); err != nil {
		t.Fatal(err)
	}
	c, err := NewComment("hello", "reader", p)
	if err != nil {
		t.Fatal(err)
	}
	return c
}
