package application_test

import (
	"context"
	"strings"
	"testing"

	"github.com/oksasatya/go-ddd-content-platform/internal/application"
	"github.com/oksasatya/go-ddd-content-platform/internal/domain/entity"
	"github.com/oksasatya/go-ddd-content-platform/internal/domain/errs"
)

func TestCreatePostStartsAsDraft(t *testing.T) {
	f := newFixture(t)
	v := f.draft(t, "author", "Hello")
	if v.Status != string(entity.PostStatusDraft) || v.PublishedAt != nil || v.AuthorID != "author" {
		t.Fatalf("view = %+v", v)
	}

	_, err := f.postSvc.Create(context.Background(), application.CreatePostCommand{AuthorID: "author", Title: "", Content: "x"})
	wantKind(t, err, errs.KindValidation)
}

func TestPublishPost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.draft(t, "author", "Hello")
	id := entity.PostID(d.ID)

	_, err := f.postSvc.Publish(ctx, application.PostActionCommand{PostID: id, RequesterID: "intruder"})
	wantKind(t, err, errs.KindUnauthorized)

	v, err := f.postSvc.Publish(ctx, application.PostActionCommand{PostID: id, RequesterID: "author"})
	if err != nil {
		t.Fatal(err)
	}
	if v.Status != string(entity.PostStatusPublished) || v.PublishedAt == nil {
		t.Fatalf("view = %+v", v)
	}
	if got := f.events.named(application.EventPostPublished); len(got) != 1 || got[0].Payload["post_id"] != d.ID {
		t.Fatalf("events = %+v", got)
	}

	_, err = f.postSvc.Publish(ctx, application.PostActionCommand{PostID: id, RequesterID: "author"})
	wantKind(t, err, errs.KindPostAlreadyPublished)

	_, err = f.postSvc.Publish(ctx, application.PostActionCommand{PostID: "missing", RequesterID: "author"})
	wantKind(t, err, errs.KindNotFound)
}

func TestGetPostCountsViews(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.published(t, "author", "Hello")

	for i := 1; i <= 3; i++ {
		v, err := f.postSvc.Get(ctx, entity.PostID(p.ID))
		if err != nil {
			t.Fatal(err)
		}
		if v.ViewCount != uint64(i) {
			t.Fatalf("view %d: count = %d", i, v.ViewCount)
		}
	}
	_, err := f.postSvc.Get(ctx, "missing")
	wantKind(t, err, errs.KindNotFound)
}

func TestUpdatePostPartially(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.draft(t, "author", "Hello")
	id := entity.PostID(d.ID)

	v, err := f.postSvc.Update(ctx, application.UpdatePostCommand{PostID: id, RequesterID: "author", Title: strPtr("Renamed")})
	if err != nil {
		t.Fatal(err)
	}
	if v.Title != "Renamed" || v.Content != d.Content || len(v.Tags) != 1 {
		t.Fatalf("view = %+v", v)
	}

	v, err = f.postSvc.Update(ctx, application.UpdatePostCommand{PostID: id, RequesterID: "author", Tags: []string{}})
	if err != nil {
		t.Fatal(err)
	}
	if len(v.Tags) != 0 {
		t.Fatalf("tags = %v, want cleared", v.Tags)
	}

	_, err = f.postSvc.Update(ctx, application.UpdatePostCommand{PostID: id, RequesterID: "other", Title: strPtr("Mine")})
	wantKind(t, err, errs.KindUnauthorized)
	_, err = f.postSvc.Update(ctx, application.UpdatePostCommand{PostID: id, RequesterID: "author", Content: strPtr(strings.Repeat("x", 50001))})
	wantKind(t, err, errs.KindValidation)
}

func TestListPostsByStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.published(t, "alice", "One")
	f.published(t, "bob", "Two")
	f.draft(t, "alice", "Draft")

	page, err := f.postSvc.List(ctx, application.ListPostsQuery{})
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 2 || page.Limit != application.DefaultPostLimit {
		t.Fatalf("published page = %+v", page)
	}

	page, err = f.postSvc.List(ctx, application.ListPostsQuery{AuthorID: "alice"})
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 1 || page.Data[0].Title != "One" {
		t.Fatalf("alice page = %+v", page)
	}

	page, err = f.postSvc.List(ctx, application.ListPostsQuery{Published: boolPtr(false), AuthorID: "alice"})
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 1 || page.Data[0].Title != "Draft" || page.Data[0].Status != string(entity.PostStatusDraft) {
		t.Fatalf("drafts page = %+v", page)
	}
}

func TestSearchPosts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.published(t, "author", "Concurrency in Go")
	f.published(t, "author", "Cooking pasta")
	f.draft(t, "author", "Go draft")

	page, err := f.postSvc.Search(ctx, "go", application.Pagination{})
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 2 {
		t.Fatalf("search hits = %+v", page)
	}
	page, err = f.postSvc.Search(ctx, "concurrency", application.Pagination{})
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 1 || page.Data[0].Title != "Concurrency in Go" {
		t.Fatalf("search hits = %+v", page)
	}
	page, err = f.postSvc.Search(ctx, "   ", application.Pagination{})
	if err != nil || page.Total != 0 || page.Data == nil {
		t.Fatalf("blank search = %+v, %v", page, err)
	}
}

func TestSearchWithoutIndex(t *testing.T) {
	f := newFixture(t)
	f.postSvc.Index = nil
	_, err := f.postSvc.Search(context.Background(), "go", application.Pagination{})
	wantKind(t, err, errs.KindInternal)
}

func TestDeletePost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.published(t, "author", "Doomed")
	id := entity.PostID(p.ID)

	err := f.postSvc.Delete(ctx, application.PostActionCommand{PostID: id, RequesterID: "other"})
	wantKind(t, err, errs.KindUnauthorized)

	if err := f.postSvc.Delete(ctx, application.PostActionCommand{PostID: id, RequesterID: "author"}); err != nil {
		t.Fatal(err)
	}
	_, err = f.postSvc.Get(ctx, id)
	wantKind(t, err, errs.KindNotFound)

	page, _ := f.postSvc.Search(ctx, "doomed", application.Pagination{})
	if page.Total != 0 {
		t.Fatal("deleted post still searchable")
	}
	err = f.postSvc.Delete(ctx, application.PostActionCommand{PostID: id, RequesterID: "author"})
	wantKind(t, err, errs.KindNotFound)
}
