package memory

import (
	"context"

	"github.com/oksasatya/go-ddd-content-platform/internal/application"
	"github.com/oksasatya/go-ddd-content-platform/internal/domain/entity"
)

// PostDAO serves post listings straight from a PostRepository.
type PostDAO struct {
	repo *PostRepository
}

func NewPostDAO(repo *PostRepository) *PostDAO { return &PostDAO{repo: repo} }

func (d *PostDAO) ListPosts(_ context.Context, f application.PostFilter, pg application.Pagination) (application.Page[application.PostSummary], error) {
	status := entity.PostStatusPublished
	if f.Status != nil {
		status = *f.Status
	}
	all := d.repo.snapshots(func(s entity.PostSnapshot) bool {
		return s.Status == status && (f.AuthorID == "" || s.AuthorID == f.AuthorID)
	})
	window := application.Slice(all, pg)
	out := make([]application.PostSummary, 0, len(window))
	for _, s := range window {
		p, err := entity.RestorePost(s)
		if err != nil {
			return application.Page[application.PostSummary]{}, err
		}
		out = append(out, application.NewPostSummary(p))
	}
	return application.NewPage(out, len(all), pg), nil
}

type CommentDAO struct {
	repo *CommentRepository
}

func NewCommentDAO(repo *CommentRepository) *CommentDAO { return &CommentDAO{repo: repo} }

func (d *CommentDAO) ListActiveByPost(_ context.Context, postID entity.PostID, pg application.Pagination) (application.Page[application.CommentView], error) {
	all := d.repo.activeByPost(postID)
	window := application.Slice(all, pg)
	out := make([]application.CommentView, 0, len(window))
	for _, s := range window {
		c, err := entity.RestoreComment(s)
		if err != nil {
			return application.Page[application.CommentView]{}, err
		}
		out = append(out, application.NewCommentView(c))
	}
	return application.NewPage(out, len(all), pg), nil
}

type MemberDAO struct {
	repo *MemberRepository
}

func NewMemberDAO(repo *MemberRepository) *MemberDAO { return &MemberDAO{repo: repo} }

func (d *MemberDAO) ListMembers(_ context.Context, pg application.Pagination) (application.Page[application.MemberView], error) {
	all := d.repo.snapshots()
	window := application.Slice(all, pg)
	out := make([]application.MemberView, 0, len(window))
	for _, s := range window {
		m, err := entity.RestoreMember(s)
		if err != nil {
			return application.Page[application.MemberView]{}, err
		}
		out = append(out, application.NewMemberView(m))
	}
	return application.NewPage(out, len(all), pg), nil
}
