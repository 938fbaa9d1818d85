package entity

import (
	"strings"
	"time"

	"github.com/oksasatya/go-ddd-content-platform/internal/domain/errs"
)

type PostStatus string

const (
	PostStatusDraft     PostStatus = "DRAFT"
	PostStatusPublished PostStatus = "PUBLISHED"
	PostStatusArchived  PostStatus = "ARCHIVED"
)

func (s PostStatus) Valid() bool {
	switch s {
	case PostStatusDraft, PostStatusPublished, PostStatusArchived:
		return true
	}
	return false
}

// Post moves DRAFT -> PUBLISHED -> ARCHIVED and never backwards.
type Post struct {
	aggregateRoot[PostID]
	title       Title
	content     PostContent
	status      PostStatus
	authorID    MemberID
	publishedAt *time.Time
	tags        []string
	viewCount   uint64
}

func NewPost(title Title, content PostContent, authorID MemberID, tags []string) *Post {
	return &Post{
		aggregateRoot: newAggregateRoot(NewPostID()),
		title:         title,
		content:       content,
		status:        PostStatusDraft,
		authorID:      authorID,
		tags:          normalizeTags(tags),
	}
}

// normalizeTags trims tags, drops empty ones and keeps the first occurrence
// of each.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func (p *Post) Title() Title              { return p.title }
func (p *Post) Content() PostContent      { return p.content }
func (p *Post) Status() PostStatus        { return p.status }
func (p *Post) AuthorID() MemberID        { return p.authorID }
func (p *Post) ViewCount() uint64         { return p.viewCount }
func (p *Post) IsPublished() bool         { return p.status == PostStatusPublished }
func (p *Post) Tags() []string            { return append([]string{}, p.tags...) }
func (p *Post) IsAuthor(id MemberID) bool { return p.authorID == id }

func (p *Post) PublishedAt() *time.Time {
	if p.publishedAt == nil {
		return nil
	}
	t := *p.publishedAt
	return &t
}

func (p *Post) checkEditable(action errs.Action, requester MemberID) error {
	if !p.IsAuthor(requester) {
		return errs.Unauthorized(action, errs.ResourcePost, p.id.String(), requester.String())
	}
	if p.status == PostStatusArchived {
		return &errs.InvalidStateError{
			Resource:   errs.ResourcePost,
			ResourceID: p.id.String(),
			State:      string(p.status),
			Action:     action,
		}
	}
	return nil
}

func (p *Post) UpdateTitle(raw string, requester MemberID) error {
	if err := p.checkEditable(errs.ActionUpdate, requester); err != nil {
		return err
	}
	t, err := NewTitle(raw)
	if err != nil {
		return err
	}
	p.title = t
	p.touch()
	return nil
}

func (p *Post) UpdateContent(raw string, requester MemberID) error {
	if err := p.checkEditable(errs.ActionUpdate, requester); err != nil {
		return err
	}
	c, err := NewPostContent(raw)
	if err != nil {
		return err
	}
	p.content = c
	p.touch()
	return nil
}

func (p *Post) UpdateTags(tags []string, requester MemberID) error {
	if err := p.checkEditable(errs.ActionUpdate, requester); err != nil {
		return err
	}
	p.tags = normalizeTags(tags)
	p.touch()
	return nil
}

// Publish sets publishedAt exactly once, on the DRAFT -> PUBLISHED move.
func (p *Post) Publish(requester MemberID) error {
	if !p.IsAuthor(requester) {
		return errs.Unauthorized(errs.ActionPublish, errs.ResourcePost, p.id.String(), requester.String())
	}
	switch p.status {
	case PostStatusPublished:
		return &errs.PostAlreadyPublishedError{PostID: p.id.String()}
	case PostStatusArchived:
		return &errs.InvalidStateError{
			Resource:   errs.ResourcePost,
			ResourceID: p.id.String(),
			State:      string(p.status),
			Action:     errs.ActionPublish,
		}
	}
	t := p.touch()
	p.status = PostStatusPublished
	p.publishedAt = &t
	return nil
}

func (p *Post) IncrementViewCount() {
	p.viewCount++
	p.touch()
}

// Delete archives the post and soft-deletes it in the same step.
func (p *Post) Delete(requester MemberID) error {
	if !p.IsAuthor(requester) {
		return errs.Unauthorized(errs.ActionDelete, errs.ResourcePost, p.id.String(), requester.String())
	}
	p.status = PostStatusArchived
	p.markDeleted()
	return nil
}

type PostSnapshot struct {
	RootSnapshot[PostID]
	Title       string
	Content     string
	Status      PostStatus
	AuthorID    MemberID
	PublishedAt *time.Time
	Tags        []string
	ViewCount   uint64
}

func (p *Post) Snapshot() PostSnapshot {
	return PostSnapshot{
		RootSnapshot: p.rootSnapshot(),
		Title:        p.title.String(),
		Content:      p.content.String(),
		Status:       p.status,
		AuthorID:     p.authorID,
		PublishedAt:  p.PublishedAt(),
		Tags:         p.Tags(),
		ViewCount:    p.viewCount,
	}
}

func RestorePost(s PostSnapshot) (*Post, error) {
	t, err := NewTitle(s.Title)
	if err != nil {
		return nil, err
	}
	c, err := NewPostContent(s.Content)
	if err != nil {
		return nil, err
	}
	status := s.Status
	if !status.Valid() {
		status = PostStatusDraft
	}
	p := &Post{
		aggregateRoot: restoreAggregateRoot(s.RootSnapshot),
		title:         t,
		content:       c,
		status:        status,
		authorID:      s.AuthorID,
		tags:          normalizeTags(s.Tags),
		viewCount:     s.ViewCount,
	}
	if s.PublishedAt != nil {
		pt := *s.PublishedAt
		p.publishedAt = &pt
	}
	return p, nil
}
