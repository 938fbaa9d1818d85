package entity

import (
	"time"

	"github.com/google/uuid"
)

// now is the clock used by every aggregate. Tests replace it.
var now = func() time.Time { return time.Now().UTC() }

type (
	MemberID  string
	PostID    string
	CommentID string
)

func NewMemberID() MemberID   { return MemberID(uuid.NewString()) }
func NewPostID() PostID       { return PostID(uuid.NewString()) }
func NewCommentID() CommentID { return CommentID(uuid.NewString()) }

func (id MemberID) String() string  { return string(id) }
func (id PostID) String() string    { return string(id) }
func (id CommentID) String() string { return string(id) }

// aggregateRoot carries identity and lifecycle timestamps shared by all
// aggregates. The id is set once and never reassigned.
type aggregateRoot[ID ~string] struct {
	id        ID
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
	isDeleted bool
}

func newAggregateRoot[ID ~string](id ID) aggregateRoot[ID] {
	t := now()
	return aggregateRoot[ID]{id: id, createdAt: t, updatedAt: t}
}

func restoreAggregateRoot[ID ~string](s RootSnapshot[ID]) aggregateRoot[ID] {
	a := aggregateRoot[ID]{
		id:        s.ID,
		createdAt: s.CreatedAt,
		updatedAt: s.UpdatedAt,
		isDeleted: s.IsDeleted,
	}
	if s.DeletedAt != nil {
		d := *s.DeletedAt
		a.deletedAt = &d
	}
	return a
}

func (a *aggregateRoot[ID]) ID() ID               { return a.id }
func (a *aggregateRoot[ID]) CreatedAt() time.Time { return a.createdAt }
func (a *aggregateRoot[ID]) UpdatedAt() time.Time { return a.updatedAt }
func (a *aggregateRoot[ID]) IsDeleted() bool      { return a.isDeleted }

func (a *aggregateRoot[ID]) DeletedAt() *time.Time {
	if a.deletedAt == nil {
		return nil
	}
	d := *a.deletedAt
	return &d
}

// touch bumps updatedAt, never moving it backwards.
func (a *aggregateRoot[ID]) touch() time.Time {
	if t := now(); t.After(a.updatedAt) {
		a.updatedAt = t
	}
	return a.updatedAt
}

func (a *aggregateRoot[ID]) markDeleted() {
	t := a.touch()
	a.deletedAt = &t
	a.isDeleted = true
}

func (a *aggregateRoot[ID]) rootSnapshot() RootSnapshot[ID] {
	return RootSnapshot[ID]{
		ID:        a.id,
		CreatedAt: a.createdAt,
		UpdatedAt: a.updatedAt,
		DeletedAt: a.DeletedAt(),
		IsDeleted: a.isDeleted,
	}
}

// RootSnapshot is the persisted form of the shared aggregate fields.
type RootSnapshot[ID ~string] struct {
	ID        ID
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
