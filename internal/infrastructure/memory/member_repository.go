// Package memory keeps aggregates in process memory. Every map stores
// snapshots, so callers never share a live aggregate with the store.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/oksasatya/go-ddd-content-platform/internal/domain/entity"
	"github.com/oksasatya/go-ddd-content-platform/internal/domain/errs"
)

type MemberRepository struct {
	mu      sync.RWMutex
	members map[entity.MemberID]entity.MemberSnapshot
	emails  map[string]entity.MemberID
}

func NewMemberRepository() *MemberRepository {
	return &MemberRepository{
		members: make(map[entity.MemberID]entity.MemberSnapshot),
		emails:  make(map[string]entity.MemberID),
	}
}

func (r *MemberRepository) Save(_ context.Context, m *entity.Member) error {
	s := m.Snapshot()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[s.ID]; ok {
		return errs.AlreadyExists(errs.ResourceMember, s.ID.String())
	}
	if _, ok := r.emails[s.Email]; ok {
		return errs.AlreadyExists(errs.ResourceMember, s.Email)
	}
	r.members[s.ID] = s
	r.emails[s.Email] = s.ID
	return nil
}

func (r *MemberRepository) FindByID(_ context.Context, id entity.MemberID) (*entity.Member, error) {
	r.mu.RLock()
	s, ok := r.members[id]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return entity.RestoreMember(s)
}

func (r *MemberRepository) FindByEmail(ctx context.Context, email entity.Email) (*entity.Member, error) {
	r.mu.RLock()
	id, ok := r.emails[email.String()]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}

func (r *MemberRepository) ExistsByEmail(_ context.Context, email entity.Email) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.emails[email.String()]
	return ok, nil
}

func (r *MemberRepository) Update(_ context.Context, m *entity.Member) error {
	s := m.Snapshot()
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, ok := r.members[s.ID]
	if !ok {
		return errs.NotFound(errs.ResourceMember, s.ID.String())
	}
	if prev.Email != s.Email {
		if owner, taken := r.emails[s.Email]; taken && owner != s.ID {
			return errs.AlreadyExists(errs.ResourceMember, s.Email)
		}
		delete(r.emails, prev.Email)
		r.emails[s.Email] = s.ID
	}
	r.members[s.ID] = s
	return nil
}

func (r *MemberRepository) Delete(_ context.Context, id entity.MemberID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.members[id]
	if !ok {
		return errs.NotFound(errs.ResourceMember, id.String())
	}
	delete(r.emails, s.Email)
	delete(r.members, id)
	return nil
}

// snapshots returns every member ordered by creation time.
func (r *MemberRepository) snapshots() []entity.MemberSnapshot {
	r.mu.RLock()
	out := make([]entity.MemberSnapshot, 0, len(r.members))
	for _, s := range r.members {
		out = append(out, s)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
