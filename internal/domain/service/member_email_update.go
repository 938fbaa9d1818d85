package service

import (
	"context"

	"github.com/oksasatya/go-ddd-content-platform/internal/domain/entity"
	"github.com/oksasatya/go-ddd-content-platform/internal/domain/errs"
	"github.com/oksasatya/go-ddd-content-platform/internal/domain/repository"
)

// MemberEmailUpdateService changes a member's email while keeping addresses
// unique across members.
type MemberEmailUpdateService struct {
	Members repository.MemberRepository
}

func NewMemberEmailUpdateService(members repository.MemberRepository) *MemberEmailUpdateService {
	return &MemberEmailUpdateService{Members: members}
}

// Execute fails with *errs.ResourceAlreadyExistsError when another member
// already owns target. Setting a member's current address again is allowed.
func (s *MemberEmailUpdateService) Execute(ctx context.Context, target string, m *entity.Member) error {
	email, err := entity.NewEmail(target)
	if err != nil {
		return err
	}
	owner, err := s.Members.FindByEmail(ctx, email)
	if err != nil {
		return errs.Wrap("find member by email", err)
	}
	if owner != nil && owner.ID() != m.ID() {
		return errs.AlreadyExists(errs.ResourceMember, email.String())
	}
	return m.UpdateEmailWithValidation(email.String())
}
