package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-content-platform/internal/domain/entity"
	"github.com/oksasatya/go-ddd-content-platform/internal/domain/errs"
	"github.com/oksasatya/go-ddd-content-platform/internal/domain/repository"
	"github.com/oksasatya/go-ddd-content-platform/internal/domain/service"
	"github.com/oksasatya/go-ddd-content-platform/pkg/helpers"
)

type RegisterMemberCommand struct {
	Email    string
	Password string
	Name     string
}

// UpdateProfileCommand changes only the fields that are non-nil.
type UpdateProfileCommand struct {
	MemberID entity.MemberID
	Name     *string
	Email    *string
}

type SetMemberActiveCommand struct {
	MemberID entity.MemberID
	Active   bool
}

type MemberService struct {
	Members     repository.MemberRepository
	Queries     MemberQueries
	EmailUpdate *service.MemberEmailUpdateService
	Events      EventPublisher
	Locks       *helpers.KeyLock
	Logger      *logrus.Logger
}

func NewMemberService(members repository.MemberRepository, queries MemberQueries, events EventPublisher, locks *helpers.KeyLock, logger *logrus.Logger) *MemberService {
	return &MemberService{
		Members:     members,
		Queries:     queries,
		EmailUpdate: service.NewMemberEmailUpdateService(members),
		Events:      events,
		Locks:       orNewLocks(locks),
		Logger:      orNop(logger),
	}
}

func (s *MemberService) Register(ctx context.Context, cmd RegisterMemberCommand) (MemberView, error) {
	email, err := entity.NewEmail(cmd.Email)
	if err != nil {
		return MemberView{}, err
	}
	password, err := entity.NewPassword(cmd.Password)
	if err != nil {
		return MemberView{}, err
	}
	m, err := entity.NewMember(email, password, cmd.Name, entity.RoleMember)
	if err != nil {
		return MemberView{}, err
	}

	unlock := s.Locks.Lock(emailKey(email))
	defer unlock()

	exists, err := s.Members.ExistsByEmail(ctx, email)
	if err != nil {
		return MemberView{}, errs.Wrap("check email", err)
	}
	if exists {
		return MemberView{}, errs.AlreadyExists(errs.ResourceMember, email.String())
	}
	if err := s.Members.Save(ctx, m); err != nil {
		return MemberView{}, errs.Wrap("save member", err)
	}

	s.Logger.WithField("member_id", m.ID()).Info("member registered")
	publishEvent(ctx, s.Events, s.Logger, EventMemberRegistered, map[string]string{
		"member_id": m.ID().String(),
		"email":     m.Email().String(),
		"name":      m.Name(),
	})
	return NewMemberView(m), nil
}

// UpdateProfile applies the name first, then the email through the
// uniqueness check. Nothing is stored unless every change succeeds.
func (s *MemberService) UpdateProfile(ctx context.Context, cmd UpdateProfileCommand) (MemberView, error) {
	keys := []string{memberKey(cmd.MemberID)}
	if cmd.Email != nil {
		if e, err := entity.NewEmail(*cmd.Email); err == nil {
			keys = append(keys, emailKey(e))
		}
	}
	unlock := s.Locks.LockMany(keys...)
	defer unlock()

	m, err := s.find(ctx, cmd.MemberID)
	if err != nil {
		return MemberView{}, err
	}
	if cmd.Name != nil {
		if err := m.UpdateProfile(*cmd.Name); err != nil {
			return MemberView{}, err
		}
	}
	if cmd.Email != nil {
		if err := s.EmailUpdate.Execute(ctx, *cmd.Email, m); err != nil {
			return MemberView{}, err
		}
	}
	if err := s.Members.Update(ctx, m); err != nil {
		return MemberView{}, errs.Wrap("update member", err)
	}
	return NewMemberView(m), nil
}

func (s *MemberService) Get(ctx context.Context, id entity.MemberID) (MemberView, error) {
	m, err := s.find(ctx, id)
	if err != nil {
		return MemberView{}, err
	}
	return NewMemberView(m), nil
}

func (s *MemberService) List(ctx context.Context, pg Pagination) (Page[MemberView], error) {
	page, err := s.Queries.ListMembers(ctx, pg.Normalize(DefaultMemberLimit))
	if err != nil {
		return Page[MemberView]{}, errs.Wrap("list members", err)
	}
	return page, nil
}

// SetActive deactivates or reactivates a member. A deactivated member can
// no longer log in and every token they hold is rejected by the Guard.
func (s *MemberService) SetActive(ctx context.Context, cmd SetMemberActiveCommand) (MemberView, error) {
	unlock := s.Locks.Lock(memberKey(cmd.MemberID))
	defer unlock()

	m, err := s.find(ctx, cmd.MemberID)
	if err != nil {
		return MemberView{}, err
	}
	if cmd.Active {
		m.Activate()
	} else {
		m.Deactivate()
	}
	if err := s.Members.Update(ctx, m); err != nil {
		return MemberView{}, errs.Wrap("update member", err)
	}
	s.Logger.WithFields(logrus.Fields{"member_id": m.ID(), "active": cmd.Active}).Info("member status changed")
	return NewMemberView(m), nil
}

func (s *MemberService) find(ctx context.Context, id entity.MemberID) (*entity.Member, error) {
	m, err := s.Members.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Wrap("find member", err)
	}
	if m == nil {
		return nil, errs.NotFound(errs.ResourceMember, id.String())
	}
	return m, nil
}
