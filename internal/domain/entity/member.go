package entity

import (
	"strings"

	"github.com/oksasatya/go-ddd-content-platform/internal/domain/errs"
)

// Member is the principal that authors posts and comments and logs in.
type Member struct {
	aggregateRoot[MemberID]
	email    Email
	password Password
	name     string
	role     Role
	isActive bool
}

// NewMember registers an active member. An empty role means RoleMember.
func NewMember(email Email, password Password, name string, role Role) (*Member, error) {
	n, err := validName(name)
	if err != nil {
		return nil, err
	}
	if role == "" {
		role = RoleMember
	}
	return &Member{
		aggregateRoot: newAggregateRoot(NewMemberID()),
		email:         email,
		password:      password,
		name:          n,
		role:          role,
		isActive:      true,
	}, nil
}

func validName(name string) (string, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return "", errs.Validation(errs.FieldName, name, "Name cannot be empty", "must not be blank")
	}
	return n, nil
}

func (m *Member) Email() Email       { return m.email }
func (m *Member) Password() Password { return m.password }
func (m *Member) Name() string       { return m.name }
func (m *Member) Role() Role         { return m.role }
func (m *Member) IsActive() bool     { return m.isActive }

func (m *Member) UpdateProfile(name string) error {
	n, err := validName(name)
	if err != nil {
		return err
	}
	m.name = n
	m.touch()
	return nil
}

// UpdateEmailWithValidation replaces the address after re-running Email
// construction. Uniqueness is the caller's concern.
func (m *Member) UpdateEmailWithValidation(raw string) error {
	e, err := NewEmail(raw)
	if err != nil {
		return err
	}
	m.email = e
	m.touch()
	return nil
}

// Login checks the account state before the credential.
func (m *Member) Login(plain string) error {
	if !m.isActive {
		return &errs.AccountDeactivatedError{Email: m.email.String()}
	}
	if !m.password.Compare(plain) {
		return &errs.InvalidCredentialsError{}
	}
	return nil
}

func (m *Member) Deactivate() {
	if !m.isActive {
		return
	}
	m.isActive = false
	m.touch()
}

func (m *Member) Activate() {
	if m.isActive {
		return
	}
	m.isActive = true
	m.touch()
}

type MemberSnapshot struct {
	RootSnapshot[MemberID]
	Email        string
	PasswordHash string
	Name         string
	Role         Role
	IsActive     bool
}

func (m *Member) Snapshot() MemberSnapshot {
	return MemberSnapshot{
		RootSnapshot: m.rootSnapshot(),
		Email:        m.email.String(),
		PasswordHash: m.password.Hash(),
		Name:         m.name,
		Role:         m.role,
		IsActive:     m.isActive,
	}
}

// RestoreMember rebuilds a member from storage, revalidating its email.
func RestoreMember(s MemberSnapshot) (*Member, error) {
	e, err := NewEmail(s.Email)
	if err != nil {
		return nil, err
	}
	return &Member{
		aggregateRoot: restoreAggregateRoot(s.RootSnapshot),
		email:         e,
		password:      PasswordFromHash(s.PasswordHash),
		name:          s.Name,
		role:          ParseRole(string(s.Role)),
		isActive:      s.IsActive,
	}, nil
}
