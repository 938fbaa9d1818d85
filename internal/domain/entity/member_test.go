package entity

import (
	"testing"
	"time"

	"github.com/oksasatya/go-ddd-content-platform/internal/domain/errs"
)

func TestNewMemberDefaults(t *testing.T) {
	clock := fakeClock(t)
	m := mustMember(t, "jane@example.com")
	if !m.IsActive() || m.Role() != RoleMember {
		t.Fatalf("active = %v, role = %s", m.IsActive(), m.Role())
	}
	if !m.CreatedAt().Equal(*clock) || !m.UpdatedAt().Equal(*clock) {
		t.Fatal("timestamps should come from the clock")
	}
	if m.ID() == "" {
		t.Fatal("missing id")
	}
}

func TestNewMemberRejectsBlankName(t *testing.T) {
	e, _ := NewEmail("x@y.io")
	p, _ := NewPassword("Abcd1234")
	_, err := NewMember(e, p, "   ", RoleAdmin)
	wantKind(t, err, errs.KindValidation)
}

func TestMemberLogin(t *testing.T) {
	m := mustMember(t, "jane@example.com")
	if err := m.Login("Abcd1234"); err != nil {
		t.Fatalf("login: %v", err)
	}
	wantKind(t, m.Login("nope"), errs.KindInvalidCredentials)

	m.Deactivate()
	wantKind(t, m.Login("Abcd1234"), errs.KindAccountDeactivated)
	wantKind(t, m.Login("nope"), errs.KindAccountDeactivated)
}

func TestMemberActivationIsIdempotent(t *testing.T) {
	clock := fakeClock(t)
	m := mustMember(t, "jane@example.com")

	*clock = clock.Add(time.Minute)
	m.Activate()
	if m.UpdatedAt().Equal(*clock) {
		t.Fatal("activating an active member should not touch it")
	}
	m.Deactivate()
	if m.IsActive() || !m.UpdatedAt().Equal(*clock) {
		t.Fatal("deactivate should flip the flag and touch")
	}
}

func TestMemberUpdateProfile(t *testing.T) {
	clock := fakeClock(t)
	m := mustMember(t, "jane@example.com")
	*clock = clock.Add(time.Second)

	if err := m.UpdateProfile("  Janet "); err != nil {
		t.Fatal(err)
	}
	if m.Name() != "Janet" || !m.UpdatedAt().Equal(*clock) {
		t.Fatalf("name = %q, updatedAt = %v", m.Name(), m.UpdatedAt())
	}
	wantKind(t, m.UpdateProfile(""), errs.KindValidation)
	if m.Name() != "Janet" {
		t.Fatal("failed update must not change the name")
	}
}

func TestMemberUpdateEmail(t *testing.T) {
	m := mustMember(t, "jane@example.com")
	wantKind(t, m.UpdateEmailWithValidation("broken"), errs.KindValidation)
	if m.Email().String() != "jane@example.com" {
		t.Fatal("invalid email must not be applied")
	}
	if err := m.UpdateEmailWithValidation("JANET@example.com"); err != nil {
		t.Fatal(err)
	}
	if m.Email().String() != "janet@example.com" {
		t.Fatalf("email = %s", m.Email())
	}
}

func TestRestoreMemberKeepsCredential(t *testing.T) {
	m := mustMember(t, "jane@example.com")
	m.Deactivate()
	r, err := RestoreMember(m.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	if r.ID() != m.ID() || r.IsActive() || r.Name() != "Jane" {
		t.Fatalf("restored = %+v", r.Snapshot())
	}
	r.Activate()
	if err := r.Login("Abcd1234"); err != nil {
		t.Fatalf("restored member cannot log in: %v", err)
	}
}
