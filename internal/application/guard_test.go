package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oksasatya/go-ddd-content-platform/internal/application"
	"github.com/oksasatya/go-ddd-content-platform/internal/domain/entity"
	"github.com/oksasatya/go-ddd-content-platform/pkg/helpers"
)

func wantReject(t *testing.T, err error, reason application.RejectReason) {
	t.Helper()
	var re *application.RejectError
	if !errors.As(err, &re) {
		t.Fatalf("expected RejectError(%s), got %v", reason, err)
	}
	if re.Reason != reason {
		t.Fatalf("reason = %q, want %q", re.Reason, reason)
	}
	if re.Forbidden() != (reason == application.RejectRoleMismatch) {
		t.Fatalf("Forbidden() = %v for %q", re.Forbidden(), reason)
	}
}

func TestGuardAuthorize(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	member := f.register(t, "jane@example.com")
	f.admin(t, "root@example.com")
	memberAuth := f.bearer(t, "jane@example.com")
	adminAuth := f.bearer(t, "root@example.com")

	p, err := f.guard.Authorize(ctx, memberAuth, entity.RoleMember)
	if err != nil {
		t.Fatal(err)
	}
	if p.ID.String() != member.ID || p.Role != entity.RoleMember {
		t.Fatalf("principal = %+v", p)
	}
	if _, err := f.guard.Authorize(ctx, adminAuth, entity.RoleAdmin); err != nil {
		t.Fatal(err)
	}
	if _, err := f.guard.Authorize(ctx, adminAuth, ""); err != nil {
		t.Fatalf("empty role should only authenticate: %v", err)
	}

	_, err = f.guard.Authorize(ctx, memberAuth, entity.RoleAdmin)
	wantReject(t, err, application.RejectRoleMismatch)
	_, err = f.guard.Authorize(ctx, adminAuth, entity.RoleMember)
	wantReject(t, err, application.RejectRoleMismatch)

	_, err = f.guard.Authorize(ctx, "", entity.RoleMember)
	wantReject(t, err, application.RejectMissingToken)
	_, err = f.guard.Authorize(ctx, "Token abc", entity.RoleMember)
	wantReject(t, err, application.RejectMissingToken)
	_, err = f.guard.Authorize(ctx, "Bearer nope", entity.RoleMember)
	wantReject(t, err, application.RejectInvalidToken)

	refresh, _, _ := f.jwt.GenerateRefreshToken(member.ID, member.Email, member.Role)
	_, err = f.guard.Authorize(ctx, "Bearer "+refresh, entity.RoleMember)
	wantReject(t, err, application.RejectInvalidToken)
}

func TestGuardRejectsInactiveMember(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.register(t, "jane@example.com")
	auth := f.bearer(t, "jane@example.com")

	if _, err := f.memberSvc.SetActive(ctx, application.SetMemberActiveCommand{MemberID: entity.MemberID(m.ID)}); err != nil {
		t.Fatal(err)
	}
	_, err := f.guard.Authorize(ctx, auth, entity.RoleMember)
	wantReject(t, err, application.RejectInactive)
}

func TestGuardRejectsTokenForMovedEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jane := f.register(t, "jane@example.com")
	auth := f.bearer(t, "jane@example.com")

	_, err := f.memberSvc.UpdateProfile(ctx, application.UpdateProfileCommand{
		MemberID: entity.MemberID(jane.ID), Email: strPtr("jane.new@example.com"),
	})
	if err != nil {
		t.Fatal(err)
	}
	_, err = f.guard.Authorize(ctx, auth, entity.RoleMember)
	wantReject(t, err, application.RejectUnknownPrincipal)

	f.register(t, "jane@example.com")
	_, err = f.guard.Authorize(ctx, auth, entity.RoleMember)
	wantReject(t, err, application.RejectUnknownPrincipal)
}

func TestGuardRejectsExpiredAccessToken(t *testing.T) {
	f := newFixture(t)
	m := f.register(t, "jane@example.com")

	// Same secrets as the fixture; exp truncates to the second so the token
	// is already expired when verified.
	shortLived, err := helpers.NewJWTManager("access-secret", "refresh-secret", time.Nanosecond, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	token, _, err := shortLived.GenerateAccessToken(m.ID, m.Email, m.Role)
	if err != nil {
		t.Fatal(err)
	}

	_, err = f.guard.Authorize(context.Background(), "Bearer "+token, entity.RoleMember)
	wantReject(t, err, application.RejectInvalidToken)
}
