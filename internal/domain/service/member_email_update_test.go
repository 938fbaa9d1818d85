package service

import (
	"context"
	"errors"
	"testing"

	"github.com/oksasatya/go-ddd-content-platform/internal/domain/entity"
	"github.com/oksasatya/go-ddd-content-platform/internal/domain/errs"
	"github.com/oksasatya/go-ddd-content-platform/pkg/helpers"
)

func init() {
	_ = helpers.ConfigureArgon2(helpers.Argon2Params{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 8, KeyLength: 16})
}

// emailIndex is the slice of MemberRepository the service reads.
type emailIndex struct {
	byEmail map[string]*entity.Member
	err     error
}

func (f *emailIndex) Save(context.Context, *entity.Member) error { return nil }
func (f *emailIndex) FindByID(context.Context, entity.MemberID) (*entity.Member, error) {
	return nil, nil
}
func (f *emailIndex) FindByEmail(_ context.Context, e entity.Email) (*entity.Member, error) {
	return f.byEmail[e.String()], f.err
}
func (f *emailIndex) ExistsByEmail(_ context.Context, e entity.Email) (bool, error) {
	return f.byEmail[e.String()] != nil, f.err
}
func (f *emailIndex) Update(context.Context, *entity.Member) error  { return nil }
func (f *emailIndex) Delete(context.Context, entity.MemberID) error { return nil }

func newMember(t *testing.T, email string) *entity.Member {
	t.Helper()
	e, err := entity.NewEmail(email)
	if err != nil {
		t.Fatal(err)
	}
	p, err := entity.NewPassword("Abcd1234")
	if err != nil {
		t.Fatal(err)
	}
	m, err := entity.NewMember(e, p, "Member", entity.RoleMember)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestMemberEmailUpdate(t *testing.T) {
	ctx := context.Background()
	alice := newMember(t, "alice@example.com")
	bob := newMember(t, "bob@example.com")
	repo := &emailIndex{byEmail: map[string]*entity.Member{
		"alice@example.com": alice,
		"bob@example.com":   bob,
	}}
	svc := NewMemberEmailUpdateService(repo)

	err := svc.Execute(ctx, "BOB@example.com", alice)
	if errs.KindOf(err) != errs.KindAlreadyExists {
		t.Fatalf("err = %v, want AlreadyExists", err)
	}
	if alice.Email().String() != "alice@example.com" {
		t.Fatal("email changed despite conflict")
	}

	if err := svc.Execute(ctx, "alice@example.com", alice); err != nil {
		t.Fatalf("re-setting own address: %v", err)
	}

	if err := svc.Execute(ctx, "not-an-email", alice); errs.KindOf(err) != errs.KindValidation {
		t.Fatalf("err = %v, want Validation", err)
	}

	if err := svc.Execute(ctx, "alice.new@example.com", alice); err != nil {
		t.Fatal(err)
	}
	if alice.Email().String() != "alice.new@example.com" {
		t.Fatalf("email = %s", alice.Email())
	}
}

func TestMemberEmailUpdateStorageFailure(t *testing.T) {
	m := newMember(t, "carol@example.com")
	svc := NewMemberEmailUpdateService(&emailIndex{err: errors.New("db down")})
	err := svc.Execute(context.Background(), "carol2@example.com", m)
	if errs.KindOf(err) != errs.KindInternal {
		t.Fatalf("err = %v, want Internal", err)
	}
}
