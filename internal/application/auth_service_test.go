package application_test

import (
	"context"
	"testing"

	"github.com/oksasatya/go-ddd-content-platform/internal/application"
	"github.com/oksasatya/go-ddd-content-platform/internal/domain/entity"
	"github.com/oksasatya/go-ddd-content-platform/internal/domain/errs"
)

func TestLoginIssuesTokens(t *testing.T) {
	f := newFixture(t)
	m := f.register(t, "jane@example.com")

	res, err := f.auth.Login(context.Background(), application.LoginCommand{Email: " JANE@example.com", Password: "Abcd1234"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Member.ID != m.ID {
		t.Fatalf("member = %+v", res.Member)
	}
	claims, err := f.jwt.VerifyAccessToken(res.Tokens.AccessToken)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Subject != m.ID || claims.Email != "jane@example.com" || claims.Role != "MEMBER" {
		t.Fatalf("claims = %+v", claims)
	}
	if _, err := f.jwt.VerifyRefreshToken(res.Tokens.RefreshToken); err != nil {
		t.Fatalf("refresh token: %v", err)
	}
}

func TestLoginFailuresLookAlike(t *testing.T) {
	f := newFixture(t)
	f.register(t, "jane@example.com")
	ctx := context.Background()

	for _, cmd := range []application.LoginCommand{
		{Email: "jane@example.com", Password: "Wrong1234"},
		{Email: "ghost@example.com", Password: "Abcd1234"},
		{Email: "not-an-email", Password: "Abcd1234"},
	} {
		_, err := f.auth.Login(ctx, cmd)
		wantKind(t, err, errs.KindInvalidCredentials)
		if err.Error() != "Invalid credentials provided" {
			t.Fatalf("message = %q", err.Error())
		}
	}
}

func TestLoginDeactivatedMember(t *testing.T) {
	f := newFixture(t)
	m := f.register(t, "jane@example.com")
	if _, err := f.memberSvc.SetActive(context.Background(), application.SetMemberActiveCommand{MemberID: entity.MemberID(m.ID)}); err != nil {
		t.Fatal(err)
	}
	_, err := f.auth.Login(context.Background(), application.LoginCommand{Email: "jane@example.com", Password: "Abcd1234"})
	wantKind(t, err, errs.KindAccountDeactivated)
}

func TestRefresh(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.register(t, "jane@example.com")
	res, err := f.auth.Login(ctx, application.LoginCommand{Email: "jane@example.com", Password: "Abcd1234"})
	if err != nil {
		t.Fatal(err)
	}

	pair, err := f.auth.Refresh(ctx, application.RefreshCommand{RefreshToken: res.Tokens.RefreshToken})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.jwt.VerifyAccessToken(pair.AccessToken); err != nil {
		t.Fatalf("refreshed access token: %v", err)
	}

	_, err = f.auth.Refresh(ctx, application.RefreshCommand{RefreshToken: res.Tokens.AccessToken})
	wantKind(t, err, errs.KindInvalidToken)
	_, err = f.auth.Refresh(ctx, application.RefreshCommand{RefreshToken: ""})
	wantKind(t, err, errs.KindInvalidToken)

	if _, err := f.memberSvc.SetActive(ctx, application.SetMemberActiveCommand{MemberID: entity.MemberID(m.ID)}); err != nil {
		t.Fatal(err)
	}
	_, err = f.auth.Refresh(ctx, application.RefreshCommand{RefreshToken: res.Tokens.RefreshToken})
	wantKind(t, err, errs.KindAccountDeactivated)

	if err := f.members.Delete(ctx, entity.MemberID(m.ID)); err != nil {
		t.Fatal(err)
	}
	_, err = f.auth.Refresh(ctx, application.RefreshCommand{RefreshToken: res.Tokens.RefreshToken})
	wantKind(t, err, errs.KindInvalidToken)
}
