package application

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-content-platform/internal/domain/entity"
	"github.com/oksasatya/go-ddd-content-platform/internal/domain/errs"
	"github.com/oksasatya/go-ddd-content-platform/internal/domain/repository"
	"github.com/oksasatya/go-ddd-content-platform/pkg/helpers"
)

type LoginCommand struct {
	Email    string
	Password string
}

type RefreshCommand struct {
	RefreshToken string
}

type TokenPair struct {
	AccessToken        string    `json:"access_token"`
	AccessTokenExpiry  time.Time `json:"access_token_expires_at"`
	RefreshToken       string    `json:"refresh_token"`
	RefreshTokenExpiry time.Time `json:"refresh_token_expires_at"`
}

type LoginResult struct {
	Member MemberView `json:"member"`
	Tokens TokenPair  `json:"tokens"`
}

type AuthService struct {
	Members repository.MemberRepository
	Tokens  TokenService
	Logger  *logrus.Logger
}

func NewAuthService(members repository.MemberRepository, tokens TokenService, logger *logrus.Logger) *AuthService {
	return &AuthService{Members: members, Tokens: tokens, Logger: orNop(logger)}
}

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// burnCompare spends the same hashing effort as a real comparison so an
// unknown email is not distinguishable by response time.
func burnCompare(plain string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = helpers.HashPassword("timing-equalizer")
	})
	_ = helpers.CompareHashAndPassword(dummyHash, plain)
}

// Login answers an unknown email and a wrong password with the same
// *errs.InvalidCredentialsError.
func (s *AuthService) Login(ctx context.Context, cmd LoginCommand) (LoginResult, error) {
	email, err := entity.NewEmail(cmd.Email)
	if err != nil {
		burnCompare(cmd.Password)
		return LoginResult{}, &errs.InvalidCredentialsError{}
	}
	m, err := s.Members.FindByEmail(ctx, email)
	if err != nil {
		return LoginResult{}, errs.Wrap("find member by email", err)
	}
	if m == nil {
		burnCompare(cmd.Password)
		s.Logger.WithField("email", helpers.MaskEmail(email.String())).Info("login failed")
		return LoginResult{}, &errs.InvalidCredentialsError{}
	}
	if err := m.Login(cmd.Password); err != nil {
		s.Logger.WithField("member_id", m.ID()).WithField("reason", errs.KindOf(err)).Info("login failed")
		return LoginResult{}, err
	}
	pair, err := s.issue(m)
	if err != nil {
		return LoginResult{}, err
	}
	s.Logger.WithField("member_id", m.ID()).Info("member logged in")
	return LoginResult{Member: NewMemberView(m), Tokens: pair}, nil
}

// Refresh exchanges a valid refresh token for a new pair. The member must
// still exist and be active.
func (s *AuthService) Refresh(ctx context.Context, cmd RefreshCommand) (TokenPair, error) {
	claims, err := s.Tokens.VerifyRefreshToken(cmd.RefreshToken)
	if err != nil {
		return TokenPair{}, &errs.InvalidTokenError{}
	}
	m, err := s.Members.FindByID(ctx, entity.MemberID(claims.Subject))
	if err != nil {
		return TokenPair{}, errs.Wrap("find member by id", err)
	}
	if m == nil {
		return TokenPair{}, &errs.InvalidTokenError{}
	}
	if !m.IsActive() {
		return TokenPair{}, &errs.AccountDeactivatedError{Email: m.Email().String()}
	}
	return s.issue(m)
}

func (s *AuthService) issue(m *entity.Member) (TokenPair, error) {
	sub, email, role := m.ID().String(), m.Email().String(), string(m.Role())
	access, aexp, err := s.Tokens.GenerateAccessToken(sub, email, role)
	if err != nil {
		s.Logger.WithError(err).WithField("member_id", sub).Error("generate access token failed")
		return TokenPair{}, errs.Internal("generate access token", err)
	}
	refresh, rexp, err := s.Tokens.GenerateRefreshToken(sub, email, role)
	if err != nil {
		s.Logger.WithError(err).WithField("member_id", sub).Error("generate refresh token failed")
		return TokenPair{}, errs.Internal("generate refresh token", err)
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}
