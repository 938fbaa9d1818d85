package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-content-platform/internal/domain/entity"
	"github.com/oksasatya/go-ddd-content-platform/internal/domain/repository"
	"github.com/oksasatya/go-ddd-content-platform/pkg/helpers"
)

// Principal is the authenticated actor attached to a request.
type Principal struct {
	ID    entity.MemberID `json:"id"`
	Email string          `json:"email"`
	Role  entity.Role     `json:"role"`
}

type RejectReason string

const (
	RejectMissingToken     RejectReason = "missing bearer token"
	RejectInvalidToken     RejectReason = "invalid access token"
	RejectUnknownPrincipal RejectReason = "principal not found"
	RejectInactive         RejectReason = "principal is deactivated"
	RejectRoleMismatch     RejectReason = "insufficient role"
)

// RejectError stops a request before any use case runs. Only a role
// mismatch is Forbidden; every other reason is an authentication failure.
type RejectError struct {
	Reason RejectReason
}

func (e *RejectError) Error() string   { return string(e.Reason) }
func (e *RejectError) Forbidden() bool { return e.Reason == RejectRoleMismatch }

// Guard authenticates a bearer token and checks the caller's role.
type Guard struct {
	Tokens  TokenService
	Members repository.MemberRepository
	Logger  *logrus.Logger
}

func NewGuard(tokens TokenService, members repository.MemberRepository, logger *logrus.Logger) *Guard {
	return &Guard{Tokens: tokens, Members: members, Logger: orNop(logger)}
}

// Authorize runs the pipeline for one request. An empty required role only
// authenticates. Roles are compared for equality: ADMIN does not satisfy
// MEMBER and MEMBER does not satisfy ADMIN.
func (g *Guard) Authorize(ctx context.Context, authHeader string, required entity.Role) (Principal, error) {
	token, ok := helpers.ExtractTokenFromHeader(authHeader)
	if !ok {
		return Principal{}, g.reject(RejectMissingToken, nil)
	}
	claims, err := g.Tokens.VerifyAccessToken(token)
	if err != nil {
		return Principal{}, g.reject(RejectInvalidToken, nil)
	}
	email, err := entity.NewEmail(claims.Email)
	if err != nil {
		return Principal{}, g.reject(RejectInvalidToken, nil)
	}
	m, err := g.Members.FindByEmail(ctx, email)
	if err != nil {
		g.Logger.WithError(err).Error("guard member lookup failed")
		return Principal{}, g.reject(RejectUnknownPrincipal, nil)
	}
	// The email may have moved to another member since the token was issued.
	if m == nil || m.ID().String() != claims.Subject {
		return Principal{}, g.reject(RejectUnknownPrincipal, logrus.Fields{"email": helpers.MaskEmail(email.String())})
	}
	if !m.IsActive() {
		return Principal{}, g.reject(RejectInactive, logrus.Fields{"member_id": m.ID()})
	}
	if required != "" && m.Role() != required {
		return Principal{}, g.reject(RejectRoleMismatch, logrus.Fields{
			"member_id": m.ID(),
			"role":      m.Role(),
			"required":  required,
		})
	}
	return Principal{ID: m.ID(), Email: m.Email().String(), Role: m.Role()}, nil
}

func (g *Guard) reject(reason RejectReason, fields logrus.Fields) error {
	g.Logger.WithFields(fields).WithField("reason", reason).Debug("request rejected")
	return &RejectError{Reason: reason}
}
