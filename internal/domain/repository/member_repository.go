package repository

import (
	"context"

	"github.com/oksasatya/go-ddd-content-platform/internal/domain/entity"
)

// MemberRepository persists members. Find methods return (nil, nil) when
// nothing matches; Update and Delete return *errs.ResourceNotFoundError for
// an unknown id.
type MemberRepository interface {
	Save(ctx context.Context, m *entity.Member) error
	FindByID(ctx context.Context, id entity.MemberID) (*entity.Member, error)
	FindByEmail(ctx context.Context, email entity.Email) (*entity.Member, error)
	ExistsByEmail(ctx context.Context, email entity.Email) (bool, error)
	Update(ctx context.Context, m *entity.Member) error
	Delete(ctx context.Context, id entity.MemberID) error
}
