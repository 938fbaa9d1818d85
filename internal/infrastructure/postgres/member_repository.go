package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-ddd-content-platform/internal/domain/entity"
	"github.com/oksasatya/go-ddd-content-platform/internal/domain/errs"
	"github.com/oksasatya/go-ddd-content-platform/internal/domain/repository"
)

const memberColumns = `id::text, email, password_hash, name, role, is_active, created_at, updated_at, deleted_at, is_deleted`

type MemberRepository struct {
	pool *pgxpool.Pool
}

func NewMemberRepository(pool *pgxpool.Pool) *MemberRepository {
	return &MemberRepository{pool: pool}
}

func scanMember(row rowScanner) (*entity.Member, error) {
	var (
		s        entity.MemberSnapshot
		id, role string
	)
	if err := row.Scan(&id, &s.Email, &s.PasswordHash, &s.Name, &role, &s.IsActive,
		&s.CreatedAt, &s.UpdatedAt, &s.DeletedAt, &s.IsDeleted); err != nil {
		return nil, err
	}
	s.ID = entity.MemberID(id)
	s.Role = entity.Role(role)
	return entity.RestoreMember(s)
}

func (r *MemberRepository) Save(ctx context.Context, m *entity.Member) error {
	s := m.Snapshot()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO members (id, email, password_hash, name, role, is_active, created_at, updated_at, deleted_at, is_deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, s.ID.String(), s.Email, s.PasswordHash, s.Name, string(s.Role), s.IsActive,
		s.CreatedAt, s.UpdatedAt, s.DeletedAt, s.IsDeleted)
	if isUniqueViolation(err) {
		return errs.AlreadyExists(errs.ResourceMember, s.Email)
	}
	return err
}

func (r *MemberRepository) findOne(ctx context.Context, where string, arg any) (*entity.Member, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+memberColumns+` FROM members WHERE `+where+` AND NOT is_deleted`, arg)
	m, err := scanMember(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return m, err
}

func (r *MemberRepository) FindByID(ctx context.Context, id entity.MemberID) (*entity.Member, error) {
	if !isUUID(id.String()) {
		return nil, nil
	}
	return r.findOne(ctx, "id = $1", id.String())
}

func (r *MemberRepository) FindByEmail(ctx context.Context, email entity.Email) (*entity.Member, error) {
	return r.findOne(ctx, "email = $1", email.String())
}

func (r *MemberRepository) ExistsByEmail(ctx context.Context, email entity.Email) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM members WHERE email = $1)`, email.String()).Scan(&exists)
	return exists, err
}

func (r *MemberRepository) Update(ctx context.Context, m *entity.Member) error {
	s := m.Snapshot()
	res, err := r.pool.Exec(ctx, `
		UPDATE members
		SET email = $1, password_hash = $2, name = $3, role = $4, is_active = $5,
		    updated_at = $6, deleted_at = $7, is_deleted = $8
		WHERE id = $9
	`, s.Email, s.PasswordHash, s.Name, string(s.Role), s.IsActive, s.UpdatedAt, s.DeletedAt, s.IsDeleted, s.ID.String())
	if isUniqueViolation(err) {
		return errs.AlreadyExists(errs.ResourceMember, s.Email)
	}
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errs.NotFound(errs.ResourceMember, s.ID.String())
	}
	return nil
}

// Delete soft-deletes the member row.
func (r *MemberRepository) Delete(ctx context.Context, id entity.MemberID) error {
	if !isUUID(id.String()) {
		return errs.NotFound(errs.ResourceMember, id.String())
	}
	res, err := r.pool.Exec(ctx, `
		UPDATE members SET is_deleted = TRUE, is_active = FALSE, deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND NOT is_deleted
	`, id.String())
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errs.NotFound(errs.ResourceMember, id.String())
	}
	return nil
}

var _ repository.MemberRepository = (*MemberRepository)(nil)
