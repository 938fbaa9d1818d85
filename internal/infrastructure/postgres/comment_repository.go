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

const commentColumns = `id::text, content, author_id::text, post_id::text, created_at, updated_at, deleted_at, is_deleted`

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

func scanComment(row rowScanner) (*entity.Comment, error) {
	var (
		s                    entity.CommentSnapshot
		id, authorID, postID string
	)
	if err := row.Scan(&id, &s.Content, &authorID, &postID, &s.CreatedAt, &s.UpdatedAt, &s.DeletedAt, &s.IsDeleted); err != nil {
		return nil, err
	}
	s.ID = entity.CommentID(id)
	s.AuthorID = entity.MemberID(authorID)
	s.PostID = entity.PostID(postID)
	return entity.RestoreComment(s)
}

func (r *CommentRepository) Save(ctx context.Context, c *entity.Comment) error {
	s := c.Snapshot()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO comments (id, content, author_id, post_id, created_at, updated_at, deleted_at, is_deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, s.ID.String(), s.Content, s.AuthorID.String(), s.PostID.String(), s.CreatedAt, s.UpdatedAt, s.DeletedAt, s.IsDeleted)
	if isUniqueViolation(err) {
		return errs.AlreadyExists(errs.ResourceComment, s.ID.String())
	}
	return err
}

// FindByID also returns soft-deleted comments.
func (r *CommentRepository) FindByID(ctx context.Context, id entity.CommentID) (*entity.Comment, error) {
	if !isUUID(id.String()) {
		return nil, nil
	}
	row := r.pool.QueryRow(ctx, `SELECT `+commentColumns+` FROM comments WHERE id = $1`, id.String())
	c, err := scanComment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

func (r *CommentRepository) Update(ctx context.Context, c *entity.Comment) error {
	s := c.Snapshot()
	res, err := r.pool.Exec(ctx, `
		UPDATE comments SET content = $1, updated_at = $2, deleted_at = $3, is_deleted = $4
		WHERE id = $5
	`, s.Content, s.UpdatedAt, s.DeletedAt, s.IsDeleted, s.ID.String())
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errs.NotFound(errs.ResourceComment, s.ID.String())
	}
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, id entity.CommentID) error {
	if !isUUID(id.String()) {
		return errs.NotFound(errs.ResourceComment, id.String())
	}
	res, err := r.pool.Exec(ctx, `
		UPDATE comments SET is_deleted = TRUE, deleted_at = COALESCE(deleted_at, NOW()), updated_at = GREATEST(updated_at, NOW())
		WHERE id = $1
	`, id.String())
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errs.NotFound(errs.ResourceComment, id.String())
	}
	return nil
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
