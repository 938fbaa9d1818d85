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

const postColumns = `id::text, title, content, status, author_id::text, published_at, tags, view_count,
	created_at, updated_at, deleted_at, is_deleted`

// PostRepository soft-deletes: Delete keeps the archived row and hides it
// from FindByID.
type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

func scanPost(row rowScanner) (*entity.Post, error) {
	var (
		s                    entity.PostSnapshot
		id, authorID, status string
		viewCount            int64
	)
	if err := row.Scan(&id, &s.Title, &s.Content, &status, &authorID, &s.PublishedAt, &s.Tags, &viewCount,
		&s.CreatedAt, &s.UpdatedAt, &s.DeletedAt, &s.IsDeleted); err != nil {
		return nil, err
	}
	s.ID = entity.PostID(id)
	s.AuthorID = entity.MemberID(authorID)
	s.Status = entity.PostStatus(status)
	if viewCount > 0 {
		s.ViewCount = uint64(viewCount)
	}
	return entity.RestorePost(s)
}

func (r *PostRepository) Save(ctx context.Context, p *entity.Post) error {
	s := p.Snapshot()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO posts (id, title, content, status, author_id, published_at, tags, view_count,
		                   created_at, updated_at, deleted_at, is_deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, s.ID.String(), s.Title, s.Content, string(s.Status), s.AuthorID.String(), s.PublishedAt, s.Tags,
		int64(s.ViewCount), s.CreatedAt, s.UpdatedAt, s.DeletedAt, s.IsDeleted)
	if isUniqueViolation(err) {
		return errs.AlreadyExists(errs.ResourcePost, s.ID.String())
	}
	return err
}

func (r *PostRepository) FindByID(ctx context.Context, id entity.PostID) (*entity.Post, error) {
	if !isUUID(id.String()) {
		return nil, nil
	}
	row := r.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1 AND NOT is_deleted`, id.String())
	p, err := scanPost(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

// Update leaves view_count alone; it only moves through IncrementViewCount.
func (r *PostRepository) Update(ctx context.Context, p *entity.Post) error {
	s := p.Snapshot()
	res, err := r.pool.Exec(ctx, `
		UPDATE posts
		SET title = $1, content = $2, status = $3, published_at = $4, tags = $5,
		    updated_at = $6, deleted_at = $7, is_deleted = $8
		WHERE id = $9
	`, s.Title, s.Content, string(s.Status), s.PublishedAt, s.Tags, s.UpdatedAt, s.DeletedAt, s.IsDeleted, s.ID.String())
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errs.NotFound(errs.ResourcePost, s.ID.String())
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id entity.PostID) error {
	if !isUUID(id.String()) {
		return errs.NotFound(errs.ResourcePost, id.String())
	}
	res, err := r.pool.Exec(ctx, `
		UPDATE posts
		SET status = 'ARCHIVED', is_deleted = TRUE,
		    deleted_at = COALESCE(deleted_at, NOW()), updated_at = GREATEST(updated_at, NOW())
		WHERE id = $1
	`, id.String())
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errs.NotFound(errs.ResourcePost, id.String())
	}
	return nil
}

func (r *PostRepository) IncrementViewCount(ctx context.Context, id entity.PostID) error {
	if !isUUID(id.String()) {
		return errs.NotFound(errs.ResourcePost, id.String())
	}
	res, err := r.pool.Exec(ctx, `
		UPDATE posts SET view_count = view_count + 1 WHERE id = $1 AND NOT is_deleted
	`, id.String())
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errs.NotFound(errs.ResourcePost, id.String())
	}
	return nil
}

var _ repository.PostRepository = (*PostRepository)(nil)
