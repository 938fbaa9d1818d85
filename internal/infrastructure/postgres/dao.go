package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-ddd-content-platform/internal/application"
	"github.com/oksasatya/go-ddd-content-platform/internal/domain/entity"
)

// PostDAO lists posts with a single COUNT(*) OVER() query per page.
type PostDAO struct {
	pool *pgxpool.Pool
}

func NewPostDAO(pool *pgxpool.Pool) *PostDAO { return &PostDAO{pool: pool} }

func (d *PostDAO) ListPosts(ctx context.Context, f application.PostFilter, pg application.Pagination) (application.Page[application.PostSummary], error) {
	status := entity.PostStatusPublished
	if f.Status != nil {
		status = *f.Status
	}
	var author any
	if f.AuthorID != "" {
		if !isUUID(f.AuthorID.String()) {
			return application.NewPage[application.PostSummary](nil, 0, pg), nil
		}
		author = f.AuthorID.String()
	}
	rows, err := d.pool.Query(ctx, `
		SELECT `+postColumns+`, COUNT(*) OVER() AS total
		FROM posts
		WHERE status = $1 AND NOT is_deleted AND ($2::uuid IS NULL OR author_id = $2::uuid)
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4
	`, string(status), author, pg.Limit, pg.Offset())
	if err != nil {
		return application.Page[application.PostSummary]{}, err
	}
	defer rows.Close()

	var (
		out   []application.PostSummary
		total int64
	)
	for rows.Next() {
		p, err := scanPost(withTotal{rows, &total})
		if err != nil {
			return application.Page[application.PostSummary]{}, err
		}
		out = append(out, application.NewPostSummary(p))
	}
	if err := rows.Err(); err != nil {
		return application.Page[application.PostSummary]{}, err
	}
	if len(out) == 0 && pg.Offset() > 0 {
		if err := d.pool.QueryRow(ctx, `
			SELECT COUNT(*) FROM posts
			WHERE status = $1 AND NOT is_deleted AND ($2::uuid IS NULL OR author_id = $2::uuid)
		`, string(status), author).Scan(&total); err != nil {
			return application.Page[application.PostSummary]{}, err
		}
	}
	return application.NewPage(out, int(total), pg), nil
}

type CommentDAO struct {
	pool *pgxpool.Pool
}

func NewCommentDAO(pool *pgxpool.Pool) *CommentDAO { return &CommentDAO{pool: pool} }

func (d *CommentDAO) ListActiveByPost(ctx context.Context, postID entity.PostID, pg application.Pagination) (application.Page[application.CommentView], error) {
	if !isUUID(postID.String()) {
		return application.NewPage[application.CommentView](nil, 0, pg), nil
	}
	var total int64
	if err := d.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM comments WHERE post_id = $1 AND NOT is_deleted
	`, postID.String()).Scan(&total); err != nil {
		return application.Page[application.CommentView]{}, err
	}
	rows, err := d.pool.Query(ctx, `
		SELECT `+commentColumns+` FROM comments
		WHERE post_id = $1 AND NOT is_deleted
		ORDER BY created_at ASC, id ASC
		LIMIT $2 OFFSET $3
	`, postID.String(), pg.Limit, pg.Offset())
	if err != nil {
		return application.Page[application.CommentView]{}, err
	}
	defer rows.Close()

	var out []application.CommentView
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return application.Page[application.CommentView]{}, err
		}
		out = append(out, application.NewCommentView(c))
	}
	if err := rows.Err(); err != nil {
		return application.Page[application.CommentView]{}, err
	}
	return application.NewPage(out, int(total), pg), nil
}

type MemberDAO struct {
	pool *pgxpool.Pool
}

func NewMemberDAO(pool *pgxpool.Pool) *MemberDAO { return &MemberDAO{pool: pool} }

func (d *MemberDAO) ListMembers(ctx context.Context, pg application.Pagination) (application.Page[application.MemberView], error) {
	var total int64
	if err := d.pool.QueryRow(ctx, `SELECT COUNT(*) FROM members WHERE NOT is_deleted`).Scan(&total); err != nil {
		return application.Page[application.MemberView]{}, err
	}
	rows, err := d.pool.Query(ctx, `
		SELECT `+memberColumns+` FROM members
		WHERE NOT is_deleted
		ORDER BY created_at ASC, id ASC
		LIMIT $1 OFFSET $2
	`, pg.Limit, pg.Offset())
	if err != nil {
		return application.Page[application.MemberView]{}, err
	}
	defer rows.Close()

	var out []application.MemberView
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return application.Page[application.MemberView]{}, err
		}
		out = append(out, application.NewMemberView(m))
	}
	if err := rows.Err(); err != nil {
		return application.Page[application.MemberView]{}, err
	}
	return application.NewPage(out, int(total), pg), nil
}

// withTotal appends the window-function total to a post row scan.
type withTotal struct {
	row   rowScanner
	total *int64
}

func (w withTotal) Scan(dest ...any) error {
	return w.row.Scan(append(dest, w.total)...)
}
