package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/covercredit/cover-credit-backend/internal/entity"
	"github.com/covercredit/cover-credit-backend/internal/usecase"
)

type BlogRepository struct {
	DB *sql.DB
}

func NewBlogRepository(db *sql.DB) *BlogRepository {
	return &BlogRepository{DB: db}
}

const blogColumns = `id, title, slug, excerpt, content, cover_image, category, tags,
	author, status, published_at, views, created_at, updated_at`

func (r *BlogRepository) Create(ctx context.Context, p *entity.BlogPost) error {
	query := `
		INSERT INTO blog_posts (` + blogColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.DB.ExecContext(ctx, query,
		p.ID, p.Title, p.Slug, p.Excerpt, p.Content, p.CoverImage, p.Category, pq.Array(p.Tags),
		p.Author, p.Status, p.PublishedAt, p.Views, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *BlogRepository) FindByID(ctx context.Context, id string) (*entity.BlogPost, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+blogColumns+` FROM blog_posts WHERE id = $1`, id)
	return scanBlogPost(row)
}

func (r *BlogRepository) FindBySlug(ctx context.Context, slug string) (*entity.BlogPost, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+blogColumns+` FROM blog_posts WHERE slug = $1`, slug)
	return scanBlogPost(row)
}

func (r *BlogRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM blog_posts WHERE slug = $1 AND id <> $2)`,
		slug, excludeID,
	).Scan(&exists)
	return exists, err
}

func (r *BlogRepository) List(ctx context.Context, filter usecase.BlogFilter) ([]*entity.BlogPost, int, error) {
	var where []string
	var args []interface{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM blog_posts`+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	// Published posts sort by publish date, drafts by creation.
	query := fmt.Sprintf(
		`SELECT `+blogColumns+` FROM blog_posts%s
		ORDER BY COALESCE(published_at, created_at) DESC LIMIT $%d OFFSET $%d`,
		clause, len(args)+1, len(args)+2,
	)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var posts []*entity.BlogPost
	for rows.Next() {
		p, err := scanBlogPost(rows)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, p)
	}
	return posts, total, rows.Err()
}

func (r *BlogRepository) Save(ctx context.Context, p *entity.BlogPost) error {
	query := `
		UPDATE blog_posts
		SET title = $2, slug = $3, excerpt = $4, content = $5, cover_image = $6,
			category = $7, tags = $8, author = $9, status = $10, published_at = $11,
			updated_at = $12
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query,
		p.ID, p.Title, p.Slug, p.Excerpt, p.Content, p.CoverImage,
		p.Category, pq.Array(p.Tags), p.Author, p.Status, p.PublishedAt, p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *BlogRepository) IncrementViews(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE blog_posts SET views = views + 1 WHERE id = $1`, id)
	return err
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	return err
}

func scanBlogPost(row rowScanner) (*entity.BlogPost, error) {
	var p entity.BlogPost
	var publishedAt sql.NullTime
	var tags pq.StringArray

	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.CoverImage, &p.Category, &tags,
		&p.Author, &p.Status, &publishedAt, &p.Views, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if publishedAt.Valid {
		p.PublishedAt = &publishedAt.Time
	}
	p.Tags = tags
	return &p, nil
}
