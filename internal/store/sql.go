package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ndmlabs/dealfeed/internal/domain"
)

// SQLStore serves both MySQL and SQLite through database/sql. The two
// dialects share the `?` placeholder style and every statement used here.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) ProductExistsByModel(ctx context.Context, modelNumber string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM products WHERE model_number = ?)`,
		modelNumber,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (s *SQLStore) InsertProduct(ctx context.Context, p domain.Product) error {
	query := fmt.Sprintf(
		`INSERT INTO products (%s) VALUES (%s)`,
		strings.Join(productColumns, ", "),
		questionMarks(len(productColumns)),
	)
	_, err := s.db.ExecContext(ctx, query, productValues(p)...)
	return err
}

func (s *SQLStore) ListProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM products ORDER BY created_at DESC LIMIT ?`,
		strings.Join(productColumns, ", "),
	)

	rows, err := s.db.QueryContext(ctx, query, normalizeLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Product, 0, 32)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(productScanDests(&p)...); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *SQLStore) InsertPost(ctx context.Context, post domain.Post) error {
	query := fmt.Sprintf(
		`INSERT INTO blog_posts (%s) VALUES (%s)`,
		strings.Join(postColumns, ", "),
		questionMarks(len(postColumns)),
	)
	_, err := s.db.ExecContext(ctx, query, postValues(post)...)
	return err
}

func (s *SQLStore) GetPostBySlug(ctx context.Context, slug string) (domain.Post, bool, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM blog_posts WHERE slug = ?`,
		strings.Join(postColumns, ", "),
	)

	var p domain.Post
	err := s.db.QueryRowContext(ctx, query, slug).Scan(postScanDests(&p)...)
	if err == sql.ErrNoRows {
		return domain.Post{}, false, nil
	}
	if err != nil {
		return domain.Post{}, false, err
	}
	return p, true, nil
}

func (s *SQLStore) ListPosts(ctx context.Context, limit int) ([]domain.Post, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM blog_posts ORDER BY created_at DESC LIMIT ?`,
		strings.Join(postColumns, ", "),
	)

	rows, err := s.db.QueryContext(ctx, query, normalizeLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Post, 0, 16)
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(postScanDests(&p)...); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *SQLStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM blog_posts WHERE slug = ?)`,
		slug,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// normalizeLimit keeps LIMIT well defined when callers pass zero or less.
func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 1000
	}
	return limit
}
