package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ndmlabs/dealfeed/internal/domain"
)

// PostgresStore runs on a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) ProductExistsByModel(ctx context.Context, modelNumber string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM products WHERE model_number = $1)`,
		modelNumber,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (s *PostgresStore) InsertProduct(ctx context.Context, p domain.Product) error {
	query := fmt.Sprintf(
		`INSERT INTO products (%s) VALUES (%s)`,
		strings.Join(productColumns, ", "),
		dollarMarks(len(productColumns)),
	)
	_, err := s.pool.Exec(ctx, query, productValues(p)...)
	return err
}

func (s *PostgresStore) ListProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM products ORDER BY created_at DESC LIMIT $1`,
		strings.Join(productColumns, ", "),
	)

	rows, err := s.pool.Query(ctx, query, normalizeLimit(limit))
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

func (s *PostgresStore) InsertPost(ctx context.Context, post domain.Post) error {
	query := fmt.Sprintf(
		`INSERT INTO blog_posts (%s) VALUES (%s)`,
		strings.Join(postColumns, ", "),
		dollarMarks(len(postColumns)),
	)
	_, err := s.pool.Exec(ctx, query, postValues(post)...)
	return err
}

func (s *PostgresStore) GetPostBySlug(ctx context.Context, slug string) (domain.Post, bool, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM blog_posts WHERE slug = $1`,
		strings.Join(postColumns, ", "),
	)

	var p domain.Post
	err := s.pool.QueryRow(ctx, query, slug).Scan(postScanDests(&p)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Post{}, false, nil
	}
	if err != nil {
		return domain.Post{}, false, err
	}
	return p, true, nil
}

func (s *PostgresStore) ListPosts(ctx context.Context, limit int) ([]domain.Post, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM blog_posts ORDER BY created_at DESC LIMIT $1`,
		strings.Join(postColumns, ", "),
	)

	rows, err := s.pool.Query(ctx, query, normalizeLimit(limit))
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

func (s *PostgresStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM blog_posts WHERE slug = $1)`,
		slug,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
