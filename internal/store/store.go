// Package store persists the product catalog and blog posts. Backends are
// interchangeable behind Store; the importer and the API only see this
// interface.
package store

import (
	"context"

	"github.com/ndmlabs/dealfeed/internal/domain"
)

type Store interface {
	// Products. ProductExistsByModel backs the pre-insert duplicate check;
	// check and insert are deliberately two calls (rows are submitted one
	// at a time, so the gap is not exercised in normal use).
	ProductExistsByModel(ctx context.Context, modelNumber string) (bool, error)
	InsertProduct(ctx context.Context, p domain.Product) error
	ListProducts(ctx context.Context, limit int) ([]domain.Product, error)

	// Posts.
	InsertPost(ctx context.Context, post domain.Post) error
	GetPostBySlug(ctx context.Context, slug string) (domain.Post, bool, error)
	ListPosts(ctx context.Context, limit int) ([]domain.Post, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
}
