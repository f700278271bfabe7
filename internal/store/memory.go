package store

import (
	"context"
	"sort"
	"sync"

	"github.com/ndmlabs/dealfeed/internal/domain"
)

// MemoryStore is the in-process backend used for tests and local dev.
type MemoryStore struct {
	mu sync.RWMutex

	products map[string]domain.Product // keyed by model_number
	posts    map[string]domain.Post    // keyed by slug
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products: make(map[string]domain.Product),
		posts:    make(map[string]domain.Post),
	}
}

func (s *MemoryStore) ProductExistsByModel(ctx context.Context, modelNumber string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.products[modelNumber]
	return ok, nil
}

func (s *MemoryStore) InsertProduct(ctx context.Context, p domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products[p.ModelNumber] = p
	return nil
}

func (s *MemoryStore) ListProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ModelNumber < out[j].ModelNumber
	})

	if limit <= 0 || limit > len(out) {
		return out, nil
	}
	return out[:limit], nil
}

func (s *MemoryStore) InsertPost(ctx context.Context, post domain.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.posts[post.Slug] = post
	return nil
}

func (s *MemoryStore) GetPostBySlug(ctx context.Context, slug string) (domain.Post, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[slug]
	return p, ok, nil
}

func (s *MemoryStore) ListPosts(ctx context.Context, limit int) ([]domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].Slug < out[j].Slug
	})

	if limit <= 0 || limit > len(out) {
		return out, nil
	}
	return out[:limit], nil
}

func (s *MemoryStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.posts[slug]
	return ok, nil
}
