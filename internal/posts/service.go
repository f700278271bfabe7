package posts

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ndmlabs/dealfeed/internal/domain"
)

// PostStore is the slice of the store the service needs.
type PostStore interface {
	SlugChecker
	InsertPost(ctx context.Context, post domain.Post) error
	GetPostBySlug(ctx context.Context, slug string) (domain.Post, bool, error)
	ListPosts(ctx context.Context, limit int) ([]domain.Post, error)
}

// Service ingests HTML uploads and serves stored posts.
type Service struct {
	Store  PostStore
	Logger *log.Logger
	Now    func() time.Time // defaults to time.Now
}

// ImportHTML converts one uploaded HTML document into a stored post.
func (s Service) ImportHTML(ctx context.Context, raw string) (domain.Post, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	draft, err := FromHTML(raw)
	if err != nil {
		return domain.Post{}, err
	}

	base := MakeSlug(draft.Title)
	slug, err := UniqueSlug(ctx, s.Store, base)
	if err != nil {
		return domain.Post{}, err
	}

	html, err := Render(draft.Markdown)
	if err != nil {
		return domain.Post{}, err
	}

	post := domain.Post{
		ID:            uuid.NewString(),
		Slug:          slug,
		Title:         draft.Title,
		Date:          now().UTC().Format("2006-01-02"),
		Excerpt:       draft.Excerpt,
		FeaturedImage: draft.FeaturedImage,
		Content:       draft.Markdown,
		HTMLContent:   html,
		CreatedAt:     now().UTC(),
	}

	if err := s.Store.InsertPost(ctx, post); err != nil {
		return domain.Post{}, err
	}

	s.logf("published post %q as /%s", post.Title, post.Slug)
	return post, nil
}

func (s Service) List(ctx context.Context, limit int) ([]domain.Post, error) {
	return s.Store.ListPosts(ctx, limit)
}

func (s Service) GetBySlug(ctx context.Context, slug string) (domain.Post, bool, error) {
	return s.Store.GetPostBySlug(ctx, slug)
}

func (s Service) logf(format string, args ...any) {
	if s.Logger != nil {
		s.Logger.Printf(format, args...)
	}
}
