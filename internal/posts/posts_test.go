package posts

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ndmlabs/dealfeed/internal/store"
)

const sampleHTML = `<!DOCTYPE html>
<html>
<head>
  <title>Best Robot Vacuums of 2025</title>
  <style>body { color: red; }</style>
  <script>alert("x")</script>
</head>
<body>
  <h1>Best Robot Vacuums of 2025</h1>
  <p>We tested twelve robot vacuums over three months to find the ones actually worth buying.</p>
  <img src="https://img.example.com/hero.jpg" alt="hero">
  <h2>Our picks</h2>
  <ul><li>Roomba 694</li><li>Shark AI</li></ul>
</body>
</html>`

func TestFromHTML(t *testing.T) {
	draft, err := FromHTML(sampleHTML)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if draft.Title != "Best Robot Vacuums of 2025" {
		t.Fatalf("title: %q", draft.Title)
	}
	if draft.FeaturedImage != "https://img.example.com/hero.jpg" {
		t.Fatalf("featured image: %q", draft.FeaturedImage)
	}
	if !strings.Contains(draft.Excerpt, "We tested twelve robot vacuums") {
		t.Fatalf("excerpt: %q", draft.Excerpt)
	}
	if !strings.Contains(draft.Markdown, "# Best Robot Vacuums of 2025") {
		t.Fatalf("heading not converted: %q", draft.Markdown)
	}
	if !strings.Contains(draft.Markdown, "- Roomba 694") {
		t.Fatalf("list not converted: %q", draft.Markdown)
	}
	if strings.Contains(draft.Markdown, "alert(") {
		t.Fatalf("script leaked into markdown: %q", draft.Markdown)
	}
}

func TestFromHTML_TitleFallsBackToH1(t *testing.T) {
	draft, err := FromHTML(`<html><body><h1>Heading Only</h1><p>body</p></body></html>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if draft.Title != "Heading Only" {
		t.Fatalf("title: %q", draft.Title)
	}
}

func TestFromHTML_NoTitleRejected(t *testing.T) {
	if _, err := FromHTML(`<html><body><p>anonymous content</p></body></html>`); err == nil {
		t.Fatalf("expected error for untitled document")
	}
}

func TestRender_Sanitizes(t *testing.T) {
	html, err := Render("# Hello\n\n<script>alert(1)</script>\n\n*world*")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, "<h1") || !strings.Contains(html, "<em>world</em>") {
		t.Fatalf("markdown not rendered: %q", html)
	}
	if strings.Contains(html, "<script") {
		t.Fatalf("script survived sanitizing: %q", html)
	}
}

func TestMakeSlug(t *testing.T) {
	if got := MakeSlug("Best Robot Vacuums of 2025!"); got != "best-robot-vacuums-of-2025" {
		t.Fatalf("got %q", got)
	}

	long := strings.Repeat("very ", 30) + "long title"
	if got := MakeSlug(long); len(got) > 60 || strings.HasSuffix(got, "-") {
		t.Fatalf("long slug not capped cleanly: %q (%d)", got, len(got))
	}
}

func TestService_ImportHTML(t *testing.T) {
	s := Service{
		Store: store.NewMemoryStore(),
		Now:   func() time.Time { return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC) },
	}
	ctx := context.Background()

	post, err := s.ImportHTML(ctx, sampleHTML)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if post.Slug != "best-robot-vacuums-of-2025" {
		t.Fatalf("slug: %q", post.Slug)
	}
	if post.Date != "2025-06-01" {
		t.Fatalf("date: %q", post.Date)
	}
	if post.ID == "" || post.HTMLContent == "" {
		t.Fatalf("post not fully populated: %#v", post)
	}

	got, ok, err := s.GetBySlug(ctx, post.Slug)
	if err != nil || !ok {
		t.Fatalf("post not stored: ok=%v err=%v", ok, err)
	}
	if got.Title != post.Title {
		t.Fatalf("stored title mismatch: %q", got.Title)
	}

	// Same document again: the slug gets a numeric suffix.
	second, err := s.ImportHTML(ctx, sampleHTML)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Slug != "best-robot-vacuums-of-2025-1" {
		t.Fatalf("expected suffixed slug, got %q", second.Slug)
	}
}
