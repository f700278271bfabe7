package domain

import "time"

// Post is a blog entry derived from an uploaded HTML document.
// Content holds Markdown; HTMLContent holds the sanitized rendering
// that is served to readers.
type Post struct {
	ID            string `json:"id"`
	Slug          string `json:"slug"`
	Title         string `json:"title"`
	Date          string `json:"date"`
	Excerpt       string `json:"excerpt,omitempty"`
	FeaturedImage string `json:"featured_image,omitempty"`
	Content       string `json:"content"`
	HTMLContent   string `json:"html_content"`

	CreatedAt time.Time `json:"created_at"`
}
