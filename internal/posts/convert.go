// Package posts turns uploaded HTML documents into stored blog entries:
// metadata extraction, HTML-to-Markdown conversion, sanitized rendering
// and slug assignment.
package posts

import (
	"bytes"
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

const excerptMaxLen = 160

// Draft is a post before it gets a slug and an id.
type Draft struct {
	Title         string
	Excerpt       string
	FeaturedImage string
	Markdown      string
}

// FromHTML parses an uploaded HTML document and extracts a Draft: the
// title (document title, else first h1), the first image, a short text
// excerpt, and the body converted to Markdown.
func FromHTML(raw string) (Draft, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return Draft{}, fmt.Errorf("parse html: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}
	if title == "" {
		return Draft{}, fmt.Errorf("document has no title or h1")
	}

	body := doc.Find("body")
	bodyHTML, err := body.Html()
	if err != nil || strings.TrimSpace(bodyHTML) == "" {
		bodyHTML = raw
	}

	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(bodyHTML)
	if err != nil {
		return Draft{}, fmt.Errorf("convert html to markdown: %w", err)
	}

	return Draft{
		Title:         title,
		Excerpt:       excerpt(body),
		FeaturedImage: doc.Find("img").First().AttrOr("src", ""),
		Markdown:      strings.TrimSpace(markdown),
	}, nil
}

// Render converts stored Markdown back to HTML and sanitizes it for
// serving to readers.
func Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return string(bluemonday.UGCPolicy().SanitizeBytes(buf.Bytes())), nil
}

func excerpt(body *goquery.Selection) string {
	text := strings.TrimSpace(body.Find("p").First().Text())
	if text == "" {
		text = strings.TrimSpace(body.Text())
	}
	text = strings.Join(strings.Fields(text), " ")
	if len(text) > excerptMaxLen {
		text = strings.TrimSpace(text[:excerptMaxLen]) + "…"
	}
	return text
}
