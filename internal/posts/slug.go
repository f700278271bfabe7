package posts

import (
	"context"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
)

const slugMaxLen = 60

// SlugChecker is the slice of the store slug generation needs.
type SlugChecker interface {
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// MakeSlug derives a URL slug from a title: lowercased, hyphenated,
// capped in length with trailing hyphens stripped.
func MakeSlug(title string) string {
	s := slug.Make(title)
	if len(s) > slugMaxLen {
		s = strings.TrimRight(s[:slugMaxLen], "-")
	}
	return s
}

// UniqueSlug appends -1, -2, ... until the slug is free in the store.
func UniqueSlug(ctx context.Context, checker SlugChecker, base string) (string, error) {
	candidate := base
	for counter := 1; ; counter++ {
		exists, err := checker.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}
