// Package affiliate canonicalizes Amazon product URLs and guarantees the
// site's affiliate tag is the one attached.
package affiliate

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const (
	// Domain is the only marketplace host we link to.
	Domain = "amazon.com"

	// TagParam is the affiliate tag query parameter.
	TagParam = "tag"
)

var (
	asinStrictRe = regexp.MustCompile(`^[A-Z0-9]{10}$`)
	asinLooseRe  = regexp.MustCompile(`^[A-Za-z0-9]{10}$`)
	dpPathRe     = regexp.MustCompile(`(?i)/dp/([A-Z0-9]{10})`)
	gpPathRe     = regexp.MustCompile(`(?i)/gp/product/([A-Z0-9]{10})`)
	schemeRe     = regexp.MustCompile(`^https?://`)
)

// CleanProductURL validates a raw deal URL and rewrites it to the canonical
// form https://www.amazon.com/dp/<ASIN>?tag=<tag>. Any tag already present
// in the input is discarded. The error describes why the URL was rejected.
func CleanProductURL(raw string, tag string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("invalid Amazon URL: %w", err)
	}
	if !strings.Contains(u.Hostname(), Domain) {
		return "", fmt.Errorf("invalid Amazon URL: host %q is not an %s URL", u.Hostname(), Domain)
	}

	parts := strings.Split(u.Path, "/")

	asin := ""
	for i, part := range parts {
		if part == "dp" && i+1 < len(parts) && asinStrictRe.MatchString(parts[i+1]) {
			asin = parts[i+1]
			break
		}
	}
	if asin == "" {
		for _, part := range parts {
			if asinStrictRe.MatchString(part) {
				asin = part
				break
			}
		}
	}
	if asin == "" {
		return "", fmt.Errorf("invalid Amazon URL: no ASIN found in %q", u.Path)
	}

	return fmt.Sprintf("https://www.%s/dp/%s?%s=%s", Domain, asin, TagParam, tag), nil
}

// EnsureTag replaces any affiliate tag on an Amazon URL with the given one.
// Re-applying it to an already tagged URL yields the same URL. Non-Amazon
// URLs pass through untouched; if the URL does not parse at all the tag is
// spliced in textually as a last resort.
func EnsureTag(raw string, tag string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return spliceTag(raw, tag)
	}
	if !strings.Contains(u.Hostname(), Domain) {
		return raw
	}

	q := u.Query()
	q.Del(TagParam)
	q.Set(TagParam, tag)
	u.RawQuery = q.Encode()

	return u.String()
}

// ExtractASIN pulls the 10-character product identifier out of an Amazon
// URL, trying /dp/, /gp/product/, the ASIN query parameter and finally any
// qualifying path segment. Returns "" when nothing matches or the URL is
// not an Amazon URL.
func ExtractASIN(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if !strings.Contains(u.Hostname(), Domain) {
		return ""
	}

	if m := dpPathRe.FindStringSubmatch(u.Path); m != nil {
		return m[1]
	}
	if m := gpPathRe.FindStringSubmatch(u.Path); m != nil {
		return m[1]
	}

	for _, key := range []string{"ASIN", "asin"} {
		if v := u.Query().Get(key); asinLooseRe.MatchString(v) {
			return v
		}
	}

	for _, part := range strings.Split(u.Path, "/") {
		if asinLooseRe.MatchString(part) {
			return part
		}
	}

	return ""
}

// StripScheme removes a leading http:// or https:// so the remainder can be
// embedded in an Android intent URL.
func StripScheme(raw string) string {
	return schemeRe.ReplaceAllString(raw, "")
}

func spliceTag(raw string, tag string) string {
	if strings.Contains(raw, "?") {
		if strings.Contains(raw, TagParam+"=") {
			re := regexp.MustCompile(TagParam + `=[^&]+`)
			return re.ReplaceAllString(raw, TagParam+"="+tag)
		}
		return raw + "&" + TagParam + "=" + tag
	}
	return raw + "?" + TagParam + "=" + tag
}
