// Package redirect turns a "view deal" click into a navigation plan: a
// native shopping-app deep link with a timed browser fallback on mobile, a
// plain new tab on desktop. The site's affiliate tag is always re-applied
// before anything navigates.
package redirect

import (
	"fmt"
	"time"

	"github.com/ndmlabs/dealfeed/internal/affiliate"
)

// Strategy names the navigation mechanism a Plan uses.
type Strategy string

const (
	// StrategyUniversalLink fires an iOS universal link, then falls back
	// to the web URL if the page stays visible past the fallback delay.
	StrategyUniversalLink Strategy = "universal_link"

	// StrategyIntent fires an Android intent URL targeting the vendor's
	// shopping app, with the same visibility-based fallback.
	StrategyIntent Strategy = "intent"

	// StrategyNewTab opens the tagged web URL in a new non-opener tab.
	StrategyNewTab Strategy = "new_tab"
)

const (
	androidPackage = "com.amazon.mShop.android.shopping"

	iosFallbackDelay     = 2 * time.Second
	iosCleanupDelay      = 2500 * time.Millisecond
	androidFallbackDelay = 1500 * time.Millisecond
)

// Plan is everything the click executor needs: where to go, how, and how
// long to wait before assuming the app did not open.
type Plan struct {
	Platform Platform `json:"platform"`
	Strategy Strategy `json:"strategy"`

	// AppURL is the deep link attempted first on mobile. Empty on desktop.
	AppURL string `json:"app_url,omitempty"`

	// WebURL is the affiliate-tagged destination, used directly on desktop
	// and as the fallback on mobile.
	WebURL string `json:"web_url"`

	ASIN string `json:"asin,omitempty"`

	FallbackAfter time.Duration `json:"fallback_after_ms,omitempty"`
	CleanupAfter  time.Duration `json:"cleanup_after_ms,omitempty"`
}

// Resolver builds Plans from stored deal URLs.
type Resolver struct {
	Tag string
}

// Resolve re-tags the deal URL, extracts the product identifier and picks
// the platform branch. It never fails: when the ASIN cannot be extracted
// the tagged URL itself serves as the deep-link target, and malformed
// input degrades to a plain web navigation.
func (r Resolver) Resolve(dealURL string, userAgent string) Plan {
	webURL := affiliate.EnsureTag(dealURL, r.Tag)
	asin := affiliate.ExtractASIN(webURL)
	platform := DetectPlatform(userAgent)

	plan := Plan{
		Platform: platform,
		WebURL:   webURL,
		ASIN:     asin,
	}

	switch platform {
	case PlatformIOS:
		plan.Strategy = StrategyUniversalLink
		plan.FallbackAfter = iosFallbackDelay
		plan.CleanupAfter = iosCleanupDelay
		if asin != "" {
			plan.AppURL = fmt.Sprintf("https://www.%s/dp/%s?%s=%s", affiliate.Domain, asin, affiliate.TagParam, r.Tag)
		} else {
			plan.AppURL = webURL
		}

	case PlatformAndroid:
		plan.Strategy = StrategyIntent
		plan.FallbackAfter = androidFallbackDelay
		plan.CleanupAfter = androidFallbackDelay
		if asin != "" {
			plan.AppURL = fmt.Sprintf("intent://www.%s/dp/%s?%s=%s#Intent;scheme=https;package=%s;end",
				affiliate.Domain, asin, affiliate.TagParam, r.Tag, androidPackage)
		} else {
			plan.AppURL = fmt.Sprintf("intent://%s#Intent;scheme=https;package=%s;end",
				affiliate.StripScheme(webURL), androidPackage)
		}

	default:
		plan.Strategy = StrategyNewTab
	}

	return plan
}
