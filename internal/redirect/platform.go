package redirect

import "strings"

// Platform is the client platform derived from the user-agent string.
type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
	PlatformDesktop Platform = "desktop"
)

var iosMarkers = []string{"iphone", "ipad", "ipod"}

// DetectPlatform inspects the user-agent for mobile OS markers. iOS is
// checked first, matching the branch order of the click handler.
func DetectPlatform(userAgent string) Platform {
	ua := strings.ToLower(userAgent)
	for _, marker := range iosMarkers {
		if strings.Contains(ua, marker) {
			return PlatformIOS
		}
	}
	if strings.Contains(ua, "android") {
		return PlatformAndroid
	}
	return PlatformDesktop
}
