package validators

import (
	"net/url"
	"strings"
)

// IsHTTPURL accepts nil or empty values and absolute http(s) URLs with a
// host.
func IsHTTPURL(v *string) bool {
	if v == nil || strings.TrimSpace(*v) == "" {
		return true
	}
	u, err := url.Parse(strings.TrimSpace(*v))
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
