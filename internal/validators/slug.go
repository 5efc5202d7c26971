package validators

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	slugIllegal   = regexp.MustCompile(`[^a-z0-9-]`)
	dashRun       = regexp.MustCompile(`-{2,}`)
	slugPattern   = regexp.MustCompile(`^[a-z0-9-]+$`)
)

// Slugify lowercases, turns whitespace into dashes and drops everything
// outside [a-z0-9-]. Non-latin names can end up empty.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = slugIllegal.ReplaceAllString(s, "")
	s = dashRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func IsSlug(s string) bool {
	return len(s) >= 2 && slugPattern.MatchString(s)
}
