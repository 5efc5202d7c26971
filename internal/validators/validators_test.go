package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Full Detail":          "full-detail",
		"  Wash  &  Wax  ":     "wash-wax",
		"Ceramic Coating 9H!":  "ceramic-coating-9h",
		"--Engine---bay--":     "engine-bay",
		"ล้างรถ":               "",
		"Headlight\tRestore\n": "headlight-restore",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestIsSlug(t *testing.T) {
	assert.True(t, IsSlug("full-detail"))
	assert.True(t, IsSlug("a1"))
	assert.False(t, IsSlug("a"))
	assert.False(t, IsSlug(""))
	assert.False(t, IsSlug("Full-Detail"))
	assert.False(t, IsSlug("wash_wax"))
}

func TestIsEmailDomainValid_Malformed(t *testing.T) {
	assert.False(t, IsEmailDomainValid("no-at-sign"))
	assert.False(t, IsEmailDomainValid("trailing@"))
}

func TestIsHTTPURL(t *testing.T) {
	s := func(v string) *string { return &v }

	assert.True(t, IsHTTPURL(nil))
	assert.True(t, IsHTTPURL(s("")))
	assert.True(t, IsHTTPURL(s("https://cdn.example.com/a.webp")))
	assert.True(t, IsHTTPURL(s("http://localhost:9000/b/c.png")))
	assert.False(t, IsHTTPURL(s("ftp://example.com/a.png")))
	assert.False(t, IsHTTPURL(s("javascript:alert(1)")))
	assert.False(t, IsHTTPURL(s("/relative/path.png")))
}
