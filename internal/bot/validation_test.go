package bot

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateURL(t *testing.T) {
	valid := []string{
		"https://www.tiktok.com/@user/video/123",
		"https://www.instagram.com/reel/Cx1/?igsh=abc",
		"http://x.com/user/status/1",
		"  https://youtu.be/dQw4w9WgXcQ  ",
	}
	for _, u := range valid {
		assert.NoError(t, ValidateURL(u), u)
	}

	invalid := []struct {
		url    string
		reason string
	}{
		{"", "URL is required"},
		{"not a url", "URL is not absolute"},
		{"www.tiktok.com/a", "URL is not absolute"},
		{"ftp://host/file", "Only HTTP/HTTPS URLs are allowed"},
		{"https://", "URL has no host"},
		{"http://[::1", "Invalid URL format"},
		{"https://a.b/" + strings.Repeat("x", 2048), "URL is too long"},
	}
	for _, tt := range invalid {
		err := ValidateURL(tt.url)
		var invalidErr *InvalidURLError
		if assert.True(t, errors.As(err, &invalidErr), tt.url) {
			assert.Equal(t, tt.reason, invalidErr.Reason, tt.url)
		}
	}
}
