package bot

import (
	"net/url"
	"strings"
)

const maxURLLength = 2048

// ValidateURL only checks syntax; reachability is the download API's problem.
func ValidateURL(rawURL string) error {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return &InvalidURLError{URL: rawURL, Reason: "URL is required"}
	}
	if len(rawURL) > maxURLLength {
		return &InvalidURLError{URL: rawURL, Reason: "URL is too long"}
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return &InvalidURLError{URL: rawURL, Reason: "Invalid URL format", Err: err}
	}
	if !parsed.IsAbs() {
		return &InvalidURLError{URL: rawURL, Reason: "URL is not absolute"}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return &InvalidURLError{URL: rawURL, Reason: "Only HTTP/HTTPS URLs are allowed"}
	}
	if parsed.Hostname() == "" {
		return &InvalidURLError{URL: rawURL, Reason: "URL has no host"}
	}
	return nil
}
