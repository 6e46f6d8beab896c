package utils

import "strings"

// WithBaseURL normalizes an image reference to an absolute form. Embedded
// data-URIs and already-absolute URLs pass through unchanged; relative paths
// are prefixed with the backend origin. Empty input stays empty.
func WithBaseURL(base, url string) string {
	if url == "" {
		return ""
	}
	if strings.HasPrefix(url, "data:image/") {
		return url
	}
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	base = strings.TrimRight(base, "/")
	if base == "" {
		return url
	}
	if strings.HasPrefix(url, "/") {
		return base + url
	}
	return base + "/" + url
}
