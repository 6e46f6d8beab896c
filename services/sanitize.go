package services

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var textPolicy = bluemonday.StrictPolicy()

// SanitiseText strips all markup from user-entered text and trims the
// surrounding whitespace. Every free-text field passes through here before
// it enters a draft.
func SanitiseText(input string) string {
	return strings.TrimSpace(textPolicy.Sanitize(input))
}
