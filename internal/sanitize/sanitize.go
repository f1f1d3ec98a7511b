// Package sanitize strips markup from user supplied text before it is
// stored. Posts and comments are served back as JSON, so anything that
// survives here eventually reaches a browser.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

// Text removes all HTML from s and trims surrounding whitespace.
func Text(s string) string {
	return strings.TrimSpace(policy.Sanitize(s))
}
