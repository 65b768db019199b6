// internal/app/system/htmlsanitize/htmlsanitize.go
//
// Sanitizes user-supplied HTML (article bodies, organization
// descriptions) before it is stored. The policy allows common
// formatting and tables but strips scripts, event handlers, and
// javascript: URLs.
package htmlsanitize

import (
	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.UGCPolicy()

// Sanitize returns the input with disallowed HTML removed.
func Sanitize(s string) string {
	return policy.Sanitize(s)
}

// StripTags removes all HTML, leaving plain text. Used for fields
// that must never carry markup (titles, names, chat messages).
func StripTags(s string) string {
	return bluemonday.StrictPolicy().Sanitize(s)
}
