// internal/app/system/inputval/inputval.go
//
// Validation helpers for user-supplied input. These are syntax checks
// only; stores enforce uniqueness and referential rules.
package inputval

import (
	"net/mail"
	"net/url"
	"strings"
)

// IsValidEmail reports whether the string is a plausible email
// address. It uses RFC 5322 parsing and then rejects forms that parse
// but are not usable as account addresses (display names, leading or
// trailing dots, consecutive dots).
func IsValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	// Reject "Name <user@host>" style input; we want a bare address.
	if addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	local, domain := email[:at], email[at+1:]
	for _, part := range []string{local, domain} {
		if strings.HasPrefix(part, ".") || strings.HasSuffix(part, ".") ||
			strings.Contains(part, "..") {
			return false
		}
	}
	return true
}

// IsValidHTTPURL reports whether the string is an absolute http or
// https URL with a host.
func IsValidHTTPURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

// allowedAuthMethods are the sign-in providers accounts can be bound
// to. "internal" means a locally stored bcrypt password.
var allowedAuthMethods = []string{"internal", "google"}

// IsValidAuthMethod reports whether the method names a supported
// sign-in provider. Comparison is case-insensitive and trims
// surrounding whitespace.
func IsValidAuthMethod(method string) bool {
	method = strings.ToLower(strings.TrimSpace(method))
	for _, m := range allowedAuthMethods {
		if method == m {
			return true
		}
	}
	return false
}

// AllowedAuthMethodsList returns the supported auth methods in
// display order.
func AllowedAuthMethodsList() []string {
	out := make([]string, len(allowedAuthMethods))
	copy(out, allowedAuthMethods)
	return out
}

// MaxLengths for free-text fields. Requests exceeding these are
// rejected before they reach the database.
const (
	MaxNameLen        = 120
	MaxTitleLen       = 200
	MaxExcerptLen     = 500
	MaxBodyLen        = 50_000
	MaxChatMessageLen = 2_000
)

// WithinLen reports whether s, after trimming, is non-empty and at
// most max bytes.
func WithinLen(s string, max int) bool {
	s = strings.TrimSpace(s)
	return s != "" && len(s) <= max
}
