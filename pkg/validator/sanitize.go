package validator

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MaxTitleLength    = 100
	MaxContentLength  = 10000
	MinPasswordLength = 6
)

var (
	tagPattern   = regexp.MustCompile(`<[^>]*>`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// Sanitize strips <...> markup, escapes the remaining special characters
// and trims surrounding whitespace. Unescaping before escaping keeps the
// function idempotent: Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	s = html.EscapeString(html.UnescapeString(s))
	return strings.TrimSpace(s)
}

// IsValidEmail checks the local@domain.tld shape. No DNS or mailbox
// verification.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsValidPassword reports whether the password meets the minimum length,
// counted in characters so multi-byte input is not over-credited.
func IsValidPassword(password string) bool {
	return utf8.RuneCountInString(password) >= MinPasswordLength
}
