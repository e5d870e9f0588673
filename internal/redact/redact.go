// Package redact masks personal and secret data before it reaches logs or
// error messages: account emails and phones, password hashes, verification
// codes, and the filesystem layout of the data directory.
package redact

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Placeholders substituted for redacted fragments.
const (
	RedactedPathPlaceholder   = "[REDACTED_PATH]"
	RedactedEmailPlaceholder  = "[REDACTED_EMAIL]"
	RedactedPhonePlaceholder  = "[REDACTED_PHONE]"
	RedactedHashPlaceholder   = "[REDACTED_HASH]"
	RedactedSecretPlaceholder = "[REDACTED_SECRET]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// Rules are applied in order; hashes go first because they contain slashes.
var rules = []rule{
	{regexp.MustCompile(`\$2[abxy]?\$\d{2}\$[./A-Za-z0-9]{53}`), RedactedHashPlaceholder},
	{regexp.MustCompile(`\b[a-f0-9]{64}\b`), RedactedHashPlaceholder},
	{regexp.MustCompile(`(?i)(password|passwd|pwd|code)\s*[=:]\s*['"]?[^'"&\s,]+`), "$1=" + RedactedSecretPlaceholder},
	{regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`), RedactedEmailPlaceholder},
	{regexp.MustCompile(`\+\d[\d\s()-]{8,}\d`), RedactedPhonePlaceholder},
	{regexp.MustCompile(`[A-Za-z]:\\[^\\\s]+(\\[^\\\s]+)+`), RedactedPathPlaceholder},
	{regexp.MustCompile(`(/[\p{L}\p{N}_.-]+){2,}`), RedactedPathPlaceholder},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

// Email keeps the first character of the local part and the domain, e.g.
// "a***@example.com". Input without an @ is fully masked.
func Email(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		if email == "" {
			return ""
		}
		return RedactedEmailPlaceholder
	}
	first, _ := utf8.DecodeRuneInString(email)
	return string(first) + "***" + email[at:]
}

// Phone keeps the last two digits of a phone number.
func Phone(phone string) string {
	var digits []rune
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) == 0 {
		return ""
	}
	if len(digits) <= 2 {
		return "**"
	}
	return strings.Repeat("*", len(digits)-2) + string(digits[len(digits)-2:])
}

// Identifier masks a login identifier, which is either an email or a phone.
func Identifier(id string) string {
	if strings.Contains(id, "@") {
		return Email(id)
	}
	return Phone(id)
}
