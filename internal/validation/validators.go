// Package validation holds the pure field validators for user records.
package validation

import "regexp"

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

var nonDigits = regexp.MustCompile(`\D`)

// IsValidEmail reports whether s looks like local-part@domain.tld.
// Format check only, no MX lookup.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsValidNationalID reports whether s is an acceptable national ID.
// The field is optional, so an empty string passes. Otherwise all
// non-digit characters are stripped and exactly 11 digits must remain.
// Only the length is checked, not the checksum.
func IsValidNationalID(s string) bool {
	if s == "" {
		return true
	}
	digits := nonDigits.ReplaceAllString(s, "")
	return len(digits) == 11
}
