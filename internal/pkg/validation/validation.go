package validation

import (
	"regexp"
	"strings"
	"unicode"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// National id: exactly 11 digits.
var nationalIDRe = regexp.MustCompile(`^\d{11}$`)

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// IsValidNationalID reports whether s is a well-formed 11-digit national id.
func IsValidNationalID(s string) bool {
	return nationalIDRe.MatchString(s)
}

// IsValidPassword enforces the investor password rule:
// - at least 8 characters
// - contains at least one letter
// - contains at least one number
func IsValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLetter, hasDigit := false, false
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// IsBlank reports whether s is empty after trimming whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
