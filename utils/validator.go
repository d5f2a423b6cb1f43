// utils/validator.go - Input validation
package utils

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail reports whether the address is plausible enough to accept.
// Faculty addresses come from the institutional directory, so the check
// stays loose on purpose.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePassword enforces the faculty account password policy. The second
// return value is the user-facing reason when the password is rejected.
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "Password must be at least 8 characters"
	}
	if strings.TrimSpace(password) != password {
		return false, "Password must not start or end with spaces"
	}
	return true, ""
}

// SanitizeInput trims surrounding whitespace and strips null bytes before a
// value reaches validation or the database.
func SanitizeInput(input string) string {
	input = strings.TrimSpace(input)
	return strings.ReplaceAll(input, "\x00", "")
}
