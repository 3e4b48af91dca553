package domain

import "regexp"

const (
	UsernameMinLen = 3
	UsernameMaxLen = 20
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateUsername checks a registry name. The checks run in a fixed order
// so that each failure carries its own message.
func ValidateUsername(name string) error {
	switch {
	case name == "":
		return NewValidationError("username", "Username cannot be empty")
	case len(name) < UsernameMinLen:
		return NewValidationError("username", "Username must be at least 3 characters")
	case len(name) > UsernameMaxLen:
		return NewValidationError("username", "Username must be at most 20 characters")
	case !usernamePattern.MatchString(name):
		return NewValidationError("username", "Username can only contain letters, numbers, underscore, and hyphen")
	}
	return nil
}
