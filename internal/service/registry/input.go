package registry

import (
	"strings"

	"github.com/heartmarshall/appraisal-annotator/internal/domain"
)

// RegisterInput holds the parameters for registering an annotator.
type RegisterInput struct {
	Username string
}

// Normalize returns the canonical username.
func (i RegisterInput) Normalize() string {
	return strings.TrimSpace(i.Username)
}

// Validate checks the trimmed username against the registry rules.
func (i RegisterInput) Validate() error {
	return domain.ValidateUsername(i.Normalize())
}

// LoginInput holds the parameters for logging in.
type LoginInput struct {
	Username string
}

// Normalize returns the canonical username.
func (i LoginInput) Normalize() string {
	return strings.TrimSpace(i.Username)
}

// Validate only requires a non-empty name; unknown names are reported as not found.
func (i LoginInput) Validate() error {
	if i.Normalize() == "" {
		return domain.NewValidationError("username", "Username cannot be empty")
	}
	return nil
}
