package annotation

import (
	"github.com/heartmarshall/appraisal-annotator/internal/domain"
)

// SaveInput carries one annotation record exactly as the client sent it.
type SaveInput struct {
	Payload domain.Document
}

// Validate checks the two fields the store depends on. The username becomes
// a storage path component, so it must also be a well-formed registry name.
func (i SaveInput) Validate() error {
	username := i.Payload.Username()
	if username == "" {
		return domain.NewValidationError("username", "Username is required")
	}
	if id, ok := i.Payload.EntryID(); !ok || id == "" {
		return domain.NewValidationError("entry_id", "Entry ID is required")
	}
	return domain.ValidateUsername(username)
}
