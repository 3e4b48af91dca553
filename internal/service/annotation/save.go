package annotation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/appraisal-annotator/internal/domain"
)

// Save stores the payload under its entry's key, replacing any earlier
// record for the same entry. The stored value is the whole payload.
func (s *Service) Save(ctx context.Context, input SaveInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	username := input.Payload.Username()
	entryID, _ := input.Payload.EntryID()
	key := domain.AnnotationKey(entryID)

	if err := s.annotations.PutAnnotation(ctx, username, key, input.Payload); err != nil {
		return fmt.Errorf("put annotation %s/%s: %w", username, key, err)
	}

	s.log.InfoContext(ctx, "annotation saved",
		slog.String("username", username),
		slog.String("entry_id", entryID),
	)
	return nil
}
