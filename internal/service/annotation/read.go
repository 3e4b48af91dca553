package annotation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/appraisal-annotator/internal/domain"
)

// Get returns the record saved for one entry. Unknown users, unknown
// entries, malformed names and unreadable files all read as absent.
func (s *Service) Get(ctx context.Context, username, entryID string) (domain.Lookup, error) {
	if domain.ValidateUsername(username) != nil {
		return domain.Lookup{}, nil
	}

	doc, err := s.annotations.GetAnnotation(ctx, username, domain.AnnotationKey(entryID))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return domain.Lookup{}, nil
	case errors.Is(err, domain.ErrCorrupt):
		s.warnCorrupt(ctx, username, err)
		return domain.Lookup{}, nil
	case err != nil:
		return domain.Lookup{}, fmt.Errorf("get annotation %s/%s: %w", username, entryID, err)
	}

	return domain.Lookup{Exists: true, Data: doc}, nil
}

// List returns every record the user has saved, keyed by annotation key.
func (s *Service) List(ctx context.Context, username string) (map[string]domain.Document, error) {
	if domain.ValidateUsername(username) != nil {
		return map[string]domain.Document{}, nil
	}

	annotations, err := s.annotations.ListAnnotations(ctx, username)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return map[string]domain.Document{}, nil
	case errors.Is(err, domain.ErrCorrupt):
		s.warnCorrupt(ctx, username, err)
		return map[string]domain.Document{}, nil
	case err != nil:
		return nil, fmt.Errorf("list annotations %s: %w", username, err)
	}

	if annotations == nil {
		annotations = map[string]domain.Document{}
	}
	return annotations, nil
}

// Progress counts the dataset entries the user has a saved record for.
// Records for entries that are no longer in the dataset are ignored.
func (s *Service) Progress(ctx context.Context, username string) (domain.Progress, error) {
	dialogues, err := s.dialogues.Dialogues(ctx)
	if err != nil {
		return domain.Progress{}, fmt.Errorf("load dialogues: %w", err)
	}

	annotations, err := s.List(ctx, username)
	if err != nil {
		return domain.Progress{}, err
	}

	progress := domain.Progress{
		Username:          username,
		Total:             len(dialogues),
		AnnotatedEntryIDs: []string{},
	}
	for _, d := range dialogues {
		if _, ok := annotations[domain.AnnotationKey(d.EntryID)]; ok {
			progress.AnnotatedEntryIDs = append(progress.AnnotatedEntryIDs, d.EntryID)
		}
	}
	progress.Annotated = len(progress.AnnotatedEntryIDs)

	return progress, nil
}

func (s *Service) warnCorrupt(ctx context.Context, username string, err error) {
	s.log.WarnContext(ctx, "annotations unreadable, treating as empty",
		slog.String("username", username),
		slog.String("error", err.Error()),
	)
}
