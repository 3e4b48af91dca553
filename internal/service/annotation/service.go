package annotation

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/appraisal-annotator/internal/domain"
)

type annotationRepo interface {
	PutAnnotation(ctx context.Context, username, key string, doc domain.Document) error
	GetAnnotation(ctx context.Context, username, key string) (domain.Document, error)
	ListAnnotations(ctx context.Context, username string) (map[string]domain.Document, error)
}

type dialogueSource interface {
	Dialogues(ctx context.Context) ([]domain.Dialogue, error)
}

// Service stores and reads per-user annotation documents.
type Service struct {
	annotations annotationRepo
	dialogues   dialogueSource
	log         *slog.Logger
}

// NewService creates a new annotation service.
func NewService(
	log *slog.Logger,
	annotations annotationRepo,
	dialogues dialogueSource,
) *Service {
	return &Service{
		annotations: annotations,
		dialogues:   dialogues,
		log:         log.With("service", "annotation"),
	}
}
