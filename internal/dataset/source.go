package dataset

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/heartmarshall/appraisal-annotator/internal/domain"
)

// Source reads the dataset and schema from fixed paths. Each call re-reads
// the file so edits on disk show up without a restart.
type Source struct {
	DialoguesPath string
	SchemaPath    string
}

// NewSource creates a Source for the given files.
func NewSource(dialoguesPath, schemaPath string) *Source {
	return &Source{DialoguesPath: dialoguesPath, SchemaPath: schemaPath}
}

// Dialogues loads the dataset entries in file order.
func (s *Source) Dialogues(ctx context.Context) ([]domain.Dialogue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadDialogues(s.DialoguesPath)
}

// Schema loads the annotation options.
func (s *Source) Schema(ctx context.Context) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadSchema(s.SchemaPath)
}

// Check loads both inputs once and reports the first failure. Used at startup.
func (s *Source) Check(ctx context.Context) error {
	if _, err := s.Dialogues(ctx); err != nil {
		return fmt.Errorf("dialogues: %w", err)
	}
	if _, err := s.Schema(ctx); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	return nil
}
