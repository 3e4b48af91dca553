package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/heartmarshall/appraisal-annotator/internal/domain"
)

type exportSource interface {
	ListUsers(ctx context.Context) ([]string, error)
	ListAnnotations(ctx context.Context, username string) (map[string]domain.Document, error)
	ListAnnotationOwners(ctx context.Context) ([]string, error)
}

// Export writes every user's annotations to w as one JSON document:
// {"<username>": {"<entry_id>.json": payload}}. It covers registered users,
// including those without annotations (empty mapping), and users who saved
// annotations without registering. It returns the number of users and
// records written.
func Export(ctx context.Context, src exportSource, w io.Writer) (users, records int, err error) {
	registered, err := src.ListUsers(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("list users: %w", err)
	}
	owners, err := src.ListAnnotationOwners(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("list annotation owners: %w", err)
	}

	names := registered
	for _, o := range owners {
		if !slices.Contains(registered, o) {
			names = append(names, o)
		}
	}

	out := make(map[string]map[string]domain.Document, len(names))
	for _, name := range names {
		annotations, err := src.ListAnnotations(ctx, name)
		if err != nil {
			return 0, 0, fmt.Errorf("list annotations of %s: %w", name, err)
		}
		if annotations == nil {
			annotations = map[string]domain.Document{}
		}
		out[name] = annotations
		records += len(annotations)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return 0, 0, fmt.Errorf("encode export: %w", err)
	}
	return len(names), records, nil
}
