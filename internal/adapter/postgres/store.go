package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/heartmarshall/appraisal-annotator/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Store implements the registry and annotation store on PostgreSQL.
type Store struct {
	db DB
}

// NewStore creates a Store over db (usually a *pgxpool.Pool).
func NewStore(db DB) *Store {
	return &Store{db: db}
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// ---------------------------------------------------------------------------
// Registry
// ---------------------------------------------------------------------------

// ListUsers returns usernames in registration order.
func (s *Store) ListUsers(ctx context.Context) ([]string, error) {
	query, args, err := psql.Select("username").From("annotators").OrderBy("seq").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	users := []string{}
	if err := pgxscan.Select(ctx, s.db, &users, query, args...); err != nil {
		return nil, mapError(err, "annotators", "list")
	}
	return users, nil
}

// CreateUser registers username. Duplicates map to domain.ErrAlreadyExists.
func (s *Store) CreateUser(ctx context.Context, username string) error {
	query, args, err := psql.Insert("annotators").Columns("username").Values(username).ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return mapError(err, "annotator", username)
	}
	return nil
}

// ListAnnotationOwners returns, sorted, every username with at least one
// annotation row, registered or not.
func (s *Store) ListAnnotationOwners(ctx context.Context) ([]string, error) {
	query, args, err := psql.Select("username").Distinct().
		From("annotations").
		OrderBy("username").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	owners := []string{}
	if err := pgxscan.Select(ctx, s.db, &owners, query, args...); err != nil {
		return nil, mapError(err, "annotations", "owners")
	}
	return owners, nil
}

// EnsureWorkspace is a no-op: rows are the workspace.
func (s *Store) EnsureWorkspace(_ context.Context, _ string) error {
	return nil
}

// ---------------------------------------------------------------------------
// Annotations
// ---------------------------------------------------------------------------

// PutAnnotation upserts the record for (username, key).
func (s *Store) PutAnnotation(ctx context.Context, username, key string, doc domain.Document) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode annotation: %w", err)
	}

	query, args, err := psql.Insert("annotations").
		Columns("username", "annotation_key", "payload").
		Values(username, key, payload).
		Suffix("ON CONFLICT (username, annotation_key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()").
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return mapError(err, "annotation", username+"/"+key)
	}
	return nil
}

// GetAnnotation returns the record for (username, key) or domain.ErrNotFound.
func (s *Store) GetAnnotation(ctx context.Context, username, key string) (domain.Document, error) {
	query, args, err := psql.Select("payload").
		From("annotations").
		Where(sq.Eq{"username": username, "annotation_key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var payload []byte
	if err := s.db.QueryRow(ctx, query, args...).Scan(&payload); err != nil {
		return nil, mapError(err, "annotation", username+"/"+key)
	}

	return decodePayload(username, key, payload)
}

type annotationRow struct {
	Key     string `db:"annotation_key"`
	Payload []byte `db:"payload"`
}

// ListAnnotations returns every record of username keyed by annotation key.
func (s *Store) ListAnnotations(ctx context.Context, username string) (map[string]domain.Document, error) {
	query, args, err := psql.Select("annotation_key", "payload").
		From("annotations").
		Where(sq.Eq{"username": username}).
		OrderBy("annotation_key").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []annotationRow
	if err := pgxscan.Select(ctx, s.db, &rows, query, args...); err != nil {
		return nil, mapError(err, "annotations", username)
	}

	out := make(map[string]domain.Document, len(rows))
	for _, r := range rows {
		doc, err := decodePayload(username, r.Key, r.Payload)
		if err != nil {
			return nil, err
		}
		out[r.Key] = doc
	}
	return out, nil
}

func decodePayload(username, key string, payload []byte) (domain.Document, error) {
	var doc domain.Document
	if err := domain.DecodeJSON(payload, &doc); err != nil {
		return nil, fmt.Errorf("annotation %s/%s: %w: %v", username, key, domain.ErrCorrupt, err)
	}
	return doc, nil
}
