// Package filestore persists the user registry and annotations as JSON files:
//
//	<dir>/users.json                 JSON array of usernames, in registration order
//	<dir>/<username>/annotated.json  mapping "<entry_id>.json" -> payload
//
// Files are created lazily on first write. Read-modify-write cycles are
// serialized within one process; separate processes sharing a directory are
// not coordinated.
package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/heartmarshall/appraisal-annotator/internal/domain"
)

const (
	usersFile      = "users.json"
	annotationFile = "annotated.json"
)

// Store is a file-backed registry and annotation store.
type Store struct {
	dir string
	log *slog.Logger
	mu  sync.Mutex
}

// New creates a Store rooted at dir. The directory is not created until the
// first write.
func New(dir string, logger *slog.Logger) *Store {
	return &Store{dir: dir, log: logger.With("store", "file")}
}

// Dir returns the root data directory.
func (s *Store) Dir() string { return s.dir }

// Ping reports whether the data directory is usable: either it exists and is
// a directory, or it does not exist yet and can be created on first write.
func (s *Store) Ping(_ context.Context) error {
	info, err := os.Stat(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat data dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data dir %s is not a directory", s.dir)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Registry
// ---------------------------------------------------------------------------

// ListUsers returns registered usernames in registration order. A missing
// registry file yields an empty list.
func (s *Store) ListUsers(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadUsersUnlocked()
}

// CreateUser appends username to the registry and creates its workspace.
func (s *Store) CreateUser(_ context.Context, username string) error {
	dir, err := s.userDir(username)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsersUnlocked()
	if err != nil {
		return err
	}
	for _, u := range users {
		if u == username {
			return fmt.Errorf("user %s: %w", username, domain.ErrAlreadyExists)
		}
	}

	users = append(users, username)
	if err := writeJSONFile(filepath.Join(s.dir, usersFile), users, "  "); err != nil {
		return fmt.Errorf("save users: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create user dir: %w", err)
	}
	return nil
}

// EnsureWorkspace creates the user's directory if it does not exist.
func (s *Store) EnsureWorkspace(_ context.Context, username string) error {
	dir, err := s.userDir(username)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create user dir: %w", err)
	}
	return nil
}

func (s *Store) loadUsersUnlocked() ([]string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, usersFile))
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read users: %w", err)
	}

	users := []string{}
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w: %v", domain.ErrCorrupt, err)
	}
	return users, nil
}

// ---------------------------------------------------------------------------
// Annotations
// ---------------------------------------------------------------------------

// PutAnnotation stores doc under key in the user's mapping, replacing any
// previous value. A corrupt mapping file is moved aside and replaced by a
// fresh mapping holding only the new record.
func (s *Store) PutAnnotation(_ context.Context, username, key string, doc domain.Document) error {
	dir, err := s.userDir(username)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create user dir: %w", err)
	}

	path := filepath.Join(dir, annotationFile)
	annotations, err := loadAnnotations(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		annotations = map[string]domain.Document{}
	case errors.Is(err, domain.ErrCorrupt):
		backup := fmt.Sprintf("%s.corrupt-%d", path, time.Now().Unix())
		if rerr := os.Rename(path, backup); rerr != nil {
			return fmt.Errorf("move corrupt annotations aside: %w", rerr)
		}
		s.log.Warn("corrupt annotation file moved aside",
			slog.String("username", username),
			slog.String("backup", backup),
			slog.String("error", err.Error()),
		)
		annotations = map[string]domain.Document{}
	case err != nil:
		return err
	}

	annotations[key] = doc
	if err := writeJSONFile(path, annotations, "    "); err != nil {
		return fmt.Errorf("save annotations: %w", err)
	}
	return nil
}

// GetAnnotation returns the record stored under key. It returns
// domain.ErrNotFound when the file or key is absent and domain.ErrCorrupt
// when the file cannot be decoded.
func (s *Store) GetAnnotation(_ context.Context, username, key string) (domain.Document, error) {
	annotations, err := s.readAnnotations(username)
	if err != nil {
		return nil, err
	}
	doc, ok := annotations[key]
	if !ok {
		return nil, fmt.Errorf("annotation %s/%s: %w", username, key, domain.ErrNotFound)
	}
	return doc, nil
}

// ListAnnotations returns the user's whole mapping. An absent file yields an
// empty mapping.
func (s *Store) ListAnnotations(_ context.Context, username string) (map[string]domain.Document, error) {
	annotations, err := s.readAnnotations(username)
	if errors.Is(err, domain.ErrNotFound) {
		return map[string]domain.Document{}, nil
	}
	return annotations, err
}

func (s *Store) readAnnotations(username string) (map[string]domain.Document, error) {
	dir, err := s.userDir(username)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	annotations, err := loadAnnotations(filepath.Join(dir, annotationFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("annotations of %s: %w", username, domain.ErrNotFound)
	}
	return annotations, err
}

func loadAnnotations(path string) (map[string]domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var annotations map[string]domain.Document
	if err := domain.DecodeJSON(data, &annotations); err != nil {
		return nil, fmt.Errorf("decode %s: %w: %v", path, domain.ErrCorrupt, err)
	}
	if annotations == nil {
		annotations = map[string]domain.Document{}
	}
	return annotations, nil
}

// ListAnnotationOwners returns, sorted, every user directory holding an
// annotation file. Saving does not require registration, so this can name
// users that ListUsers does not.
func (s *Store) ListAnnotationOwners(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}

	owners := []string{}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		info, err := os.Stat(filepath.Join(s.dir, e.Name(), annotationFile))
		if err == nil && info.Mode().IsRegular() {
			owners = append(owners, e.Name())
		}
	}
	return owners, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// userDir maps a username to its directory, refusing names that would
// escape the data directory.
func (s *Store) userDir(username string) (string, error) {
	if username == "" || username == "." || username == ".." ||
		strings.ContainsAny(username, `/\`) || strings.ContainsRune(username, 0) {
		return "", domain.NewValidationError("username", "Username can only contain letters, numbers, underscore, and hyphen")
	}
	return filepath.Join(s.dir, username), nil
}

// writeJSONFile writes v to a temp file next to path and renames it into
// place, so readers never observe a half-written file.
func writeJSONFile(path string, v any, indent string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
