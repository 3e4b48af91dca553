// Package memstore is an in-memory registry and annotation store with the
// same semantics as the file store. It backs tests and the "memory" storage
// driver.
package memstore

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/heartmarshall/appraisal-annotator/internal/domain"
)

// Store keeps everything in process memory.
type Store struct {
	mu          sync.RWMutex
	users       []string
	workspaces  map[string]bool
	annotations map[string]map[string]domain.Document
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		users:       []string{},
		workspaces:  make(map[string]bool),
		annotations: make(map[string]map[string]domain.Document),
	}
}

// Ping always succeeds.
func (s *Store) Ping(_ context.Context) error { return nil }

// ListUsers returns a copy of the registry in registration order.
func (s *Store) ListUsers(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.users...), nil
}

// ListAnnotationOwners returns, sorted, every username holding at least one
// annotation, registered or not.
func (s *Store) ListAnnotationOwners(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	owners := make([]string, 0, len(s.annotations))
	for u, m := range s.annotations {
		if len(m) > 0 {
			owners = append(owners, u)
		}
	}
	slices.Sort(owners)
	return owners, nil
}

// CreateUser appends username and marks its workspace.
func (s *Store) CreateUser(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u == username {
			return fmt.Errorf("user %s: %w", username, domain.ErrAlreadyExists)
		}
	}
	s.users = append(s.users, username)
	s.workspaces[username] = true
	return nil
}

// EnsureWorkspace marks the user's workspace as present.
func (s *Store) EnsureWorkspace(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workspaces[username] = true
	return nil
}

// HasWorkspace reports whether a workspace exists for username.
func (s *Store) HasWorkspace(username string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.workspaces[username]
}

// PutAnnotation replaces the record stored under key.
func (s *Store) PutAnnotation(_ context.Context, username, key string, doc domain.Document) error {
	stored, err := clone(doc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.annotations[username]
	if !ok {
		m = make(map[string]domain.Document)
		s.annotations[username] = m
	}
	m[key] = stored
	s.workspaces[username] = true
	return nil
}

// GetAnnotation returns a copy of the record stored under key.
func (s *Store) GetAnnotation(_ context.Context, username, key string) (domain.Document, error) {
	s.mu.RLock()
	doc, ok := s.annotations[username][key]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("annotation %s/%s: %w", username, key, domain.ErrNotFound)
	}
	return clone(doc)
}

// ListAnnotations returns a copy of the user's mapping.
func (s *Store) ListAnnotations(_ context.Context, username string) (map[string]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]domain.Document, len(s.annotations[username]))
	for k, v := range s.annotations[username] {
		c, err := clone(v)
		if err != nil {
			return nil, err
		}
		out[k] = c
	}
	return out, nil
}

// clone deep-copies a document through its JSON form, which also normalizes
// values the same way a disk round trip would.
func clone(doc domain.Document) (domain.Document, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode annotation: %w", err)
	}
	var out domain.Document
	if err := domain.DecodeJSON(b, &out); err != nil {
		return nil, fmt.Errorf("decode annotation: %w", err)
	}
	return out, nil
}
