package registry

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/heartmarshall/appraisal-annotator/internal/domain"
)

// List returns every registered username in registration order.
func (s *Service) List(ctx context.Context) ([]string, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = []string{}
	}
	return users, nil
}

// Register adds a new annotator and creates their workspace. The returned
// name is the trimmed form that was stored.
func (s *Service) Register(ctx context.Context, input RegisterInput) (string, error) {
	if err := input.Validate(); err != nil {
		return "", err
	}
	username := input.Normalize()

	if err := s.users.CreateUser(ctx, username); err != nil {
		return "", fmt.Errorf("create user %q: %w", username, err)
	}

	s.log.InfoContext(ctx, "user registered", slog.String("username", username))
	return username, nil
}

// Login checks that the annotator exists and makes sure their workspace is
// present. It never changes the registry.
func (s *Service) Login(ctx context.Context, input LoginInput) (string, error) {
	if err := input.Validate(); err != nil {
		return "", err
	}
	username := input.Normalize()

	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return "", fmt.Errorf("list users: %w", err)
	}
	if !slices.Contains(users, username) {
		return "", fmt.Errorf("user %q: %w", username, domain.ErrNotFound)
	}

	if err := s.users.EnsureWorkspace(ctx, username); err != nil {
		return "", fmt.Errorf("ensure workspace %q: %w", username, err)
	}

	s.log.DebugContext(ctx, "user logged in", slog.String("username", username))
	return username, nil
}
