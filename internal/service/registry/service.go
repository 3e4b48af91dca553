package registry

import (
	"context"
	"log/slog"
)

type userRepo interface {
	ListUsers(ctx context.Context) ([]string, error)
	CreateUser(ctx context.Context, username string) error
	EnsureWorkspace(ctx context.Context, username string) error
}

// Service manages the password-less annotator registry.
type Service struct {
	users userRepo
	log   *slog.Logger
}

// NewService creates a new registry service.
func NewService(log *slog.Logger, users userRepo) *Service {
	return &Service{
		users: users,
		log:   log.With("service", "registry"),
	}
}
