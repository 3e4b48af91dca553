package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/appraisal-annotator/internal/adapter/filestore"
	"github.com/heartmarshall/appraisal-annotator/internal/adapter/memstore"
	"github.com/heartmarshall/appraisal-annotator/internal/adapter/postgres"
	"github.com/heartmarshall/appraisal-annotator/internal/config"
	"github.com/heartmarshall/appraisal-annotator/internal/domain"
)

// Store is implemented by every storage driver.
type Store interface {
	Ping(ctx context.Context) error

	ListUsers(ctx context.Context) ([]string, error)
	CreateUser(ctx context.Context, username string) error
	EnsureWorkspace(ctx context.Context, username string) error

	PutAnnotation(ctx context.Context, username, key string, doc domain.Document) error
	GetAnnotation(ctx context.Context, username, key string) (domain.Document, error)
	ListAnnotations(ctx context.Context, username string) (map[string]domain.Document, error)
	ListAnnotationOwners(ctx context.Context) ([]string, error)
}

var (
	_ Store = (*filestore.Store)(nil)
	_ Store = (*memstore.Store)(nil)
	_ Store = (*postgres.Store)(nil)
)

// OpenStore opens the configured storage driver. The returned func releases
// its resources and is never nil.
func OpenStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Store, func(), error) {
	noop := func() {}

	switch cfg.Storage.Driver {
	case config.DriverFile:
		store := filestore.New(cfg.Storage.DataDir, logger)
		if err := store.Ping(ctx); err != nil {
			return nil, noop, fmt.Errorf("file store: %w", err)
		}
		logger.Info("storage ready", slog.String("driver", cfg.Storage.Driver), slog.String("data_dir", store.Dir()))
		return store, noop, nil

	case config.DriverMemory:
		logger.Warn("using in-memory storage, annotations are lost on restart")
		return memstore.New(), noop, nil

	case config.DriverPostgres:
		if cfg.Database.AutoMigrate {
			if err := postgres.Migrate(ctx, cfg.Database.DSN, logger); err != nil {
				return nil, noop, fmt.Errorf("migrate: %w", err)
			}
		}
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, noop, err
		}
		logger.Info("storage ready",
			slog.String("driver", cfg.Storage.Driver),
			slog.Int("max_conns", int(cfg.Database.MaxConns)),
		)
		return postgres.NewStore(pool), pool.Close, nil

	default:
		return nil, noop, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
