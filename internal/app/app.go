package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/appraisal-annotator/internal/config"
	"github.com/heartmarshall/appraisal-annotator/internal/dataset"
	"github.com/heartmarshall/appraisal-annotator/internal/service/annotation"
	"github.com/heartmarshall/appraisal-annotator/internal/service/registry"
	"github.com/heartmarshall/appraisal-annotator/internal/transport/middleware"
	"github.com/heartmarshall/appraisal-annotator/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, opens the
// store, checks the dataset inputs and serves HTTP until ctx is canceled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("storage", cfg.Storage.Driver),
	)

	store, closeStore, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer closeStore()

	src := dataset.NewSource(cfg.Dataset.DialoguesPath, cfg.Dataset.SchemaPath)
	if err := checkDataset(ctx, src, logger); err != nil {
		return err
	}

	rl := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer rl.Stop()

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      newHandler(cfg, store, src, rl, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	return serve(ctx, srv, cfg.Server, logger)
}

// checkDataset loads the dialogues and the schema in parallel so that a
// broken input stops the process before it accepts requests.
func checkDataset(ctx context.Context, src *dataset.Source, logger *slog.Logger) error {
	var dialogues int

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, err := src.Dialogues(gctx)
		if err != nil {
			return fmt.Errorf("load dialogues: %w", err)
		}
		dialogues = len(d)
		return nil
	})
	g.Go(func() error {
		if _, err := src.Schema(gctx); err != nil {
			return fmt.Errorf("load schema: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("dataset loaded",
		slog.Int("dialogues", dialogues),
		slog.String("dialogues_path", src.DialoguesPath),
		slog.String("schema_path", src.SchemaPath),
	)
	return nil
}

// newHandler wires services and handlers and wraps the router in the
// middleware chain. RequestID runs first so every later layer sees the id.
func newHandler(
	cfg *config.Config,
	store Store,
	src *dataset.Source,
	rl *middleware.RateLimiter,
	logger *slog.Logger,
) http.Handler {
	registrySvc := registry.NewService(logger, store)
	annotationSvc := annotation.NewService(logger, store, src)

	mux := rest.NewRouter(rest.Handlers{
		Dataset:     rest.NewDatasetHandler(src, logger),
		Users:       rest.NewUserHandler(registrySvc, logger, cfg.Server.MaxBodyBytes),
		Annotations: rest.NewAnnotationHandler(annotationSvc, logger, cfg.Server.MaxBodyBytes),
		Frontend:    rest.NewFrontendHandler(cfg.Frontend.IndexPath, cfg.Frontend.StaticDir),
		Health: rest.NewHealthHandler(map[string]rest.HealthCheck{
			"storage": store.Ping,
			"dataset": src.Check,
		}, BuildVersion()),
	})

	return middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		middleware.ForMethods(rl.Limit(cfg.RateLimit.WritesPerMinute), http.MethodPost),
	)(mux)
}

// serve runs srv until ctx is canceled, then shuts it down within
// cfg.ShutdownTimeout.
func serve(ctx context.Context, srv *http.Server, cfg config.ServerConfig, logger *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server", slog.Duration("timeout", cfg.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("http server stopped")
	return nil
}
