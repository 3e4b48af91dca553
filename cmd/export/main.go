// Command export dumps every annotator's saved records as one JSON
// document, {"<username>": {"<entry_id>.json": payload}}, using the storage
// driver from the regular configuration.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/appraisal-annotator/internal/app"
	"github.com/heartmarshall/appraisal-annotator/internal/config"
)

func main() {
	outPath := flag.String("out", "", "write the export to this file instead of stdout")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall time limit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	store, closeStore, err := app.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("open store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	var out io.WriteCloser = nopCloser{os.Stdout}
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			logger.Error("create output file", slog.String("path", *outPath), slog.String("error", err.Error()))
			closeStore()
			os.Exit(1)
		}
		out = f
	}

	users, records, err := writeExport(ctx, store, out)
	if err != nil {
		logger.Error("export failed", slog.String("error", err.Error()))
		closeStore()
		os.Exit(1)
	}

	logger.Info("export completed",
		slog.Int("users", users),
		slog.Int("records", records),
		slog.String("storage", cfg.Storage.Driver),
	)
}

// writeExport runs the export into out and closes it. A failed close
// fails the export, since buffered data may not have reached the file.
func writeExport(ctx context.Context, store app.Store, out io.WriteCloser) (users, records int, err error) {
	users, records, err = app.Export(ctx, store, out)
	if cerr := out.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("close output: %w", cerr)
	}
	if err != nil {
		return 0, 0, err
	}
	return users, records, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
