// Command csv-import loads a catalog sheet (CSV, or a JSON array of
// objects) into PostgreSQL. Existing references are skipped, media are
// downloaded once into the public upload directories, and each product is
// written in its own transaction.
//
// Usage:
//
//	csv-import [flags] <file.csv|file.json>
//
// Flags:
//
//	--dry-run  validate and resolve only; no downloads, no writes
//	--migrate  apply pending schema migrations before importing
//
// SIGINT stops the run after the record in progress; the partial report is
// still written.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/heartmarshall/medcatalog/internal/adapter/asset"
	"github.com/heartmarshall/medcatalog/internal/adapter/postgres"
	"github.com/heartmarshall/medcatalog/internal/adapter/postgres/catalog"
	"github.com/heartmarshall/medcatalog/internal/adapter/postgres/product"
	"github.com/heartmarshall/medcatalog/internal/app"
	"github.com/heartmarshall/medcatalog/internal/app/importer"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "validate and resolve only; no downloads, no writes")
	migrate := flag.Bool("migrate", false, "apply pending schema migrations before importing")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: csv-import [flags] <file.csv|file.json>")
		os.Exit(1)
	}
	path := flag.Arg(0)

	env, err := app.Setup("csv-import")
	if err != nil {
		fmt.Fprintf(os.Stderr, "setup: %v\n", err)
		os.Exit(1)
	}
	cfg, logger := env.Config, env.Logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 30*time.Minute)
	defer cancel()

	pool, err := env.OpenDatabase(ctx)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if *migrate {
		if err := postgres.Migrate(ctx, cfg.Database.DSN, logger); err != nil {
			logger.Error("migrate", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	importCfg := importer.ConfigFrom(cfg)
	if *dryRun {
		importCfg.DryRun = true
		logger.Info("dry-run mode: no downloads, no DB writes")
	}

	rc, err := importer.NewRunContext(ctx, logger, importCfg,
		product.New(pool),
		catalog.New(pool),
		postgres.NewTxManager(pool),
		asset.NewFetcher(cfg.Assets, logger),
	)
	if err != nil {
		logger.Error("prepare import", slog.String("error", err.Error()))
		os.Exit(1)
	}

	report, err := importer.Run(ctx, rc, path)
	if err != nil {
		logger.Error("import failed", slog.String("file", path), slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := importer.WriteSummary(os.Stdout, report, importCfg.ErrorDisplayLimit); err != nil {
		logger.Error("write summary", slog.String("error", err.Error()))
		os.Exit(1)
	}

	out, err := importer.WriteJSON(importCfg.ReportDir, report)
	if err != nil {
		logger.Error("write report", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("report written", slog.String("path", out))
}
