// Command fix-translations repairs product texts stored in PostgreSQL.
//
// Modes:
//
//	file        same as csv-fix: rewrite a sheet to <name>_fixed_translations<ext>
//	db          rewrite French translations of persisted products from English
//	regenerate  rebuild names and descriptions from templates for products
//	            whose content score is below translate.regenerate_below
//	check       report products whose names fail the language or
//	            translation checks
//
// Usage:
//
//	fix-translations --mode=db [--dry-run]
//	fix-translations --mode=file <file.csv>
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

	"github.com/heartmarshall/medcatalog/internal/adapter/postgres"
	"github.com/heartmarshall/medcatalog/internal/adapter/postgres/product"
	"github.com/heartmarshall/medcatalog/internal/app"
	"github.com/heartmarshall/medcatalog/internal/app/repair"
	"github.com/heartmarshall/medcatalog/internal/config"
	"github.com/heartmarshall/medcatalog/internal/quality"
	"github.com/heartmarshall/medcatalog/internal/translate"
)

// Compile-time interface assertions.
var (
	_ repair.TextStore = (*product.Repo)(nil)
	_ repair.TxManager = (*postgres.TxManager)(nil)
)

func main() {
	mode := flag.String("mode", "db", "file, db, regenerate or check")
	dryRun := flag.Bool("dry-run", false, "log changes without writing them")
	flag.Parse()

	env, err := app.Setup("fix-translations")
	if err != nil {
		fmt.Fprintf(os.Stderr, "setup: %v\n", err)
		os.Exit(1)
	}
	cfg, logger := env.Config, env.Logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 30*time.Minute)
	defer cancel()

	if *mode == "file" {
		if flag.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "usage: fix-translations --mode=file <file.csv>")
			os.Exit(1)
		}
		tr := newTranslator(cfg, logger)
		res, err := repair.FixFile(ctx, flag.Arg(0), cfg.Import.DelimiterRune(), tr, logger)
		if err != nil {
			logger.Error("fix file", slog.String("error", err.Error()))
			os.Exit(1)
		}
		fmt.Printf("Rows: %d\nFixed: %d\nOutput: %s\n", res.Total, res.Fixed, res.OutputPath)
		return
	}

	pool, err := env.OpenDatabase(ctx)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	store := product.New(pool)

	var res repair.Result
	switch *mode {
	case "db":
		res, err = repair.FixDatabase(ctx, store, newTranslator(cfg, logger), *dryRun, logger)
	case "regenerate":
		res, err = repair.Regenerate(ctx, store, postgres.NewTxManager(pool), translate.NewGenerator(),
			cfg.Translate.RegenerateBelow, *dryRun, logger)
	case "check":
		checker := quality.NewChecker(quality.ThresholdsFromConfig(cfg.Quality))
		report, err := repair.CheckConsistency(ctx, store, checker)
		if err != nil {
			logger.Error("consistency check", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := repair.WriteConsistency(os.Stdout, report, cfg.Quality.DisplayLimit); err != nil {
			logger.Error("write report", slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q (want file, db, regenerate or check)\n", *mode)
		os.Exit(1)
	}
	if err != nil {
		logger.Error(*mode+" failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("Products: %d\nUpdated: %d\nUnchanged: %d\nErrors: %d\n",
		res.Total, res.Updated, res.Unchanged, res.Errors)
}

func newTranslator(cfg *config.Config, logger *slog.Logger) translate.Translator {
	tr, err := translate.NewTranslator(cfg.Translate)
	if err != nil {
		logger.Error("create translator", slog.String("error", err.Error()))
		os.Exit(1)
	}
	return tr
}
