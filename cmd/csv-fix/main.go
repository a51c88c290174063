// Command csv-fix repairs French names and descriptions in a catalog sheet.
// Rows whose French text is missing, identical to the English text, or
// still contains English words are rewritten from English. The result is
// written next to the input as <name>_fixed_translations<ext>.
//
// The translation backend is chosen by translate.backend: "heuristic"
// (default, offline) or "llm".
//
// Usage:
//
//	csv-fix <file.csv>
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

	"github.com/heartmarshall/medcatalog/internal/app"
	"github.com/heartmarshall/medcatalog/internal/app/repair"
	"github.com/heartmarshall/medcatalog/internal/translate"
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: csv-fix <file.csv>")
		os.Exit(1)
	}
	path := flag.Arg(0)

	env, err := app.Setup("csv-fix")
	if err != nil {
		fmt.Fprintf(os.Stderr, "setup: %v\n", err)
		os.Exit(1)
	}
	cfg, logger := env.Config, env.Logger

	tr, err := translate.NewTranslator(cfg.Translate)
	if err != nil {
		logger.Error("create translator", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 30*time.Minute)
	defer cancel()

	res, err := repair.FixFile(ctx, path, cfg.Import.DelimiterRune(), tr, logger)
	if err != nil {
		logger.Error("fix translations", slog.String("file", path), slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("Rows: %d\nFixed: %d\nUnchanged: %d\nMalformed (copied): %d\nOutput: %s\n",
		res.Total, res.Fixed, res.Unchanged, res.Malformed, res.OutputPath)
}
