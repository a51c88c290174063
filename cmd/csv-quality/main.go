// Command csv-quality scores a catalog sheet before import. It checks
// references, image URLs, name languages and translations, prints a summary
// and writes quality-report-<unix>.json to the quality report directory.
//
// Usage:
//
//	csv-quality [flags] <file.csv>
//
// Flags:
//
//	--sample  number of records to score (0 = all; default from config)
//	--strict  exit 2 when the verdict is DO NOT IMPORT
//
// Exit codes: 0 = success, 1 = error, 2 = strict check failed.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/medcatalog/internal/app"
	"github.com/heartmarshall/medcatalog/internal/quality"
)

func main() {
	sample := flag.Int("sample", -1, "number of records to score (0 = all)")
	strict := flag.Bool("strict", false, "exit 2 when the verdict is DO NOT IMPORT")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: csv-quality [flags] <file.csv>")
		os.Exit(1)
	}
	path := flag.Arg(0)

	env, err := app.Setup("csv-quality")
	if err != nil {
		fmt.Fprintf(os.Stderr, "setup: %v\n", err)
		os.Exit(1)
	}
	cfg, logger := env.Config, env.Logger

	sampleSize := cfg.Quality.Sample()
	if *sample >= 0 {
		sampleSize = *sample
	}

	checker := quality.NewChecker(quality.ThresholdsFromConfig(cfg.Quality))
	analyzer := quality.NewAnalyzer(logger, quality.NewEvaluator(checker), sampleSize)

	report, err := analyzer.AnalyzeFile(path, cfg.Import.DelimiterRune())
	if err != nil {
		logger.Error("analyze file", slog.String("file", path), slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := quality.WriteSummary(os.Stdout, report, cfg.Quality.DisplayLimit); err != nil {
		logger.Error("write summary", slog.String("error", err.Error()))
		os.Exit(1)
	}

	out, err := quality.WriteJSON(cfg.Quality.ReportDir, report, time.Now())
	if err != nil {
		logger.Error("write report", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("report written", slog.String("path", out))

	if *strict && report.Recommendation == quality.RecommendDoNotImport {
		os.Exit(2)
	}
}
