// Package repair fixes French translations and regenerates product texts,
// either in a catalog sheet or in the database.
package repair

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/heartmarshall/medcatalog/internal/csvparse"
	"github.com/heartmarshall/medcatalog/internal/domain"
	"github.com/heartmarshall/medcatalog/internal/translate"
)

// FixResult holds sheet repair statistics.
type FixResult struct {
	Total      int
	Fixed      int
	Unchanged  int
	Malformed  int
	OutputPath string
}

// OutputPath returns <base>_fixed_translations<ext> next to path.
func OutputPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_fixed_translations" + ext
}

type columns struct {
	nameFR, nameEN int
	descFR, descEN int
}

func locate(schema []csvparse.Field) columns {
	return columns{
		nameFR: slices.Index(schema, csvparse.FieldNameFR),
		nameEN: slices.Index(schema, csvparse.FieldNameEN),
		descFR: slices.Index(schema, csvparse.FieldDescriptionFR),
		descEN: slices.Index(schema, csvparse.FieldDescriptionEN),
	}
}

// FixFile rewrites the French name, and the French description when it
// also needs it, of every row whose translation looks wrong. The result is
// written to OutputPath(path); the input is left untouched. Malformed rows
// are copied through verbatim.
func FixFile(ctx context.Context, path string, delim rune, tr translate.Translator, log *slog.Logger) (FixResult, error) {
	doc, err := csvparse.ReadFile(path, delim)
	if err != nil {
		return FixResult{}, err
	}

	cols := locate(doc.Schema)
	if cols.nameFR < 0 || cols.nameEN < 0 {
		return FixResult{}, fmt.Errorf("%s has no %s/%s columns: %w",
			path, csvparse.FieldNameFR, csvparse.FieldNameEN, domain.ErrFatalConfig)
	}

	result := FixResult{OutputPath: OutputPath(path)}
	lines := make([]string, 0, len(doc.Rows)+1)
	lines = append(lines, csvparse.FormatLine(doc.Header, delim))

	for _, row := range doc.Rows {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("fix %s: %w", path, err)
		}
		result.Total++

		if _, err := doc.Values(row); err != nil {
			result.Malformed++
			log.Warn("row copied unchanged", slog.Int("row", row.Line), slog.String("error", err.Error()))
			lines = append(lines, row.Raw)
			continue
		}

		fields := slices.Clone(row.Fields)
		changed := fixFields(ctx, fields, cols, tr, log, row.Line)
		if changed {
			result.Fixed++
			lines = append(lines, csvparse.FormatLine(fields, delim))
		} else {
			result.Unchanged++
			lines = append(lines, row.Raw)
		}
	}

	if err := writeLines(result.OutputPath, lines); err != nil {
		return result, err
	}

	log.Info("translations fixed",
		slog.String("output", result.OutputPath),
		slog.Int("total", result.Total),
		slog.Int("fixed", result.Fixed),
		slog.Int("malformed", result.Malformed),
	)
	return result, nil
}

// fixFields updates fields in place and reports whether anything changed.
func fixFields(ctx context.Context, fields []string, cols columns, tr translate.Translator, log *slog.Logger, line int) bool {
	fr, en := fields[cols.nameFR], fields[cols.nameEN]
	if !translate.NeedsImprovement(fr, en) {
		return false
	}

	changed := false
	if name, ok := toFrench(ctx, tr, en, fr, log, line); ok && name != fr {
		fields[cols.nameFR] = name
		changed = true
	}

	if cols.descFR >= 0 && cols.descEN >= 0 {
		dfr, den := fields[cols.descFR], fields[cols.descEN]
		if strings.TrimSpace(den) != "" && translate.NeedsImprovement(dfr, den) {
			if desc, ok := toFrench(ctx, tr, den, dfr, log, line); ok && desc != dfr {
				fields[cols.descFR] = desc
				changed = true
			}
		}
	}
	return changed
}

// toFrench translates source, or fallback when source is blank. A
// translator error is logged and reported as no change.
func toFrench(ctx context.Context, tr translate.Translator, source, fallback string, log *slog.Logger, line int) (string, bool) {
	if strings.TrimSpace(source) == "" {
		source = fallback
	}
	if strings.TrimSpace(source) == "" {
		return "", false
	}
	out, err := tr.ToFrench(ctx, source)
	if err != nil {
		log.Warn("translation failed", slog.Int("row", line), slog.String("error", err.Error()))
		return "", false
	}
	return out, out != ""
}

func writeLines(path string, lines []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %v: %w", path, err, domain.ErrFatalConfig)
	}

	w := bufio.NewWriter(f)
	for _, l := range lines {
		w.WriteString(l)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %v: %w", path, err, domain.ErrFatalConfig)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %v: %w", path, err, domain.ErrFatalConfig)
	}
	return nil
}
