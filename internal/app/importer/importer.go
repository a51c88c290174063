// Package importer loads a catalog sheet into the database: validation,
// deduplication against existing products, category and partner
// resolution, asset download, and one transaction per product.
package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/medcatalog/internal/adapter/asset"
	"github.com/heartmarshall/medcatalog/internal/csvparse"
	"github.com/heartmarshall/medcatalog/internal/domain"
)

// Report is the outcome of one import run.
type Report struct {
	Timestamp time.Time     `json:"timestamp"`
	Duration  time.Duration `json:"-"`
	Seconds   int           `json:"duration"`
	Stats     Stats         `json:"stats"`
	DryRun    bool          `json:"dryRun,omitempty"`
	Cancelled bool          `json:"cancelled,omitempty"`
}

// sourceRow is one input record before mapping. Err is set when the row
// could not be parsed or mapped.
type sourceRow struct {
	Line   int
	Values csvparse.Values
	Err    error
	// Ref is the best-effort reference for error reporting.
	Ref string
}

// Run imports every record of path. Per-record failures are collected in
// the report; only unreadable input returns an error. Cancelling ctx stops
// feeding new records after the current one.
func Run(ctx context.Context, rc *RunContext, path string) (*Report, error) {
	start := time.Now()

	rows, err := loadRows(path, rc.cfg.Delimiter)
	if err != nil {
		return nil, err
	}

	rc.stats.TotalRows = len(rows)
	rc.log.Info("import started",
		slog.String("file", filepath.Base(path)),
		slog.Int("rows", len(rows)),
		slog.Bool("dry_run", rc.cfg.DryRun),
	)

	report := &Report{Timestamp: start.UTC(), DryRun: rc.cfg.DryRun}

	for i, row := range rows {
		if ctx.Err() != nil {
			rc.log.Warn("import cancelled", slog.Int("processed", i), slog.Int("remaining", len(rows)-i))
			report.Cancelled = true
			break
		}

		if row.Err != nil {
			rc.recordError(row.Line, row.Ref, row.Err)
			continue
		}

		rec := row.Values.Record(row.Line)
		if err := rc.ImportRecord(ctx, rec); err != nil {
			rc.recordError(row.Line, rec.Reference, err)
		}
	}

	report.Duration = time.Since(start)
	report.Seconds = int(report.Duration.Round(time.Second) / time.Second)
	report.Stats = rc.Stats()

	rc.log.Info("import complete",
		slog.Int("total", report.Stats.TotalRows),
		slog.Int("imported", report.Stats.Imported),
		slog.Int("skipped", report.Stats.Skipped),
		slog.Int("errors", len(report.Stats.Errors)),
		slog.Duration("duration", report.Duration),
	)
	return report, nil
}

// ImportRecord runs one record through validation, deduplication,
// resolution, asset fetching and persistence. An existing reference is
// counted as skipped and never reaches the store.
func (rc *RunContext) ImportRecord(ctx context.Context, rec domain.Record) error {
	input := NewProductInput(rec)
	if err := input.Validate(); err != nil {
		return err
	}

	if rc.existing[input.Reference] {
		rc.stats.Skipped++
		rc.log.Debug("product exists, skipped", slog.String("ref", input.Reference))
		return nil
	}

	categoryID, err := rc.categories.Resolve(rec.CategoryRef)
	if err != nil {
		return err
	}
	partnerID := rc.partners.Resolve(input.Manufacturer)
	if partnerID == nil {
		rc.log.Debug("no partner for manufacturer", slog.String("manufacturer", input.Manufacturer))
	}

	p := buildProduct(rec, input, categoryID, partnerID)

	if rc.cfg.DryRun {
		rc.existing[input.Reference] = true
		rc.stats.Imported++
		rc.log.Info("dry run: product would be imported", slog.String("ref", input.Reference))
		return nil
	}

	p.Media = rc.fetchMedia(ctx, p.ID, rec)

	err = rc.tx.RunInTx(ctx, func(txCtx context.Context) error {
		return rc.products.Create(txCtx, p)
	})
	if err != nil {
		return fmt.Errorf("persist %s: %w", input.Reference, err)
	}

	rc.existing[input.Reference] = true
	rc.stats.Imported++
	rc.log.Info("product imported",
		slog.String("ref", input.Reference),
		slog.String("id", p.ID.String()),
		slog.Int("media", len(p.Media)),
	)
	return nil
}

func buildProduct(rec domain.Record, input ProductInput, categoryID uuid.UUID, partnerID *uuid.UUID) *domain.Product {
	id := uuid.New()

	slug := strings.TrimSpace(rec.Slug)
	if slug == "" {
		slug = domain.Slugify(input.NameFR + " " + input.Reference)
	}

	en := rec.EN
	if strings.TrimSpace(en.Name) == "" {
		en.Name = input.NameFR
	}

	return &domain.Product{
		ID:           id,
		Reference:    input.Reference,
		Manufacturer: input.Manufacturer,
		Slug:         slug,
		CategoryID:   categoryID,
		PartnerID:    partnerID,
		Status:       domain.ProductStatus(input.Status),
		IsFeatured:   rec.Featured(),
		Translations: []domain.ProductTranslation{
			{ID: uuid.New(), ProductID: id, Language: domain.LanguageFR, LocalizedText: rec.FR},
			{ID: uuid.New(), ProductID: id, Language: domain.LanguageEN, LocalizedText: en},
		},
	}
}

// fetchMedia resolves image and document URLs to public paths. Images come
// first and the first image is primary. Failed downloads are skipped.
func (rc *RunContext) fetchMedia(ctx context.Context, productID uuid.UUID, rec domain.Record) []domain.ProductMedia {
	var media []domain.ProductMedia

	add := func(urls []string, limit int, kind asset.Kind, mediaType domain.MediaType) {
		for i, u := range urls {
			if i >= limit {
				break
			}
			path, ok := rc.resolveAsset(ctx, rec.Reference, strings.TrimSpace(u), kind)
			if !ok {
				continue
			}
			media = append(media, domain.ProductMedia{
				ID:        uuid.New(),
				ProductID: productID,
				Type:      mediaType,
				URL:       path,
				SortOrder: len(media),
			})
		}
	}

	add(rec.MediaURLs, rc.cfg.MaxImages, asset.KindImage, domain.MediaTypeImage)
	if len(media) > 0 {
		media[0].IsPrimary = true
	}
	add(rec.DocumentURLs, rc.cfg.MaxDocuments, asset.KindDocument, domain.MediaTypeDocument)
	return media
}

func (rc *RunContext) resolveAsset(ctx context.Context, ref, u string, kind asset.Kind) (string, bool) {
	switch {
	case u == "":
		return "", false
	case strings.HasPrefix(u, "/"):
		return u, true
	case strings.HasPrefix(u, "http://"), strings.HasPrefix(u, "https://"):
	default:
		rc.stats.AssetsSkipped++
		rc.log.Warn("asset skipped: not a url", slog.String("ref", ref), slog.String("value", u))
		return "", false
	}

	res := rc.assets.GetOrDownload(ctx, u, asset.FilenameFromURL(u, kind), kind)
	if !res.OK {
		rc.stats.AssetsSkipped++
		rc.log.Warn("asset skipped", slog.String("ref", ref), slog.String("url", u), slog.String("reason", res.Reason))
		return "", false
	}
	return res.Path, true
}

// loadRows reads a CSV sheet, or a JSON array of objects when path ends
// in .json.
func loadRows(path string, delim rune) ([]sourceRow, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return loadJSONRows(path)
	}

	doc, err := csvparse.ReadFile(path, delim)
	if err != nil {
		return nil, err
	}

	rows := make([]sourceRow, 0, len(doc.Rows))
	for _, r := range doc.Rows {
		row := sourceRow{Line: r.Line}
		if len(r.Fields) > 0 {
			row.Ref = r.Fields[0]
		}
		row.Values, row.Err = doc.Values(r)
		rows = append(rows, row)
	}
	return rows, nil
}

func loadJSONRows(path string) ([]sourceRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("input file %s does not exist: %w", path, domain.ErrFatalConfig)
		}
		return nil, fmt.Errorf("read %s: %v: %w", path, err, domain.ErrFatalConfig)
	}

	var objects []map[string]any
	if err := json.Unmarshal(data, &objects); err != nil {
		return nil, fmt.Errorf("decode %s: expected an array of objects: %v: %w", path, err, domain.ErrFatalConfig)
	}

	rows := make([]sourceRow, 0, len(objects))
	for i, obj := range objects {
		src := make(map[string]string, len(obj))
		for k, v := range obj {
			src[k] = stringify(v)
		}
		values := csvparse.ValuesFromMap(src)
		rows = append(rows, sourceRow{
			Line:   i + 1,
			Values: values,
			Ref:    values.Get(csvparse.FieldReference),
		})
	}
	return rows, nil
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case float64:
		return fmt.Sprintf("%g", t)
	default:
		return fmt.Sprint(t)
	}
}
