package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/heartmarshall/medcatalog/internal/domain"
)

// WriteSummary prints the import outcome. At most limit row errors are
// listed.
func WriteSummary(w io.Writer, r *Report, limit int) error {
	var b strings.Builder
	s := r.Stats

	b.WriteString("Import complete")
	if r.DryRun {
		b.WriteString(" (dry run)")
	}
	if r.Cancelled {
		b.WriteString(" (cancelled)")
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Duration: %ds\n", r.Seconds)
	fmt.Fprintf(&b, "Total rows: %d\n", s.TotalRows)
	fmt.Fprintf(&b, "Imported: %d\n", s.Imported)
	fmt.Fprintf(&b, "Skipped (existing): %d\n", s.Skipped)
	fmt.Fprintf(&b, "Errors: %d\n", len(s.Errors))
	fmt.Fprintf(&b, "Files downloaded: %d\n", s.FilesDownloaded)
	fmt.Fprintf(&b, "Files reused: %d\n", s.FilesReused)
	if s.AssetsSkipped > 0 {
		fmt.Fprintf(&b, "Assets skipped: %d\n", s.AssetsSkipped)
	}

	if len(s.Errors) > 0 {
		b.WriteString("\nErrors:\n")
		for i, e := range s.Errors {
			if limit > 0 && i == limit {
				fmt.Fprintf(&b, "  ... and %d more errors\n", len(s.Errors)-limit)
				break
			}
			fmt.Fprintf(&b, "  Row %d (%s): %s\n", e.Row, e.Reference, e.Error)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteJSON writes r to dir as import-report-<unix>.json and returns the
// path.
func WriteJSON(dir string, r *Report) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir %s: %v: %w", dir, err, domain.ErrFatalConfig)
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal import report: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("import-report-%d.json", r.Timestamp.Unix()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write import report %s: %v: %w", path, err, domain.ErrFatalConfig)
	}
	return path, nil
}
