package quality

import (
	"errors"
	"log/slog"
	"path/filepath"
	"unicode"
	"unicode/utf8"

	"github.com/heartmarshall/medcatalog/internal/csvparse"
	"github.com/heartmarshall/medcatalog/internal/domain"
)

// Analyzer produces a CorpusReport for a sheet.
type Analyzer struct {
	log        *slog.Logger
	eval       *Evaluator
	sampleSize int
}

// NewAnalyzer creates an Analyzer. sampleSize limits scoring to the first
// N data rows; 0 scores every row.
func NewAnalyzer(log *slog.Logger, eval *Evaluator, sampleSize int) *Analyzer {
	return &Analyzer{log: log, eval: eval, sampleSize: sampleSize}
}

// AnalyzeFile reads path and analyzes it.
func (a *Analyzer) AnalyzeFile(path string, delim rune) (CorpusReport, error) {
	doc, err := csvparse.ReadFile(path, delim)
	if err != nil {
		return CorpusReport{}, err
	}
	return a.Analyze(filepath.Base(path), doc), nil
}

// Analyze scores a parsed document. Duplicates are tracked over every row,
// scoring covers the sample only.
func (a *Analyzer) Analyze(name string, doc *csvparse.Document) CorpusReport {
	tracker := NewDuplicateTracker()
	duplicate := make(map[int]bool)
	for _, row := range doc.Rows {
		v, err := doc.Values(row)
		if err != nil {
			continue
		}
		if tracker.Observe(v.Get(csvparse.FieldReference)) {
			duplicate[row.Line] = true
		}
	}

	sample := doc.Rows
	if a.sampleSize > 0 && len(sample) > a.sampleSize {
		sample = sample[:a.sampleSize]
	}

	agg := NewAggregator(name)
	for _, ref := range tracker.Duplicates() {
		agg.AddDuplicate(ref)
	}

	for _, row := range sample {
		v, err := doc.Values(row)
		if err != nil {
			ref := "Unknown"
			if len(row.Fields) > 0 && row.Fields[0] != "" {
				ref = row.Fields[0]
			}
			a.log.Warn("malformed row",
				slog.Int("line", row.Line),
				slog.String("ref", ref),
				slog.String("error", err.Error()),
			)
			agg.Add(Malformed(row.Line, ref, rowReason(err)))
			continue
		}

		scored := a.eval.Evaluate(v.Record(row.Line), duplicate[row.Line])
		a.log.Debug("row scored",
			slog.Int("line", row.Line),
			slog.String("ref", scored.Record.Reference),
			slog.Int("score", scored.Score),
		)
		agg.Add(scored)
	}

	agg.SetLines(len(sample), len(doc.Rows))
	return agg.Report()
}

func rowReason(err error) string {
	var rfe *domain.RowFormatError
	if errors.As(err, &rfe) {
		return capitalize(rfe.Reason)
	}
	return capitalize(err.Error())
}

func capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}
