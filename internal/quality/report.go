package quality

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/heartmarshall/medcatalog/internal/domain"
)

// DuplicateTracker detects repeated references across a corpus. Only the
// second and later occurrences are reported.
type DuplicateTracker struct {
	seen  map[string]int
	order []string
}

// NewDuplicateTracker creates an empty tracker.
func NewDuplicateTracker() *DuplicateTracker {
	return &DuplicateTracker{seen: make(map[string]int)}
}

// Observe records ref and reports whether it was seen before. Blank
// references are not tracked; the reference check already covers them.
func (t *DuplicateTracker) Observe(ref string) bool {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return false
	}
	t.seen[ref]++
	if t.seen[ref] == 2 {
		t.order = append(t.order, ref)
	}
	return t.seen[ref] > 1
}

// Duplicates returns each repeated reference once, in the order the first
// repeat was observed.
func (t *DuplicateTracker) Duplicates() []string {
	return append([]string(nil), t.order...)
}

// Distribution counts records per tier.
type Distribution struct {
	Excellent int `json:"excellent"`
	Good      int `json:"good"`
	Poor      int `json:"poor"`
	Critical  int `json:"critical"`
}

// Total returns the number of counted records.
func (d Distribution) Total() int {
	return d.Excellent + d.Good + d.Poor + d.Critical
}

// IssueSets lists flagged references per issue category.
type IssueSets struct {
	DuplicateReferences []string `json:"duplicateReferences"`
	InvalidURLs         []string `json:"invalidUrls"`
	LanguageIssues      []string `json:"languageIssues"`
	TranslationProblems []string `json:"translationProblems"`
}

// Total returns the number of flagged entries across categories.
func (s IssueSets) Total() int {
	return len(s.DuplicateReferences) + len(s.InvalidURLs) + len(s.LanguageIssues) + len(s.TranslationProblems)
}

// ProductSummary is the report view of a low-scoring record.
type ProductSummary struct {
	Line         int      `json:"line"`
	Reference    string   `json:"ref"`
	Manufacturer string   `json:"manufacturer,omitempty"`
	NameFR       string   `json:"frName,omitempty"`
	NameEN       string   `json:"enName,omitempty"`
	Score        int      `json:"score"`
	Issues       []string `json:"issues"`
}

// Recommendation is the overall import verdict.
type Recommendation string

const (
	RecommendDoNotImport Recommendation = "DO NOT IMPORT"
	RecommendCaution     Recommendation = "CAUTION"
	RecommendSafe        Recommendation = "SAFE TO IMPORT"
	RecommendMarginal    Recommendation = "MARGINAL"
)

// CorpusReport is the aggregated quality report.
type CorpusReport struct {
	Filename            string           `json:"filename"`
	AnalyzedLines       int              `json:"analyzedLines"`
	TotalLines          int              `json:"totalLines"`
	QualityDistribution Distribution     `json:"qualityDistribution"`
	AverageScore        int              `json:"averageScore"`
	Issues              IssueSets        `json:"issues"`
	CriticalProducts    []ProductSummary `json:"criticalProducts"`
	PoorQualityProducts []ProductSummary `json:"poorQualityProducts"`
	Recommendation      Recommendation   `json:"recommendation"`
}

// Recommend derives the verdict from a report.
func Recommend(r CorpusReport) Recommendation {
	d := r.QualityDistribution
	switch {
	case d.Critical > 0:
		return RecommendDoNotImport
	case float64(d.Poor) > float64(d.Total())*0.3:
		return RecommendCaution
	case r.AverageScore >= 75:
		return RecommendSafe
	default:
		return RecommendMarginal
	}
}

const nameDisplayLength = 50

// refSet is an insertion-ordered set of references.
type refSet struct {
	refs []string
	seen map[string]bool
}

func (s *refSet) add(ref string) {
	if ref == "" || s.seen[ref] {
		return
	}
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	s.seen[ref] = true
	s.refs = append(s.refs, ref)
}

func (s *refSet) list() []string {
	if s.refs == nil {
		return []string{}
	}
	return append([]string(nil), s.refs...)
}

// Aggregator accumulates scored records into a CorpusReport.
type Aggregator struct {
	filename string
	analyzed int
	total    int

	dist     Distribution
	scoreSum int
	count    int

	duplicates   refSet
	invalidURLs  refSet
	language     refSet
	translations refSet

	critical []ProductSummary
	poor     []ProductSummary
}

// NewAggregator creates an Aggregator for the named input.
func NewAggregator(filename string) *Aggregator {
	return &Aggregator{filename: filename}
}

// AddDuplicate flags ref as a duplicate even if the repeated row lies
// outside the scored sample.
func (a *Aggregator) AddDuplicate(ref string) {
	a.duplicates.add(ref)
}

// Add folds one scored record into the report.
func (a *Aggregator) Add(s ScoredRecord) {
	a.count++
	a.scoreSum += s.Score

	switch s.Tier {
	case TierExcellent:
		a.dist.Excellent++
	case TierGood:
		a.dist.Good++
	case TierPoor:
		a.dist.Poor++
		a.poor = append(a.poor, summarize(s))
	default:
		a.dist.Critical++
		a.critical = append(a.critical, summarize(s))
	}

	ref := s.Record.Reference
	if s.Has(CategoryDuplicate) {
		a.duplicates.add(ref)
	}
	if s.Has(CategoryMediaURL) {
		a.invalidURLs.add(ref)
	}
	if s.Has(CategoryPrimaryLanguage) || s.Has(CategorySecondaryLanguage) {
		a.language.add(ref)
	}
	if s.Has(CategoryTranslation) {
		a.translations.add(ref)
	}
}

// SetLines records how many data lines were analyzed out of the total.
// Without it both default to the number of added records.
func (a *Aggregator) SetLines(analyzed, total int) {
	a.analyzed = analyzed
	a.total = total
}

// Report returns the aggregated report.
func (a *Aggregator) Report() CorpusReport {
	r := CorpusReport{
		Filename:            a.filename,
		AnalyzedLines:       a.analyzed,
		TotalLines:          a.total,
		QualityDistribution: a.dist,
		Issues: IssueSets{
			DuplicateReferences: a.duplicates.list(),
			InvalidURLs:         a.invalidURLs.list(),
			LanguageIssues:      a.language.list(),
			TranslationProblems: a.translations.list(),
		},
		CriticalProducts:    append([]ProductSummary{}, a.critical...),
		PoorQualityProducts: append([]ProductSummary{}, a.poor...),
	}
	if a.count > 0 {
		r.AverageScore = int(math.Round(float64(a.scoreSum) / float64(a.count)))
	}
	if r.AnalyzedLines == 0 && r.TotalLines == 0 {
		r.AnalyzedLines = a.count
		r.TotalLines = a.count
	}
	r.Recommendation = Recommend(r)
	return r
}

// Aggregate builds a report from scored records in one pass.
func Aggregate(records []ScoredRecord) CorpusReport {
	agg := NewAggregator("")
	for _, s := range records {
		agg.Add(s)
	}
	return agg.Report()
}

func summarize(s ScoredRecord) ProductSummary {
	ref := s.Record.Reference
	if ref == "" {
		ref = "Unknown"
	}
	return ProductSummary{
		Line:         s.Record.Line,
		Reference:    ref,
		Manufacturer: s.Record.Manufacturer,
		NameFR:       truncate(s.Record.FR.Name, nameDisplayLength),
		NameEN:       truncate(s.Record.EN.Name, nameDisplayLength),
		Score:        s.Score,
		Issues:       s.Issues,
	}
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

// WriteSummary prints a human-readable report. Each list shows at most
// limit entries.
func WriteSummary(w io.Writer, r CorpusReport, limit int) error {
	var b strings.Builder
	d := r.QualityDistribution

	fmt.Fprintf(&b, "Quality report: %s\n", r.Filename)
	fmt.Fprintf(&b, "Analyzed %d of %d lines\n\n", r.AnalyzedLines, r.TotalLines)
	fmt.Fprintf(&b, "Excellent (90-100): %d\n", d.Excellent)
	fmt.Fprintf(&b, "Good (70-89):       %d\n", d.Good)
	fmt.Fprintf(&b, "Poor (50-69):       %d\n", d.Poor)
	fmt.Fprintf(&b, "Critical (<50):     %d\n\n", d.Critical)
	fmt.Fprintf(&b, "Average Score: %d/100\n", r.AverageScore)
	fmt.Fprintf(&b, "Total Issues: %d\n\n", r.Issues.Total())

	writeRefs(&b, "Duplicate references", r.Issues.DuplicateReferences, limit)
	writeRefs(&b, "Invalid URLs", r.Issues.InvalidURLs, limit)
	writeRefs(&b, "Language issues", r.Issues.LanguageIssues, limit)
	writeRefs(&b, "Translation problems", r.Issues.TranslationProblems, limit)

	writeProducts(&b, "Critical products", r.CriticalProducts, limit)
	writeProducts(&b, "Poor quality products", r.PoorQualityProducts, limit)

	fmt.Fprintf(&b, "Recommendation: %s\n", r.Recommendation)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeRefs(b *strings.Builder, title string, refs []string, limit int) {
	if len(refs) == 0 {
		return
	}
	fmt.Fprintf(b, "%s (%d):\n", title, len(refs))
	for i, ref := range refs {
		if limit > 0 && i == limit {
			fmt.Fprintf(b, "  ... and %d more\n", len(refs)-limit)
			break
		}
		fmt.Fprintf(b, "  - %s\n", ref)
	}
	b.WriteString("\n")
}

// writeProducts lists the worst offenders first. Ties keep input order.
func writeProducts(b *strings.Builder, title string, products []ProductSummary, limit int) {
	if len(products) == 0 {
		return
	}
	products = slices.Clone(products)
	slices.SortStableFunc(products, func(x, y ProductSummary) int {
		return x.Score - y.Score
	})
	fmt.Fprintf(b, "%s (%d):\n", title, len(products))
	for i, p := range products {
		if limit > 0 && i == limit {
			fmt.Fprintf(b, "  ... and %d more\n", len(products)-limit)
			break
		}
		fmt.Fprintf(b, "  line %d %s (score %d): %s\n", p.Line, p.Reference, p.Score, strings.Join(p.Issues, "; "))
	}
	b.WriteString("\n")
}

// WriteJSON writes r to dir as quality-report-<unix>.json and returns the
// path. An unwritable directory is a fatal configuration problem.
func WriteJSON(dir string, r CorpusReport, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir %s: %v: %w", dir, err, domain.ErrFatalConfig)
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("quality-report-%d.json", now.Unix()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report %s: %v: %w", path, err, domain.ErrFatalConfig)
	}
	return path, nil
}
