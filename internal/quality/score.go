package quality

import (
	"slices"

	"github.com/heartmarshall/medcatalog/internal/domain"
)

// Category identifies a failed check.
type Category string

const (
	CategoryDuplicate         Category = "duplicate_reference"
	CategoryReference         Category = "reference_format"
	CategoryPrimaryLanguage   Category = "primary_language"
	CategorySecondaryLanguage Category = "secondary_language"
	CategoryTranslation       Category = "translation"
	CategoryMediaURL          Category = "media_url"
	CategoryManufacturer      Category = "manufacturer"
)

const maxScore = 100

var deductions = map[Category]int{
	CategoryDuplicate:         30,
	CategoryReference:         20,
	CategoryPrimaryLanguage:   25,
	CategorySecondaryLanguage: 15,
	CategoryTranslation:       20,
	CategoryMediaURL:          15,
	CategoryManufacturer:      20,
}

// Deduction returns the points removed for a failed category.
func Deduction(c Category) int {
	return deductions[c]
}

// Tier is a score band.
type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierPoor      Tier = "poor"
	TierCritical  Tier = "critical"
)

// TierFor maps a final score onto its tier.
func TierFor(score int) Tier {
	switch {
	case score >= 90:
		return TierExcellent
	case score >= 70:
		return TierGood
	case score >= 50:
		return TierPoor
	default:
		return TierCritical
	}
}

// ScoredRecord is a record with its score and the checks it failed.
type ScoredRecord struct {
	Record domain.Record
	Score  int
	Tier   Tier
	// Failed holds distinct categories, sorted.
	Failed []Category
	Issues []string
	// Malformed marks a row that could not be mapped to a record.
	Malformed bool
}

// Has reports whether category c failed.
func (s ScoredRecord) Has(c Category) bool {
	_, found := slices.BinarySearch(s.Failed, c)
	return found
}

// Score deducts each distinct failed category once from 100, floored at 0.
// The order of failed does not matter.
func Score(rec domain.Record, failed []Category, issues []string) ScoredRecord {
	distinct := slices.Clone(failed)
	slices.Sort(distinct)
	distinct = slices.Compact(distinct)

	score := maxScore
	for _, c := range distinct {
		score -= deductions[c]
	}
	score = max(score, 0)

	return ScoredRecord{
		Record: rec,
		Score:  score,
		Tier:   TierFor(score),
		Failed: distinct,
		Issues: issues,
	}
}

// Malformed scores a row that could not be mapped: critical, score 0.
func Malformed(line int, ref, reason string) ScoredRecord {
	return ScoredRecord{
		Record:    domain.Record{Line: line, Reference: ref},
		Score:     0,
		Tier:      TierCritical,
		Issues:    []string{reason},
		Malformed: true,
	}
}

// Evaluator runs every checker against a record and scores it.
type Evaluator struct {
	checker *Checker
}

// NewEvaluator creates an Evaluator.
func NewEvaluator(checker *Checker) *Evaluator {
	return &Evaluator{checker: checker}
}

// Evaluate scores rec. duplicate marks a repeated reference; the tracker
// runs over the whole corpus so it is decided by the caller.
func (e *Evaluator) Evaluate(rec domain.Record, duplicate bool) ScoredRecord {
	var (
		failed []Category
		issues []string
	)
	fail := func(c Category, prefix string, res CheckResult) {
		if res.Valid {
			return
		}
		failed = append(failed, c)
		for _, is := range res.Issues {
			issues = append(issues, prefix+is)
		}
	}

	fail(CategoryReference, "Reference: ", CheckReference(rec.Reference))
	if duplicate {
		failed = append(failed, CategoryDuplicate)
		issues = append(issues, "Duplicate reference")
	}
	fail(CategoryPrimaryLanguage, "French Name: ", e.checker.CheckLanguage(rec.FR.Name, domain.LanguageFR))
	fail(CategorySecondaryLanguage, "English Name: ", e.checker.CheckLanguage(rec.EN.Name, domain.LanguageEN))
	fail(CategoryTranslation, "Translation: ", e.checker.CheckTranslation(rec.FR.Name, rec.EN.Name))
	fail(CategoryMediaURL, "Image URL: ", CheckURL(rec.PrimaryMediaURL()))
	fail(CategoryManufacturer, "", CheckRequired("manufacturer", rec.Manufacturer))

	return Score(rec, failed, issues)
}
