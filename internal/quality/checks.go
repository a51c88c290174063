// Package quality scores catalog records before import: independent
// checkers, a fixed-deduction scorer, and a corpus report.
package quality

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/heartmarshall/medcatalog/internal/config"
	"github.com/heartmarshall/medcatalog/internal/domain"
)

// CheckResult is the outcome of one checker. Issues are human-readable and
// in detection order.
type CheckResult struct {
	Valid  bool
	Issues []string
}

func newResult(issues []string) CheckResult {
	return CheckResult{Valid: len(issues) == 0, Issues: issues}
}

const (
	minReferenceLength = 2
	maxReferenceLength = 50
	maxURLLength       = 200
)

var referencePattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// CheckReference validates a supplier reference. Format and length
// violations are reported independently.
func CheckReference(ref string) CheckResult {
	if strings.TrimSpace(ref) == "" {
		return newResult([]string{"Empty reference"})
	}

	var issues []string
	if !referencePattern.MatchString(ref) {
		issues = append(issues, "Invalid characters in reference")
	}
	if len(ref) > maxReferenceLength {
		issues = append(issues, "Reference too long")
	}
	if len(ref) < minReferenceLength {
		issues = append(issues, "Reference too short")
	}
	return newResult(issues)
}

// descriptivePatterns match text that describes a product rather than
// locating a file.
var descriptivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(forceps|scissors|replacement|tip|blade|curved|straight)\b`),
	regexp.MustCompile(`(?i)\b(pinces|ciseaux|remplacement|pointe|lame|courbes|droites)\b`),
	regexp.MustCompile(`(?i)\d+\s*(mm|cm|inch(es)?)`),
}

// CheckURL validates a media location: absolute http(s) URL or site-rooted
// path, not product text pasted into the wrong column.
func CheckURL(u string) CheckResult {
	if strings.TrimSpace(u) == "" {
		return newResult([]string{"Empty URL"})
	}

	var issues []string
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") && !strings.HasPrefix(u, "/") {
		issues = append(issues, "Invalid URL format")
	}
	for _, p := range descriptivePatterns {
		if p.MatchString(u) {
			issues = append(issues, "URL contains descriptive text instead of URL")
			break
		}
	}
	if len(u) > maxURLLength {
		issues = append(issues, "URL too long")
	}
	return newResult(issues)
}

// CheckRequired reports a missing mandatory field.
func CheckRequired(field, value string) CheckResult {
	if strings.TrimSpace(value) == "" {
		return newResult([]string{"Missing " + field})
	}
	return newResult(nil)
}

// languageKeywords are matched by substring, not by token. The coarse
// match is what the mismatch threshold is calibrated against.
var languageKeywords = []struct {
	lang  domain.Language
	words []string
}{
	{domain.LanguageEN, []string{"the", "and", "with", "for", "replacement", "tip", "forceps", "scissors", "curved", "straight"}},
	{domain.LanguageFR, []string{"le", "la", "les", "et", "avec", "pour", "pointe", "pinces", "ciseaux", "courbes", "droites"}},
	{domain.LanguageES, []string{"para", "con", "que", "una", "del", "por", "sistema"}},
}

// KeywordCounts returns, per language, how many of its keywords occur in
// the lowercased text.
func KeywordCounts(text string) map[domain.Language]int {
	lower := strings.ToLower(text)
	counts := make(map[domain.Language]int, len(languageKeywords))
	for _, lk := range languageKeywords {
		n := 0
		for _, w := range lk.words {
			if strings.Contains(lower, w) {
				n++
			}
		}
		counts[lk.lang] = n
	}
	return counts
}

// Similarity is the word-bag overlap |common| / max(|words1|, |words2|),
// where common counts words of the first text found in the second.
func Similarity(a, b string) float64 {
	w1 := strings.Fields(strings.ToLower(a))
	w2 := strings.Fields(strings.ToLower(b))
	if len(w1) == 0 && len(w2) == 0 {
		return 0
	}
	in2 := make(map[string]bool, len(w2))
	for _, w := range w2 {
		in2[w] = true
	}
	common := 0
	for _, w := range w1 {
		if in2[w] {
			common++
		}
	}
	return float64(common) / float64(max(len(w1), len(w2)))
}

// Thresholds tune the two calibrated heuristics.
type Thresholds struct {
	// MismatchMinCount is the keyword count at which a foreign language is
	// considered detected.
	MismatchMinCount int
	// NearDuplicateSimilarity is the overlap above which two non-identical
	// translations are reported as near-duplicates.
	NearDuplicateSimilarity float64
}

// DefaultThresholds returns the calibrated defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{MismatchMinCount: 2, NearDuplicateSimilarity: 0.8}
}

// ThresholdsFromConfig reads the thresholds from configuration.
func ThresholdsFromConfig(cfg config.QualityConfig) Thresholds {
	return Thresholds{
		MismatchMinCount:        cfg.MismatchMinCount,
		NearDuplicateSimilarity: cfg.NearDuplicateSimilarity,
	}
}

// Checker runs the threshold-dependent checks.
type Checker struct {
	th Thresholds
}

// NewChecker creates a Checker.
func NewChecker(th Thresholds) *Checker {
	return &Checker{th: th}
}

// CheckLanguage flags text that carries none of the expected language's
// keywords while another language reaches the mismatch threshold.
func (c *Checker) CheckLanguage(text string, expected domain.Language) CheckResult {
	if strings.TrimSpace(text) == "" {
		return newResult([]string{"Empty text"})
	}

	counts := KeywordCounts(text)
	if counts[expected] > 0 {
		return newResult(nil)
	}

	var issues []string
	for _, lk := range languageKeywords {
		if lk.lang == expected {
			continue
		}
		if counts[lk.lang] >= c.th.MismatchMinCount {
			issues = append(issues, fmt.Sprintf("Expected %s but detected %s", expected, lk.lang))
		}
	}
	return newResult(issues)
}

// CheckTranslation flags a missing side, identical texts, or a near-duplicate
// pair.
func (c *Checker) CheckTranslation(fr, en string) CheckResult {
	var missing []string
	if strings.TrimSpace(fr) == "" {
		missing = append(missing, "Missing French translation")
	}
	if strings.TrimSpace(en) == "" {
		missing = append(missing, "Missing English translation")
	}
	if len(missing) > 0 {
		return newResult(missing)
	}

	if domain.NormalizeText(fr) == domain.NormalizeText(en) {
		return newResult([]string{"Identical French and English text"})
	}

	if sim := Similarity(fr, en); sim > c.th.NearDuplicateSimilarity {
		return newResult([]string{fmt.Sprintf("Near-identical translations (similarity %.2f)", sim)})
	}
	return newResult(nil)
}
