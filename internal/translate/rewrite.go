// Package translate repairs and generates French/English catalog text.
//
// Two strategies exist: a rule-based rewrite that turns English product
// text into French through a terminology dictionary and an ordered idiom
// table, and a template generator that extracts a ProductInfo from free
// text and renders names and descriptions for both languages.
package translate

import (
	"context"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/heartmarshall/medcatalog/internal/domain"
)

// Translator turns English catalog text into French.
type Translator interface {
	ToFrench(ctx context.Context, english string) (string, error)
}

var (
	multiSpace       = regexp.MustCompile(`\s+`)
	spaceBeforePunct = regexp.MustCompile(`\s+([,.;:!?])`)
	spaceAfterPunct  = regexp.MustCompile(`([,.;:!?])\s*([a-zA-Z])`)
)

type compiledTerm struct {
	re     *regexp.Regexp
	french string
}

// Rewriter is the heuristic Translator.
type Rewriter struct {
	terms []compiledTerm
	rules []Rule
}

var _ Translator = (*Rewriter)(nil)

// NewRewriter compiles the terminology dictionary.
func NewRewriter() *Rewriter {
	compiled := make([]compiledTerm, 0, len(terms))
	for _, t := range terms {
		compiled = append(compiled, compiledTerm{
			re:     regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(t.English) + `\b`),
			french: t.French,
		})
	}
	return &Rewriter{terms: compiled, rules: rules}
}

// Rewrite translates english with the dictionary and idiom rules.
func (r *Rewriter) Rewrite(english string) string {
	text := strings.ToLower(strings.TrimSpace(english))
	if text == "" {
		return ""
	}

	for _, t := range r.terms {
		text = t.re.ReplaceAllLiteralString(text, t.french)
	}
	for _, rule := range r.rules {
		text = rule.Pattern.ReplaceAllString(text, rule.Replacement)
	}

	text = multiSpace.ReplaceAllString(text, " ")
	text = spaceBeforePunct.ReplaceAllString(text, "${1}")
	text = spaceAfterPunct.ReplaceAllString(text, "${1} ${2}")
	return capitalize(strings.TrimSpace(text))
}

// ToFrench implements Translator.
func (r *Rewriter) ToFrench(_ context.Context, english string) (string, error) {
	return r.Rewrite(english), nil
}

// englishMarkers betray untranslated English inside French text.
var englishMarkers = []string{"the", "and", "with", "for", "forceps", "scissors", "replacement"}

// NeedsImprovement reports whether a French text should be rewritten from
// its English counterpart.
func NeedsImprovement(fr, en string) bool {
	if strings.TrimSpace(fr) == "" || strings.TrimSpace(en) == "" {
		return true
	}
	if domain.NormalizeText(fr) == domain.NormalizeText(en) {
		return true
	}
	lower := strings.ToLower(fr)
	for _, w := range englishMarkers {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}
