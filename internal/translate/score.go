package translate

import (
	"regexp"
	"strings"

	"github.com/heartmarshall/medcatalog/internal/domain"
)

var (
	englishInFrench = regexp.MustCompile(`\b(the|with|for|and|of|to|system|holder|clear)\b`)
	frenchInEnglish = regexp.MustCompile(`\b(pour|avec|le|la|les|un|une|et|ou|sans|système)\b`)
)

// ContentScore rates a French/English text pair from 0 to 100. Mixed
// languages and placeholder text cost points; concrete measurements,
// angles and surgical context earn them back.
func ContentScore(fr, en domain.LocalizedText) int {
	frText := strings.ToLower(fr.Name + " " + fr.Description)
	enText := strings.ToLower(en.Name + " " + en.Description)
	both := frText + " " + enText

	score := 100
	if englishInFrench.MatchString(frText) {
		score -= 30
	}
	if frenchInEnglish.MatchString(enText) {
		score -= 30
	}
	if strings.Contains(frText, "équipement médical") || strings.Contains(enText, "medical equipment") {
		score -= 20
	}

	if strings.Contains(both, "mm") {
		score += 10
	}
	if strings.Contains(both, "°") {
		score += 10
	}
	if strings.Contains(frText, "chirurgie") || strings.Contains(enText, "surgery") {
		score += 10
	}
	return min(max(score, 0), 100)
}
