// Package csvparse reads the delimited product sheets used by the catalog
// tools: a quote-aware line parser, the logical field schema with its
// alias table, and a line-numbered document reader.
package csvparse

import (
	"strings"

	"github.com/heartmarshall/medcatalog/internal/domain"
)

// DefaultDelimiter separates fields when no delimiter is configured.
const DefaultDelimiter = ','

// ParseLine splits one physical line into trimmed fields.
//
// A field may be wrapped in either '"' or '\'' when the quote is its first
// non-blank character; inside the quoted span the delimiter is literal and
// a doubled quote yields one quote character. A quote character anywhere
// else is ordinary content. Records never span lines: a line that ends
// inside a quoted span returns a *domain.RowFormatError.
func ParseLine(line string, delim rune) ([]string, error) {
	var (
		fields    []string
		cur       strings.Builder
		inQuotes  bool
		quoted    bool
		quoteChar rune
	)

	rs := []rune(line)
	for i := 0; i < len(rs); i++ {
		c := rs[i]

		if inQuotes {
			if c != quoteChar {
				cur.WriteRune(c)
				continue
			}
			if i+1 < len(rs) && rs[i+1] == quoteChar {
				cur.WriteRune(c)
				i++
				continue
			}
			inQuotes = false
			continue
		}

		switch {
		case c == delim:
			fields = append(fields, strings.TrimSpace(cur.String()))
			cur.Reset()
			quoted = false
		case isQuote(c) && !quoted && strings.TrimSpace(cur.String()) == "":
			cur.Reset()
			inQuotes = true
			quoted = true
			quoteChar = c
		default:
			cur.WriteRune(c)
		}
	}

	if inQuotes {
		return nil, &domain.RowFormatError{Reason: "unterminated quoted field"}
	}

	fields = append(fields, strings.TrimSpace(cur.String()))
	return fields, nil
}

// FormatLine joins fields into one line. A field containing the delimiter,
// a double quote or a line break is wrapped in double quotes with inner
// quotes doubled, so ParseLine(FormatLine(f)) returns f for trimmed fields.
func FormatLine(fields []string, delim rune) string {
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteRune(delim)
		}
		if needsQuoting(f, delim) {
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(f, `"`, `""`))
			b.WriteByte('"')
			continue
		}
		b.WriteString(f)
	}
	return b.String()
}

func needsQuoting(f string, delim rune) bool {
	if strings.ContainsRune(f, delim) || strings.ContainsAny(f, "\"\n\r") {
		return true
	}
	// A leading single quote would otherwise open a quoted span on re-read.
	return strings.HasPrefix(strings.TrimSpace(f), "'")
}

func isQuote(r rune) bool {
	return r == '"' || r == '\''
}
