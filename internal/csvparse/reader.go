package csvparse

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/heartmarshall/medcatalog/internal/domain"
)

const maxLineSize = 1 << 20

// Row is one physical data line.
type Row struct {
	Line   int
	Raw    string
	Fields []string
	// Err is a *domain.RowFormatError when the line could not be parsed.
	Err error
}

// Document is a parsed sheet: header plus data rows in file order.
type Document struct {
	Header []string
	Schema []Field
	Rows   []Row
	Delim  rune
}

// Values maps a parsed row onto the document schema.
func (d *Document) Values(r Row) (Values, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	v, err := MapFields(r.Fields, d.Schema)
	if err != nil {
		var rfe *domain.RowFormatError
		if errors.As(err, &rfe) {
			rfe.Line = r.Line
		}
		return nil, err
	}
	return v, nil
}

// ReadFile opens path and parses it. A missing or unreadable file is a
// fatal configuration problem and wraps domain.ErrFatalConfig.
func ReadFile(path string, delim rune) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("input file %s does not exist: %w", path, domain.ErrFatalConfig)
		}
		return nil, fmt.Errorf("open %s: %v: %w", path, err, domain.ErrFatalConfig)
	}
	defer f.Close()

	return Read(f, delim)
}

// Read parses a sheet from r. The first non-blank line is the header.
// Blank lines are skipped but still count toward line numbers.
func Read(r io.Reader, delim rune) (*Document, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	doc := &Document{Delim: delim}
	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimRight(sc.Text(), "\r")
		if line == 1 {
			raw = strings.TrimPrefix(raw, "\ufeff")
		}
		if strings.TrimSpace(raw) == "" {
			continue
		}

		fields, err := ParseLine(raw, delim)
		if doc.Header == nil {
			if err != nil {
				return nil, fmt.Errorf("parse header: %w", err)
			}
			doc.Header = fields
			doc.Schema = SchemaFromHeader(fields)
			continue
		}

		row := Row{Line: line, Raw: raw, Fields: fields}
		if err != nil {
			var rfe *domain.RowFormatError
			if errors.As(err, &rfe) {
				rfe.Line = line
			}
			row.Err = err
		}
		doc.Rows = append(doc.Rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan input: %w", err)
	}
	if doc.Header == nil {
		return nil, fmt.Errorf("input has no header line: %w", domain.ErrFatalConfig)
	}
	return doc, nil
}

func formatInsufficient(got, want int) string {
	return "insufficient fields: " + strconv.Itoa(got) + "/" + strconv.Itoa(want)
}
