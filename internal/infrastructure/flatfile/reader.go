package flatfile

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// tableReader wraps encoding/csv with BOM stripping and header-name access.
// Exported CSV dumps from the regional finance system are UTF-8, sometimes
// with a BOM, always with a header row.
type tableReader struct {
	reader  *csv.Reader
	headers map[string]int
	line    int
}

func newTableReader(r io.Reader) (*tableReader, error) {
	buf := bufio.NewReader(r)

	peek, err := buf.Peek(3)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(peek) == 3 && peek[0] == 0xEF && peek[1] == 0xBB && peek[2] == 0xBF {
		_, _ = buf.Discard(3)
	}

	cr := csv.NewReader(buf)
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	headers := make(map[string]int, len(header))
	for i, h := range header {
		headers[strings.TrimSpace(h)] = i
	}

	return &tableReader{reader: cr, headers: headers, line: 1}, nil
}

// row is one data record keyed by header name. Missing columns read as "".
type row struct {
	line   int
	fields []string
	table  *tableReader
}

func (t *tableReader) next() (*row, error) {
	record, err := t.reader.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	t.line++
	if err != nil {
		return nil, fmt.Errorf("error reading row %d: %w", t.line, err)
	}
	return &row{line: t.line, fields: record, table: t}, nil
}

func (r *row) get(header string) string {
	idx, ok := r.table.headers[header]
	if !ok || idx >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[idx])
}

func (r *row) getInt(header string) int {
	n, err := strconv.Atoi(r.get(header))
	if err != nil {
		return 0
	}
	return n
}

func (r *row) getInt64(header string) int64 {
	n, err := strconv.ParseInt(r.get(header), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006",
}

// getTime parses a timestamp column. Empty or unparseable values come back
// as the zero time so the row survives with its calendar fields unset.
func (r *row) getTime(header string) time.Time {
	s := r.get(header)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
