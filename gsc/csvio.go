// csvio.go
package gsc

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// ReadTable parses one uploaded CSV export into a coerced Table. The
// schema check is the only fatal path: a header row that still lacks
// required canonical columns after aliasing aborts the whole upload
// with a *SchemaError. Malformed data cells degrade to missing values
// instead.
func ReadTable(raw []byte, unit CTRUnit) (*Table, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	r := csv.NewReader(bytes.NewReader(raw))
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	headers, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, &SchemaError{Missing: []string{"clicks", "ctr", "impressions", "position", "query/page"}}
		}
		return nil, fmt.Errorf("read header row: %w", err)
	}
	schema, err := ResolveSchema(headers)
	if err != nil {
		return nil, err
	}

	var records [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		records = append(records, record)
	}
	return BuildTable(schema, records, unit), nil
}

// WriteCSV serializes rows back to a UTF-8, comma-delimited CSV with
// a header row and no index column, the same column set as the
// canonical table. Missing cells become empty fields.
func WriteCSV(kind SubjectKind, hasDate bool, rows []Row) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{string(kind), "clicks", "impressions", "ctr", "position"}
	if hasDate {
		header = append(header, "date")
	}
	w.Write(header)

	for _, row := range rows {
		record := []string{
			row.Subject,
			formatCell(row.Clicks, 0),
			formatCell(row.Impressions, 0),
			formatCell(row.CTR, 2),
			formatCell(row.Position, 2),
		}
		if hasDate {
			date := ""
			if !row.Date.IsZero() {
				date = row.Date.Format("2006-01-02")
			}
			record = append(record, date)
		}
		w.Write(record)
	}
	w.Flush()
	return buf.Bytes()
}

func formatCell(v float64, decimals int) string {
	if Missing(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
