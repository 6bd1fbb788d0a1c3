// coerce.go
package gsc

import (
	"strconv"
	"strings"
	"time"
)

// CTRUnit selects how the ctr column's input unit is decided.
type CTRUnit string

const (
	// CTRUnitAuto applies the column-wide heuristic: when the largest
	// finite ctr value is <= 1 the column is assumed fraction-encoded
	// and rescaled to percentages. A column whose true maximum CTR is
	// legitimately below 1% gets rescaled wrongly; callers who know
	// the unit should pass it explicitly.
	CTRUnitAuto     CTRUnit = "auto"
	CTRUnitPercent  CTRUnit = "percent"
	CTRUnitFraction CTRUnit = "fraction"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"Jan 2, 2006",
}

// ParseMetric converts one textual cell to a number. Percent signs,
// thousands separators and surrounding space are stripped first.
// Anything that still does not parse becomes the missing marker,
// never an error.
func ParseMetric(cell string) float64 {
	cell = strings.TrimSpace(cell)
	cell = strings.ReplaceAll(cell, "%", "")
	cell = strings.ReplaceAll(cell, ",", "")
	if cell == "" {
		return missingValue()
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return missingValue()
	}
	return v
}

// ParseDate tries the calendar layouts seen in Search Console
// exports. ok is false for cells that match none of them.
func ParseDate(cell string) (time.Time, bool) {
	cell = strings.TrimSpace(cell)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// BuildTable coerces raw records into a Table under the resolved
// schema. Rows with every metric missing are dropped; everything else
// is kept, holes included. The ctr column is brought to percentage
// scale as a last, column-wide step.
func BuildTable(schema *Schema, records [][]string, unit CTRUnit) *Table {
	table := &Table{Kind: schema.Kind, HasDate: schema.HasDate}
	subjectCol := schema.SubjectColumn()

	cell := func(record []string, col int) string {
		if col < 0 || col >= len(record) {
			return ""
		}
		return record[col]
	}

	for _, record := range records {
		row := Row{
			Subject:     strings.TrimSpace(cell(record, subjectCol)),
			Clicks:      ParseMetric(cell(record, schema.Columns["clicks"])),
			Impressions: ParseMetric(cell(record, schema.Columns["impressions"])),
			CTR:         ParseMetric(cell(record, schema.Columns["ctr"])),
			Position:    ParseMetric(cell(record, schema.Columns["position"])),
		}
		if schema.HasDate {
			if d, ok := ParseDate(cell(record, schema.Columns["date"])); ok {
				row.Date = d
			}
		}
		if row.allMissing() {
			continue
		}
		table.Rows = append(table.Rows, row)
	}

	NormalizeCTR(table, unit)
	return table
}

// NormalizeCTR rescales the ctr column to the 0..100 percentage
// scale. The decision is made once for the whole column, not per
// cell. A column with no finite values is left untouched. Running the
// auto rule on an already-percentage column whose max is above 1
// changes nothing, so the normalization is idempotent outside the
// documented low-max ambiguity.
func NormalizeCTR(table *Table, unit CTRUnit) {
	scale := false
	switch unit {
	case CTRUnitPercent:
		return
	case CTRUnitFraction:
		scale = true
	default:
		max := missingValue()
		for _, row := range table.Rows {
			if Missing(row.CTR) {
				continue
			}
			if Missing(max) || row.CTR > max {
				max = row.CTR
			}
		}
		if Missing(max) {
			return
		}
		scale = max <= 1
	}
	if !scale {
		return
	}
	for i := range table.Rows {
		if !Missing(table.Rows[i].CTR) {
			table.Rows[i].CTR *= 100
		}
	}
}
