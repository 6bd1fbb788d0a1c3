// table.go
package gsc

import (
	"math"
	"time"
)

// SubjectKind tells whether the export came from Performance > Queries
// or Performance > Pages. A file has exactly one subject column.
type SubjectKind string

const (
	SubjectQuery SubjectKind = "query"
	SubjectPage  SubjectKind = "page"
)

// Row is one subject's performance record. Metric cells that could not
// be parsed hold NaN; aggregates skip NaN instead of counting it as
// zero. Date is the zero time when the export has no date column or
// the cell did not parse.
type Row struct {
	Subject     string
	Clicks      float64
	Impressions float64
	CTR         float64 // percentage scale, 0..100
	Position    float64
	Date        time.Time
}

// Table is an ordered sequence of rows in file order. Duplicate
// subjects are legal and never merged. A Table is built once per
// upload and not mutated afterwards; filters and classifications
// return fresh slices or Tables.
type Table struct {
	Kind    SubjectKind
	HasDate bool
	Rows    []Row
}

// Missing reports whether a metric cell holds the missing-value marker.
func Missing(v float64) bool {
	return math.IsNaN(v)
}

func missingValue() float64 {
	return math.NaN()
}

// allMissing reports whether every core metric of the row is absent.
// Such rows carry no information and are dropped during coercion.
func (r Row) allMissing() bool {
	return Missing(r.Clicks) && Missing(r.Impressions) && Missing(r.CTR) && Missing(r.Position)
}
