// aggregate.go
package gsc

import (
	"sort"
	"time"
)

// Summary holds the four KPI scalars plus their impression-weighted
// variants. Sums and means skip missing cells; they never treat them
// as zero. The weighted averages are defined as 0 when the table has
// no impressions at all.
type Summary struct {
	TotalClicks      float64
	TotalImpressions float64
	AvgCTR           float64
	AvgPosition      float64
	WeightedCTR      float64
	WeightedPosition float64
	Rows             int
}

// Summarize computes the KPI block over a table, typically the
// filtered view.
func Summarize(table *Table) Summary {
	s := Summary{Rows: len(table.Rows)}
	var ctrSum, ctrN, posSum, posN float64
	var wCTR, wPos, wCTRDen, wPosDen float64
	for _, row := range table.Rows {
		if !Missing(row.Clicks) {
			s.TotalClicks += row.Clicks
		}
		if !Missing(row.Impressions) {
			s.TotalImpressions += row.Impressions
		}
		if !Missing(row.CTR) {
			ctrSum += row.CTR
			ctrN++
			if !Missing(row.Impressions) {
				wCTR += row.CTR * row.Impressions
				wCTRDen += row.Impressions
			}
		}
		if !Missing(row.Position) {
			posSum += row.Position
			posN++
			if !Missing(row.Impressions) {
				wPos += row.Position * row.Impressions
				wPosDen += row.Impressions
			}
		}
	}
	if ctrN > 0 {
		s.AvgCTR = ctrSum / ctrN
	}
	if posN > 0 {
		s.AvgPosition = posSum / posN
	}
	if wCTRDen > 0 {
		s.WeightedCTR = wCTR / wCTRDen
	}
	if wPosDen > 0 {
		s.WeightedPosition = wPos / wPosDen
	}
	return s
}

// TopByClicks returns the first n rows when sorted by clicks
// descending. The sort is stable so equal click counts keep their
// file order. Rows with a missing click count sort last.
func TopByClicks(table *Table, n int) []Row {
	rows := make([]Row, len(table.Rows))
	copy(rows, table.Rows)
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].Clicks, rows[j].Clicks
		if Missing(a) {
			return false
		}
		if Missing(b) {
			return true
		}
		return a > b
	})
	if n > 0 && len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

// Opportunities picks subjects that already rank decently (position
// 5..15) but underperform on click-through (ctr below 5%), the
// quick-win candidates, sorted by impressions descending. Rows with a
// missing position or ctr never qualify.
func Opportunities(table *Table) []Row {
	var rows []Row
	for _, row := range table.Rows {
		if row.Position >= 5 && row.Position <= 15 && row.CTR < 5 {
			rows = append(rows, row)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].Impressions, rows[j].Impressions
		if Missing(a) {
			return false
		}
		if Missing(b) {
			return true
		}
		return a > b
	})
	return rows
}

// Alerts are three independent, non-exclusive buckets evaluated
// against the filtered table. A row can appear in more than one.
type Alerts struct {
	// Critical: high visibility, almost no clicks relative to it.
	Critical []Row
	// Warning: high visibility, close to zero absolute clicks. The
	// extra ctr clause some report variants add here is implied for
	// any file whose ctr agrees with clicks/impressions, so the
	// two-clause rule is used.
	Warning []Row
	// Win: strong click-through despite ranking past page one, a
	// candidate for content or technical boosting.
	Win []Row
}

// ClassifyAlerts fills the three alert buckets. NaN comparisons are
// false, so rows with missing cells simply never qualify.
func ClassifyAlerts(table *Table) Alerts {
	var a Alerts
	for _, row := range table.Rows {
		if row.CTR < 1 && row.Impressions > 1000 {
			a.Critical = append(a.Critical, row)
		}
		if row.Impressions > 1000 && row.Clicks < 10 {
			a.Warning = append(a.Warning, row)
		}
		if row.CTR > 10 && row.Position > 10 {
			a.Win = append(a.Win, row)
		}
	}
	return a
}

// TrendPoint is one calendar day's clicks and impressions.
type TrendPoint struct {
	Date        time.Time
	Clicks      float64
	Impressions float64
}

// Trend groups the table by calendar day and sums clicks and
// impressions per day, ascending. Rows without a parsed date are
// excluded from this view only; they still count everywhere else.
// The result is empty when the export carries no date column.
func Trend(table *Table) []TrendPoint {
	if !table.HasDate {
		return nil
	}
	byDay := map[time.Time]*TrendPoint{}
	for _, row := range table.Rows {
		if row.Date.IsZero() {
			continue
		}
		day := row.Date.Truncate(24 * time.Hour)
		point, ok := byDay[day]
		if !ok {
			point = &TrendPoint{Date: day}
			byDay[day] = point
		}
		if !Missing(row.Clicks) {
			point.Clicks += row.Clicks
		}
		if !Missing(row.Impressions) {
			point.Impressions += row.Impressions
		}
	}
	points := make([]TrendPoint, 0, len(byDay))
	for _, point := range byDay {
		points = append(points, *point)
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points
}
