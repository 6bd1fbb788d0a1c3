// filter.go
package gsc

import "strings"

// FilterConfig is everything a single interaction can vary. The
// zero value plus DefaultFilterConfig's threshold reproduces the
// report's initial state.
type FilterConfig struct {
	MinImpressions float64
	Query          string // case-insensitive substring on the subject
	CTRUnit        CTRUnit
	TopN           int
}

const (
	DefaultMinImpressions = 100
	DefaultTopN           = 10
)

// DefaultFilterConfig returns the thresholds the report starts with.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		MinImpressions: DefaultMinImpressions,
		CTRUnit:        CTRUnitAuto,
		TopN:           DefaultTopN,
	}
}

// Filter applies the impressions threshold and the subject substring
// match, ANDed, and returns a new Table. The input Table is not
// touched. A threshold of zero disables the impressions predicate so
// rows with a missing impressions cell survive; a non-zero threshold
// rejects them. An empty search term matches everything; a missing
// subject never matches a non-empty term.
func Filter(table *Table, cfg FilterConfig) *Table {
	term := strings.ToLower(strings.TrimSpace(cfg.Query))
	out := &Table{Kind: table.Kind, HasDate: table.HasDate}
	for _, row := range table.Rows {
		if cfg.MinImpressions > 0 && !(row.Impressions >= cfg.MinImpressions) {
			continue
		}
		if term != "" {
			if row.Subject == "" || !strings.Contains(strings.ToLower(row.Subject), term) {
				continue
			}
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}
