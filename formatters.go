// formatters.go
package main

import (
	"fmt"
	"strings"

	"github.com/praveshpatels/google-search-console/gsc"
)

// GenerateSummaryText renders the whole report as plain text, the
// kind of output that pastes cleanly into a ticket or a chat.
func GenerateSummaryText(d *gsc.Dashboard) string {
	buf := &strings.Builder{}

	fmt.Fprintf(buf, "Search performance summary (%s export)\n", d.Table.Kind)
	fmt.Fprintf(buf, "Filters: %s\n", describeFilters(d.Config))
	fmt.Fprintf(buf, "Rows: %d total, %d after filters\n\n", len(d.Table.Rows), len(d.Filtered.Rows))

	fmt.Fprintf(buf, "Total Clicks:      %s\n", formatCount(d.Summary.TotalClicks))
	fmt.Fprintf(buf, "Total Impressions: %s\n", formatCount(d.Summary.TotalImpressions))
	fmt.Fprintf(buf, "Avg. CTR:          %s%% (weighted %s%%)\n", formatFloat(d.Summary.AvgCTR), formatFloat(d.Summary.WeightedCTR))
	fmt.Fprintf(buf, "Avg. Position:     %s (weighted %s)\n\n", formatFloat(d.Summary.AvgPosition), formatFloat(d.Summary.WeightedPosition))

	appendSection := func(title string, rows []gsc.Row) {
		fmt.Fprintf(buf, "%s\n", title)
		if len(rows) == 0 {
			buf.WriteString("(none)\n\n")
			return
		}
		buf.WriteString(rowsTable(d.Filtered, rows).Render())
		buf.WriteString("\n\n")
	}

	appendSection(fmt.Sprintf("Top %d by clicks", d.Config.TopN), d.Top)
	appendSection("Opportunity keywords (position 5-15, ctr < 5%)", d.Opportunities)
	appendSection("Critical alerts (ctr < 1%, impressions > 1000)", d.Alerts.Critical)
	appendSection("Warning alerts (impressions > 1000, clicks < 10)", d.Alerts.Warning)
	appendSection("Wins (ctr > 10%, position > 10)", d.Alerts.Win)

	if len(d.Trend) > 0 {
		buf.WriteString("Daily trend\n")
		buf.WriteString(trendTable(d.Trend).Render())
		buf.WriteString("\n")
	}

	return buf.String()
}
