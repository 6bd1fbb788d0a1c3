// dashboard.go
package main

import (
	"fmt"
	"html/template"
	"net/url"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/praveshpatels/google-search-console/gsc"
)

// reportView is what the report template consumes. Tables arrive
// pre-rendered because go-pretty builds them outside the template.
type reportView struct {
	ID             string
	Kind           string
	CTRUnit        string
	Query          string
	MinImpressions string
	QueryString    template.URL
	TopN           int
	TotalRows      int
	FilteredRows   int

	TotalClicks      string
	TotalImpressions string
	AvgCTR           string
	AvgPosition      string
	WeightedCTR      string
	WeightedPosition string

	PreviewTable     template.HTML
	TopTable         template.HTML
	OpportunityTable template.HTML
	CriticalTable    template.HTML
	WarningTable     template.HTML
	WinTable         template.HTML
	TrendTable       template.HTML
	HasTrend         bool
}

const previewRows = 10

func buildReportView(d *gsc.Dashboard, id string) reportView {
	qs := url.Values{}
	qs.Set("id", id)
	qs.Set("min_impressions", strconv.FormatFloat(d.Config.MinImpressions, 'f', -1, 64))
	qs.Set("q", d.Config.Query)
	qs.Set("ctr_unit", string(d.Config.CTRUnit))
	qs.Set("top_n", strconv.Itoa(d.Config.TopN))

	preview := d.Table.Rows
	if len(preview) > previewRows {
		preview = preview[:previewRows]
	}

	view := reportView{
		ID:             id,
		Kind:           string(d.Table.Kind),
		CTRUnit:        string(d.Config.CTRUnit),
		Query:          d.Config.Query,
		MinImpressions: strconv.FormatFloat(d.Config.MinImpressions, 'f', -1, 64),
		QueryString:    template.URL(qs.Encode()),
		TopN:           d.Config.TopN,
		TotalRows:      len(d.Table.Rows),
		FilteredRows:   len(d.Filtered.Rows),

		TotalClicks:      formatCount(d.Summary.TotalClicks),
		TotalImpressions: formatCount(d.Summary.TotalImpressions),
		AvgCTR:           formatFloat(d.Summary.AvgCTR),
		AvgPosition:      formatFloat(d.Summary.AvgPosition),
		WeightedCTR:      formatFloat(d.Summary.WeightedCTR),
		WeightedPosition: formatFloat(d.Summary.WeightedPosition),

		PreviewTable:     rowsTableHTML(d.Table, preview),
		TopTable:         rowsTableHTML(d.Filtered, d.Top),
		OpportunityTable: rowsTableHTML(d.Filtered, d.Opportunities),
		CriticalTable:    rowsTableHTML(d.Filtered, d.Alerts.Critical),
		WarningTable:     rowsTableHTML(d.Filtered, d.Alerts.Warning),
		WinTable:         rowsTableHTML(d.Filtered, d.Alerts.Win),
		HasTrend:         len(d.Trend) > 0,
	}
	if view.HasTrend {
		view.TrendTable = trendTableHTML(d.Trend)
	}
	return view
}

// rowsTable fills a go-pretty writer with the alert-projection column
// set: subject, clicks, impressions, ctr, position.
func rowsTable(t *gsc.Table, rows []gsc.Row) table.Writer {
	w := table.NewWriter()
	w.AppendHeader(table.Row{string(t.Kind), "clicks", "impressions", "ctr %", "position"})
	for _, row := range rows {
		w.AppendRow(table.Row{
			row.Subject,
			formatCount(row.Clicks),
			formatCount(row.Impressions),
			formatFloat(row.CTR),
			formatFloat(row.Position),
		})
	}
	w.SetStyle(table.StyleLight)
	return w
}

func rowsTableHTML(t *gsc.Table, rows []gsc.Row) template.HTML {
	if len(rows) == 0 {
		return "<p><i>nothing here</i></p>"
	}
	return template.HTML(rowsTable(t, rows).RenderHTML())
}

func trendTable(points []gsc.TrendPoint) table.Writer {
	w := table.NewWriter()
	w.AppendHeader(table.Row{"date", "clicks", "impressions"})
	for _, p := range points {
		w.AppendRow(table.Row{
			p.Date.Format("2006-01-02"),
			formatCount(p.Clicks),
			formatCount(p.Impressions),
		})
	}
	w.SetStyle(table.StyleLight)
	return w
}

func trendTableHTML(points []gsc.TrendPoint) template.HTML {
	return template.HTML(trendTable(points).RenderHTML())
}

func formatCount(v float64) string {
	if gsc.Missing(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 0, 64)
}

func formatFloat(v float64) string {
	if gsc.Missing(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// buildChartsPage assembles the interactive charts served in the
// report iframe: the CTR-vs-position scatter and, when dates are
// present, the daily clicks/impressions lines.
func buildChartsPage(d *gsc.Dashboard) *components.Page {
	page := components.NewPage()
	page.PageTitle = "GSC Report Charts"

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "CTR vs Position"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Position", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "CTR (%)", Type: "value"}),
	)
	points := make([]opts.ScatterData, 0, len(d.Filtered.Rows))
	for _, row := range d.Filtered.Rows {
		if gsc.Missing(row.Position) || gsc.Missing(row.CTR) {
			continue
		}
		points = append(points, opts.ScatterData{
			Name:  row.Subject,
			Value: []interface{}{row.Position, row.CTR},
		})
	}
	scatter.AddSeries(string(d.Filtered.Kind), points)
	page.AddCharts(scatter)

	if len(d.Trend) > 0 {
		line := charts.NewLine()
		line.SetGlobalOptions(
			charts.WithTitleOpts(opts.Title{Title: "Clicks and Impressions by Day"}),
		)
		days := make([]string, 0, len(d.Trend))
		clicks := make([]opts.LineData, 0, len(d.Trend))
		impressions := make([]opts.LineData, 0, len(d.Trend))
		for _, p := range d.Trend {
			days = append(days, p.Date.Format("2006-01-02"))
			clicks = append(clicks, opts.LineData{Value: p.Clicks})
			impressions = append(impressions, opts.LineData{Value: p.Impressions})
		}
		line.SetXAxis(days).
			AddSeries("clicks", clicks).
			AddSeries("impressions", impressions)
		page.AddCharts(line)
	}

	return page
}

// describeFilters is used by the text summary header.
func describeFilters(cfg gsc.FilterConfig) string {
	s := fmt.Sprintf("min impressions %s", strconv.FormatFloat(cfg.MinImpressions, 'f', -1, 64))
	if cfg.Query != "" {
		s += fmt.Sprintf(", subject contains %q", cfg.Query)
	}
	return s
}
