package main

import "html/template"

// Page templates are compiled in so the binary is self-contained.

var uploadTmpl = template.Must(template.New("upload").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>GSC Analyzer</title>
<style>
body { font-family: sans-serif; max-width: 720px; margin: 40px auto; color: #222; }
form { border: 1px dashed #999; padding: 24px; border-radius: 6px; }
.hint { color: #666; font-size: 0.9em; }
</style>
</head>
<body>
<h1>Google Search Console Data Analyzer</h1>
<p>Upload a CSV export from Performance &gt; Queries or Performance &gt; Pages.
Zip, gzip and lz4 archives are unpacked automatically.</p>
<form action="/upload" method="post" enctype="multipart/form-data">
	<input type="file" name="file" required>
	<button type="submit">Analyze</button>
</form>
<p class="hint">Nothing is stored beyond the analysis session; uploads are deleted after {{.TTL}}.</p>
{{if .Error}}<p style="color:#b00">{{.Error}}</p>{{end}}
</body>
</html>
`))

var reportTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>GSC Report</title>
<style>
body { font-family: sans-serif; max-width: 1100px; margin: 30px auto; color: #222; }
.kpis { display: flex; gap: 16px; }
.kpi { border: 1px solid #ddd; border-radius: 6px; padding: 12px 20px; }
.kpi b { display: block; font-size: 1.4em; }
.kpi span { color: #666; font-size: 0.85em; }
table { border-collapse: collapse; margin: 8px 0 24px; }
th, td { border: 1px solid #ddd; padding: 4px 10px; text-align: right; }
th:first-child, td:first-child { text-align: left; }
iframe { border: none; width: 100%; height: 520px; }
form.filters input { margin-right: 12px; }
</style>
</head>
<body>
<h1>Search performance report ({{.Kind}} export, {{.TotalRows}} rows)</h1>

<form class="filters" action="/report" method="get">
	<input type="hidden" name="id" value="{{.ID}}">
	<input type="hidden" name="top_n" value="{{.TopN}}">
	Min impressions: <input type="number" name="min_impressions" min="0" value="{{.MinImpressions}}">
	Filter {{.Kind}}: <input type="text" name="q" value="{{.Query}}">
	CTR unit:
	<select name="ctr_unit">
		<option value="auto" {{if eq .CTRUnit "auto"}}selected{{end}}>auto</option>
		<option value="percent" {{if eq .CTRUnit "percent"}}selected{{end}}>percent</option>
		<option value="fraction" {{if eq .CTRUnit "fraction"}}selected{{end}}>fraction</option>
	</select>
	<button type="submit">Apply</button>
</form>

<h2>Overall Performance ({{.FilteredRows}} rows after filters)</h2>
<div class="kpis">
	<div class="kpi"><b>{{.TotalClicks}}</b><span>Total Clicks</span></div>
	<div class="kpi"><b>{{.TotalImpressions}}</b><span>Total Impressions</span></div>
	<div class="kpi"><b>{{.AvgCTR}}%</b><span>Avg. CTR ({{.WeightedCTR}}% weighted)</span></div>
	<div class="kpi"><b>{{.AvgPosition}}</b><span>Avg. Position ({{.WeightedPosition}} weighted)</span></div>
</div>

<h2>Raw data preview</h2>
{{.PreviewTable}}

<h2>Top {{.TopN}} by Clicks</h2>
{{.TopTable}}

<h2>CTR vs Position</h2>
<iframe src="/report/charts?{{.QueryString}}"></iframe>
<p><a href="/report/scatter.png?{{.QueryString}}">scatter as PNG</a>{{if .HasTrend}} &middot; <a href="/report/trend.png?{{.QueryString}}">trend as PNG</a>{{end}}
&middot; <a href="/report/summary.txt?{{.QueryString}}">plain-text summary</a></p>

<h2>Opportunity Keywords (Position 5&ndash;15, CTR &lt; 5%)</h2>
{{.OpportunityTable}}
<p><a href="/report/opportunities.csv?{{.QueryString}}">Download opportunities as CSV</a></p>

<h2>Alerts</h2>
<h3>Critical &mdash; CTR &lt; 1% with &gt; 1000 impressions</h3>
{{.CriticalTable}}
<h3>Warning &mdash; &gt; 1000 impressions with &lt; 10 clicks</h3>
{{.WarningTable}}
<h3>Wins &mdash; CTR &gt; 10% beyond position 10</h3>
{{.WinTable}}

{{if .HasTrend}}
<h2>Daily trend</h2>
{{.TrendTable}}
{{end}}
</body>
</html>
`))

var errorTmpl = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Upload failed</title></head>
<body style="font-family: sans-serif; max-width: 720px; margin: 40px auto;">
<h1>Cannot analyze this file</h1>
<p>The export is missing required columns: <b>{{.Missing}}</b>.</p>
<p>Upload a Performance &gt; Queries or Performance &gt; Pages CSV export
with clicks, impressions, CTR and position columns.</p>
<p><a href="/">Back to upload</a></p>
</body>
</html>
`))
