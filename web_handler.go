package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	uuid "github.com/satori/go.uuid"

	"github.com/praveshpatels/google-search-console/config"
	"github.com/praveshpatels/google-search-console/gsc"
	"github.com/praveshpatels/google-search-console/plot"
)

const maxUploadBytes = 256 << 20

func handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	renderUploadForm(w, "")
}

func renderUploadForm(w http.ResponseWriter, errMsg string) {
	data := struct {
		TTL   string
		Error string
	}{config.GetConfig().FileTTL.String(), errMsg}
	if err := uploadTmpl.Execute(w, data); err != nil {
		log.Printf("Error rendering upload form: %v", err)
	}
}

// handleUpload receives the export, unpacks archives, runs the schema
// check once and stores the plain CSV under a fresh uuid. All later
// report requests recompute from that file.
func handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Error uploading file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Error reading file", http.StatusBadRequest)
		return
	}
	data, err = unpackUpload(header.Filename, data)
	if err != nil {
		log.Printf("Error unpacking %s: %v", header.Filename, err)
		renderUploadFormStatus(w, http.StatusBadRequest, "Could not unpack the archive: "+err.Error())
		return
	}

	// Fail the whole upload right here when required columns are
	// missing; no report is stored or rendered.
	if _, err := gsc.ReadTable(data, gsc.CTRUnitAuto); err != nil {
		var schemaErr *gsc.SchemaError
		if errors.As(err, &schemaErr) {
			renderSchemaError(w, schemaErr)
			return
		}
		log.Printf("Error parsing upload %s: %v", header.Filename, err)
		renderUploadFormStatus(w, http.StatusBadRequest, "Could not parse the CSV: "+err.Error())
		return
	}

	id := uuid.NewV4().String()
	cfg := config.GetConfig()
	if err := os.MkdirAll(cfg.UploadDir, 0755); err != nil {
		http.Error(w, "Error saving file", http.StatusInternalServerError)
		return
	}
	if err := os.WriteFile(uploadPath(id), data, 0644); err != nil {
		log.Printf("Error saving upload: %v", err)
		http.Error(w, "Error saving file", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/report?id="+id, http.StatusSeeOther)
}

func renderUploadFormStatus(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	renderUploadForm(w, msg)
}

func renderSchemaError(w http.ResponseWriter, schemaErr *gsc.SchemaError) {
	w.WriteHeader(http.StatusUnprocessableEntity)
	data := struct{ Missing string }{strings.Join(schemaErr.Missing, ", ")}
	if err := errorTmpl.Execute(w, data); err != nil {
		log.Printf("Error rendering schema error page: %v", err)
	}
}

func uploadPath(id string) string {
	return filepath.Join(config.GetConfig().UploadDir, id+".csv")
}

// loadDashboard recomputes the full dashboard from the stored raw
// file and the request's filter parameters. Nothing derived is cached
// anywhere.
func loadDashboard(r *http.Request) (*gsc.Dashboard, string, error) {
	rawID := r.URL.Query().Get("id")
	id, err := uuid.FromString(rawID)
	if err != nil {
		return nil, "", fmt.Errorf("invalid report id %q", rawID)
	}

	data, err := os.ReadFile(uploadPath(id.String()))
	if err != nil {
		return nil, "", fmt.Errorf("report expired or unknown")
	}

	d, err := gsc.ComputeDashboard(data, parseFilterConfig(r))
	if err != nil {
		return nil, "", err
	}
	return d, id.String(), nil
}

func parseFilterConfig(r *http.Request) gsc.FilterConfig {
	cfg := gsc.DefaultFilterConfig()
	q := r.URL.Query()
	if v := q.Get("min_impressions"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil && n >= 0 {
			cfg.MinImpressions = n
		}
	}
	cfg.Query = q.Get("q")
	switch gsc.CTRUnit(q.Get("ctr_unit")) {
	case gsc.CTRUnitPercent:
		cfg.CTRUnit = gsc.CTRUnitPercent
	case gsc.CTRUnitFraction:
		cfg.CTRUnit = gsc.CTRUnitFraction
	}
	if v := q.Get("top_n"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TopN = n
		}
	}
	return cfg
}

func handleReport(w http.ResponseWriter, r *http.Request) {
	d, id, err := loadDashboard(r)
	if err != nil {
		reportError(w, err)
		return
	}
	if err := reportTmpl.Execute(w, buildReportView(d, id)); err != nil {
		log.Printf("Error rendering report: %v", err)
	}
}

func handleCharts(w http.ResponseWriter, r *http.Request) {
	d, _, err := loadDashboard(r)
	if err != nil {
		reportError(w, err)
		return
	}
	if err := buildChartsPage(d).Render(w); err != nil {
		log.Printf("Error rendering charts: %v", err)
	}
}

func handleOpportunitiesCSV(w http.ResponseWriter, r *http.Request) {
	d, _, err := loadDashboard(r)
	if err != nil {
		reportError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="opportunity_keywords.csv"`)
	w.Write(gsc.WriteCSV(d.Filtered.Kind, d.Filtered.HasDate, d.Opportunities))
}

func handleScatterPNG(w http.ResponseWriter, r *http.Request) {
	d, _, err := loadDashboard(r)
	if err != nil {
		reportError(w, err)
		return
	}
	var positions, ctrs []float64
	for _, row := range d.Filtered.Rows {
		if gsc.Missing(row.Position) || gsc.Missing(row.CTR) {
			continue
		}
		positions = append(positions, row.Position)
		ctrs = append(ctrs, row.CTR)
	}
	png, err := plot.DrawCTRPositionScatter(positions, ctrs)
	if err != nil {
		http.Error(w, "No plottable rows: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func handleTrendPNG(w http.ResponseWriter, r *http.Request) {
	d, _, err := loadDashboard(r)
	if err != nil {
		reportError(w, err)
		return
	}
	days := make([]time.Time, 0, len(d.Trend))
	clicks := make([]float64, 0, len(d.Trend))
	for _, p := range d.Trend {
		days = append(days, p.Date)
		clicks = append(clicks, p.Clicks)
	}
	png, err := plot.DrawClicksTrend(days, clicks)
	if err != nil {
		http.Error(w, "No dated rows: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func handleSummaryText(w http.ResponseWriter, r *http.Request) {
	d, _, err := loadDashboard(r)
	if err != nil {
		reportError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, GenerateSummaryText(d))
}

func reportError(w http.ResponseWriter, err error) {
	var schemaErr *gsc.SchemaError
	if errors.As(err, &schemaErr) {
		renderSchemaError(w, schemaErr)
		return
	}
	http.Error(w, err.Error(), http.StatusNotFound)
}
