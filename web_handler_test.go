package main

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "gsc-uploads")
	if err != nil {
		panic(err)
	}
	os.Setenv("UPLOAD_DIR", dir)
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

const queriesCSV = `Top queries,Clicks,Impressions,CTR,Position
buy shoes,120,3000,2.1%,7.4
cheap shoes,5,1500,0.3%,9.0
`

func multipartUpload(t *testing.T, filename string, data []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// uploadFile runs an upload through the mux and returns the report id
// from the redirect.
func uploadFile(t *testing.T, filename string, data []byte) string {
	t.Helper()
	rec := httptest.NewRecorder()
	routes().ServeHTTP(rec, multipartUpload(t, filename, data))
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())

	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	id := loc.Query().Get("id")
	require.NotEmpty(t, id)
	return id
}

func TestUploadAndReport(t *testing.T) {
	id := uploadFile(t, "queries.csv", []byte(queriesCSV))

	rec := httptest.NewRecorder()
	routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/report?id="+id+"&min_impressions=100", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	page := rec.Body.String()
	assert.Contains(t, page, "125")       // total clicks
	assert.Contains(t, page, "4500")      // total impressions
	assert.Contains(t, page, "buy shoes") // top table
	assert.Contains(t, page, "Opportunity Keywords")
}

func TestUploadSchemaFailure(t *testing.T) {
	csv := "Keyword,Clicks,Impressions,CTR\na,1,2,3\n"
	rec := httptest.NewRecorder()
	routes().ServeHTTP(rec, multipartUpload(t, "bad.csv", []byte(csv)))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "position")
	assert.Contains(t, rec.Body.String(), "query/page")
}

func TestUploadZippedExport(t *testing.T) {
	zipped := buildZip(t, map[string][]byte{
		"metadata.json": []byte(`{"export":"test"}`),
		"Queries.csv":   []byte(queriesCSV),
	})
	id := uploadFile(t, "export.zip", zipped)

	rec := httptest.NewRecorder()
	routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/report?id="+id, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "buy shoes")
}

func TestOpportunitiesDownload(t *testing.T) {
	id := uploadFile(t, "queries.csv", []byte(queriesCSV))

	rec := httptest.NewRecorder()
	routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/report/opportunities.csv?id="+id, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "query,clicks,impressions,ctr,position", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "buy shoes,"))
}

func TestSummaryText(t *testing.T) {
	id := uploadFile(t, "queries.csv", []byte(queriesCSV))

	rec := httptest.NewRecorder()
	routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/report/summary.txt?id="+id, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Total Clicks:      125")
	assert.Contains(t, body, "Opportunity keywords")
}

func TestScatterPNG(t *testing.T) {
	id := uploadFile(t, "queries.csv", []byte(queriesCSV))

	rec := httptest.NewRecorder()
	routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/report/scatter.png?id="+id, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte{0x89, 'P', 'N', 'G'}))
}

func TestReportFilterInteraction(t *testing.T) {
	id := uploadFile(t, "queries.csv", []byte(queriesCSV))

	// Same id, different filters: recomputed per request.
	rec := httptest.NewRecorder()
	routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/report?id="+id+"&min_impressions=2000", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "1 rows after filters")

	rec = httptest.NewRecorder()
	routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/report?id="+id+"&q=cheap&min_impressions=0", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "1 rows after filters")
}

func TestReportCustomTopNPropagates(t *testing.T) {
	id := uploadFile(t, "queries.csv", []byte(queriesCSV))

	rec := httptest.NewRecorder()
	routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/report?id="+id+"&top_n=3", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	page := rec.Body.String()
	assert.Contains(t, page, "Top 3 by Clicks")
	// Download and summary links must carry the custom limit so those
	// views do not fall back to the default.
	assert.Contains(t, page, "top_n=3")

	rec = httptest.NewRecorder()
	routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/report/summary.txt?id="+id+"&top_n=3", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Top 3 by clicks")
}

func TestReportUnknownID(t *testing.T) {
	rec := httptest.NewRecorder()
	routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/report?id=not-a-uuid", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUploadRejectsGet(t *testing.T) {
	rec := httptest.NewRecorder()
	routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/upload", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestIndexServesForm(t *testing.T) {
	rec := httptest.NewRecorder()
	routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "multipart/form-data")
}
