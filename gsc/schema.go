// schema.go
package gsc

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/mozillazg/go-unidecode"
	"github.com/pivolan/go_utils"
)

// headerAliases maps normalized source headers to canonical field
// names. Search Console has changed its export wording over the years
// and localized UIs translate the headers, so the left side collects
// every spelling seen in real exports after NormalizeHeader.
var headerAliases = map[string]string{
	"top_queries":        "query",
	"queries":            "query",
	"search_query":       "query",
	"top_pages":          "page",
	"pages":              "page",
	"url":                "page",
	"click_through_rate": "ctr",
	"site_ctr":           "ctr",
	"url_ctr":            "ctr",
	"avg_position":       "position",
	"avg_pos":            "position",
	"average_position":   "position",
	"impressio":          "impressions", // truncated header seen in the wild
	"impression":         "impressions",
	"dates":              "date",
}

var metricFields = []string{"clicks", "impressions", "ctr", "position"}

// canonicalFields is every column name the pipeline knows about. The
// subject pair and date have their own presence rules; the metric
// fields are individually required.
var canonicalFields = []string{"query", "page", "clicks", "impressions", "ctr", "position", "date"}

var nonAlnum = regexp.MustCompile("[^a-zA-Z0-9]+")

// SchemaError is the one fatal, user-visible failure of an upload:
// required canonical columns are still absent after alias resolution.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// NormalizeHeader brings one raw header to canonical spelling: trim,
// transliterate to ASCII, lowercase, squeeze every non-alphanumeric
// run into a single underscore.
func NormalizeHeader(header string) string {
	header = strings.TrimSpace(header)
	header = unidecode.Unidecode(header)
	header = nonAlnum.ReplaceAllString(header, "_")
	header = strings.Trim(header, "_")
	return strings.ToLower(header)
}

// dedupeHeaders appends _1, _2, ... to repeated names so every column
// keeps an addressable name.
func dedupeHeaders(headers []string) []string {
	seen := map[string]bool{}
	result := make([]string, len(headers))
	for i, header := range headers {
		name := header
		for n := 1; seen[name]; n++ {
			name = fmt.Sprintf("%s_%d", header, n)
		}
		seen[name] = true
		result[i] = name
	}
	return result
}

// Schema maps canonical field names to column indexes of the source
// file.
type Schema struct {
	Columns map[string]int
	Kind    SubjectKind
	HasDate bool
}

// ResolveSchema normalizes the raw header row, applies the alias
// table and verifies that a subject column plus the four metric
// columns are present. The first column claiming a canonical name
// wins; a later claimant stays addressable under its pre-alias
// spelling, suffixed with a counter if even that is taken.
func ResolveSchema(rawHeaders []string) (*Schema, error) {
	normalized := make([]string, len(rawHeaders))
	for i, h := range rawHeaders {
		normalized[i] = NormalizeHeader(h)
	}
	normalized = dedupeHeaders(normalized)

	columns := map[string]int{}
	for i, name := range normalized {
		canonical := name
		if aliased, ok := headerAliases[name]; ok {
			canonical = aliased
		}
		if _, taken := columns[canonical]; !taken {
			columns[canonical] = i
			continue
		}
		fallback := name
		for n := 1; ; n++ {
			if _, taken := columns[fallback]; !taken {
				break
			}
			fallback = fmt.Sprintf("%s_%d", name, n)
		}
		columns[fallback] = i
	}

	var missing []string
	_, hasQuery := columns["query"]
	_, hasPage := columns["page"]
	if !hasQuery && !hasPage {
		missing = append(missing, "query/page")
	}
	for _, field := range canonicalFields {
		if !IsMetricField(field) {
			// Subject presence is checked as a pair above; date is
			// optional.
			continue
		}
		if _, ok := columns[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &SchemaError{Missing: missing}
	}

	schema := &Schema{Columns: columns, Kind: SubjectQuery}
	if !hasQuery {
		schema.Kind = SubjectPage
	}
	_, schema.HasDate = columns["date"]
	return schema, nil
}

// SubjectColumn returns the index of the subject column.
func (s *Schema) SubjectColumn() int {
	return s.Columns[string(s.Kind)]
}

// IsMetricField reports whether a canonical name is one of the four
// numeric metric columns.
func IsMetricField(name string) bool {
	return go_utils.InArray(name, metricFields)
}
