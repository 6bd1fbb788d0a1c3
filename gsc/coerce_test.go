package gsc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMetric(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		miss bool
	}{
		{"42", 42, false},
		{"1,234", 1234, false},
		{"10,000", 10000, false},
		{"2.1%", 2.1, false},
		{" 3.5 ", 3.5, false},
		{"N/A", 0, true},
		{"", 0, true},
		{"-", 0, true},
	}
	for _, c := range cases {
		got := ParseMetric(c.in)
		if c.miss {
			assert.True(t, Missing(got), "input %q", c.in)
		} else {
			assert.Equal(t, c.want, got, "input %q", c.in)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("2024-03-05")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), d)

	_, ok = ParseDate("not a date")
	assert.False(t, ok)
}

func mustSchema(t *testing.T, headers []string) *Schema {
	t.Helper()
	schema, err := ResolveSchema(headers)
	require.NoError(t, err)
	return schema
}

func TestBuildTableDropsAllMissingRows(t *testing.T) {
	schema := mustSchema(t, []string{"Query", "Clicks", "Impressions", "CTR", "Position"})
	table := BuildTable(schema, [][]string{
		{"buy shoes", "120", "3000", "2.1", "7.4"},
		{"ghost row", "n/a", "", "-", "?"},
		{"partial", "", "1500", "0.3", "9.0"},
	}, CTRUnitAuto)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, "buy shoes", table.Rows[0].Subject)
	assert.Equal(t, "partial", table.Rows[1].Subject)
	assert.True(t, Missing(table.Rows[1].Clicks))
	assert.Equal(t, 1500.0, table.Rows[1].Impressions)
}

func TestNormalizeCTRFractionColumn(t *testing.T) {
	schema := mustSchema(t, []string{"Query", "Clicks", "Impressions", "CTR", "Position"})
	table := BuildTable(schema, [][]string{
		{"buy shoes", "120", "3000", "0.021", "7.4"},
		{"cheap shoes", "5", "1500", "0.003", "9.0"},
	}, CTRUnitAuto)

	assert.InDelta(t, 2.1, table.Rows[0].CTR, 1e-9)
	assert.InDelta(t, 0.3, table.Rows[1].CTR, 1e-9)
}

func TestNormalizeCTRPercentColumnUntouched(t *testing.T) {
	table := &Table{Rows: []Row{{CTR: 2.1}, {CTR: 0.3}}}
	NormalizeCTR(table, CTRUnitAuto)
	assert.Equal(t, 2.1, table.Rows[0].CTR)

	// Re-running must not rescale again.
	NormalizeCTR(table, CTRUnitAuto)
	assert.Equal(t, 2.1, table.Rows[0].CTR)
	assert.Equal(t, 0.3, table.Rows[1].CTR)
}

func TestNormalizeCTRExplicitUnit(t *testing.T) {
	// Percent override leaves a low-max column alone.
	table := &Table{Rows: []Row{{CTR: 0.4}, {CTR: 0.9}}}
	NormalizeCTR(table, CTRUnitPercent)
	assert.Equal(t, 0.4, table.Rows[0].CTR)

	// Fraction override always rescales, even past the heuristic.
	table = &Table{Rows: []Row{{CTR: 0.021}, {CTR: missingValue()}}}
	NormalizeCTR(table, CTRUnitFraction)
	assert.InDelta(t, 2.1, table.Rows[0].CTR, 1e-9)
	assert.True(t, Missing(table.Rows[1].CTR))
}

func TestNormalizeCTRAllMissing(t *testing.T) {
	table := &Table{Rows: []Row{{CTR: missingValue()}}}
	NormalizeCTR(table, CTRUnitAuto)
	assert.True(t, Missing(table.Rows[0].CTR))
}
