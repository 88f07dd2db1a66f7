package outwriter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/gridcarbon/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatActual(t *testing.T) {
	v := 187
	assert.Equal(t, "187", formatActual(&v))
	assert.Equal(t, "n/a", formatActual(nil))
}

func TestShareBar(t *testing.T) {
	tests := []struct {
		name     string
		perc     float64
		width    int
		expected int
	}{
		{"empty", 0, 20, 0},
		{"half", 50, 20, 10},
		{"full", 100, 20, 20},
		{"rounds", 2.6, 20, 1},
		{"clamped", 140, 20, 20},
		{"negative", -5, 20, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, strings.Count(shareBar(tt.perc, tt.width), "█"))
		})
	}
}

func TestWriteCurrentText(t *testing.T) {
	actual := 170
	current := schema.CurrentIntensity{
		From:     time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		To:       time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC),
		Forecast: 180,
		Actual:   &actual,
		Index:    schema.ModerateLevel,
	}

	var buf bytes.Buffer
	require.NoError(t, writeCurrentText(&buf, current, testConfig(schema.TextOut, ""), time.Second))

	out := buf.String()
	assert.Contains(t, out, "2024-05-01T12:00Z → 2024-05-01T12:30Z")
	assert.Contains(t, out, "Forecast: 180 gCO2/kWh")
	assert.Contains(t, out, "Actual:   170")
	assert.Contains(t, out, "Level:    Moderate")
}

func TestPrintCurrentIntensity_CSV(t *testing.T) {
	current := schema.CurrentIntensity{
		From:     time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		To:       time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC),
		Forecast: 180,
		Index:    schema.ModerateLevel,
	}
	path := filepath.Join(t.TempDir(), "current.csv")
	require.NoError(t, NewOutWriter().WriteCurrent(current, testConfig(schema.CSVOut, path), time.Second))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"2024-05-01T12:00:00Z", "2024-05-01T12:30:00Z", "180", "n/a", "moderate"}, records[1])
}

func TestPrintLive_ParquetUnsupported(t *testing.T) {
	cfg := testConfig(schema.ParquetOut, filepath.Join(t.TempDir(), "out.parquet"))
	ow := NewOutWriter()

	assert.ErrorContains(t, ow.WriteCurrent(schema.CurrentIntensity{}, cfg, 0), "not supported")
	assert.ErrorContains(t, ow.WriteMix(schema.GenerationResult{}, cfg, 0), "not supported")
	assert.ErrorContains(t, ow.WriteRegional(nil, cfg, 0), "not supported")
	assert.ErrorContains(t, ow.WriteBands(cfg), "not supported")
}

func TestWriteMixTable(t *testing.T) {
	result := schema.GenerationResult{
		From: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC),
		Mix: []schema.GenerationMix{
			{Fuel: "wind", Perc: 40.2},
			{Fuel: "gas", Perc: 30},
			{Fuel: "solar", Perc: 9.8},
		},
		RenewableShare: 50,
	}

	var buf bytes.Buffer
	require.NoError(t, writeMixTable(&buf, result, time.Second))

	out := buf.String()
	assert.Contains(t, out, "wind")
	assert.Contains(t, out, "40.2%")
	assert.Contains(t, out, "Renewable share: 50.0%")
}

func TestWriteRegionalCSV(t *testing.T) {
	groups := []schema.RegionGroup{
		{Name: "Scotland", Regions: []schema.Region{
			{RegionID: 1, ShortName: "North Scotland", DNORegion: "Scottish Hydro Electric Power Distribution", Intensity: schema.CurrentIntensity{Forecast: 10, Index: schema.VeryLowLevel}},
		}},
		{Name: "Southern England", Regions: []schema.Region{
			{RegionID: 13, ShortName: "London", DNORegion: "UKPN London", Intensity: schema.CurrentIntensity{Forecast: 210, Index: schema.HighLevel}},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, writeRegionalCSV(&buf, groups))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Scotland", "1", "North Scotland", "Scottish Hydro Electric Power Distribution", "10", "very low"}, records[1])
	assert.Equal(t, []string{"Southern England", "13", "London", "UKPN London", "210", "high"}, records[2])

	var table bytes.Buffer
	require.NoError(t, writeRegionalTable(&table, groups, testConfig(schema.TextOut, ""), time.Second))
	assert.Contains(t, table.String(), "Showing 2 regions in 2 groups")
}
