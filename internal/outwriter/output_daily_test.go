package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/gridcarbon/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDailyResult() *schema.DailyResult {
	return &schema.DailyResult{
		Year: 2023,
		Days: []schema.DailyRecord{
			{Date: day(2023, 1, 1), Average: 35.5, Min: 20, Max: 50},
			{Date: day(2023, 1, 2), Average: 250, Min: 200, Max: 310},
		},
	}
}

func TestWriteDailyTable(t *testing.T) {
	var buf bytes.Buffer
	err := writeDailyTable(&buf, sampleDailyResult(), testConfig(schema.TextOut, ""), time.Second)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "2023-01-01")
	assert.Contains(t, out, "35.5")
	assert.Contains(t, out, "Very Low")
	assert.Contains(t, out, "High")
	assert.Contains(t, out, "Showing 2 days for 2023")
}

func TestWriteDailyJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeDailyJSON(&buf, sampleDailyResult(), schema.DefaultBands))

	var decoded struct {
		Year int `json:"year"`
		Days []struct {
			Level   string  `json:"level"`
			Average float64 `json:"average"`
		} `json:"days"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 2023, decoded.Year)
	require.Len(t, decoded.Days, 2)
	assert.Equal(t, "very low", decoded.Days[0].Level)
	assert.Equal(t, "high", decoded.Days[1].Level)
	assert.Equal(t, 250.0, decoded.Days[1].Average)
}

func TestWriteDailyCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeDailyCSV(&buf, sampleDailyResult().Days, schema.DefaultBands))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"date", "average", "min", "max", "index"}, records[0])
	assert.Equal(t, []string{"2023-01-01", "35.5", "20", "50", "very low"}, records[1])
}

func TestPrintDailyResults_Parquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daily.parquet")
	require.NoError(t, NewOutWriter().WriteDaily(sampleDailyResult(), testConfig(schema.ParquetOut, path), time.Second))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
