// Package parquet provides data structures and functions for exporting carbon
// intensity results and run history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/gridcarbon/schema"
	"github.com/parquet-go/parquet-go"
)

// Run represents a single weekly aggregation run with metadata.
// This struct maps to the gridcarbon_runs database table.
type Run struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// Year is the calendar year that was aggregated
	Year int32 `parquet:"year,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalDays is the number of daily records fetched
	TotalDays int32 `parquet:"total_days,snappy"`

	// TotalWeeks is the number of weekly summaries produced
	TotalWeeks int32 `parquet:"total_weeks,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// WeeklySummary represents one aggregated week, optionally tied to a run.
// This struct maps to the gridcarbon_weekly_summaries database table.
type WeeklySummary struct {
	// RunID references the parent run, or zero for direct output
	RunID int64 `parquet:"run_id,snappy"`

	// WeekNumber is the 1-based position of the week in the year
	WeekNumber int32 `parquet:"week_number,snappy"`

	// StartDate is the date of the first day in the week
	StartDate time.Time `parquet:"start_date,snappy"`

	// EndDate is the date of the last day in the week
	EndDate time.Time `parquet:"end_date,snappy"`

	// Average is the rounded mean of the daily averages in gCO2/kWh
	Average int32 `parquet:"average,snappy"`

	// Min is the lowest daily minimum in gCO2/kWh
	Min float64 `parquet:"min,snappy"`

	// Max is the highest daily maximum in gCO2/kWh
	Max float64 `parquet:"max,snappy"`

	// Index is the intensity band of the weekly average
	Index string `parquet:"intensity_index,snappy,dict"`

	// Days is the number of daily records in the week
	Days int32 `parquet:"days,snappy"`
}

// Daily represents one day of national intensity statistics.
type Daily struct {
	Date    time.Time `parquet:"date,snappy"`
	Average float64   `parquet:"average,snappy"`
	Min     float64   `parquet:"min,snappy"`
	Max     float64   `parquet:"max,snappy"`
	Index   string    `parquet:"intensity_index,snappy,dict"`
}

// WriteRunsParquet writes a slice of Run structs to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteWeeklySummariesParquet writes a slice of WeeklySummary structs to a Parquet file.
func WriteWeeklySummariesParquet(data []WeeklySummary, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteWeeklySummaries writes weekly summaries as Parquet to w.
func WriteWeeklySummaries(w io.Writer, data []WeeklySummary) error {
	return write(w, data)
}

// WriteDaily writes daily records as Parquet to w.
func WriteDaily(w io.Writer, data []Daily) error {
	return write(w, data)
}

// writeFile creates outputPath and writes rows to it.
func writeFile[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := write(file, data); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// write encodes rows with a schema inferred from the struct tags of T.
func write[T any](w io.Writer, data []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertRunRecords converts schema.RunRecord to Run for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, record := range records {
		result[i] = Run{
			RunID:         record.RunID,
			Year:          record.Year,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			TotalDays:     record.TotalDays,
			TotalWeeks:    record.TotalWeeks,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertWeeklySummaryRecords converts schema.WeeklySummaryRecord to WeeklySummary for Parquet export.
func ConvertWeeklySummaryRecords(records []schema.WeeklySummaryRecord) []WeeklySummary {
	result := make([]WeeklySummary, len(records))
	for i, record := range records {
		result[i] = WeeklySummary{
			RunID:      record.RunID,
			WeekNumber: record.WeekNumber,
			StartDate:  record.StartDate,
			EndDate:    record.EndDate,
			Average:    record.Average,
			Min:        record.Min,
			Max:        record.Max,
			Index:      record.Index,
			Days:       record.Days,
		}
	}
	return result
}

// ConvertWeeks converts aggregated weeks to WeeklySummary rows without a run.
func ConvertWeeks(weeks []schema.WeeklySummary) []WeeklySummary {
	result := make([]WeeklySummary, len(weeks))
	for i, w := range weeks {
		result[i] = WeeklySummary{
			WeekNumber: int32(w.WeekNumber),
			StartDate:  w.StartDate,
			EndDate:    w.EndDate,
			Average:    int32(w.Average),
			Min:        w.Min,
			Max:        w.Max,
			Index:      string(w.Index),
			Days:       int32(w.Days),
		}
	}
	return result
}

// ConvertDays converts daily records to Daily rows, classifying each average.
func ConvertDays(days []schema.DailyRecord, bands schema.IntensityBands) []Daily {
	result := make([]Daily, len(days))
	for i, d := range days {
		result[i] = Daily{
			Date:    d.Date,
			Average: d.Average,
			Min:     d.Min,
			Max:     d.Max,
			Index:   string(bands.Classify(d.Average)),
		}
	}
	return result
}
