package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/gridcarbon/internal/contract"
	"github.com/huangsam/gridcarbon/internal/parquet"
	"github.com/huangsam/gridcarbon/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintDailyResults outputs the daily series, dispatching based on the output format configured.
func PrintDailyResults(result *schema.DailyResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDailyJSON(w, result, cfg.Bands)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDailyCSV(w, result.Days, cfg.Bands)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteDaily(w, parquet.ConvertDays(result.Days, cfg.Bands))
		}, "Wrote Parquet"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDailyTable(w, result, cfg, duration)
		}, "Wrote table")
	}
	return nil
}

// writeDailyTable generates and writes the human-readable table.
func writeDailyTable(w io.Writer, result *schema.DailyResult, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Date", "Average", "Min", "Max", "Level"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, d := range schema.EnrichDays(result.Days, cfg.Bands) {
		data = append(data, []string{
			d.Date.Format(schema.DateLayout),
			fmtIntensity(d.Average),
			fmtIntensity(d.Min),
			fmtIntensity(d.Max),
			levelLabel(d.Level, cfg),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Showing %d days for %d\n", len(result.Days), result.Year); err != nil {
		return err
	}
	return writeFooter(w, cfg, "Fetch", duration)
}

// writeDailyJSON writes the daily series with a level added to each day.
func writeDailyJSON(w io.Writer, result *schema.DailyResult, bands schema.IntensityBands) error {
	type jsonDailyResult struct {
		Year int                          `json:"year"`
		Days []schema.EnrichedDailyRecord `json:"days"`
	}
	return writeJSON(w, jsonDailyResult{
		Year: result.Year,
		Days: schema.EnrichDays(result.Days, bands),
	})
}

// writeDailyCSV writes one row per day.
func writeDailyCSV(w io.Writer, days []schema.DailyRecord, bands schema.IntensityBands) error {
	header := []string{"date", "average", "min", "max", "index"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, d := range schema.EnrichDays(days, bands) {
			rec := []string{
				d.Date.Format(schema.DateLayout),
				strconv.FormatFloat(d.Average, 'f', -1, 64),
				strconv.FormatFloat(d.Min, 'f', -1, 64),
				strconv.FormatFloat(d.Max, 'f', -1, 64),
				string(d.Level),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
