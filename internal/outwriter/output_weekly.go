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

// PrintWeeklyResults outputs the weekly summaries, dispatching based on the output format configured.
func PrintWeeklyResults(result *schema.WeeklyResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeWeeklyJSON(w, result)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeWeeklyCSV(w, result.Weeks)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteWeeklySummaries(w, parquet.ConvertWeeks(result.Weeks))
		}, "Wrote Parquet"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeWeeklyTable(w, result, cfg, duration)
		}, "Wrote table")
	}
	return nil
}

// writeWeeklyTable generates and writes the human-readable table.
func writeWeeklyTable(w io.Writer, result *schema.WeeklyResult, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Week", "Dates", "Days", "Average", "Min", "Max", "Level"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, week := range result.Weeks {
		data = append(data, []string{
			strconv.Itoa(week.WeekNumber),
			schema.FormatDateRange(week.StartDate, week.EndDate),
			strconv.Itoa(week.Days),
			strconv.Itoa(week.Average),
			fmtIntensity(week.Min),
			fmtIntensity(week.Max),
			levelLabel(week.Index, cfg),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	s := result.Summary
	if _, err := fmt.Fprintf(w, "Year %d: %d weeks over %d days, average %d gCO2/kWh (min %s, max %s)\n",
		s.Year, s.Weeks, s.TotalDays, s.Average, fmtIntensity(s.Min), fmtIntensity(s.Max)); err != nil {
		return err
	}
	return writeFooter(w, cfg, "Aggregation", duration)
}

// writeWeeklyJSON writes the weekly result with labels and date ranges added.
func writeWeeklyJSON(w io.Writer, result *schema.WeeklyResult) error {
	type jsonWeeklyResult struct {
		Year    int                            `json:"year"`
		Weeks   []schema.EnrichedWeeklySummary `json:"weeks"`
		Summary schema.YearSummary             `json:"summary"`
	}
	return writeJSON(w, jsonWeeklyResult{
		Year:    result.Year,
		Weeks:   schema.EnrichWeeks(result.Weeks),
		Summary: result.Summary,
	})
}

// writeWeeklyCSV writes one row per week.
func writeWeeklyCSV(w io.Writer, weeks []schema.WeeklySummary) error {
	header := []string{"week", "start_date", "end_date", "days", "average", "min", "max", "index"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, week := range weeks {
			rec := []string{
				strconv.Itoa(week.WeekNumber),
				week.StartDate.Format(schema.DateLayout),
				week.EndDate.Format(schema.DateLayout),
				strconv.Itoa(week.Days),
				strconv.Itoa(week.Average),
				fmtIntensity(week.Min),
				fmtIntensity(week.Max),
				string(week.Index),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
