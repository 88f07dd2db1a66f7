package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/huangsam/gridcarbon/internal/contract"
	"github.com/huangsam/gridcarbon/schema"

	"github.com/olekukonko/tablewriter"
)

// bandRow is one level and the intensity range it covers.
type bandRow struct {
	Level string `json:"level"`
	Label string `json:"label"`
	Range string `json:"range"`
}

func buildBandRows(bands schema.IntensityBands) []bandRow {
	ranges := bands.Ranges()
	rows := make([]bandRow, 0, len(schema.AllIntensityLevels))
	for _, level := range schema.AllIntensityLevels {
		rows = append(rows, bandRow{
			Level: string(level),
			Label: contract.GetPlainLabel(level),
			Range: ranges[level],
		})
	}
	return rows
}

// PrintBands outputs the intensity bands in effect.
func PrintBands(cfg *contract.Config) error {
	rows := buildBandRows(cfg.Bands)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rows)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"level", "label", "range"}, func(cw *csv.Writer) error {
				for _, r := range rows {
					if err := cw.Write([]string{r.Level, r.Label, r.Range}); err != nil {
						return fmt.Errorf("failed to write CSV record: %w", err)
					}
				}
				return nil
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errParquetUnsupported("bands")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBandsTable(w, rows, cfg)
		}, "Wrote table")
	}
}

func writeBandsTable(w io.Writer, rows []bandRow, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Level", "gCO2/kWh"})

	var data [][]string
	for _, r := range rows {
		data = append(data, []string{levelLabel(schema.IntensityLevel(r.Level), cfg), r.Range})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
