package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/gridcarbon/internal/contract"
	"github.com/huangsam/gridcarbon/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// errParquetUnsupported is returned for views that have no columnar layout.
func errParquetUnsupported(view string) error {
	return fmt.Errorf("parquet output is not supported for %s", view)
}

// PrintCurrentIntensity outputs the current national intensity.
func PrintCurrentIntensity(current schema.CurrentIntensity, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, current)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"from", "to", "forecast", "actual", "index"}, func(cw *csv.Writer) error {
				return cw.Write([]string{
					current.From.Format(contract.DateTimeFormat),
					current.To.Format(contract.DateTimeFormat),
					strconv.Itoa(current.Forecast),
					formatActual(current.Actual),
					string(current.Index),
				})
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errParquetUnsupported("current intensity")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCurrentText(w, current, cfg, duration)
		}, "Wrote text")
	}
}

// writeCurrentText prints the current half hour as a short block of lines.
func writeCurrentText(w io.Writer, current schema.CurrentIntensity, cfg *contract.Config, duration time.Duration) error {
	lines := []string{
		fmt.Sprintf("Period:   %s → %s", current.From.Format(contract.APITimeLayout), current.To.Format(contract.APITimeLayout)),
		fmt.Sprintf("Forecast: %d gCO2/kWh", current.Forecast),
		fmt.Sprintf("Actual:   %s", formatActual(current.Actual)),
		fmt.Sprintf("Level:    %s", levelLabel(current.Index, cfg)),
	}
	if _, err := fmt.Fprintln(w, strings.Join(lines, "\n")); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Fetched in %v\n", duration)
	return err
}

// formatActual renders a measured value, or "n/a" while it is unpublished.
func formatActual(actual *int) string {
	if actual == nil {
		return "n/a"
	}
	return strconv.Itoa(*actual)
}

// PrintGenerationMix outputs the current generation mix.
func PrintGenerationMix(result schema.GenerationResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"fuel", "perc", "renewable"}, func(cw *csv.Writer) error {
				for _, m := range result.Mix {
					rec := []string{
						m.Fuel,
						strconv.FormatFloat(m.Perc, 'f', -1, 64),
						strconv.FormatBool(schema.IsRenewable(m.Fuel)),
					}
					if err := cw.Write(rec); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errParquetUnsupported("generation mix")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMixTable(w, result, duration)
		}, "Wrote table")
	}
}

// writeMixTable prints one row per fuel with a proportional bar.
func writeMixTable(w io.Writer, result schema.GenerationResult, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Fuel", "Share", "Renewable", ""})

	barWidth := getMaxBarWidth()
	var data [][]string
	for _, m := range result.Mix {
		renewable := ""
		if schema.IsRenewable(m.Fuel) {
			renewable = "yes"
		}
		data = append(data, []string{m.Fuel, fmtPercent(m.Perc), renewable, shareBar(m.Perc, barWidth)})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Renewable share: %s (%s → %s)\n", fmtPercent(result.RenewableShare),
		result.From.Format(contract.APITimeLayout), result.To.Format(contract.APITimeLayout)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Fetched in %v\n", duration)
	return err
}

// shareBar draws a percentage as a run of block characters scaled to width.
func shareBar(perc float64, width int) string {
	n := int(perc/100*float64(width) + 0.5)
	n = max(0, min(n, width))
	return strings.Repeat("█", n)
}

// PrintRegionalResults outputs the regional forecast groups.
func PrintRegionalResults(groups []schema.RegionGroup, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, groups)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRegionalCSV(w, groups)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errParquetUnsupported("regional forecast")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRegionalTable(w, groups, cfg, duration)
		}, "Wrote table")
	}
}

func writeRegionalCSV(w io.Writer, groups []schema.RegionGroup) error {
	header := []string{"group", "region_id", "short_name", "dno_region", "forecast", "index"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, g := range groups {
			for _, r := range g.Regions {
				rec := []string{
					g.Name,
					strconv.Itoa(r.RegionID),
					r.ShortName,
					r.DNORegion,
					strconv.Itoa(r.Intensity.Forecast),
					string(r.Intensity.Index),
				}
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func writeRegionalTable(w io.Writer, groups []schema.RegionGroup, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Group", "Region", "Forecast", "Level"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	regions := 0
	for _, g := range groups {
		for _, r := range g.Regions {
			data = append(data, []string{g.Name, r.ShortName, strconv.Itoa(r.Intensity.Forecast), levelLabel(r.Intensity.Index, cfg)})
			regions++
		}
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d regions in %d groups. Fetched in %v\n", regions, len(groups), duration)
	return err
}
