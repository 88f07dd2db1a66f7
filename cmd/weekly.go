package cmd

import (
	"github.com/huangsam/gridcarbon/core"
	"github.com/huangsam/gridcarbon/internal/contract"
	"github.com/spf13/cobra"
)

// weeklyCmd aggregates a year of daily intensity into weeks.
var weeklyCmd = &cobra.Command{
	Use:   "weekly [year]",
	Short: "Summarize a year of carbon intensity into 7-day weeks.",
	Long: `Fetch every day of a calendar year and fold the days into consecutive weeks.

The year is requested as twelve monthly windows issued concurrently. If any
month fails the whole run fails and no partial weeks are printed.

Each week reports:
- The mean of its daily averages, rounded half-up to whole gCO2/kWh
- The lowest daily minimum and the highest daily maximum
- An intensity level classified from the weekly mean

The final week of a year holds the leftover days and is usually short.

Examples:
  # Summarize the last complete year
  gridcarbon weekly

  # Summarize 2023 and save it for analysis in pandas/DuckDB
  gridcarbon weekly 2023 --output parquet --output-file 2023.parquet

  # Record every run in a local history database
  gridcarbon weekly 2023 --history-backend sqlite`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteWeekly(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run weekly aggregation", err)
		}
	},
}

// dailyCmd lists a year of daily intensity.
var dailyCmd = &cobra.Command{
	Use:   "daily [year]",
	Short: "List every day of a year in date order.",
	Long: `Fetch every day of a calendar year and print the daily statistics sorted by date.

Examples:
  # List the days of 2024
  gridcarbon daily 2024

  # Export the days to CSV
  gridcarbon daily 2024 --output csv --output-file 2024.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDaily(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot list daily intensity", err)
		}
	},
}
