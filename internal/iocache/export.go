package iocache

import (
	"errors"
	"fmt"

	"github.com/huangsam/gridcarbon/internal/contract"
	"github.com/huangsam/gridcarbon/internal/parquet"
)

// ExecuteHistoryExport exports the run history of store to Parquet files prefixed by outputFile.
func ExecuteHistoryExport(store contract.HistoryStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("history store is not initialized")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no run history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total runs: %d\n", status.TotalRuns)
	fmt.Printf("Total weekly records: %d\n", status.TableSizes[weeklySummariesTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}
	weeks, err := store.GetAllWeeklySummaries()
	if err != nil {
		return fmt.Errorf("failed to retrieve weekly summaries: %w", err)
	}

	parquetRuns := parquet.ConvertRunRecords(runs)
	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Printf("Exported %d runs to: %s\n", len(parquetRuns), runsFile)

	parquetWeeks := parquet.ConvertWeeklySummaryRecords(weeks)
	weeksFile := outputFile + ".weekly_summaries.parquet"
	if err := parquet.WriteWeeklySummariesParquet(parquetWeeks, weeksFile); err != nil {
		return fmt.Errorf("failed to write weekly summaries: %w", err)
	}
	fmt.Printf("Exported %d weekly records to: %s\n", len(parquetWeeks), weeksFile)

	fmt.Println("\nExport complete! The Parquet files can be used with DuckDB, Pandas (via pyarrow), or Apache Spark.")
	return nil
}
