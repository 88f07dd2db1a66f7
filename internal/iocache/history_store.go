package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/gridcarbon/internal/contract"
	"github.com/huangsam/gridcarbon/schema"
)

// Table names for run history.
const (
	runsTable            = "gridcarbon_runs"
	weeklySummariesTable = "gridcarbon_weekly_summaries"
)

// historyTables lists the history tables in creation order.
var historyTables = []string{runsTable, weeklySummariesTable}

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore creates a new HistoryStore with the specified backend.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled tracking
		return &HistoryStoreImpl{backend: backend}, nil
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return nil, fmt.Errorf("unsupported history backend: %s", backend)
	}

	db, _, err := openDB(backend, connStr, GetHistoryDBFilePath())
	if err != nil {
		return nil, err
	}

	if err := createHistoryTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return &HistoryStoreImpl{db: db, backend: backend}, nil
}

// createHistoryTables creates the run history tables.
func createHistoryTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{runsTable, getCreateRunsQuery(backend)},
		{weeklySummariesTable, getCreateWeeklySummariesQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}
	return nil
}

// getCreateRunsQuery returns the CREATE TABLE query for gridcarbon_runs.
func getCreateRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(runsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				year INT NOT NULL,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms INT,
				total_days INT NOT NULL DEFAULT 0,
				total_weeks INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				year INT NOT NULL,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms INT,
				total_days INT NOT NULL DEFAULT 0,
				total_weeks INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				year INTEGER NOT NULL,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				total_days INTEGER NOT NULL DEFAULT 0,
				total_weeks INTEGER NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreateWeeklySummariesQuery returns the CREATE TABLE query for gridcarbon_weekly_summaries.
func getCreateWeeklySummariesQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(weeklySummariesTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				week_number INT NOT NULL,
				start_date DATETIME(6) NOT NULL,
				end_date DATETIME(6) NOT NULL,
				average_intensity INT NOT NULL,
				min_intensity DOUBLE NOT NULL,
				max_intensity DOUBLE NOT NULL,
				intensity_index VARCHAR(20) NOT NULL,
				days INT NOT NULL,
				PRIMARY KEY (run_id, week_number)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				week_number INT NOT NULL,
				start_date TIMESTAMPTZ NOT NULL,
				end_date TIMESTAMPTZ NOT NULL,
				average_intensity INT NOT NULL,
				min_intensity DOUBLE PRECISION NOT NULL,
				max_intensity DOUBLE PRECISION NOT NULL,
				intensity_index TEXT NOT NULL,
				days INT NOT NULL,
				PRIMARY KEY (run_id, week_number)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER NOT NULL,
				week_number INTEGER NOT NULL,
				start_date TEXT NOT NULL,
				end_date TEXT NOT NULL,
				average_intensity INTEGER NOT NULL,
				min_intensity REAL NOT NULL,
				max_intensity REAL NOT NULL,
				intensity_index TEXT NOT NULL,
				days INTEGER NOT NULL,
				PRIMARY KEY (run_id, week_number)
			);
		`, quotedTableName)
	}
}

// BeginRun creates a new run and returns its unique ID.
func (hs *HistoryStoreImpl) BeginRun(year int, startTime time.Time, configParams map[string]any) (int64, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(runsTable, hs.backend)
	ph := strings.Join(placeholders(hs.backend, 3), ", ")

	var runID int64
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (year, start_time, config_params) VALUES (%s) RETURNING run_id`, quotedTableName, ph)
		err = hs.db.QueryRow(query, year, formatTime(startTime, hs.backend), string(configJSON)).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (year, start_time, config_params) VALUES (%s)`, quotedTableName, ph)
		var result sql.Result
		result, err = hs.db.Exec(query, year, formatTime(startTime, hs.backend), string(configJSON))
		if err == nil {
			runID, err = result.LastInsertId()
		}
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	return runID, nil
}

// EndRun updates the run with completion data.
func (hs *HistoryStoreImpl) EndRun(runID int64, endTime time.Time, totalDays, totalWeeks int) error {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(runsTable, hs.backend)
	selectQuery := fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = %s`, quotedTableName, placeholders(hs.backend, 1)[0])
	startTime, err := scanTime(hs.db.QueryRow(selectQuery, runID), hs.backend)
	if err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}

	durationMs := endTime.Sub(startTime).Milliseconds()

	ph := placeholders(hs.backend, 5)
	updateQuery := fmt.Sprintf(`UPDATE %s SET end_time = %s, run_duration_ms = %s, total_days = %s, total_weeks = %s WHERE run_id = %s`,
		quotedTableName, ph[0], ph[1], ph[2], ph[3], ph[4])
	if _, err := hs.db.Exec(updateQuery, formatTime(endTime, hs.backend), durationMs, totalDays, totalWeeks, runID); err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	return nil
}

// RecordWeeks stores the weekly summaries of a run in a single transaction.
func (hs *HistoryStoreImpl) RecordWeeks(runID int64, weeks []schema.WeeklySummary) error {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil || len(weeks) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (run_id, week_number, start_date, end_date, average_intensity,
		                min_intensity, max_intensity, intensity_index, days)
		VALUES (%s)
	`, quoteTableName(weeklySummariesTable, hs.backend), strings.Join(placeholders(hs.backend, 9), ", "))

	tx, err := hs.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare weekly insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, w := range weeks {
		if _, err := stmt.Exec(
			runID, w.WeekNumber, formatTime(w.StartDate, hs.backend), formatTime(w.EndDate, hs.backend),
			w.Average, w.Min, w.Max, string(w.Index), w.Days,
		); err != nil {
			return fmt.Errorf("failed to insert week %d: %w", w.WeekNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit weekly summaries: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}

	if hs.backend == schema.NoneBackend || hs.db == nil {
		return status, nil
	}

	quotedRuns := quoteTableName(runsTable, hs.backend)

	if err := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedRuns)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		if err := hs.db.QueryRow(fmt.Sprintf("SELECT MAX(run_id) FROM %s", quotedRuns)).Scan(&status.LastRunID); err != nil {
			return status, fmt.Errorf("failed to get last run id: %w", err)
		}

		lastRunQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id DESC LIMIT 1", quotedRuns)
		lastRunTime, err := scanTime(hs.db.QueryRow(lastRunQuery), hs.backend)
		if err != nil {
			return status, fmt.Errorf("failed to get last run time: %w", err)
		}
		status.LastRunTime = lastRunTime

		oldestRunQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", quotedRuns)
		oldestRunTime, err := scanTime(hs.db.QueryRow(oldestRunQuery), hs.backend)
		if err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		status.OldestRunTime = oldestRunTime

		weeksQuery := fmt.Sprintf("SELECT COALESCE(SUM(total_weeks), 0) FROM %s", quotedRuns)
		if err := hs.db.QueryRow(weeksQuery).Scan(&status.TotalWeeks); err != nil {
			return status, fmt.Errorf("failed to get total weeks: %w", err)
		}
	}

	for _, table := range historyTables {
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, hs.backend))
		var count int64
		if err := hs.db.QueryRow(countQuery).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// GetAllRuns retrieves all runs from the store.
func (hs *HistoryStoreImpl) GetAllRuns() ([]schema.RunRecord, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, year, start_time, end_time, run_duration_ms, total_days, total_weeks, config_params
		FROM %s ORDER BY run_id`, quoteTableName(runsTable, hs.backend))

	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord
	for rows.Next() {
		var record schema.RunRecord

		switch hs.backend {
		case schema.SQLiteBackend:
			var startTimeStr string
			var endTimeStr sql.NullString
			if err := rows.Scan(&record.RunID, &record.Year, &startTimeStr, &endTimeStr, &record.RunDurationMs,
				&record.TotalDays, &record.TotalWeeks, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan run: %w", err)
			}
			startTime, err := time.Parse(time.RFC3339Nano, startTimeStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse start_time: %w", err)
			}
			record.StartTime = startTime
			if record.EndTime, err = parseNullableTime(endTimeStr); err != nil {
				return nil, fmt.Errorf("failed to parse end_time: %w", err)
			}
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.RunID, &record.Year, &record.StartTime, &record.EndTime, &record.RunDurationMs,
				&record.TotalDays, &record.TotalWeeks, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan run: %w", err)
			}
		}

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return results, nil
}

// GetAllWeeklySummaries retrieves all weekly summaries from the store.
func (hs *HistoryStoreImpl) GetAllWeeklySummaries() ([]schema.WeeklySummaryRecord, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, week_number, start_date, end_date, average_intensity,
		min_intensity, max_intensity, intensity_index, days
		FROM %s ORDER BY run_id, week_number`, quoteTableName(weeklySummariesTable, hs.backend))

	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query weekly summaries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.WeeklySummaryRecord
	for rows.Next() {
		var record schema.WeeklySummaryRecord

		switch hs.backend {
		case schema.SQLiteBackend:
			var startStr, endStr string
			if err := rows.Scan(&record.RunID, &record.WeekNumber, &startStr, &endStr, &record.Average,
				&record.Min, &record.Max, &record.Index, &record.Days); err != nil {
				return nil, fmt.Errorf("failed to scan weekly summary: %w", err)
			}
			if record.StartDate, err = time.Parse(time.RFC3339Nano, startStr); err != nil {
				return nil, fmt.Errorf("failed to parse start_date: %w", err)
			}
			if record.EndDate, err = time.Parse(time.RFC3339Nano, endStr); err != nil {
				return nil, fmt.Errorf("failed to parse end_date: %w", err)
			}
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.RunID, &record.WeekNumber, &record.StartDate, &record.EndDate, &record.Average,
				&record.Min, &record.Max, &record.Index, &record.Days); err != nil {
				return nil, fmt.Errorf("failed to scan weekly summary: %w", err)
			}
		}

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating weekly summaries: %w", err)
	}
	return results, nil
}
