package schema

import "time"

// RunRecord represents a row from the gridcarbon_runs table.
type RunRecord struct {
	RunID         int64
	Year          int32
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	TotalDays     int32
	TotalWeeks    int32
	ConfigParams  *string
}

// WeeklySummaryRecord represents a row from the gridcarbon_weekly_summaries table.
type WeeklySummaryRecord struct {
	RunID      int64
	WeekNumber int32
	StartDate  time.Time
	EndDate    time.Time
	Average    int32
	Min        float64
	Max        float64
	Index      string
	Days       int32
}
