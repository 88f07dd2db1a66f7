package schema

import (
	"strconv"
	"time"
)

// DateLayout is the calendar date format used in tabular output.
const DateLayout = "2006-01-02"

// EnrichedWeeklySummary adds presentation data to a WeeklySummary.
type EnrichedWeeklySummary struct {
	Label     string `json:"label"`
	DateRange string `json:"date_range"`
	WeeklySummary
}

// EnrichedDailyRecord adds presentation data to a DailyRecord.
type EnrichedDailyRecord struct {
	Level IntensityLevel `json:"level"`
	DailyRecord
}

// FormatDateRange renders an inclusive date range such as "2023-01-01 - 2023-01-07".
func FormatDateRange(start, end time.Time) string {
	return start.Format(DateLayout) + " - " + end.Format(DateLayout)
}

// EnrichWeeks adds a week label and a date range to a list of weekly summaries.
func EnrichWeeks(weeks []WeeklySummary) []EnrichedWeeklySummary {
	output := make([]EnrichedWeeklySummary, len(weeks))
	for i, w := range weeks {
		output[i] = EnrichedWeeklySummary{
			Label:         WeekLabel(w.WeekNumber),
			DateRange:     FormatDateRange(w.StartDate, w.EndDate),
			WeeklySummary: w,
		}
	}
	return output
}

// EnrichDays classifies each daily record using the given bands.
func EnrichDays(days []DailyRecord, bands IntensityBands) []EnrichedDailyRecord {
	output := make([]EnrichedDailyRecord, len(days))
	for i, d := range days {
		output[i] = EnrichedDailyRecord{
			Level:       bands.Classify(d.Average),
			DailyRecord: d,
		}
	}
	return output
}

// WeekLabel formats a week number as "Week 1".
func WeekLabel(n int) string {
	return "Week " + strconv.Itoa(n)
}
