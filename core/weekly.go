package core

import (
	"math"
	"time"

	"github.com/huangsam/gridcarbon/schema"
)

const oneDay = 24 * time.Hour

// AggregateWeeks folds daily records into consecutive 7-day weeks.
//
// Records are sorted by date (the input is left untouched) and walked against a
// boundary that starts at January 1 of year. A record at least seven whole days
// past the boundary closes the current week and becomes the next boundary. The
// final partial week is always emitted. Empty input yields an empty result.
func AggregateWeeks(records []schema.DailyRecord, year int, bands schema.IntensityBands) []schema.WeeklySummary {
	weeks := []schema.WeeklySummary{}
	if len(records) == 0 {
		return weeks
	}

	sorted := SortDaily(records)

	boundary := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	var buffer []schema.DailyRecord
	for _, r := range sorted {
		if elapsedDays(boundary, r.Date) >= 7 && len(buffer) > 0 {
			weeks = append(weeks, summarizeWeek(len(weeks)+1, buffer, bands))
			boundary = r.Date
			buffer = nil
		}
		buffer = append(buffer, r)
	}
	if len(buffer) > 0 {
		weeks = append(weeks, summarizeWeek(len(weeks)+1, buffer, bands))
	}
	return weeks
}

// summarizeWeek computes the statistics of a non-empty, sorted run of records.
func summarizeWeek(number int, buffer []schema.DailyRecord, bands schema.IntensityBands) schema.WeeklySummary {
	sum := 0.0
	lo := math.Inf(1)
	hi := math.Inf(-1)
	for _, r := range buffer {
		sum += r.Average
		lo = min(lo, r.Min)
		hi = max(hi, r.Max)
	}
	avg := roundHalfUp(sum / float64(len(buffer)))

	return schema.WeeklySummary{
		WeekNumber: number,
		StartDate:  buffer[0].Date,
		EndDate:    buffer[len(buffer)-1].Date,
		Average:    avg,
		Min:        lo,
		Max:        hi,
		Index:      bands.Classify(float64(avg)),
		Days:       len(buffer),
	}
}

// elapsedDays is the number of whole days from start to t, rounded toward negative infinity.
func elapsedDays(start, t time.Time) int64 {
	d := t.Sub(start)
	days := int64(d / oneDay)
	if d < 0 && d%oneDay != 0 {
		days--
	}
	return days
}

// roundHalfUp rounds to the nearest integer with ties going towards positive infinity.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
