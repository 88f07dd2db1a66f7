package core

import (
	"slices"

	"github.com/huangsam/gridcarbon/schema"
)

// SummarizeYear computes the headline numbers of a weekly series.
// All values are zero when there are no weeks.
func SummarizeYear(year int, weeks []schema.WeeklySummary) schema.YearSummary {
	summary := schema.YearSummary{Year: year, Weeks: len(weeks)}
	if len(weeks) == 0 {
		return summary
	}

	sum := 0
	summary.Min = weeks[0].Min
	summary.Max = weeks[0].Max
	for _, w := range weeks {
		sum += w.Average
		summary.TotalDays += w.Days
		summary.Min = min(summary.Min, w.Min)
		summary.Max = max(summary.Max, w.Max)
	}
	summary.Average = roundHalfUp(float64(sum) / float64(len(weeks)))
	return summary
}

// SortDaily returns a copy of the records in ascending date order.
func SortDaily(records []schema.DailyRecord) []schema.DailyRecord {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b schema.DailyRecord) int {
		return a.Date.Compare(b.Date)
	})
	return sorted
}
