package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrichWeeks(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	weeks := []WeeklySummary{
		{WeekNumber: 1, StartDate: start, EndDate: start.AddDate(0, 0, 6), Average: 150, Days: 7},
		{WeekNumber: 2, StartDate: start.AddDate(0, 0, 7), EndDate: start.AddDate(0, 0, 8), Average: 90, Days: 2},
	}

	enriched := EnrichWeeks(weeks)

	require.Len(t, enriched, 2)
	assert.Equal(t, "Week 1", enriched[0].Label)
	assert.Equal(t, "2023-01-01 - 2023-01-07", enriched[0].DateRange)
	assert.Equal(t, "Week 2", enriched[1].Label)
	assert.Equal(t, "2023-01-08 - 2023-01-09", enriched[1].DateRange)
	assert.Equal(t, 90, enriched[1].Average)
}

func TestEnrichDays(t *testing.T) {
	days := []DailyRecord{
		{Date: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), Average: 30},
		{Date: time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), Average: 250},
	}

	enriched := EnrichDays(days, DefaultBands)

	require.Len(t, enriched, 2)
	assert.Equal(t, VeryLowLevel, enriched[0].Level)
	assert.Equal(t, HighLevel, enriched[1].Level)
	assert.Empty(t, EnrichDays(nil, DefaultBands))
}
