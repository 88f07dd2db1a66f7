package core

import (
	"time"

	"github.com/huangsam/gridcarbon/internal/contract"
	"github.com/huangsam/gridcarbon/schema"
	"github.com/stretchr/testify/mock"
)

// day returns midnight UTC of the given date.
func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// dailyRange builds n consecutive daily records starting at start.
func dailyRange(start time.Time, n int, avg func(i int) float64) []schema.DailyRecord {
	records := make([]schema.DailyRecord, n)
	for i := range records {
		a := avg(i)
		records[i] = schema.DailyRecord{
			Date:    start.AddDate(0, 0, i),
			Average: a,
			Min:     a - 10,
			Max:     a + 10,
		}
	}
	return records
}

// constant returns a generator for a fixed daily average.
func constant(v float64) func(int) float64 {
	return func(int) float64 { return v }
}

// monthRecords returns one record per day of the window.
func monthRecords(w MonthWindow, avg float64) []schema.DailyRecord {
	return dailyRange(w.From, w.To.Day(), constant(avg))
}

// testConfig returns a validated-looking config for year.
func testConfig(year int) *contract.Config {
	return &contract.Config{
		Year:     year,
		BaseURL:  schema.DefaultBaseURL,
		Workers:  contract.DefaultWorkers,
		CacheTTL: contract.DefaultCacheTTL,
		Bands:    schema.DefaultBands,
	}
}

// stubFullYear makes client return a full month of records for every window of year.
func stubFullYear(client *contract.MockIntensityClient, year int, avg float64) {
	for _, w := range MonthWindows(year) {
		client.On("GetStats", mock.Anything, w.From, w.To, schema.DailyBlockHours).Return(monthRecords(w, avg), nil)
	}
}
