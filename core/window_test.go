package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthWindows(t *testing.T) {
	windows := MonthWindows(2023)
	require.Len(t, windows, 12)

	for i, w := range windows {
		month := time.Month(i + 1)
		assert.Equal(t, month, w.Month())
		assert.Equal(t, day(2023, month, 1), w.From)
		assert.Equal(t, 23, w.To.Hour())
		assert.Equal(t, 59, w.To.Minute())
		assert.Equal(t, month, w.To.Month(), "window must end inside its own month")
		assert.NotEqual(t, month, w.To.Add(time.Minute).Month(), "window must end on the last day")
	}
}

func TestMonthWindowsLastDay(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		want  int
	}{
		{"january", 2023, time.January, 31},
		{"february common year", 2023, time.February, 28},
		{"february leap year", 2024, time.February, 29},
		{"february century non-leap", 1900, time.February, 28},
		{"february 400-year leap", 2000, time.February, 29},
		{"april", 2023, time.April, 30},
		{"december", 2023, time.December, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := MonthWindows(tt.year)[tt.month-1]
			assert.Equal(t, tt.want, w.To.Day())
		})
	}
}

func TestMonthWindowsContiguous(t *testing.T) {
	windows := MonthWindows(2024)
	for i := 1; i < len(windows); i++ {
		gap := windows[i].From.Sub(windows[i-1].To)
		assert.Equal(t, time.Minute, gap, "month %d should start one minute after the previous ends", i+1)
	}
}
