package core

import (
	"fmt"
	"strings"
	"time"
)

// FetchError reports that one or more monthly requests of a year failed.
// No partial results accompany it.
type FetchError struct {
	Year   int
	Months []time.Month
	Err    error
}

func (e *FetchError) Error() string {
	names := make([]string, len(e.Months))
	for i, m := range e.Months {
		names[i] = m.String()
	}
	return fmt.Sprintf("failed to fetch %d data for %s: %v", e.Year, strings.Join(names, ", "), e.Err)
}

// Unwrap exposes the joined causes of the failed months.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// NoDataError reports that every month succeeded but the year has no records.
type NoDataError struct {
	Year int
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("no historical data available for %d", e.Year)
}
