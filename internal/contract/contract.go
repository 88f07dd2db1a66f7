// Package contract provides interfaces and shared utilities for gridcarbon's internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/gridcarbon/schema"
)

// IntensityClient defines the upstream operations of the Carbon Intensity API.
// This allows the fetch pipeline to be tested without a network.
type IntensityClient interface {
	// GetStats returns one record per block between from and to.
	GetStats(ctx context.Context, from, to time.Time, blockHours int) ([]schema.DailyRecord, error)

	// GetCurrent returns the national intensity for the current half hour.
	GetCurrent(ctx context.Context) (schema.CurrentIntensity, error)

	// GetGeneration returns the national generation mix for the current half hour.
	GetGeneration(ctx context.Context) (schema.GenerationResult, error)

	// GetRegional returns the forecast for every DNO region.
	GetRegional(ctx context.Context) ([]schema.Region, error)
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetResponseStore() CacheStore
	GetHistoryStore() HistoryStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// HistoryStore defines the interface for tracking weekly runs and their summaries.
type HistoryStore interface {
	// BeginRun creates a new run and returns its unique ID
	BeginRun(year int, startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the run with completion data
	EndRun(runID int64, endTime time.Time, totalDays, totalWeeks int) error

	// RecordWeeks stores the weekly summaries of a run
	RecordWeeks(runID int64, weeks []schema.WeeklySummary) error

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns returns every recorded run ordered by ID
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllWeeklySummaries returns every recorded week ordered by run and week number
	GetAllWeeklySummaries() ([]schema.WeeklySummaryRecord, error)

	// Close closes the underlying connection
	Close() error
}
