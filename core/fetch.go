package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/huangsam/gridcarbon/internal/contract"
	"github.com/huangsam/gridcarbon/schema"
	"golang.org/x/sync/errgroup"
)

// FetchYear retrieves the daily records of every calendar month in cfg.Year.
// All twelve monthly requests are issued concurrently and the call waits for every
// one of them to settle. If any month fails, a *FetchError naming the failed months
// is returned and no records are. If all months succeed but none has data, a
// *NoDataError is returned. Record order is unspecified.
func FetchYear(ctx context.Context, cfg *contract.Config, client contract.IntensityClient, mgr contract.CacheManager) ([]schema.DailyRecord, error) {
	year := cfg.Year
	if year < contract.MinYear || year > contract.MaxYear {
		return nil, fmt.Errorf("year must be between %d and %d (received %d)", contract.MinYear, contract.MaxYear, year)
	}

	if cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.FetchTimeout)
		defer cancel()
	}

	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetResponseStore()
	}

	windows := MonthWindows(year)
	results := make([][]schema.DailyRecord, len(windows))
	errs := make([]error, len(windows))

	workers := cfg.Workers
	if workers <= 0 {
		workers = contract.DefaultWorkers
	}

	// Each goroutine owns one slot and never fails the group, so Wait
	// returns only after every month has settled.
	var g errgroup.Group
	g.SetLimit(workers)
	for i, w := range windows {
		g.Go(func() error {
			results[i], errs[i] = cachedFetchMonth(ctx, cfg, client, store, w)
			return nil
		})
	}
	_ = g.Wait()

	var failed []time.Month
	var causes []error
	for i, err := range errs {
		if err != nil {
			failed = append(failed, windows[i].Month())
			causes = append(causes, fmt.Errorf("%s: %w", windows[i].Month(), err))
		}
	}
	if len(failed) > 0 {
		return nil, &FetchError{Year: year, Months: failed, Err: errors.Join(causes...)}
	}

	var records []schema.DailyRecord
	for _, monthly := range results {
		records = append(records, monthly...)
	}
	if len(records) == 0 {
		return nil, &NoDataError{Year: year}
	}
	return records, nil
}
