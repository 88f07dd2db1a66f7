package core

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/huangsam/gridcarbon/internal/contract"
	"github.com/huangsam/gridcarbon/internal/iocache"
	"github.com/huangsam/gridcarbon/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFetchYear_Completeness(t *testing.T) {
	client := &contract.MockIntensityClient{}
	stubFullYear(client, 2023, 120)

	records, err := FetchYear(context.Background(), testConfig(2023), client, nil)
	require.NoError(t, err)
	assert.Len(t, records, 365)
	client.AssertNumberOfCalls(t, "GetStats", 12)

	seen := make(map[time.Time]bool, len(records))
	for _, r := range records {
		assert.False(t, seen[r.Date], "duplicate record for %s", r.Date)
		seen[r.Date] = true
	}
}

func TestFetchYear_PartialMonths(t *testing.T) {
	client := &contract.MockIntensityClient{}
	expected := 0
	for i, w := range MonthWindows(2024) {
		records := dailyRange(w.From, i, constant(100)) // 0..11 records
		expected += len(records)
		client.On("GetStats", mock.Anything, w.From, w.To, schema.DailyBlockHours).Return(records, nil)
	}

	records, err := FetchYear(context.Background(), testConfig(2024), client, nil)
	require.NoError(t, err)
	assert.Len(t, records, expected)
}

func TestFetchYear_OneMonthFails(t *testing.T) {
	client := &contract.MockIntensityClient{}
	cause := errors.New("connection reset")
	for _, w := range MonthWindows(2023) {
		if w.Month() == time.March {
			client.On("GetStats", mock.Anything, w.From, w.To, schema.DailyBlockHours).Return(nil, cause)
			continue
		}
		client.On("GetStats", mock.Anything, w.From, w.To, schema.DailyBlockHours).Return(monthRecords(w, 100), nil)
	}

	records, err := FetchYear(context.Background(), testConfig(2023), client, nil)
	assert.Nil(t, records, "no partial results on failure")

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, 2023, fetchErr.Year)
	assert.Equal(t, []time.Month{time.March}, fetchErr.Months)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "March")

	// Every month still settles before the error is reported
	client.AssertNumberOfCalls(t, "GetStats", 12)
}

func TestFetchYear_SeveralMonthsFail(t *testing.T) {
	client := &contract.MockIntensityClient{}
	for _, w := range MonthWindows(2023) {
		if w.Month() == time.June || w.Month() == time.November {
			client.On("GetStats", mock.Anything, w.From, w.To, schema.DailyBlockHours).
				Return(nil, &contract.StatusError{Path: "/intensity/stats", StatusCode: 503})
			continue
		}
		client.On("GetStats", mock.Anything, w.From, w.To, schema.DailyBlockHours).Return(monthRecords(w, 100), nil)
	}

	_, err := FetchYear(context.Background(), testConfig(2023), client, nil)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, []time.Month{time.June, time.November}, fetchErr.Months)

	var statusErr *contract.StatusError
	assert.ErrorAs(t, err, &statusErr)
}

func TestFetchYear_NoData(t *testing.T) {
	client := &contract.MockIntensityClient{}
	client.On("GetStats", mock.Anything, mock.Anything, mock.Anything, schema.DailyBlockHours).Return([]schema.DailyRecord{}, nil)

	records, err := FetchYear(context.Background(), testConfig(2099), client, nil)
	assert.Nil(t, records)

	var noData *NoDataError
	require.ErrorAs(t, err, &noData)
	assert.Equal(t, 2099, noData.Year)
	assert.EqualError(t, err, "no historical data available for 2099")

	var fetchErr *FetchError
	assert.False(t, errors.As(err, &fetchErr), "empty year is not a fetch failure")
}

func TestFetchYear_InvalidYear(t *testing.T) {
	client := &contract.MockIntensityClient{}

	_, err := FetchYear(context.Background(), testConfig(0), client, nil)
	assert.Error(t, err)
	client.AssertNotCalled(t, "GetStats", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFetchYear_TimeoutCancelsRequests(t *testing.T) {
	client := &contract.MockIntensityClient{}
	client.On("GetStats", mock.Anything, mock.Anything, mock.Anything, schema.DailyBlockHours).
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return(nil, context.DeadlineExceeded)

	cfg := testConfig(2023)
	cfg.FetchTimeout = 20 * time.Millisecond

	start := time.Now()
	_, err := FetchYear(context.Background(), cfg, client, nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestFetchYear_Concurrency(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		check   func(t *testing.T, peak int32)
	}{
		{"all months in flight", 12, func(t *testing.T, peak int32) { assert.Greater(t, peak, int32(1)) }},
		{"single worker", 1, func(t *testing.T, peak int32) { assert.Equal(t, int32(1), peak) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var inFlight, peak atomic.Int32
			client := &contract.MockIntensityClient{}
			client.On("GetStats", mock.Anything, mock.Anything, mock.Anything, schema.DailyBlockHours).
				Run(func(mock.Arguments) {
					n := inFlight.Add(1)
					for {
						p := peak.Load()
						if n <= p || peak.CompareAndSwap(p, n) {
							break
						}
					}
					time.Sleep(10 * time.Millisecond)
					inFlight.Add(-1)
				}).
				Return(dailyRange(day(2023, time.January, 1), 1, constant(100)), nil)

			cfg := testConfig(2023)
			cfg.Workers = tt.workers

			records, err := FetchYear(context.Background(), cfg, client, nil)
			require.NoError(t, err)
			assert.Len(t, records, 12)
			tt.check(t, peak.Load())
		})
	}
}

func TestFetchYear_UsesResponseCache(t *testing.T) {
	cfg := testConfig(2023)
	windows := MonthWindows(2023)
	january := windows[0]

	cached, err := json.Marshal(monthRecords(january, 42))
	require.NoError(t, err)

	store := &iocache.MockCacheStore{}
	store.On("Get", generateCacheKey(cfg.BaseURL, january)).Return(cached, currentCacheVersion, time.Now().Unix(), nil)
	store.On("Get", mock.Anything).Return(nil, 0, int64(0), sql.ErrNoRows)
	store.On("Set", mock.Anything, mock.Anything, currentCacheVersion, mock.Anything).Return(nil)

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetResponseStore").Return(store)

	client := &contract.MockIntensityClient{}
	for _, w := range windows[1:] {
		client.On("GetStats", mock.Anything, w.From, w.To, schema.DailyBlockHours).Return(monthRecords(w, 100), nil)
	}

	records, err := FetchYear(context.Background(), cfg, client, mgr)
	require.NoError(t, err)
	assert.Len(t, records, 365)

	client.AssertNotCalled(t, "GetStats", mock.Anything, january.From, january.To, schema.DailyBlockHours)
	client.AssertNumberOfCalls(t, "GetStats", 11)
	store.AssertNumberOfCalls(t, "Set", 11)
	mgr.AssertExpectations(t)
}

func TestFetchErrorMessage(t *testing.T) {
	err := &FetchError{
		Year:   2023,
		Months: []time.Month{time.February, time.October},
		Err:    errors.New("timeout"),
	}
	assert.Equal(t, "failed to fetch 2023 data for February, October: timeout", err.Error())
}

func TestFetchYear_ConcurrentCallers(t *testing.T) {
	client := &contract.MockIntensityClient{}
	stubFullYear(client, 2022, 80)
	stubFullYear(client, 2023, 120)

	var wg sync.WaitGroup
	for _, year := range []int{2022, 2023, 2022, 2023} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			records, err := FetchYear(context.Background(), testConfig(year), client, nil)
			assert.NoError(t, err)
			assert.Len(t, records, 365)
		}()
	}
	wg.Wait()
}
