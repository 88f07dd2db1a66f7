package contract

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/huangsam/gridcarbon/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statsBody = `{"data":[
	{"from":"2023-02-01T00:00Z","to":"2023-02-01T23:59Z","intensity":{"max":210,"average":150.5,"min":90,"index":"moderate"}},
	{"from":"2023-02-02T00:00Z","to":"2023-02-02T23:59Z","intensity":{"max":180,"average":120,"min":60,"index":"moderate"}}
]}`

// newTestClient starts a server with the given handler and returns a client
// pointed at it with a negligible backoff.
func newTestClient(t *testing.T, retries int, handler http.HandlerFunc) *HTTPIntensityClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewHTTPIntensityClient(server.URL+"/", 5*time.Second, retries)
	client.initialInterval = time.Millisecond
	return client
}

func TestGetStats(t *testing.T) {
	var gotPath string
	client := newTestClient(t, 0, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(statsBody))
	})

	from := time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2023, 2, 28, 23, 59, 0, 0, time.UTC)
	records, err := client.GetStats(context.Background(), from, to, 24)
	require.NoError(t, err)

	assert.Equal(t, "/intensity/stats/2023-02-01T00:00Z/2023-02-28T23:59Z/24", gotPath)
	require.Len(t, records, 2)
	assert.Equal(t, from, records[0].Date)
	assert.Equal(t, 150.5, records[0].Average)
	assert.Equal(t, 90.0, records[0].Min)
	assert.Equal(t, 210.0, records[0].Max)
	assert.Equal(t, time.Date(2023, 2, 2, 0, 0, 0, 0, time.UTC), records[1].Date)
}

func TestGetStatsEmptyMonth(t *testing.T) {
	client := newTestClient(t, 0, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	})

	from := time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)
	records, err := client.GetStats(context.Background(), from, from.AddDate(0, 1, 0), 24)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestGetStatsMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing data", `{"error":"nope"}`},
		{"not json", `<html>maintenance</html>`},
		{"bad timestamp", `{"data":[{"from":"01/02/2023","intensity":{}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			client := newTestClient(t, 3, func(w http.ResponseWriter, _ *http.Request) {
				calls.Add(1)
				_, _ = w.Write([]byte(tt.body))
			})

			from := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
			_, err := client.GetStats(context.Background(), from, from.AddDate(0, 1, 0), 24)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedPayload)
			assert.Equal(t, int32(1), calls.Load(), "malformed payloads are not retried")
		})
	}
}

func TestRetries(t *testing.T) {
	t.Run("server error is retried", func(t *testing.T) {
		var calls atomic.Int32
		client := newTestClient(t, 3, func(w http.ResponseWriter, _ *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte(statsBody))
		})

		from := time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)
		records, err := client.GetStats(context.Background(), from, from.AddDate(0, 1, 0), 24)
		require.NoError(t, err)
		assert.Len(t, records, 2)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("too many requests is retried until exhausted", func(t *testing.T) {
		var calls atomic.Int32
		client := newTestClient(t, 2, func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusTooManyRequests)
		})

		_, err := client.GetCurrent(context.Background())
		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
		assert.Equal(t, int32(3), calls.Load(), "one attempt plus two retries")
	})

	t.Run("client error is permanent", func(t *testing.T) {
		var calls atomic.Int32
		client := newTestClient(t, 3, func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadRequest)
		})

		_, err := client.GetGeneration(context.Background())
		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.False(t, statusErr.Retryable())
		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestCancelledContext(t *testing.T) {
	client := newTestClient(t, 3, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(statsBody))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	from := time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)
	_, err := client.GetStats(ctx, from, from.AddDate(0, 1, 0), 24)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

func TestGetCurrent(t *testing.T) {
	client := newTestClient(t, 0, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/intensity", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":[{"from":"2024-05-01T11:30Z","to":"2024-05-01T12:00Z","intensity":{"forecast":98,"actual":null,"index":"low"}}]}`))
	})

	current, err := client.GetCurrent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 11, 30, 0, 0, time.UTC), current.From)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), current.To)
	assert.Equal(t, 98, current.Forecast)
	assert.Nil(t, current.Actual)
	assert.Equal(t, schema.LowLevel, current.Index)
}

func TestGetCurrentWithActual(t *testing.T) {
	client := newTestClient(t, 0, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"from":"2024-05-01T11:30Z","to":"2024-05-01T12:00Z","intensity":{"forecast":98,"actual":101,"index":"low"}}]}`))
	})

	current, err := client.GetCurrent(context.Background())
	require.NoError(t, err)
	require.NotNil(t, current.Actual)
	assert.Equal(t, 101, *current.Actual)
}

func TestGetCurrentEmpty(t *testing.T) {
	client := newTestClient(t, 0, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	})

	_, err := client.GetCurrent(context.Background())
	assert.ErrorIs(t, err, ErrMalformedPayload)
}

func TestGetGeneration(t *testing.T) {
	client := newTestClient(t, 0, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generation", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":{"from":"2024-05-01T11:30Z","to":"2024-05-01T12:00Z","generationmix":[
			{"fuel":"biomass","perc":5.2},{"fuel":"gas","perc":30.1},{"fuel":"wind","perc":40.3},{"fuel":"solar","perc":4.5}
		]}}`))
	})

	result, err := client.GetGeneration(context.Background())
	require.NoError(t, err)
	assert.Len(t, result.Mix, 4)
	assert.Equal(t, "biomass", result.Mix[0].Fuel)
	assert.InDelta(t, 50.0, result.RenewableShare, 1e-9)
}

func TestGetRegional(t *testing.T) {
	client := newTestClient(t, 0, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/regional", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":[{"from":"2024-05-01T11:30Z","to":"2024-05-01T12:00Z","regions":[
			{"regionid":1,"dnoregion":"Scottish Hydro Electric Power Distribution","shortname":"North Scotland","intensity":{"forecast":12,"index":"very low"},"generationmix":[{"fuel":"wind","perc":80}]},
			{"regionid":13,"dnoregion":"UKPN London","shortname":"London","intensity":{"forecast":180,"index":"moderate"},"generationmix":[]}
		]}]}`))
	})

	regions, err := client.GetRegional(context.Background())
	require.NoError(t, err)
	require.Len(t, regions, 2)
	assert.Equal(t, 1, regions[0].RegionID)
	assert.Equal(t, "North Scotland", regions[0].ShortName)
	assert.Equal(t, 12, regions[0].Intensity.Forecast)
	assert.Nil(t, regions[0].Intensity.Actual)
	assert.Equal(t, schema.VeryLowLevel, regions[0].Intensity.Index)
	assert.Len(t, regions[0].GenerationMix, 1)
	assert.Equal(t, schema.ModerateLevel, regions[1].Intensity.Index)
}
