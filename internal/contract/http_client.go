package contract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/huangsam/gridcarbon/schema"
)

// APITimeLayout is the minute-precision UTC format used in upstream paths and payloads.
const APITimeLayout = "2006-01-02T15:04Z"

// ErrMalformedPayload is returned when a response body does not have the expected shape.
var ErrMalformedPayload = errors.New("malformed payload")

// StatusError reports a non-200 response from the upstream API.
type StatusError struct {
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d %s", e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

// Retryable reports whether the request may succeed when sent again.
func (e *StatusError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// HTTPIntensityClient implements the IntensityClient interface against the
// public Carbon Intensity REST API.
type HTTPIntensityClient struct {
	baseURL    string
	httpClient *http.Client
	retries    int

	// initialInterval seeds the exponential backoff between attempts.
	initialInterval time.Duration
}

var _ IntensityClient = &HTTPIntensityClient{} // Compile-time check

// NewHTTPIntensityClient creates a client for the given base URL.
// Each request is bounded by timeout and retried up to retries times.
func NewHTTPIntensityClient(baseURL string, timeout time.Duration, retries int) *HTTPIntensityClient {
	return &HTTPIntensityClient{
		baseURL:         strings.TrimRight(baseURL, "/"),
		httpClient:      &http.Client{Timeout: timeout},
		retries:         retries,
		initialInterval: 500 * time.Millisecond,
	}
}

// NewHTTPIntensityClientFromConfig creates a client from the validated config.
func NewHTTPIntensityClientFromConfig(cfg *Config) *HTTPIntensityClient {
	return NewHTTPIntensityClient(cfg.BaseURL, cfg.HTTPTimeout, cfg.Retries)
}

// --- Wire shapes ---

type statsResponse struct {
	Data *[]struct {
		From      string `json:"from"`
		To        string `json:"to"`
		Intensity struct {
			Max     float64 `json:"max"`
			Average float64 `json:"average"`
			Min     float64 `json:"min"`
			Index   string  `json:"index"`
		} `json:"intensity"`
	} `json:"data"`
}

type intensityPayload struct {
	Forecast int    `json:"forecast"`
	Actual   *int   `json:"actual"`
	Index    string `json:"index"`
}

type mixPayload struct {
	Fuel string  `json:"fuel"`
	Perc float64 `json:"perc"`
}

type currentResponse struct {
	Data []struct {
		From      string           `json:"from"`
		To        string           `json:"to"`
		Intensity intensityPayload `json:"intensity"`
	} `json:"data"`
}

type generationResponse struct {
	Data *struct {
		From          string       `json:"from"`
		To            string       `json:"to"`
		GenerationMix []mixPayload `json:"generationmix"`
	} `json:"data"`
}

type regionalResponse struct {
	Data []struct {
		From    string `json:"from"`
		To      string `json:"to"`
		Regions []struct {
			RegionID      int              `json:"regionid"`
			DNORegion     string           `json:"dnoregion"`
			ShortName     string           `json:"shortname"`
			Intensity     intensityPayload `json:"intensity"`
			GenerationMix []mixPayload     `json:"generationmix"`
		} `json:"regions"`
	} `json:"data"`
}

// GetStats implements the IntensityClient interface.
func (c *HTTPIntensityClient) GetStats(ctx context.Context, from, to time.Time, blockHours int) ([]schema.DailyRecord, error) {
	path := fmt.Sprintf("/intensity/stats/%s/%s/%d",
		from.UTC().Format(APITimeLayout), to.UTC().Format(APITimeLayout), blockHours)

	var resp statsResponse
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("GET %s: %w: missing data", path, ErrMalformedPayload)
	}

	records := make([]schema.DailyRecord, 0, len(*resp.Data))
	for _, item := range *resp.Data {
		date, err := parseAPITime(item.From)
		if err != nil {
			return nil, fmt.Errorf("GET %s: %w: %v", path, ErrMalformedPayload, err)
		}
		records = append(records, schema.DailyRecord{
			Date:    date,
			Average: item.Intensity.Average,
			Min:     item.Intensity.Min,
			Max:     item.Intensity.Max,
		})
	}
	return records, nil
}

// GetCurrent implements the IntensityClient interface.
func (c *HTTPIntensityClient) GetCurrent(ctx context.Context) (schema.CurrentIntensity, error) {
	const path = "/intensity"

	var resp currentResponse
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return schema.CurrentIntensity{}, err
	}
	if len(resp.Data) == 0 {
		return schema.CurrentIntensity{}, fmt.Errorf("GET %s: %w: missing data", path, ErrMalformedPayload)
	}
	item := resp.Data[0]
	return toCurrentIntensity(path, item.From, item.To, item.Intensity)
}

// GetGeneration implements the IntensityClient interface.
func (c *HTTPIntensityClient) GetGeneration(ctx context.Context) (schema.GenerationResult, error) {
	const path = "/generation"

	var resp generationResponse
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return schema.GenerationResult{}, err
	}
	if resp.Data == nil {
		return schema.GenerationResult{}, fmt.Errorf("GET %s: %w: missing data", path, ErrMalformedPayload)
	}
	from, to, err := parseAPIRange(resp.Data.From, resp.Data.To)
	if err != nil {
		return schema.GenerationResult{}, fmt.Errorf("GET %s: %w: %v", path, ErrMalformedPayload, err)
	}
	mix := toGenerationMix(resp.Data.GenerationMix)
	return schema.GenerationResult{
		From:           from,
		To:             to,
		Mix:            mix,
		RenewableShare: schema.RenewableShare(mix),
	}, nil
}

// GetRegional implements the IntensityClient interface.
func (c *HTTPIntensityClient) GetRegional(ctx context.Context) ([]schema.Region, error) {
	const path = "/regional"

	var resp regionalResponse
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("GET %s: %w: missing data", path, ErrMalformedPayload)
	}
	item := resp.Data[0]

	regions := make([]schema.Region, 0, len(item.Regions))
	for _, r := range item.Regions {
		intensity, err := toCurrentIntensity(path, item.From, item.To, r.Intensity)
		if err != nil {
			return nil, err
		}
		regions = append(regions, schema.Region{
			RegionID:      r.RegionID,
			DNORegion:     r.DNORegion,
			ShortName:     r.ShortName,
			Intensity:     intensity,
			GenerationMix: toGenerationMix(r.GenerationMix),
		})
	}
	return regions, nil
}

// getJSON issues a GET request and decodes the body into out, retrying transient failures.
func (c *HTTPIntensityClient) getJSON(ctx context.Context, path string, out any) error {
	operation := func() (struct{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return struct{}{}, backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return struct{}{}, backoff.Permanent(ctxErr)
			}
			return struct{}{}, err
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode != http.StatusOK {
			_, _ = io.Copy(io.Discard, resp.Body)
			statusErr := &StatusError{Path: path, StatusCode: resp.StatusCode}
			if statusErr.Retryable() {
				return struct{}{}, statusErr
			}
			return struct{}{}, backoff.Permanent(statusErr)
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return struct{}{}, backoff.Permanent(fmt.Errorf("GET %s: %w: %v", path, ErrMalformedPayload, err))
		}
		return struct{}{}, nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.initialInterval

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(uint(c.retries+1)),
	)
	return err
}

func parseAPITime(s string) (time.Time, error) {
	t, err := time.Parse(APITimeLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func parseAPIRange(from, to string) (time.Time, time.Time, error) {
	start, err := parseAPITime(from)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseAPITime(to)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func toCurrentIntensity(path, from, to string, p intensityPayload) (schema.CurrentIntensity, error) {
	start, end, err := parseAPIRange(from, to)
	if err != nil {
		return schema.CurrentIntensity{}, fmt.Errorf("GET %s: %w: %v", path, ErrMalformedPayload, err)
	}
	return schema.CurrentIntensity{
		From:     start,
		To:       end,
		Forecast: p.Forecast,
		Actual:   p.Actual,
		Index:    schema.IntensityLevel(p.Index),
	}, nil
}

func toGenerationMix(items []mixPayload) []schema.GenerationMix {
	mix := make([]schema.GenerationMix, 0, len(items))
	for _, m := range items {
		mix = append(mix, schema.GenerationMix{Fuel: m.Fuel, Perc: m.Perc})
	}
	return mix
}
