// Package core has core logic for fetching, aggregating and summarizing carbon intensity.
package core

import (
	"context"
	"time"

	"github.com/huangsam/gridcarbon/internal/contract"
	"github.com/huangsam/gridcarbon/internal/outwriter"
	"github.com/huangsam/gridcarbon/schema"
)

// ExecutorFunc defines the function signature for executing the different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// ExecuteWeekly fetches a year of daily statistics, folds them into weeks and prints the results.
// It serves as the main entry point for the 'weekly' command.
func ExecuteWeekly(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	client := contract.NewHTTPIntensityClientFromConfig(cfg)
	result, duration, err := GetWeeklyResults(ctx, cfg, client, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteWeekly(result, cfg, duration)
}

// ExecuteDaily fetches a year of daily statistics and prints them in date order.
// It serves as the main entry point for the 'daily' command.
func ExecuteDaily(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	client := contract.NewHTTPIntensityClientFromConfig(cfg)
	result, duration, err := GetDailyResults(ctx, cfg, client, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteDaily(result, cfg, duration)
}

// ExecuteCurrent prints the national intensity for the current half hour.
func ExecuteCurrent(ctx context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	start := time.Now()
	client := contract.NewHTTPIntensityClientFromConfig(cfg)
	current, err := client.GetCurrent(ctx)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteCurrent(current, cfg, time.Since(start))
}

// ExecuteMix prints the current generation mix and its renewable share.
func ExecuteMix(ctx context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	start := time.Now()
	client := contract.NewHTTPIntensityClientFromConfig(cfg)
	result, err := client.GetGeneration(ctx)
	if err != nil {
		return err
	}
	result.Mix = schema.SortMix(result.Mix)
	return outwriter.NewOutWriter().WriteMix(result, cfg, time.Since(start))
}

// ExecuteRegional prints the current forecast per region, grouped by area.
func ExecuteRegional(ctx context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	start := time.Now()
	client := contract.NewHTTPIntensityClientFromConfig(cfg)
	groups, err := GetRegionalResults(ctx, client)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteRegional(groups, cfg, time.Since(start))
}

// ExecuteBands prints the intensity bands in effect.
func ExecuteBands(_ context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	return outwriter.NewOutWriter().WriteBands(cfg)
}

// GetWeeklyResults runs the weekly pipeline and returns its result without printing it.
// The run is recorded in the history store when one is configured.
func GetWeeklyResults(ctx context.Context, cfg *contract.Config, client contract.IntensityClient, mgr contract.CacheManager) (*schema.WeeklyResult, time.Duration, error) {
	start := time.Now()
	if !shouldSuppressHeader(ctx) {
		logYearHeader(cfg, "weekly")
	}

	var history contract.HistoryStore
	if mgr != nil {
		history = mgr.GetHistoryStore()
	}
	ctx = beginRun(ctx, cfg, history, start)

	records, err := FetchYear(ctx, cfg, client, mgr)
	if err != nil {
		return nil, 0, err
	}

	weeks := AggregateWeeks(records, cfg.Year, cfg.Bands)
	result := &schema.WeeklyResult{
		Year:    cfg.Year,
		Weeks:   weeks,
		Summary: SummarizeYear(cfg.Year, weeks),
	}

	endRun(ctx, history, result)
	return result, time.Since(start), nil
}

// GetDailyResults fetches a year of daily statistics sorted by date.
func GetDailyResults(ctx context.Context, cfg *contract.Config, client contract.IntensityClient, mgr contract.CacheManager) (*schema.DailyResult, time.Duration, error) {
	start := time.Now()
	if !shouldSuppressHeader(ctx) {
		logYearHeader(cfg, "daily")
	}

	records, err := FetchYear(ctx, cfg, client, mgr)
	if err != nil {
		return nil, 0, err
	}
	return &schema.DailyResult{Year: cfg.Year, Days: SortDaily(records)}, time.Since(start), nil
}

// GetRegionalResults fetches the regional forecast and groups it by area.
func GetRegionalResults(ctx context.Context, client contract.IntensityClient) ([]schema.RegionGroup, error) {
	regions, err := client.GetRegional(ctx)
	if err != nil {
		return nil, err
	}
	return schema.GroupRegions(regions), nil
}
