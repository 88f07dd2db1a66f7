package core

import (
	"context"
	"time"

	"github.com/huangsam/gridcarbon/internal/contract"
	"github.com/huangsam/gridcarbon/schema"
)

// beginRun opens a history run and stores its ID in the returned context.
// Tracking failures are reported as warnings and never stop the run.
func beginRun(ctx context.Context, cfg *contract.Config, history contract.HistoryStore, start time.Time) context.Context {
	if history == nil {
		return ctx
	}
	runID, err := history.BeginRun(cfg.Year, start, cfg.Params())
	if err != nil {
		contract.LogWarn("Run tracking initialization failed", err)
		return ctx
	}
	return withRunID(ctx, runID)
}

// endRun stores the weeks of a completed run and closes it.
func endRun(ctx context.Context, history contract.HistoryStore, result *schema.WeeklyResult) {
	runID, ok := getRunID(ctx)
	if history == nil || !ok {
		return
	}
	if err := history.RecordWeeks(runID, result.Weeks); err != nil {
		contract.LogWarn("Failed to record weekly summaries", err)
	}
	if err := history.EndRun(runID, time.Now(), result.Summary.TotalDays, len(result.Weeks)); err != nil {
		contract.LogWarn("Failed to finalize run tracking", err)
	}
}
