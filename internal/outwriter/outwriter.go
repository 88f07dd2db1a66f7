// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/huangsam/gridcarbon/internal/contract"
	"github.com/huangsam/gridcarbon/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteWeekly prints weekly summaries using the configured output format.
func (ow *OutWriter) WriteWeekly(result *schema.WeeklyResult, cfg *contract.Config, duration time.Duration) error {
	return PrintWeeklyResults(result, cfg, duration)
}

// WriteDaily prints the daily series using the configured output format.
func (ow *OutWriter) WriteDaily(result *schema.DailyResult, cfg *contract.Config, duration time.Duration) error {
	return PrintDailyResults(result, cfg, duration)
}

// WriteCurrent prints the current national intensity using the configured output format.
func (ow *OutWriter) WriteCurrent(current schema.CurrentIntensity, cfg *contract.Config, duration time.Duration) error {
	return PrintCurrentIntensity(current, cfg, duration)
}

// WriteMix prints the current generation mix using the configured output format.
func (ow *OutWriter) WriteMix(result schema.GenerationResult, cfg *contract.Config, duration time.Duration) error {
	return PrintGenerationMix(result, cfg, duration)
}

// WriteRegional prints the regional forecast using the configured output format.
func (ow *OutWriter) WriteRegional(groups []schema.RegionGroup, cfg *contract.Config, duration time.Duration) error {
	return PrintRegionalResults(groups, cfg, duration)
}

// WriteBands prints the intensity bands in effect using the configured output format.
func (ow *OutWriter) WriteBands(cfg *contract.Config) error {
	return PrintBands(cfg)
}

// levelLabel picks a colored or plain label for table output.
func levelLabel(level schema.IntensityLevel, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.GetColorLabel(level)
	}
	return contract.GetPlainLabel(level)
}

// getMaxBarWidth calculates the width of the share bar in the mix table
// based on terminal width.
func getMaxBarWidth() int {
	termWidth := 80 // Conservative default for narrow terminals and CI
	if detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && detectedWidth > 0 {
		termWidth = detectedWidth
	}

	// Reserve space for Fuel + Share + Renewable columns with borders/padding
	available := termWidth - 45
	if available < 10 {
		return 10
	}
	if available > 50 {
		return 50
	}
	return available
}
