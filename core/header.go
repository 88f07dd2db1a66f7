package core

import (
	"fmt"

	"github.com/huangsam/gridcarbon/internal/contract"
)

// logYearHeader prints a concise, 2-line header before a year is fetched.
func logYearHeader(cfg *contract.Config, view string) {
	windows := MonthWindows(cfg.Year)
	from := windows[0].From.Format(contract.APITimeLayout)
	to := windows[len(windows)-1].To.Format(contract.APITimeLayout)

	if cfg.UseEmojis {
		fmt.Printf("🔎 Year: %d (View: %s, Workers: %d)\n", cfg.Year, view, cfg.Workers)
		fmt.Printf("📅 Range: %s → %s\n", from, to)
		return
	}
	fmt.Printf("Year: %d (View: %s, Workers: %d)\n", cfg.Year, view, cfg.Workers)
	fmt.Printf("Range: %s → %s\n", from, to)
}
