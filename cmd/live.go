package cmd

import (
	"github.com/huangsam/gridcarbon/core"
	"github.com/huangsam/gridcarbon/internal/contract"
	"github.com/spf13/cobra"
)

// currentCmd shows the national intensity right now.
var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the national carbon intensity for the current half hour.",
	Long: `Show the forecast and, once published, the actual national intensity
for the current half-hour settlement period.

Examples:
  gridcarbon current
  gridcarbon current --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCurrent(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot fetch current intensity", err)
		}
	},
}

// mixCmd shows the generation mix right now.
var mixCmd = &cobra.Command{
	Use:   "mix",
	Short: "Show the current generation mix and renewable share.",
	Long: `Show the share of each fuel in the current generation mix, largest first.

Biomass, hydro, solar and wind count towards the renewable share.

Examples:
  gridcarbon mix
  gridcarbon mix --output csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMix(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot fetch generation mix", err)
		}
	},
}

// regionalCmd shows the forecast of every region.
var regionalCmd = &cobra.Command{
	Use:   "regional",
	Short: "Show the current forecast for every region, grouped by area.",
	Long: `Show the current intensity forecast of each DNO region.

Regions are grouped into Great Britain, National, Scotland, Wales,
Northern England, Midlands, Southern England and Other, and each group
is sorted from the cleanest region to the dirtiest.

Examples:
  gridcarbon regional
  gridcarbon regional --output json --output-file regions.json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRegional(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot fetch regional intensity", err)
		}
	},
}

// bandsCmd shows the classification bands in effect.
var bandsCmd = &cobra.Command{
	Use:   "bands",
	Short: "Show the intensity bands used to label values.",
	Long: `Show the gCO2/kWh range of each intensity level.

Bands can be overridden in .gridcarbon.yaml:

  bands:
    very_low: 40
    low: 120
    moderate: 200
    high: 290`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteBands(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot print bands", err)
		}
	},
}
