package schema

import (
	"cmp"
	"slices"
	"strings"
)

// RegionGroupOrder is the display order for regional groups.
var RegionGroupOrder = []string{
	"Great Britain",
	"National",
	"Scotland",
	"Wales",
	"Northern England",
	"Midlands",
	"Southern England",
	"Other",
}

// IsRenewable reports whether a fuel counts towards the renewable share.
func IsRenewable(fuel string) bool {
	_, ok := RenewableFuels[strings.ToLower(strings.TrimSpace(fuel))]
	return ok
}

// RenewableShare sums the percentage of renewable fuels in a generation mix.
func RenewableShare(mix []GenerationMix) float64 {
	var total float64
	for _, m := range mix {
		if IsRenewable(m.Fuel) {
			total += m.Perc
		}
	}
	return total
}

// SortMix orders a generation mix by share descending, then by fuel name.
func SortMix(mix []GenerationMix) []GenerationMix {
	sorted := slices.Clone(mix)
	slices.SortStableFunc(sorted, func(a, b GenerationMix) int {
		if c := cmp.Compare(b.Perc, a.Perc); c != 0 {
			return c
		}
		return strings.Compare(a.Fuel, b.Fuel)
	})
	return sorted
}

// RegionGroupName returns the display group for a region.
func RegionGroupName(r Region) string {
	short := strings.ToLower(r.ShortName)
	dno := strings.ToLower(r.DNORegion)
	switch {
	case r.ShortName == "GB":
		return "Great Britain"
	case slices.Contains([]string{"England", "Scotland", "Wales"}, r.ShortName):
		return "National"
	case strings.Contains(short, "scotland") || strings.Contains(dno, "scotland"):
		return "Scotland"
	case strings.Contains(short, "wales") || strings.Contains(dno, "wales"):
		return "Wales"
	case slices.Contains([]string{"North West England", "North East England", "Yorkshire"}, r.ShortName):
		return "Northern England"
	case strings.Contains(short, "midlands"):
		return "Midlands"
	case slices.Contains([]string{"South East England", "South West England", "South England", "East England", "London"}, r.ShortName):
		return "Southern England"
	default:
		return "Other"
	}
}

// GroupRegions buckets regions into display groups, following RegionGroupOrder.
// Empty groups are omitted and each group is sorted by ascending forecast.
func GroupRegions(regions []Region) []RegionGroup {
	byName := make(map[string][]Region)
	for _, r := range regions {
		name := RegionGroupName(r)
		byName[name] = append(byName[name], r)
	}
	var groups []RegionGroup
	for _, name := range RegionGroupOrder {
		rs, ok := byName[name]
		if !ok {
			continue
		}
		slices.SortStableFunc(rs, func(a, b Region) int {
			return cmp.Compare(a.Intensity.Forecast, b.Intensity.Forecast)
		})
		groups = append(groups, RegionGroup{Name: name, Regions: rs})
	}
	return groups
}
