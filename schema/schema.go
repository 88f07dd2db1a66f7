// Package schema has models, constants and presentation helpers for all parts of gridcarbon.
package schema

import "time"

// DailyRecord is one calendar day of carbon intensity statistics (gCO2/kWh).
// Date is the window start instant returned by the upstream API.
type DailyRecord struct {
	Date    time.Time `json:"date"`
	Average float64   `json:"average"`
	Min     float64   `json:"min"`
	Max     float64   `json:"max"`
}

// WeeklySummary aggregates a contiguous run of daily records.
// WeekNumber is assigned in emission order and is not an ISO week number.
type WeeklySummary struct {
	WeekNumber int            `json:"week_number"`
	StartDate  time.Time      `json:"start_date"` // Date of the first daily record in the week
	EndDate    time.Time      `json:"end_date"`   // Date of the last daily record in the week
	Average    int            `json:"average"`    // Mean of daily averages, rounded half-up
	Min        float64        `json:"min"`
	Max        float64        `json:"max"`
	Index      IntensityLevel `json:"index"`
	Days       int            `json:"days"` // Number of daily records folded into the week
}

// YearSummary holds the headline numbers over a weekly series.
type YearSummary struct {
	Year      int     `json:"year"`
	Weeks     int     `json:"weeks"`
	TotalDays int     `json:"total_days"`
	Average   int     `json:"average"` // Mean of weekly averages, rounded half-up
	Min       float64 `json:"min"`     // Lowest weekly minimum
	Max       float64 `json:"max"`     // Highest weekly maximum
}

// WeeklyResult is what the weekly pipeline hands to its consumers.
type WeeklyResult struct {
	Year    int             `json:"year"`
	Weeks   []WeeklySummary `json:"weeks"`
	Summary YearSummary     `json:"summary"`
}

// DailyResult is the sorted daily series for a year.
type DailyResult struct {
	Year int           `json:"year"`
	Days []DailyRecord `json:"days"`
}

// CurrentIntensity is the national intensity for the current half hour.
// Actual is nil until the upstream has published a measured value.
type CurrentIntensity struct {
	From     time.Time      `json:"from"`
	To       time.Time      `json:"to"`
	Forecast int            `json:"forecast"`
	Actual   *int           `json:"actual"`
	Index    IntensityLevel `json:"index"`
}

// GenerationMix is the share of one fuel in the current generation mix.
type GenerationMix struct {
	Fuel string  `json:"fuel"`
	Perc float64 `json:"perc"`
}

// GenerationResult is the current generation mix for the whole grid.
type GenerationResult struct {
	From           time.Time       `json:"from"`
	To             time.Time       `json:"to"`
	Mix            []GenerationMix `json:"mix"`
	RenewableShare float64         `json:"renewable_share"`
}

// Region is the forecast intensity and mix for one DNO region.
type Region struct {
	RegionID      int              `json:"region_id"`
	DNORegion     string           `json:"dno_region"`
	ShortName     string           `json:"short_name"`
	Intensity     CurrentIntensity `json:"intensity"`
	GenerationMix []GenerationMix  `json:"generation_mix"`
}

// RegionGroup is a named set of regions sorted by ascending forecast.
type RegionGroup struct {
	Name    string   `json:"name"`
	Regions []Region `json:"regions"`
}
