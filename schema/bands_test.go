package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		value float64
		want  IntensityLevel
	}{
		{0, VeryLowLevel},
		{39.9, VeryLowLevel},
		{40, LowLevel},  // lower bound is inclusive
		{119, LowLevel}, // just below moderate
		{120, ModerateLevel},
		{199.5, ModerateLevel},
		{200, HighLevel},
		{289, HighLevel},
		{290, VeryHighLevel},
		{1000, VeryHighLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DefaultBands.Classify(tt.value), "value %v", tt.value)
	}
}

func TestValidateBands(t *testing.T) {
	assert.NoError(t, DefaultBands.Validate())

	tests := []struct {
		name  string
		bands IntensityBands
	}{
		{"zero very low", IntensityBands{VeryLow: 0, Low: 10, Moderate: 20, High: 30}},
		{"negative very low", IntensityBands{VeryLow: -5, Low: 10, Moderate: 20, High: 30}},
		{"equal bounds", IntensityBands{VeryLow: 10, Low: 10, Moderate: 20, High: 30}},
		{"decreasing", IntensityBands{VeryLow: 10, Low: 20, Moderate: 15, High: 30}},
		{"high below moderate", IntensityBands{VeryLow: 10, Low: 20, Moderate: 30, High: 25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.bands.Validate())
		})
	}
}

func TestBandRanges(t *testing.T) {
	ranges := DefaultBands.Ranges()
	assert.Len(t, ranges, len(AllIntensityLevels))
	assert.Equal(t, "0 - 40", ranges[VeryLowLevel])
	assert.Equal(t, "120 - 200", ranges[ModerateLevel])
	assert.Equal(t, "290+", ranges[VeryHighLevel])
}
