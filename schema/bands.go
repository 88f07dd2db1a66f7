package schema

import "fmt"

// IntensityBands holds the exclusive upper bound of each level below "very high".
// A value below VeryLow is very low, below Low is low, and so on.
type IntensityBands struct {
	VeryLow  float64 `json:"very_low"`
	Low      float64 `json:"low"`
	Moderate float64 `json:"moderate"`
	High     float64 `json:"high"`
}

// DefaultBands approximates the national index bands published by the upstream API.
var DefaultBands = IntensityBands{
	VeryLow:  40,
	Low:      120,
	Moderate: 200,
	High:     290,
}

// Classify maps an intensity value onto its level.
func (b IntensityBands) Classify(value float64) IntensityLevel {
	switch {
	case value < b.VeryLow:
		return VeryLowLevel
	case value < b.Low:
		return LowLevel
	case value < b.Moderate:
		return ModerateLevel
	case value < b.High:
		return HighLevel
	default:
		return VeryHighLevel
	}
}

// Validate checks that the bounds are positive and strictly increasing.
func (b IntensityBands) Validate() error {
	if b.VeryLow <= 0 {
		return fmt.Errorf("very_low band must be positive, got %v", b.VeryLow)
	}
	if b.Low <= b.VeryLow || b.Moderate <= b.Low || b.High <= b.Moderate {
		return fmt.Errorf("bands must be strictly increasing: very_low=%v low=%v moderate=%v high=%v",
			b.VeryLow, b.Low, b.Moderate, b.High)
	}
	return nil
}

// Ranges returns a printable range for each level, lowest first.
func (b IntensityBands) Ranges() map[IntensityLevel]string {
	return map[IntensityLevel]string{
		VeryLowLevel:  fmt.Sprintf("0 - %g", b.VeryLow),
		LowLevel:      fmt.Sprintf("%g - %g", b.VeryLow, b.Low),
		ModerateLevel: fmt.Sprintf("%g - %g", b.Low, b.Moderate),
		HighLevel:     fmt.Sprintf("%g - %g", b.Moderate, b.High),
		VeryHighLevel: fmt.Sprintf("%g+", b.High),
	}
}
