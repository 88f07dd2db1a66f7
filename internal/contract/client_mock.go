package contract

import (
	"context"
	"time"

	"github.com/huangsam/gridcarbon/schema"
	"github.com/stretchr/testify/mock"
)

// MockIntensityClient is a mock implementation of IntensityClient for testing.
type MockIntensityClient struct {
	mock.Mock
}

var _ IntensityClient = &MockIntensityClient{} // Compile-time check

// GetStats implements the IntensityClient interface.
func (m *MockIntensityClient) GetStats(ctx context.Context, from, to time.Time, blockHours int) ([]schema.DailyRecord, error) {
	ret := m.Called(ctx, from, to, blockHours)
	records, _ := ret.Get(0).([]schema.DailyRecord)
	return records, ret.Error(1)
}

// GetCurrent implements the IntensityClient interface.
func (m *MockIntensityClient) GetCurrent(ctx context.Context) (schema.CurrentIntensity, error) {
	ret := m.Called(ctx)
	current, _ := ret.Get(0).(schema.CurrentIntensity)
	return current, ret.Error(1)
}

// GetGeneration implements the IntensityClient interface.
func (m *MockIntensityClient) GetGeneration(ctx context.Context) (schema.GenerationResult, error) {
	ret := m.Called(ctx)
	result, _ := ret.Get(0).(schema.GenerationResult)
	return result, ret.Error(1)
}

// GetRegional implements the IntensityClient interface.
func (m *MockIntensityClient) GetRegional(ctx context.Context) ([]schema.Region, error) {
	ret := m.Called(ctx)
	regions, _ := ret.Get(0).([]schema.Region)
	return regions, ret.Error(1)
}
