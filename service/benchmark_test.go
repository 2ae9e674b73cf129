package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deal-calculator/domain"
)

func TestListIndustries(t *testing.T) {
	industries := ListIndustries()

	assert.Equal(t, []string{
		"Energy",
		"Financial Services",
		"Healthcare",
		"Manufacturing",
		"Real Estate",
		"Retail",
		"Technology",
	}, industries)
}

func TestGetIndustryBenchmark(t *testing.T) {
	b, ok := GetIndustryBenchmark("Healthcare")
	require.True(t, ok)
	assert.Equal(t, "Healthcare", b.Industry)
	assert.Equal(t, domain.Range{Min: 15, Avg: 30, Max: 45}, b.EarnOutPercent)
	assert.Equal(t, "2024-01", b.LastUpdated)

	_, ok = GetIndustryBenchmark("Aerospace")
	assert.False(t, ok)
}

func TestCompareToIndustry(t *testing.T) {
	tests := []struct {
		name       string
		value      float64
		metric     domain.BenchmarkMetric
		position   domain.BenchmarkPosition
		percentile int
	}{
		{"growth below min", 10, domain.MetricGrowth, domain.PositionBelowMin, 0},
		{"growth below avg", 20, domain.MetricGrowth, domain.PositionBelowAvg, 25},
		{"growth at avg", 25, domain.MetricGrowth, domain.PositionAtAvg, 50},
		{"growth above avg", 37.5, domain.MetricGrowth, domain.PositionAboveAvg, 75},
		{"growth above max", 60, domain.MetricGrowth, domain.PositionAboveMax, 100},
		{"growth at max", 50, domain.MetricGrowth, domain.PositionAboveMax, 100},
		{"revenue in millions", 6_000_000, domain.MetricRevenue, domain.PositionAboveAvg, 74},
		{"ebitda at avg", 12_500_000, domain.MetricEBITDA, domain.PositionAtAvg, 50},
		{"earn-out below avg", 17.5, domain.MetricEarnOut, domain.PositionBelowAvg, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := CompareToIndustry(tt.value, "Technology", tt.metric)
			require.NoError(t, err)

			assert.Equal(t, "Technology", c.Industry)
			assert.Equal(t, tt.metric, c.Metric)
			assert.Equal(t, tt.position, c.Position)
			assert.Equal(t, tt.percentile, c.Percentile)
		})
	}
}

func TestCompareToIndustry_Unknown(t *testing.T) {
	_, err := CompareToIndustry(10, "Aerospace", domain.MetricGrowth)
	assert.ErrorIs(t, err, ErrUnknownIndustry)

	_, err = CompareToIndustry(10, "Technology", domain.BenchmarkMetric("margin"))
	assert.ErrorIs(t, err, ErrUnknownMetric)
}
