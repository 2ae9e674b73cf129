package service

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"deal-calculator/domain"
)

var (
	ErrUnknownIndustry = errors.New("unknown industry")
	ErrUnknownMetric   = errors.New("unknown benchmark metric")
)

const benchmarksUpdated = "2024-01"

var industryBenchmarks = map[string]domain.IndustryBenchmark{
	"Technology": {
		Industry:        "Technology",
		RevenueMultiple: domain.Range{Min: 2.5, Avg: 4.2, Max: 8.0},
		EBITDAMultiple:  domain.Range{Min: 8.0, Avg: 12.5, Max: 18.0},
		GrowthRate:      domain.Range{Min: 15, Avg: 25, Max: 50},
		DealSize:        domain.Range{Min: 5_000_000, Avg: 25_000_000, Max: 100_000_000},
		EarnOutPercent:  domain.Range{Min: 10, Avg: 25, Max: 40},
		LastUpdated:     benchmarksUpdated,
	},
	"Healthcare": {
		Industry:        "Healthcare",
		RevenueMultiple: domain.Range{Min: 3.0, Avg: 5.5, Max: 9.0},
		EBITDAMultiple:  domain.Range{Min: 10.0, Avg: 15.0, Max: 22.0},
		GrowthRate:      domain.Range{Min: 8, Avg: 15, Max: 30},
		DealSize:        domain.Range{Min: 10_000_000, Avg: 50_000_000, Max: 200_000_000},
		EarnOutPercent:  domain.Range{Min: 15, Avg: 30, Max: 45},
		LastUpdated:     benchmarksUpdated,
	},
	"Financial Services": {
		Industry:        "Financial Services",
		RevenueMultiple: domain.Range{Min: 1.5, Avg: 2.8, Max: 5.0},
		EBITDAMultiple:  domain.Range{Min: 6.0, Avg: 9.5, Max: 14.0},
		GrowthRate:      domain.Range{Min: 5, Avg: 12, Max: 25},
		DealSize:        domain.Range{Min: 20_000_000, Avg: 100_000_000, Max: 500_000_000},
		EarnOutPercent:  domain.Range{Min: 5, Avg: 15, Max: 25},
		LastUpdated:     benchmarksUpdated,
	},
	"Manufacturing": {
		Industry:        "Manufacturing",
		RevenueMultiple: domain.Range{Min: 1.0, Avg: 2.2, Max: 4.5},
		EBITDAMultiple:  domain.Range{Min: 5.0, Avg: 8.0, Max: 12.0},
		GrowthRate:      domain.Range{Min: 3, Avg: 8, Max: 15},
		DealSize:        domain.Range{Min: 15_000_000, Avg: 75_000_000, Max: 300_000_000},
		EarnOutPercent:  domain.Range{Min: 8, Avg: 18, Max: 30},
		LastUpdated:     benchmarksUpdated,
	},
	"Retail": {
		Industry:        "Retail",
		RevenueMultiple: domain.Range{Min: 0.8, Avg: 1.8, Max: 3.5},
		EBITDAMultiple:  domain.Range{Min: 4.0, Avg: 7.0, Max: 11.0},
		GrowthRate:      domain.Range{Min: 2, Avg: 6, Max: 12},
		DealSize:        domain.Range{Min: 10_000_000, Avg: 40_000_000, Max: 150_000_000},
		EarnOutPercent:  domain.Range{Min: 12, Avg: 22, Max: 35},
		LastUpdated:     benchmarksUpdated,
	},
	"Energy": {
		Industry:        "Energy",
		RevenueMultiple: domain.Range{Min: 1.2, Avg: 2.5, Max: 5.0},
		EBITDAMultiple:  domain.Range{Min: 4.5, Avg: 7.5, Max: 12.0},
		GrowthRate:      domain.Range{Min: 1, Avg: 5, Max: 10},
		DealSize:        domain.Range{Min: 50_000_000, Avg: 200_000_000, Max: 1_000_000_000},
		EarnOutPercent:  domain.Range{Min: 5, Avg: 12, Max: 20},
		LastUpdated:     benchmarksUpdated,
	},
	"Real Estate": {
		Industry:        "Real Estate",
		RevenueMultiple: domain.Range{Min: 2.0, Avg: 4.0, Max: 7.0},
		EBITDAMultiple:  domain.Range{Min: 8.0, Avg: 12.0, Max: 18.0},
		GrowthRate:      domain.Range{Min: 2, Avg: 5, Max: 8},
		DealSize:        domain.Range{Min: 25_000_000, Avg: 100_000_000, Max: 500_000_000},
		EarnOutPercent:  domain.Range{Min: 3, Avg: 8, Max: 15},
		LastUpdated:     benchmarksUpdated,
	},
}

// ListIndustries returns the benchmarked industries sorted by name.
func ListIndustries() []string {
	names := make([]string, 0, len(industryBenchmarks))
	for name := range industryBenchmarks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func GetIndustryBenchmark(industry string) (domain.IndustryBenchmark, bool) {
	b, ok := industryBenchmarks[industry]
	return b, ok
}

// CompareToIndustry places value inside the industry's range for metric.
// Revenue and EBITDA values are deal values and are compared in millions.
func CompareToIndustry(value float64, industry string, metric domain.BenchmarkMetric) (domain.BenchmarkComparison, error) {
	benchmark, ok := GetIndustryBenchmark(industry)
	if !ok {
		return domain.BenchmarkComparison{}, fmt.Errorf("%w: %s", ErrUnknownIndustry, industry)
	}

	var r domain.Range
	switch metric {
	case domain.MetricRevenue:
		r = benchmark.RevenueMultiple
		value /= 1_000_000
	case domain.MetricEBITDA:
		r = benchmark.EBITDAMultiple
		value /= 1_000_000
	case domain.MetricGrowth:
		r = benchmark.GrowthRate
	case domain.MetricEarnOut:
		r = benchmark.EarnOutPercent
	default:
		return domain.BenchmarkComparison{}, fmt.Errorf("%w: %s", ErrUnknownMetric, metric)
	}

	position, percentile := placeInRange(value, r)
	return domain.BenchmarkComparison{
		Industry:   industry,
		Metric:     metric,
		Benchmark:  r,
		Position:   position,
		Percentile: int(math.Round(percentile)),
	}, nil
}

// placeInRange interpolates linearly between min/avg (0-50) and avg/max (50-100).
func placeInRange(value float64, r domain.Range) (domain.BenchmarkPosition, float64) {
	switch {
	case value < r.Min:
		return domain.PositionBelowMin, 0
	case value < r.Avg:
		return domain.PositionBelowAvg, (value - r.Min) / (r.Avg - r.Min) * 50
	case value == r.Avg:
		return domain.PositionAtAvg, 50
	case value < r.Max:
		return domain.PositionAboveAvg, 50 + (value-r.Avg)/(r.Max-r.Avg)*50
	default:
		return domain.PositionAboveMax, 100
	}
}
