package domain

type Range struct {
	Min float64 `json:"min"`
	Avg float64 `json:"avg"`
	Max float64 `json:"max"`
}

// IndustryBenchmark holds typical deal ranges for an industry.
type IndustryBenchmark struct {
	Industry        string `json:"industry"`
	RevenueMultiple Range  `json:"revenueMultiple"`
	EBITDAMultiple  Range  `json:"ebitdaMultiple"`
	GrowthRate      Range  `json:"growthRate"`
	DealSize        Range  `json:"dealSize"`
	EarnOutPercent  Range  `json:"earnOutPercent"`
	LastUpdated     string `json:"lastUpdated"`
}

type BenchmarkMetric string

const (
	MetricRevenue BenchmarkMetric = "revenue"
	MetricEBITDA  BenchmarkMetric = "ebitda"
	MetricGrowth  BenchmarkMetric = "growth"
	MetricEarnOut BenchmarkMetric = "earnOut"
)

type BenchmarkPosition string

const (
	PositionBelowMin BenchmarkPosition = "below_min"
	PositionBelowAvg BenchmarkPosition = "below_avg"
	PositionAtAvg    BenchmarkPosition = "at_avg"
	PositionAboveAvg BenchmarkPosition = "above_avg"
	PositionAboveMax BenchmarkPosition = "above_max"
)

type BenchmarkComparison struct {
	Industry   string            `json:"industry"`
	Metric     BenchmarkMetric   `json:"metric"`
	Benchmark  Range             `json:"benchmark"`
	Position   BenchmarkPosition `json:"position"`
	Percentile int               `json:"percentile"`
}
