package domain

import "fmt"

// DealParameters are the inputs of a single deal calculation. Percentages are
// expressed in whole units (25 means 25%).
type DealParameters struct {
	AnnualRevenue          float64 `json:"annualRevenue"`
	ChurnRate              float64 `json:"churnRate"`
	GrowthRate             float64 `json:"growthRate"`
	EarnOutPercent         float64 `json:"earnOutPercent"`
	EarnOutYears           int     `json:"earnOutYears"`
	SellerFinancingPercent float64 `json:"sellerFinancingPercent"`
	AllCashPercent         float64 `json:"allCashPercent"`
	TaxRate                float64 `json:"taxRate"`
	InterestRate           float64 `json:"interestRate"`

	// Pass-through fields, not used by the projection.
	InflationRate float64 `json:"inflationRate,omitempty"`
	Currency      string  `json:"currency,omitempty"`
}

// YearlyPayout holds the rounded payout of each scenario for one projected year.
type YearlyPayout struct {
	Year            int   `json:"year"`
	EarnOut         int64 `json:"earnOut"`
	SellerFinancing int64 `json:"sellerFinancing"`
	AllCash         int64 `json:"allCash"`
}

// Label is the chart axis label for the year.
func (y YearlyPayout) Label() string {
	return fmt.Sprintf("Year %d", y.Year)
}

// Payout returns the payout of the given scenario.
func (y YearlyPayout) Payout(kind ScenarioKind) int64 {
	switch kind {
	case EarnOut:
		return y.EarnOut
	case SellerFinancing:
		return y.SellerFinancing
	case AllCash:
		return y.AllCash
	}
	return 0
}

// Total is the blended payout of the three scenarios for the year.
func (y YearlyPayout) Total() int64 {
	return y.EarnOut + y.SellerFinancing + y.AllCash
}

// ScenarioSummary is the pre-tax total, the tax on it and the net of one structure.
type ScenarioSummary struct {
	Total int64 `json:"total"`
	Taxes int64 `json:"taxes"`
	Net   int64 `json:"net"`
}

// DealSummary aggregates the totals of every exit structure.
type DealSummary struct {
	EarnOut         ScenarioSummary `json:"earnOut"`
	SellerFinancing ScenarioSummary `json:"sellerFinancing"`
	AllCash         ScenarioSummary `json:"allCash"`
}

// Scenario returns the summary for kind.
func (s DealSummary) Scenario(kind ScenarioKind) ScenarioSummary {
	switch kind {
	case EarnOut:
		return s.EarnOut
	case SellerFinancing:
		return s.SellerFinancing
	case AllCash:
		return s.AllCash
	}
	return ScenarioSummary{}
}

// Projection is the output of the scenario projector.
type Projection struct {
	Series  []YearlyPayout `json:"series"`
	Summary DealSummary    `json:"summary"`
}

// FinancialMetrics are the return metrics of a cash-flow series.
type FinancialMetrics struct {
	NPV float64 `json:"npv"`
	// IRR is a percentage. IRRConverged is false when the search ended without
	// reaching the NPV tolerance (no root inside the search bracket).
	IRR           float64 `json:"irr"`
	IRRConverged  bool    `json:"irrConverged"`
	PaybackPeriod int     `json:"paybackPeriod"`
}

// DealResult is the full output of one calculation.
type DealResult struct {
	Parameters DealParameters   `json:"parameters"`
	Series     []YearlyPayout   `json:"series"`
	Summary    DealSummary      `json:"summary"`
	Metrics    FinancialMetrics `json:"metrics"`
}
