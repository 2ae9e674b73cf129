package service

const (
	MinEarnOutYears = 1
	MaxEarnOutYears = 10
	MaxPercent      = 100.0

	revenueFactorEpsilon = 1e-9

	// MaxCurrencyAmount is the largest payout or total that float64 and int64
	// both represent exactly.
	MaxCurrencyAmount = 1 << 53

	// IRR search bracket as rate fractions (-99% to +1000%).
	IRRLowerBound    = -0.99
	IRRUpperBound    = 10.0
	IRRMaxIterations = 100
	IRRTolerance     = 0.01 // |NPV| considered zero

	DefaultMonteCarloTrials     = 1000
	MaxMonteCarloTrials         = 100_000
	DefaultMonteCarloVolatility = 0.2 // relative std dev of churn/growth draws
	MinVolatilitySpread         = 1.0 // percentage points, floor for zero-valued rates
	DefaultMonteCarloWorkers    = 8
)
