package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deal-calculator/domain"
)

func TestNPV(t *testing.T) {
	tests := []struct {
		name      string
		cashFlows []float64
		rate      float64
		want      float64
	}{
		{"empty", nil, 0.1, 0},
		{"zero rate sums flows", []float64{-100, 60, 60}, 0, 20},
		{"first flow undiscounted", []float64{100}, 0.5, 100},
		{"discounted", []float64{100, 110}, 0.1, 200},
		{"two periods", []float64{0, 0, 121}, 0.1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, NPV(tt.cashFlows, tt.rate), 1e-9)
		})
	}
}

func TestIRR_FindsRootOfNPV(t *testing.T) {
	cashFlows := []float64{-100, 60, 60}

	irr, converged := IRR(cashFlows)

	require.True(t, converged)
	assert.InDelta(t, 13.07, irr, 0.01)
	assert.Less(t, math.Abs(NPV(cashFlows, irr/100)), IRRTolerance)
}

func TestIRR_ZeroSeries(t *testing.T) {
	for _, cashFlows := range [][]float64{nil, {}, {0, 0, 0}} {
		irr, converged := IRR(cashFlows)
		assert.Zero(t, irr)
		assert.False(t, converged)
	}
}

func TestIRR_NoRootSaturatesAtUpperBound(t *testing.T) {
	irr, converged := IRR([]float64{100, 50, 25})

	assert.False(t, converged)
	assert.InDelta(t, IRRUpperBound*100, irr, 1e-9)
}

func TestIRR_NoRootSaturatesAtLowerBound(t *testing.T) {
	irr, converged := IRR([]float64{-100, -50})

	assert.False(t, converged)
	assert.InDelta(t, IRRLowerBound*100, irr, 1e-9)
}

func TestIRR_NonNegativeSeriesHasNoRoot(t *testing.T) {
	// NPV of [0, 0, x] is x/(1+r)^2: positive for every rate in the bracket,
	// and below the tolerance near the upper bound when x is small.
	for _, cashFlows := range [][]float64{{0, 0, 5}, {0, 0, 1}, {1, 2, 3}} {
		irr, converged := IRR(cashFlows)

		assert.False(t, converged, "%v", cashFlows)
		assert.InDelta(t, IRRUpperBound*100, irr, 1e-9, "%v", cashFlows)
	}
}

func TestPaybackPeriod(t *testing.T) {
	tests := []struct {
		name      string
		cashFlows []float64
		want      int
	}{
		{"empty", nil, 0},
		{"positive first flow", []float64{50, 10}, 0},
		{"recovered in third period", []float64{-100, 60, 60}, 2},
		{"exactly zero counts as recovered", []float64{-100, 100}, 1},
		{"never recovered", []float64{-100, 10, 10}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PaybackPeriod(tt.cashFlows))
		})
	}
}

func TestComputeFinancialMetrics_EmptySeries(t *testing.T) {
	assert.Equal(t, domain.FinancialMetrics{}, ComputeFinancialMetrics(nil, 0.1))
}

func TestComputeFinancialMetrics(t *testing.T) {
	m := ComputeFinancialMetrics([]float64{-100, 60, 60}, 0.1)

	assert.InDelta(t, -100+60/1.1+60/1.21, m.NPV, 1e-9)
	assert.InDelta(t, 13.07, m.IRR, 0.01)
	assert.True(t, m.IRRConverged)
	assert.Equal(t, 2, m.PaybackPeriod)
}

func TestBlendCashFlows(t *testing.T) {
	series := []domain.YearlyPayout{
		{Year: 1, EarnOut: 10, SellerFinancing: 20, AllCash: 30},
		{Year: 2, EarnOut: 5, SellerFinancing: 5},
	}

	assert.Equal(t, []float64{60, 10}, BlendCashFlows(series))
	assert.Empty(t, BlendCashFlows(nil))
}

func TestCalculateDeal_ReferenceDeal(t *testing.T) {
	p := referenceDeal()

	result, err := CalculateDeal(p)
	require.NoError(t, err)

	flows := []float64{616_000, 559_944, 608_516}
	assert.Equal(t, flows, BlendCashFlows(result.Series))
	assert.Equal(t, p, result.Parameters)
	assert.InDelta(t, NPV(flows, 0.08), result.Metrics.NPV, 1e-6)
	assert.Equal(t, 0, result.Metrics.PaybackPeriod)
	// Payouts are all inflows so NPV never reaches zero.
	assert.False(t, result.Metrics.IRRConverged)
}

func TestCalculateDeal_InvalidParameters(t *testing.T) {
	p := referenceDeal()
	p.EarnOutYears = 0

	_, err := CalculateDeal(p)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

