package service

import (
	"math"

	"deal-calculator/domain"
)

// NPV discounts cashFlows at rate (a fraction). The first flow is at t=0 and
// is not discounted.
func NPV(cashFlows []float64, rate float64) float64 {
	npv := 0.0
	for t, cf := range cashFlows {
		npv += cf / math.Pow(1+rate, float64(t))
	}
	return npv
}

// IRR searches for the rate at which NPV is zero by bisection over
// [IRRLowerBound, IRRUpperBound] and returns it as a percentage.
//
// The search assumes NPV decreases with the rate, which holds when every flow
// after the first is non-negative. Mixed-sign series may have several roots or
// none and the result is then only an approximation. When NPV has the same
// sign at both ends of the bracket there is no root to find: the result is the
// bound the search would saturate at and converged is false.
func IRR(cashFlows []float64) (irr float64, converged bool) {
	if !hasNonZero(cashFlows) {
		return 0, false
	}

	low, high := IRRLowerBound, IRRUpperBound
	npvLow, npvHigh := NPV(cashFlows, low), NPV(cashFlows, high)
	switch {
	case npvLow > 0 && npvHigh > 0:
		return high * 100, false
	case npvLow < 0 && npvHigh < 0:
		return low * 100, false
	}

	mid := 0.0
	for i := 0; i < IRRMaxIterations; i++ {
		mid = (low + high) / 2
		npv := NPV(cashFlows, mid)
		if math.Abs(npv) < IRRTolerance {
			return mid * 100, true
		}
		if npv > 0 {
			low = mid
		} else {
			high = mid
		}
	}
	return mid * 100, false
}

// PaybackPeriod returns the first 0-based index at which the cumulative cash
// flow is non-negative, or len(cashFlows) when it never is.
func PaybackPeriod(cashFlows []float64) int {
	cumulative := 0.0
	for i, cf := range cashFlows {
		cumulative += cf
		if cumulative >= 0 {
			return i
		}
	}
	return len(cashFlows)
}

// ComputeFinancialMetrics derives NPV, IRR and payback period from a cash-flow
// series. An empty series yields zero metrics.
func ComputeFinancialMetrics(cashFlows []float64, discountRate float64) domain.FinancialMetrics {
	if len(cashFlows) == 0 {
		return domain.FinancialMetrics{}
	}
	irr, converged := IRR(cashFlows)
	return domain.FinancialMetrics{
		NPV:           NPV(cashFlows, discountRate),
		IRR:           irr,
		IRRConverged:  converged,
		PaybackPeriod: PaybackPeriod(cashFlows),
	}
}

// BlendCashFlows sums the three scenario payouts of each year into a single
// stream. The structures are mutually exclusive in practice; the blended
// stream is only used for return metrics.
func BlendCashFlows(series []domain.YearlyPayout) []float64 {
	flows := make([]float64, len(series))
	for i, y := range series {
		flows[i] = float64(y.Total())
	}
	return flows
}

// CalculateDeal runs the projection and derives metrics from the blended
// stream, discounted at the deal's interest rate.
func CalculateDeal(p domain.DealParameters) (domain.DealResult, error) {
	projection, err := ProjectDealScenarios(p)
	if err != nil {
		return domain.DealResult{}, err
	}
	return domain.DealResult{
		Parameters: p,
		Series:     projection.Series,
		Summary:    projection.Summary,
		Metrics:    ComputeFinancialMetrics(BlendCashFlows(projection.Series), p.InterestRate/100),
	}, nil
}

func hasNonZero(values []float64) bool {
	for _, v := range values {
		if v != 0 {
			return true
		}
	}
	return false
}
