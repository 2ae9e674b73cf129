package service

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"deal-calculator/domain"
)

var hundred = decimal.NewFromInt(100)

// roundCurrency rounds half away from zero to whole currency units.
func roundCurrency(value float64) int64 {
	return int64(math.Round(value))
}

// taxOn returns round(total × rate/100) using exact decimal arithmetic so that
// half-unit boundaries are not lost to binary floating point.
func taxOn(total int64, rate float64) int64 {
	return decimal.NewFromInt(total).
		Mul(decimal.NewFromFloat(rate)).
		Div(hundred).
		Round(0).
		IntPart()
}

func summarize(total int64, taxRate float64) domain.ScenarioSummary {
	taxes := taxOn(total, taxRate)
	return domain.ScenarioSummary{
		Total: total,
		Taxes: taxes,
		Net:   total - taxes,
	}
}

// allCashAtClose is the single all-cash payment, always computed against the
// starting revenue.
func allCashAtClose(p domain.DealParameters) int64 {
	return roundCurrency(p.AnnualRevenue * p.AllCashPercent / 100)
}

// ValidateParameters checks the invariants the projection depends on. The
// split constraint (percentages summing to at most 100) belongs to the caller.
func ValidateParameters(p domain.DealParameters) error {
	if !isFinite(p.AnnualRevenue) || p.AnnualRevenue <= 0 {
		return invalidParam("annualRevenue", p.AnnualRevenue, "must be a positive finite amount")
	}
	if p.AnnualRevenue > MaxCurrencyAmount {
		return invalidParam("annualRevenue", p.AnnualRevenue, "exceeds the largest supported amount")
	}
	if !isFinite(p.ChurnRate) || p.ChurnRate < 0 {
		return invalidParam("churnRate", p.ChurnRate, "must be zero or positive")
	}
	if !isFinite(p.GrowthRate) {
		return invalidParam("growthRate", p.GrowthRate, "must be finite")
	}

	percents := []struct {
		field string
		value float64
	}{
		{"earnOutPercent", p.EarnOutPercent},
		{"sellerFinancingPercent", p.SellerFinancingPercent},
		{"allCashPercent", p.AllCashPercent},
		{"taxRate", p.TaxRate},
	}
	for _, pc := range percents {
		if !isFinite(pc.value) || pc.value < 0 || pc.value > MaxPercent {
			return invalidParam(pc.field, pc.value, "must be between 0 and 100")
		}
	}

	if p.EarnOutYears < MinEarnOutYears || p.EarnOutYears > MaxEarnOutYears {
		return invalidParam("earnOutYears", float64(p.EarnOutYears), "must be between 1 and 10")
	}
	if !isFinite(p.InterestRate) || p.InterestRate <= -100 {
		return invalidParam("interestRate", p.InterestRate, "must be greater than -100")
	}
	if !isFinite(p.InflationRate) {
		return invalidParam("inflationRate", p.InflationRate, "must be finite")
	}
	// A negative revenue factor would flip the sign of every later payout.
	if p.ChurnRate-p.GrowthRate > 100+revenueFactorEpsilon {
		return invalidParam("churnRate", p.ChurnRate, "churn exceeds growth by more than 100 points")
	}
	return nil
}

// withinCurrencyRange reports whether an unrounded payout can be rounded to
// an exact non-negative int64.
func withinCurrencyRange(v float64) bool {
	return isFinite(v) && v >= 0 && v <= MaxCurrencyAmount
}

func outOfRange(p domain.DealParameters, year int) error {
	return invalidParam("annualRevenue", p.AnnualRevenue,
		fmt.Sprintf("projected payouts in year %d exceed %d", year, int64(MaxCurrencyAmount)))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ProjectDealScenarios projects the yearly payouts of the earn-out,
// seller-financing and all-cash structures and aggregates their totals.
//
// Revenue evolves by (1 + growth - churn) after each year's payouts, so year 1
// uses the starting revenue. Seller financing compounds by year index on the
// current revenue. All-cash is paid once, in year 1, on the starting revenue.
// Every series has EarnOutYears entries.
func ProjectDealScenarios(p domain.DealParameters) (domain.Projection, error) {
	if err := ValidateParameters(p); err != nil {
		return domain.Projection{}, err
	}

	revenueFactor := math.Max(0, 1+p.GrowthRate/100-p.ChurnRate/100)
	interestFactor := 1 + p.InterestRate/100

	series := make([]domain.YearlyPayout, 0, p.EarnOutYears)
	revenue := p.AnnualRevenue
	var earnOutTotal, sellerFinancingTotal, allCashTotal int64

	for year := 1; year <= p.EarnOutYears; year++ {
		earnOut := revenue * p.EarnOutPercent / 100
		sellerFinancing := revenue * p.SellerFinancingPercent / 100 * math.Pow(interestFactor, float64(year))
		if !withinCurrencyRange(earnOut) || !withinCurrencyRange(sellerFinancing) {
			return domain.Projection{}, outOfRange(p, year)
		}

		payout := domain.YearlyPayout{
			Year:            year,
			EarnOut:         roundCurrency(earnOut),
			SellerFinancing: roundCurrency(sellerFinancing),
		}
		if year == 1 {
			payout.AllCash = allCashAtClose(p)
		}
		series = append(series, payout)

		earnOutTotal += payout.EarnOut
		sellerFinancingTotal += payout.SellerFinancing
		allCashTotal += payout.AllCash
		if earnOutTotal > MaxCurrencyAmount || sellerFinancingTotal > MaxCurrencyAmount {
			return domain.Projection{}, outOfRange(p, year)
		}

		revenue *= revenueFactor
	}

	return domain.Projection{
		Series: series,
		Summary: domain.DealSummary{
			EarnOut:         summarize(earnOutTotal, p.TaxRate),
			SellerFinancing: summarize(sellerFinancingTotal, p.TaxRate),
			AllCash:         summarize(allCashTotal, p.TaxRate),
		},
	}, nil
}
