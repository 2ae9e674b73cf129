package service

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"deal-calculator/domain"
)

// MonteCarloOptions controls a sampling run. Zero values fall back to the
// package defaults, except Seed which is used as given.
type MonteCarloOptions struct {
	Trials     int
	Seed       uint64
	Volatility float64 // relative std dev of the churn and growth draws
	Workers    int
}

// RunMonteCarlo perturbs churn and growth with normal draws around the given
// values, evaluates every trial independently and summarises the resulting
// NPV and IRR distributions. All draws come from a single source seeded with
// opts.Seed before evaluation starts, so the result only depends on the seed.
func RunMonteCarlo(ctx context.Context, p domain.DealParameters, opts MonteCarloOptions) (domain.MonteCarloResult, error) {
	if err := ValidateParameters(p); err != nil {
		return domain.MonteCarloResult{}, err
	}
	if opts.Trials < 1 || opts.Trials > MaxMonteCarloTrials {
		return domain.MonteCarloResult{}, invalidParam("trials", float64(opts.Trials),
			fmt.Sprintf("must be between 1 and %d", MaxMonteCarloTrials))
	}
	if opts.Volatility == 0 {
		opts.Volatility = DefaultMonteCarloVolatility
	}
	if !isFinite(opts.Volatility) || opts.Volatility < 0 {
		return domain.MonteCarloResult{}, invalidParam("volatility", opts.Volatility, "must be zero or positive")
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultMonteCarloWorkers
	}

	trials := drawTrials(p, opts)

	npvs := make([]float64, len(trials))
	irrs := make([]float64, len(trials))

	g, ctx := errgroup.WithContext(ctx)
	chunk := (len(trials) + opts.Workers - 1) / opts.Workers
	for start := 0; start < len(trials); start += chunk {
		end := min(start+chunk, len(trials))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				result, err := CalculateDeal(trials[i])
				if err != nil {
					return fmt.Errorf("trial %d: %w", i, err)
				}
				npvs[i] = result.Metrics.NPV
				irrs[i] = result.Metrics.IRR
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.MonteCarloResult{}, err
	}

	return domain.MonteCarloResult{
		Trials: len(trials),
		Seed:   opts.Seed,
		NPV:    distribution(npvs),
		IRR:    distribution(irrs),
	}, nil
}

func drawTrials(p domain.DealParameters, opts MonteCarloOptions) []domain.DealParameters {
	src := rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)
	churn := distuv.Normal{Mu: p.ChurnRate, Sigma: spread(p.ChurnRate, opts.Volatility), Src: src}
	growth := distuv.Normal{Mu: p.GrowthRate, Sigma: spread(p.GrowthRate, opts.Volatility), Src: src}

	trials := make([]domain.DealParameters, opts.Trials)
	for i := range trials {
		trial := p
		trial.GrowthRate = math.Max(growth.Rand(), -100)
		trial.ChurnRate = math.Max(churn.Rand(), 0)
		// Revenue can shrink to zero but never turn negative.
		if trial.ChurnRate-trial.GrowthRate > 100 {
			trial.ChurnRate = trial.GrowthRate + 100
		}
		trials[i] = trial
	}
	return trials
}

// spread is the std dev of a rate draw. Zero-valued rates still get a small
// spread so they are actually sampled.
func spread(rate, volatility float64) float64 {
	return math.Max(math.Abs(rate)*volatility, MinVolatilitySpread)
}

func distribution(values []float64) domain.Distribution {
	if len(values) == 0 {
		return domain.Distribution{}
	}
	mean, std := stat.MeanStdDev(values, nil)
	if len(values) < 2 {
		std = 0
	}
	return domain.Distribution{
		Mean: mean,
		Std:  std,
		Min:  floats.Min(values),
		Max:  floats.Max(values),
	}
}
