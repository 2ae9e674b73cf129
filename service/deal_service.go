package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"deal-calculator/domain"
	"deal-calculator/metrics"
	"deal-calculator/repository"
)

const cacheKeyPrefix = "deal:calc:v1:"

// MonteCarloConfig bounds sampling requests served by DealService.
type MonteCarloConfig struct {
	DefaultTrials int
	MaxTrials     int
	Volatility    float64
	Workers       int
}

func DefaultMonteCarloConfig() MonteCarloConfig {
	return MonteCarloConfig{
		DefaultTrials: DefaultMonteCarloTrials,
		MaxTrials:     MaxMonteCarloTrials,
		Volatility:    DefaultMonteCarloVolatility,
		Workers:       DefaultMonteCarloWorkers,
	}
}

type DealService struct {
	cache      repository.CacheRepository
	logger     *zap.Logger
	monteCarlo MonteCarloConfig
}

// NewDealService creates a DealService. Results of CalculateDeal are memoised
// in cache.
func NewDealService(
	cache repository.CacheRepository,
	logger *zap.Logger,
	monteCarlo MonteCarloConfig,
) *DealService {
	return &DealService{
		cache:      cache,
		logger:     logger.Named("deal"),
		monteCarlo: monteCarlo,
	}
}

// CalculateDeal projects the three exit structures and derives the blended
// return metrics.
func (s *DealService) CalculateDeal(
	ctx context.Context,
	params domain.DealParameters,
) (domain.DealResult, error) {
	const op = "calculate"
	defer observeDuration(op, time.Now())

	if err := ValidateParameters(params); err != nil {
		s.recordFailure(op, err)
		return domain.DealResult{}, err
	}

	key, err := cacheKey(params)
	if err != nil {
		s.logger.Warn("failed to build cache key", zap.Error(err))
	} else if cached, ok := s.cache.Get(ctx, key); ok {
		var result domain.DealResult
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			metrics.CalculationsTotal.WithLabelValues(op, metrics.StatusOK).Inc()
			return result, nil
		}
		s.logger.Warn("discarding unreadable cache entry", zap.String("key", key))
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()

	result, err := CalculateDeal(params)
	if err != nil {
		s.recordFailure(op, err)
		return domain.DealResult{}, err
	}

	// Caching is not critical; a failed write only costs a recomputation.
	if key != "" {
		if data, err := json.Marshal(result); err != nil {
			s.logger.Warn("failed to encode deal result", zap.Error(err))
		} else if err := s.cache.Set(ctx, key, string(data)); err != nil {
			s.logger.Warn("failed to cache deal result", zap.Error(err))
		}
	}

	metrics.CalculationsTotal.WithLabelValues(op, metrics.StatusOK).Inc()
	s.logger.Debug("deal calculated",
		zap.Int("years", params.EarnOutYears),
		zap.Float64("npv", result.Metrics.NPV),
		zap.Float64("irr", result.Metrics.IRR),
		zap.Int("paybackPeriod", result.Metrics.PaybackPeriod),
	)
	return result, nil
}

// ComputeMetrics derives return metrics for a caller-supplied cash-flow series.
func (s *DealService) ComputeMetrics(cashFlows []float64, discountRate float64) (domain.FinancialMetrics, error) {
	const op = "metrics"
	defer observeDuration(op, time.Now())

	for i, cf := range cashFlows {
		if !isFinite(cf) {
			err := invalidParam(fmt.Sprintf("cashFlows[%d]", i), cf, "must be finite")
			s.recordFailure(op, err)
			return domain.FinancialMetrics{}, err
		}
	}
	if !isFinite(discountRate) || discountRate <= -1 {
		err := invalidParam("discountRate", discountRate, "must be greater than -1")
		s.recordFailure(op, err)
		return domain.FinancialMetrics{}, err
	}

	result := ComputeFinancialMetrics(cashFlows, discountRate)
	if len(cashFlows) > 0 && !result.IRRConverged {
		s.logger.Debug("irr search did not converge", zap.Int("periods", len(cashFlows)))
	}
	metrics.CalculationsTotal.WithLabelValues(op, metrics.StatusOK).Inc()
	return result, nil
}

// RunMonteCarlo samples the deal. A zero trials count uses the configured
// default and a nil seed draws a fresh one.
func (s *DealService) RunMonteCarlo(
	ctx context.Context,
	params domain.DealParameters,
	trials int,
	seed *uint64,
) (domain.MonteCarloResult, error) {
	const op = "monte_carlo"
	defer observeDuration(op, time.Now())

	if trials == 0 {
		trials = s.monteCarlo.DefaultTrials
	}
	if trials < 1 || trials > s.monteCarlo.MaxTrials {
		err := invalidParam("trials", float64(trials), fmt.Sprintf("must be between 1 and %d", s.monteCarlo.MaxTrials))
		s.recordFailure(op, err)
		return domain.MonteCarloResult{}, err
	}

	opts := MonteCarloOptions{
		Trials:     trials,
		Volatility: s.monteCarlo.Volatility,
		Workers:    s.monteCarlo.Workers,
	}
	if seed != nil {
		opts.Seed = *seed
	} else {
		opts.Seed = rand.Uint64()
	}

	result, err := RunMonteCarlo(ctx, params, opts)
	if err != nil {
		s.recordFailure(op, err)
		return domain.MonteCarloResult{}, err
	}

	metrics.MonteCarloTrials.Add(float64(result.Trials))
	metrics.CalculationsTotal.WithLabelValues(op, metrics.StatusOK).Inc()
	s.logger.Info("monte carlo completed",
		zap.Int("trials", result.Trials),
		zap.Uint64("seed", result.Seed),
		zap.Float64("npvMean", result.NPV.Mean),
		zap.Float64("npvStd", result.NPV.Std),
	)
	return result, nil
}

func (s *DealService) CompareToIndustry(
	value float64,
	industry string,
	metric domain.BenchmarkMetric,
) (domain.BenchmarkComparison, error) {
	if math.IsNaN(value) {
		return domain.BenchmarkComparison{}, invalidParam("value", value, "must be a number")
	}
	comparison, err := CompareToIndustry(value, industry, metric)
	if err != nil {
		s.logger.Debug("benchmark comparison rejected", zap.Error(err))
		return domain.BenchmarkComparison{}, err
	}
	return comparison, nil
}

func (s *DealService) recordFailure(op string, err error) {
	status := metrics.StatusError
	if errors.Is(err, ErrInvalidParameter) {
		status = metrics.StatusInvalid
	}
	metrics.CalculationsTotal.WithLabelValues(op, status).Inc()
	s.logger.Debug("calculation rejected", zap.String("operation", op), zap.Error(err))
}

func observeDuration(op string, start time.Time) {
	metrics.CalculationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// cacheKey hashes the canonical JSON encoding of params.
func cacheKey(params domain.DealParameters) (string, error) {
	data, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("encode parameters: %w", err)
	}
	return fmt.Sprintf("%s%016x", cacheKeyPrefix, xxhash.Sum64(data)), nil
}
