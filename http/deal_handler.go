package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"deal-calculator/domain"
	"deal-calculator/service"
)

type DealHandler struct {
	service *service.DealService
	logger  *zap.Logger
}

func NewDealHandler(service *service.DealService, logger *zap.Logger) *DealHandler {
	return &DealHandler{service: service, logger: logger}
}

type chartPoint struct {
	Year            int    `json:"year"`
	Label           string `json:"label"`
	EarnOut         int64  `json:"earnOut"`
	SellerFinancing int64  `json:"sellerFinancing"`
	AllCash         int64  `json:"allCash"`
}

type calculateResponse struct {
	CalculationID string                  `json:"calculationId"`
	Parameters    domain.DealParameters   `json:"parameters"`
	Series        []chartPoint            `json:"series"`
	Summary       domain.DealSummary      `json:"summary"`
	Metrics       domain.FinancialMetrics `json:"metrics"`
}

type metricsRequest struct {
	CashFlows    []float64 `json:"cashFlows"`
	DiscountRate float64   `json:"discountRate"`
}

type monteCarloRequest struct {
	Deal   json.RawMessage `json:"deal"`
	Trials int             `json:"trials"`
	Seed   *uint64         `json:"seed,omitempty"`
}

// Calculate handles POST /deal/calculate.
func (h *DealHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		badRequest(w, h.logger, "invalid request body")
		return
	}

	params, err := DecodeDealForm(body)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	result, err := h.service.CalculateDeal(r.Context(), params)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	series := make([]chartPoint, len(result.Series))
	for i, y := range result.Series {
		series[i] = chartPoint{
			Year:            y.Year,
			Label:           y.Label(),
			EarnOut:         y.EarnOut,
			SellerFinancing: y.SellerFinancing,
			AllCash:         y.AllCash,
		}
	}

	writeJSON(w, h.logger, http.StatusOK, calculateResponse{
		CalculationID: uuid.NewString(),
		Parameters:    result.Parameters,
		Series:        series,
		Summary:       result.Summary,
		Metrics:       result.Metrics,
	})
}

// Metrics handles POST /deal/metrics for a raw cash-flow series.
func (h *DealHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	var req metricsRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		badRequest(w, h.logger, "invalid request body")
		return
	}

	result, err := h.service.ComputeMetrics(req.CashFlows, req.DiscountRate)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, result)
}

// MonteCarlo handles POST /deal/monte-carlo.
func (h *DealHandler) MonteCarlo(w http.ResponseWriter, r *http.Request) {
	var req monteCarloRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		badRequest(w, h.logger, "invalid request body")
		return
	}
	if len(req.Deal) == 0 {
		badRequest(w, h.logger, "deal is required")
		return
	}

	params, err := DecodeDealForm(req.Deal)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	result, err := h.service.RunMonteCarlo(r.Context(), params, req.Trials, req.Seed)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, result)
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
}
