package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"deal-calculator/domain"
	"deal-calculator/service"
)

type BenchmarkHandler struct {
	service *service.DealService
	logger  *zap.Logger
}

func NewBenchmarkHandler(service *service.DealService, logger *zap.Logger) *BenchmarkHandler {
	return &BenchmarkHandler{service: service, logger: logger}
}

type compareRequest struct {
	Value    float64                `json:"value"`
	Industry string                 `json:"industry"`
	Metric   domain.BenchmarkMetric `json:"metric"`
}

// List handles GET /deal/benchmarks.
func (h *BenchmarkHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, map[string][]string{
		"industries": service.ListIndustries(),
	})
}

// Get handles GET /deal/benchmarks/{industry}.
func (h *BenchmarkHandler) Get(w http.ResponseWriter, r *http.Request) {
	industry := chi.URLParam(r, "industry")
	benchmark, ok := service.GetIndustryBenchmark(industry)
	if !ok {
		writeJSON(w, h.logger, http.StatusNotFound, errorResponse{
			Code:    codeNotFound,
			Message: "unknown industry: " + industry,
		})
		return
	}
	writeJSON(w, h.logger, http.StatusOK, benchmark)
}

// Compare handles POST /deal/benchmarks/compare.
func (h *BenchmarkHandler) Compare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		badRequest(w, h.logger, "invalid request body")
		return
	}

	result, err := h.service.CompareToIndustry(req.Value, req.Industry, req.Metric)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, result)
}
