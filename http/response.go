package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"deal-calculator/service"
)

const (
	codeInvalidInput     = "INVALID_INPUT"
	codeInvalidParameter = "INVALID_PARAMETER"
	codeNotFound         = "NOT_FOUND"
	codeInternal         = "INTERNAL_ERROR"

	maxBodyBytes = 1 << 20
)

type errorResponse struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Field      string      `json:"field,omitempty"`
	Violations []Violation `json:"violations,omitempty"`
}

// writeJSON encodes into a buffer first so a failed encode never leaves a
// half-written 200 response.
func writeJSON(w http.ResponseWriter, log *zap.Logger, status int, v interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		log.Error("failed to encode response", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Warn("failed to write response", zap.Error(err))
	}
}

// writeError maps calculation errors onto HTTP statuses.
func writeError(w http.ResponseWriter, log *zap.Logger, err error) {
	var formErr *FormError
	var paramErr *service.InvalidParameterError

	switch {
	case errors.As(err, &formErr):
		writeJSON(w, log, http.StatusBadRequest, errorResponse{
			Code:       codeInvalidInput,
			Message:    "deal form failed validation",
			Violations: formErr.Violations,
		})
	case errors.As(err, &paramErr):
		writeJSON(w, log, http.StatusBadRequest, errorResponse{
			Code:    codeInvalidParameter,
			Message: paramErr.Error(),
			Field:   paramErr.Field,
		})
	case errors.Is(err, service.ErrUnknownIndustry):
		writeJSON(w, log, http.StatusNotFound, errorResponse{Code: codeNotFound, Message: err.Error()})
	case errors.Is(err, service.ErrUnknownMetric):
		writeJSON(w, log, http.StatusBadRequest, errorResponse{Code: codeInvalidInput, Message: err.Error(), Field: "metric"})
	default:
		log.Error("request failed", zap.Error(err))
		writeJSON(w, log, http.StatusInternalServerError, errorResponse{Code: codeInternal, Message: "internal server error"})
	}
}

func badRequest(w http.ResponseWriter, log *zap.Logger, message string) {
	writeJSON(w, log, http.StatusBadRequest, errorResponse{Code: codeInvalidInput, Message: message})
}
