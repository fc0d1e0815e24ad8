package response

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "stockledger/internal/errors"
)

type ErrorResponse struct {
	TraceID   string                       `json:"traceId"`
	Error     string                       `json:"error"`
	Message   string                       `json:"message"`
	Details   []apperrors.ValidationDetail `json:"details,omitempty"`
	Balance   *int                         `json:"balance,omitempty"`
	Timestamp time.Time                    `json:"timestamp"`
}

// TraceID returns the request id set by the router, or a fresh one when the
// handler runs outside it.
func TraceID(r *http.Request) string {
	if id := middleware.GetReqID(r.Context()); id != "" {
		return id
	}
	return uuid.NewString()
}

func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

func WriteValidationError(w http.ResponseWriter, traceID, message string, logger *zap.Logger, details ...apperrors.ValidationDetail) {
	WriteJSON(w, http.StatusBadRequest, ErrorResponse{
		TraceID:   traceID,
		Error:     "VALIDATION_ERROR",
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}, logger)
}

// WriteError maps an application error to its HTTP status. Anything unknown
// is logged and reported as a generic 500.
func WriteError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	resp := ErrorResponse{
		TraceID:   traceID,
		Message:   err.Error(),
		Timestamp: time.Now().UTC(),
	}
	status := http.StatusInternalServerError

	if ve, ok := apperrors.IsValidationError(err); ok {
		status = http.StatusBadRequest
		resp.Error = "VALIDATION_ERROR"
		resp.Details = ve.Details
	} else if ie, ok := apperrors.IsInsufficientBalanceError(err); ok {
		status = http.StatusBadRequest
		resp.Error = "INSUFFICIENT_BALANCE"
		balance := ie.Balance
		resp.Balance = &balance
	} else if _, ok := apperrors.IsDependencyError(err); ok {
		status = http.StatusConflict
		resp.Error = "HAS_DEPENDENTS"
	} else if _, ok := apperrors.IsNotFoundError(err); ok {
		status = http.StatusNotFound
		resp.Error = "NOT_FOUND"
	} else if _, ok := apperrors.IsConflictError(err); ok {
		status = http.StatusConflict
		resp.Error = "CONFLICT"
	} else if _, ok := apperrors.IsUnauthorizedError(err); ok {
		status = http.StatusUnauthorized
		resp.Error = "UNAUTHORIZED"
	} else {
		logger.Error("unexpected error", zap.Error(err))
		resp.Error = "INTERNAL_ERROR"
		resp.Message = "an unexpected error occurred"
	}

	if status < http.StatusInternalServerError {
		logger.Info("request rejected", zap.Int("status", status), zap.String("code", resp.Error), zap.String("reason", err.Error()))
	}

	WriteJSON(w, status, resp, logger)
}
