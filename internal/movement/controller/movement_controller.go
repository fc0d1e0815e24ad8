package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"stockledger/internal/auth"
	"stockledger/internal/domain"
	apperrors "stockledger/internal/errors"
	"stockledger/internal/infrastructure/logger"
	"stockledger/internal/response"
)

type Service interface {
	List(ctx context.Context, owner domain.Owner, query string) ([]domain.Movement, error)
	Check(ctx context.Context, owner domain.Owner, in domain.MovementInput) (int, error)
	Create(ctx context.Context, owner domain.Owner, in domain.MovementInput) (*domain.Movement, error)
	Delete(ctx context.Context, owner domain.Owner, id string) error
}

type Controller struct {
	service Service
	logger  *zap.Logger
}

func NewController(service Service, logger *zap.Logger) *Controller {
	return &Controller{
		service: service,
		logger:  logger,
	}
}

func (c *Controller) Routes(r chi.Router) {
	r.Get("/", c.List)
	r.Post("/", c.Create)
	r.Post("/check", c.Check)
	r.Delete("/{id}", c.Delete)
}

func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	traceID := response.TraceID(r)
	owner, _ := auth.OwnerFromContext(r.Context())
	log := logger.ForRequest(c.logger, traceID, owner.UserID)

	movements, err := c.service.List(r.Context(), owner, r.URL.Query().Get("q"))
	if err != nil {
		response.WriteError(w, traceID, err, log)
		return
	}

	resp := ListMovementsResponse{TraceID: traceID, Movements: make([]MovementResponse, 0, len(movements))}
	for _, m := range movements {
		resp.Movements = append(resp.Movements, toResponse(m))
	}

	response.WriteJSON(w, http.StatusOK, resp, log)
}

// Check reports whether the movement would currently be accepted. The answer
// is advisory; Create evaluates the same rules again.
func (c *Controller) Check(w http.ResponseWriter, r *http.Request) {
	traceID := response.TraceID(r)
	owner, _ := auth.OwnerFromContext(r.Context())
	log := logger.ForRequest(c.logger, traceID, owner.UserID)

	in, ok := c.decode(w, r, traceID, log)
	if !ok {
		return
	}

	balance, err := c.service.Check(r.Context(), owner, in)
	if err != nil {
		response.WriteError(w, traceID, err, log)
		return
	}

	response.WriteJSON(w, http.StatusOK, CheckResponse{TraceID: traceID, Allowed: true, Balance: balance}, log)
}

func (c *Controller) Create(w http.ResponseWriter, r *http.Request) {
	traceID := response.TraceID(r)
	owner, _ := auth.OwnerFromContext(r.Context())
	log := logger.ForRequest(c.logger, traceID, owner.UserID)

	in, ok := c.decode(w, r, traceID, log)
	if !ok {
		return
	}

	m, err := c.service.Create(r.Context(), owner, in)
	if err != nil {
		response.WriteError(w, traceID, err, log)
		return
	}

	response.WriteJSON(w, http.StatusCreated, toResponse(*m), log)
}

func (c *Controller) Delete(w http.ResponseWriter, r *http.Request) {
	traceID := response.TraceID(r)
	owner, _ := auth.OwnerFromContext(r.Context())
	log := logger.ForRequest(c.logger, traceID, owner.UserID)

	if err := c.service.Delete(r.Context(), owner, chi.URLParam(r, "id")); err != nil {
		response.WriteError(w, traceID, err, log)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *Controller) decode(w http.ResponseWriter, r *http.Request, traceID string, log *zap.Logger) (domain.MovementInput, bool) {
	var req MovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("invalid JSON body", zap.Error(err))
		response.WriteValidationError(w, traceID, "invalid JSON body", log, apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return domain.MovementInput{}, false
	}

	in, err := req.toInput()
	if err != nil {
		response.WriteError(w, traceID, err, log)
		return domain.MovementInput{}, false
	}
	return in, true
}
