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
	"stockledger/internal/product/service"
	"stockledger/internal/response"
)

type Service interface {
	List(ctx context.Context, owner domain.Owner, query string) ([]domain.Product, error)
	Get(ctx context.Context, owner domain.Owner, id string) (*domain.Product, error)
	Create(ctx context.Context, owner domain.Owner, in service.ProductInput) (*domain.Product, error)
	Update(ctx context.Context, owner domain.Owner, id string, in service.ProductInput) (*domain.Product, error)
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
	r.Get("/{id}", c.Get)
	r.Put("/{id}", c.Update)
	r.Delete("/{id}", c.Delete)
}

func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	traceID := response.TraceID(r)
	owner, _ := auth.OwnerFromContext(r.Context())
	log := logger.ForRequest(c.logger, traceID, owner.UserID)

	products, err := c.service.List(r.Context(), owner, r.URL.Query().Get("q"))
	if err != nil {
		response.WriteError(w, traceID, err, log)
		return
	}

	resp := ListProductsResponse{TraceID: traceID, Products: make([]ProductResponse, 0, len(products))}
	for _, p := range products {
		resp.Products = append(resp.Products, toResponse(p))
	}

	response.WriteJSON(w, http.StatusOK, resp, log)
}

func (c *Controller) Get(w http.ResponseWriter, r *http.Request) {
	traceID := response.TraceID(r)
	owner, _ := auth.OwnerFromContext(r.Context())
	log := logger.ForRequest(c.logger, traceID, owner.UserID)

	p, err := c.service.Get(r.Context(), owner, chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, traceID, err, log)
		return
	}

	response.WriteJSON(w, http.StatusOK, toResponse(*p), log)
}

func (c *Controller) Create(w http.ResponseWriter, r *http.Request) {
	traceID := response.TraceID(r)
	owner, _ := auth.OwnerFromContext(r.Context())
	log := logger.ForRequest(c.logger, traceID, owner.UserID)

	req, ok := c.decode(w, r, traceID, log)
	if !ok {
		return
	}

	p, err := c.service.Create(r.Context(), owner, service.ProductInput{Name: req.Name, Description: req.Description})
	if err != nil {
		response.WriteError(w, traceID, err, log)
		return
	}

	response.WriteJSON(w, http.StatusCreated, toResponse(*p), log)
}

func (c *Controller) Update(w http.ResponseWriter, r *http.Request) {
	traceID := response.TraceID(r)
	owner, _ := auth.OwnerFromContext(r.Context())
	log := logger.ForRequest(c.logger, traceID, owner.UserID)

	req, ok := c.decode(w, r, traceID, log)
	if !ok {
		return
	}

	p, err := c.service.Update(r.Context(), owner, chi.URLParam(r, "id"), service.ProductInput{Name: req.Name, Description: req.Description})
	if err != nil {
		response.WriteError(w, traceID, err, log)
		return
	}

	response.WriteJSON(w, http.StatusOK, toResponse(*p), log)
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

func (c *Controller) decode(w http.ResponseWriter, r *http.Request, traceID string, log *zap.Logger) (ProductRequest, bool) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("invalid JSON body", zap.Error(err))
		response.WriteValidationError(w, traceID, "invalid JSON body", log, apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return req, false
	}
	return req, true
}
