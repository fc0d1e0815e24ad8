package controller

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"stockledger/internal/auth"
	"stockledger/internal/domain"
	"stockledger/internal/infrastructure/logger"
	"stockledger/internal/response"
)

type Service interface {
	List(ctx context.Context, owner domain.Owner, query string) ([]domain.StockItem, error)
	Get(ctx context.Context, owner domain.Owner, productID string) (*domain.StockItem, error)
	Summary(ctx context.Context, owner domain.Owner) (domain.Summary, error)
}

type ListStockResponse struct {
	TraceID string             `json:"traceId"`
	Items   []domain.StockItem `json:"items"`
}

type SummaryResponse struct {
	TraceID string `json:"traceId"`
	domain.Summary
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
	r.Get("/summary", c.Summary)
	r.Get("/{productId}", c.Get)
}

func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	traceID := response.TraceID(r)
	owner, _ := auth.OwnerFromContext(r.Context())
	log := logger.ForRequest(c.logger, traceID, owner.UserID)

	items, err := c.service.List(r.Context(), owner, r.URL.Query().Get("q"))
	if err != nil {
		response.WriteError(w, traceID, err, log)
		return
	}

	response.WriteJSON(w, http.StatusOK, ListStockResponse{TraceID: traceID, Items: items}, log)
}

func (c *Controller) Get(w http.ResponseWriter, r *http.Request) {
	traceID := response.TraceID(r)
	owner, _ := auth.OwnerFromContext(r.Context())
	log := logger.ForRequest(c.logger, traceID, owner.UserID)

	item, err := c.service.Get(r.Context(), owner, chi.URLParam(r, "productId"))
	if err != nil {
		response.WriteError(w, traceID, err, log)
		return
	}

	response.WriteJSON(w, http.StatusOK, item, log)
}

func (c *Controller) Summary(w http.ResponseWriter, r *http.Request) {
	traceID := response.TraceID(r)
	owner, _ := auth.OwnerFromContext(r.Context())
	log := logger.ForRequest(c.logger, traceID, owner.UserID)

	summary, err := c.service.Summary(r.Context(), owner)
	if err != nil {
		response.WriteError(w, traceID, err, log)
		return
	}

	response.WriteJSON(w, http.StatusOK, SummaryResponse{TraceID: traceID, Summary: summary}, log)
}
