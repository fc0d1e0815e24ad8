package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "stockledger/internal/errors"
	"stockledger/internal/response"
	"stockledger/internal/user/service"
)

type Service interface {
	Register(ctx context.Context, in service.Credentials) (*service.Session, error)
	Login(ctx context.Context, in service.Credentials) (*service.Session, error)
}

type CredentialsRequest struct {
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"passwordConfirmation"`
}

type SessionResponse struct {
	TraceID   string    `json:"traceId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
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
	r.Post("/register", c.Register)
	r.Post("/login", c.Login)
}

func (c *Controller) Register(w http.ResponseWriter, r *http.Request) {
	c.handle(w, r, http.StatusCreated, c.service.Register)
}

func (c *Controller) Login(w http.ResponseWriter, r *http.Request) {
	c.handle(w, r, http.StatusOK, c.service.Login)
}

func (c *Controller) handle(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	op func(context.Context, service.Credentials) (*service.Session, error),
) {
	traceID := response.TraceID(r)
	log := c.logger.With(zap.String("traceId", traceID))

	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("invalid JSON body", zap.Error(err))
		response.WriteValidationError(w, traceID, "invalid JSON body", log, apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	session, err := op(r.Context(), service.Credentials{
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	if err != nil {
		response.WriteError(w, traceID, err, log)
		return
	}

	response.WriteJSON(w, status, SessionResponse{
		TraceID:   traceID,
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		UserID:    session.Owner.UserID,
		Email:     session.Owner.Email,
	}, log)
}
