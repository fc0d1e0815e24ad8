package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"stockledger/internal/domain"
	apperrors "stockledger/internal/errors"
	"stockledger/internal/user/service"
)

type mockService struct {
	RegisterFunc func(ctx context.Context, in service.Credentials) (*service.Session, error)
	LoginFunc    func(ctx context.Context, in service.Credentials) (*service.Session, error)
}

func (m *mockService) Register(ctx context.Context, in service.Credentials) (*service.Session, error) {
	return m.RegisterFunc(ctx, in)
}

func (m *mockService) Login(ctx context.Context, in service.Credentials) (*service.Session, error) {
	return m.LoginFunc(ctx, in)
}

func post(svc Service, path, body string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Route("/auth", NewController(svc, zap.NewNop()).Routes)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, strings.NewReader(body)))
	return rec
}

func session() *service.Session {
	return &service.Session{
		Token:     "tok",
		ExpiresAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Owner:     domain.Owner{UserID: "u1", Email: "ana@example.com"},
	}
}

func TestRegister_Created(t *testing.T) {
	svc := &mockService{
		RegisterFunc: func(ctx context.Context, in service.Credentials) (*service.Session, error) {
			assert.Equal(t, "ana@example.com", in.Email)
			assert.Equal(t, "secret1", in.PasswordConfirmation)
			return session(), nil
		},
	}

	rec := post(svc, "/auth/register", `{"email":"ana@example.com","password":"secret1","passwordConfirmation":"secret1"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var body SessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "tok", body.Token)
	assert.Equal(t, "u1", body.UserID)
}

func TestRegister_Conflict(t *testing.T) {
	svc := &mockService{
		RegisterFunc: func(ctx context.Context, in service.Credentials) (*service.Session, error) {
			return nil, apperrors.NewConflictError("email is already registered")
		},
	}

	rec := post(svc, "/auth/register", `{"email":"ana@example.com","password":"secret1","passwordConfirmation":"secret1"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLogin(t *testing.T) {
	svc := &mockService{
		LoginFunc: func(ctx context.Context, in service.Credentials) (*service.Session, error) {
			if in.Password != "secret1" {
				return nil, apperrors.NewUnauthorizedError("invalid email or password")
			}
			return session(), nil
		},
	}

	assert.Equal(t, http.StatusOK, post(svc, "/auth/login", `{"email":"ana@example.com","password":"secret1"}`).Code)
	assert.Equal(t, http.StatusUnauthorized, post(svc, "/auth/login", `{"email":"ana@example.com","password":"nope"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(svc, "/auth/login", `not json`).Code)
}
