package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"stockledger/internal/auth"
	"stockledger/internal/response"
)

// Module mounts its handlers on the subrouter it is given.
type Module interface {
	Routes(r chi.Router)
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Modules struct {
	Auth      Module
	Products  Module
	Movements Module
	Stock     Module
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
}

// NewRouter serves /health and /auth publicly; every other route requires a
// bearer token resolved by tokens.
func NewRouter(modules Modules, tokens auth.TokenParser, db Pinger, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", health(db, logger))
	r.Route("/auth", modules.Auth.Routes)

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(tokens, logger))
		r.Route("/products", modules.Products.Routes)
		r.Route("/movements", modules.Movements.Routes)
		r.Route("/stock", modules.Stock.Routes)
	})

	return r
}

func health(db Pinger, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := HealthResponse{Status: "healthy", Database: "healthy", Timestamp: time.Now().UTC()}
		status := http.StatusOK
		if err := db.PingContext(ctx); err != nil {
			logger.Warn("database ping failed", zap.Error(err))
			resp.Status = "degraded"
			resp.Database = "unhealthy"
			status = http.StatusServiceUnavailable
		}

		response.WriteJSON(w, status, resp, logger)
	}
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("request completed",
				zap.String("traceId", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
