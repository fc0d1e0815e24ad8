package auth

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"stockledger/internal/domain"
	"stockledger/internal/response"
)

type TokenParser interface {
	Parse(tokenString string) (domain.Owner, error)
}

type ctxKey struct{}

func WithOwner(ctx context.Context, owner domain.Owner) context.Context {
	return context.WithValue(ctx, ctxKey{}, owner)
}

func OwnerFromContext(ctx context.Context) (domain.Owner, bool) {
	owner, ok := ctx.Value(ctxKey{}).(domain.Owner)
	return owner, ok && !owner.IsZero()
}

// Middleware resolves the bearer token into an Owner. Requests without a valid
// token never reach the wrapped handler.
func Middleware(parser TokenParser, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := response.TraceID(r)

			header := r.Header.Get("Authorization")
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
				writeUnauthorized(w, traceID, "missing bearer token", logger)
				return
			}

			owner, err := parser.Parse(strings.TrimSpace(parts[1]))
			if err != nil {
				logger.Debug("rejected token", zap.String("traceId", traceID), zap.Error(err))
				writeUnauthorized(w, traceID, "invalid or expired token", logger)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithOwner(r.Context(), owner)))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, traceID, message string, logger *zap.Logger) {
	response.WriteJSON(w, http.StatusUnauthorized, response.ErrorResponse{
		TraceID: traceID,
		Error:   "UNAUTHORIZED",
		Message: message,
	}, logger)
}
