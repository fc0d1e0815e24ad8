package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a JSON production logger. An unknown level falls back to info.
func New(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.InitialFields = map[string]interface{}{"service": "stockledger"}

	return cfg.Build()
}

// ForRequest returns a child logger tagged with the request trace id and, when
// known, the owner the request acts for.
func ForRequest(base *zap.Logger, traceID, ownerID string) *zap.Logger {
	fields := []zap.Field{zap.String("traceId", traceID)}
	if ownerID != "" {
		fields = append(fields, zap.String("ownerId", ownerID))
	}
	return base.With(fields...)
}
