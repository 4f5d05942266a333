package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	playerIDKey
)

// InitLogger installs the default slog logger writing to stdout
func InitLogger(cfg Config) {
	InitLoggerWithWriter(cfg, os.Stdout)
}

// InitLoggerWithWriter installs the default slog logger writing to w
func InitLoggerWithWriter(cfg Config, w io.Writer) {
	var handler slog.Handler
	if cfg.IsJSON() {
		handler = slog.NewJSONHandler(w, cfg.handlerOptions())
	} else {
		handler = slog.NewTextHandler(w, cfg.handlerOptions())
	}
	slog.SetDefault(slog.New(handler.WithAttrs(cfg.baseAttrs())))
}

// GenerateRequestID creates a new id for tracing a request
func GenerateRequestID() string {
	return uuid.NewString()
}

// WithRequestID tags ctx with a request id
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithPlayerID tags ctx with the player a request acts for
func WithPlayerID(ctx context.Context, playerID string) context.Context {
	return context.WithValue(ctx, playerIDKey, playerID)
}

func stringValue(ctx context.Context, key ctxKey) string {
	v, _ := ctx.Value(key).(string)
	return v
}

// GetRequestID returns the request id or ""
func GetRequestID(ctx context.Context) string {
	return stringValue(ctx, requestIDKey)
}

// GetPlayerID returns the player id or ""
func GetPlayerID(ctx context.Context) string {
	return stringValue(ctx, playerIDKey)
}

// FromContext returns the default logger with request_id and player_id
// attached when ctx carries them.
func FromContext(ctx context.Context) *slog.Logger {
	log := slog.Default()
	if id := GetRequestID(ctx); id != "" {
		log = log.With(AttrKeyRequestID, id)
	}
	if id := GetPlayerID(ctx); id != "" {
		log = log.With(AttrKeyPlayerID, id)
	}
	return log
}

func Debug(msg string, args ...any) { slog.Default().Debug(msg, args...) }

func Info(msg string, args ...any) { slog.Default().Info(msg, args...) }

func Warn(msg string, args ...any) { slog.Default().Warn(msg, args...) }

func Error(msg string, args ...any) { slog.Default().Error(msg, args...) }
