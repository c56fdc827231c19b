package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

var (
	mu  sync.RWMutex
	log *slog.Logger
)

// Init configures the process-wide logger.
// env "development" → human-readable text at debug level; anything else → JSON at info.
func Init(env string) *slog.Logger {
	return InitWriter(env, os.Stdout)
}

// InitWriter is Init with an explicit sink (tests pass a buffer).
func InitWriter(env string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var h slog.Handler
	if env == "development" {
		opts.Level = slog.LevelDebug
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}

	l := slog.New(h)

	mu.Lock()
	log = l
	mu.Unlock()

	slog.SetDefault(l)
	return l
}

// Get returns the process-wide logger, falling back to slog's default before Init runs.
func Get() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if log == nil {
		return slog.Default()
	}
	return log
}

// WithRequestID stores the request id so FromContext can attach it to log lines.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the request id carried by ctx, or "".
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// FromContext returns a logger annotated with the request id, when present.
func FromContext(ctx context.Context) *slog.Logger {
	l := Get()
	if id := RequestID(ctx); id != "" {
		l = l.With("request_id", id)
	}
	return l
}
