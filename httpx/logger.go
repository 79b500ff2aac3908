// Package httpx serves Soundex lookups over HTTP and logs the requests.
package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/tschuyebuhl/soundex/userctx"
)

type ctxKeyRequestID struct{}

type LoggerOption func(*Logger)

func WithLogger(logger *slog.Logger) LoggerOption {
	return func(l *Logger) {
		if logger != nil {
			l.logger = logger
		}
	}
}

func LoggerMiddleware(opts ...LoggerOption) Middleware {
	return func(next http.Handler) http.Handler {
		return NewLogger(next, opts...)
	}
}

// Logger tags each lookup request with an id and logs it once handled, together
// with the caller and the caller's name code when auth ran before it.
// A panic in the wrapped handler is logged and answered with a 500.
type Logger struct {
	handler http.Handler
	logger  *slog.Logger
}

func NewLogger(handler http.Handler, opts ...LoggerOption) *Logger {
	l := &Logger{
		handler: handler,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Logger) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sw := &statusWriter{ResponseWriter: w}
	start := time.Now()
	id := uuid.Must(uuid.NewV4())
	r = r.WithContext(context.WithValue(r.Context(), ctxKeyRequestID{}, id))

	defer func() {
		attrs := []any{"method", r.Method, "path", r.URL.Path, "id", id.String()}
		if userID, ok := userctx.UserIDFromContext(r.Context()); ok {
			attrs = append(attrs, "user_id", userID)
		}
		if code, ok := userctx.NameCodeFromContext(r.Context()); ok {
			attrs = append(attrs, "name_code", code)
		}

		if rec := recover(); rec != nil {
			l.logger.Error("panic serving lookup", append(attrs, "error", rec, "stack", string(debug.Stack()))...)
			if !sw.wroteHeader {
				http.Error(sw, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}
		l.logger.Info("handled lookup", append(attrs, "status", sw.Status(), "took", time.Since(start))...)
	}()

	l.handler.ServeHTTP(sw, r)
}

// statusWriter remembers the first status written.
type statusWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.statusCode = statusCode
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(p)
}

func (w *statusWriter) Status() int {
	if w.statusCode == 0 {
		return http.StatusOK
	}
	return w.statusCode
}

// RequestIDString returns the id Logger gave the request.
func RequestIDString(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKeyRequestID{}).(uuid.UUID)
	if !ok {
		return "", false
	}
	return id.String(), true
}
