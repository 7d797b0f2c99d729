// Package trace assigns request IDs and reports every finished request.
package trace

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// HeaderRequestID carries the request ID in both directions.
const HeaderRequestID = "X-Request-ID"

// unmatchedRoute labels requests no mux pattern matched.
const unmatchedRoute = "unmatched"

type contextKey string

const requestIDKey contextKey = "request_id"

// Completion is what the middleware knows about a finished request.
type Completion struct {
	RequestID string
	Route     string
	Status    int
	Duration  time.Duration
	ClientIP  string
}

// Observer receives every finished request.
type Observer interface {
	RequestCompleted(ctx context.Context, r *http.Request, c Completion)
}

// ContextHook decorates the request context once the ID is known.
type ContextHook func(ctx context.Context, requestID string) context.Context

type Middleware struct {
	extractIP func(*http.Request) string
	observers []Observer
	hooks     []ContextHook
}

func NewMiddleware(extractIP func(*http.Request) string, observers ...Observer) *Middleware {
	return &Middleware{extractIP: extractIP, observers: observers}
}

// WithContextHook registers hook and returns m.
func (m *Middleware) WithContextHook(hook ContextHook) *Middleware {
	m.hooks = append(m.hooks, hook)
	return m
}

// Middleware tags the request with an ID and notifies observers once the
// wrapped handler returns.
func (m *Middleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(HeaderRequestID)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = GenerateRequestID()
		}
		w.Header().Set(HeaderRequestID, requestID)

		ctx := WithRequestID(r.Context(), requestID)
		for _, hook := range m.hooks {
			ctx = hook(ctx, requestID)
		}
		// The mux records the matched pattern on this request value.
		r = r.WithContext(ctx)
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		c := Completion{
			RequestID: requestID,
			Route:     r.Pattern,
			Status:    rw.statusCode,
			Duration:  time.Since(start),
		}
		if c.Route == "" {
			c.Route = unmatchedRoute
		}
		if m.extractIP != nil {
			c.ClientIP = m.extractIP(r)
		}
		for _, o := range m.observers {
			o.RequestCompleted(r.Context(), r, c)
		}
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// GenerateRequestID returns a random UUIDv4 string.
func GenerateRequestID() string {
	return uuid.NewString()
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID returns the request ID stored in ctx, or "".
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
