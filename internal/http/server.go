// Package http serves the dashboard: full pages, htmx fragments, a JSON
// summary and operational endpoints.
package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/text/language"

	"pasika/internal/cache"
	"pasika/internal/core"
	"pasika/internal/i18n"
	"pasika/internal/log"
	"pasika/internal/metrics"
	"pasika/internal/middleware/ratelimit"
	"pasika/internal/middleware/security"
	"pasika/internal/middleware/trace"
	"pasika/internal/view"
	appweb "pasika/web"
)

const (
	staticMaxAge  = 3600
	pageCacheSize = 32
)

// Deps is everything the server needs from the process.
type Deps struct {
	Dataset     core.Dataset
	Bundle      *i18n.Bundle
	DefaultLang language.Tag
	Logger      *log.Logger
	Metrics     *metrics.DashboardMetrics
	RateLimit   ratelimit.Config
}

type Server struct {
	http.Server

	dataset     core.Dataset
	totals      core.FleetTotals
	bundle      *i18n.Bundle
	defaultLang language.Tag
	templates   *template.Template
	pages       *cache.LRU[pageKey, view.Page]

	logger     *log.Logger
	structured *log.StructuredLogger
	metrics    *metrics.DashboardMetrics
	limiter    *ratelimit.Limiter
	detector   *security.Detector

	started      time.Time
	ready        atomic.Bool
	shutdownOnce sync.Once
}

// NewServer parses the embedded templates and wires every route.
func NewServer(addr string, deps Deps) (*Server, error) {
	if deps.Bundle == nil {
		return nil, errors.New("i18n bundle is required")
	}
	if deps.Metrics == nil {
		return nil, errors.New("metrics are required")
	}
	if deps.Logger == nil {
		deps.Logger = log.New(log.DefaultConfig())
	}

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		dataset:     deps.Dataset,
		totals:      core.ComputeFleetTotals(deps.Dataset.Apiaries()),
		bundle:      deps.Bundle,
		defaultLang: deps.DefaultLang,
		templates:   t,
		pages:       cache.NewLRU[pageKey, view.Page](pageCacheSize),
		logger:      deps.Logger.WithComponent(log.ComponentHTTP),
		structured:  log.NewStructuredLogger(deps.Logger),
		metrics:     deps.Metrics,
		limiter:     ratelimit.NewLimiter(deps.RateLimit),
		detector:    security.NewDetector(),
		started:     time.Now(),
	}
	if s.defaultLang == language.Und {
		s.defaultLang = language.MustParse(i18n.BaseLocale)
	}

	mux := http.NewServeMux()
	s.routes(mux)

	tracer := trace.NewMiddleware(s.detector.ExtractClientIP, s, s.metricsObserver()).
		WithContextHook(func(ctx context.Context, requestID string) context.Context {
			return log.NewContext(ctx, deps.Logger.With(log.FieldRequestID, requestID))
		})
	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())

	s.Server = http.Server{
		Addr:              addr,
		Handler:           headers.Middleware(s.withDetection(tracer.Middleware(mux))),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.ready.Store(true)
	return s, nil
}

func (s *Server) routes(mux *http.ServeMux) {
	static, err := fs.Sub(appweb.StaticFS, "static")
	if err != nil {
		s.logger.Warn("Failed to mount embedded static FS", log.FieldError, err)
	} else {
		mux.Handle("GET /static/", security.StaticAssetMiddleware(staticMaxAge)(
			http.StripPrefix("/static/", http.FileServer(http.FS(static)))))
	}

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /ui/tabs/{tab}", s.handleTab)
	mux.HandleFunc("GET /ui/apiaries/new", s.handleOpenDialog)
	mux.HandleFunc("DELETE /ui/apiaries/new", s.handleCloseDialog)
	mux.Handle("POST /apiaries", s.limiter.Middleware(s.detector.ExtractClientIP, s.handleRateLimited)(
		http.HandlerFunc(s.handleCreateApiary)))

	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}))
}

// RequestCompleted implements trace.Observer by logging the request.
func (s *Server) RequestCompleted(ctx context.Context, r *http.Request, c trace.Completion) {
	s.structured.LogHTTPEnd(ctx, r, c.Status, c.Duration.Milliseconds(), c.ClientIP)
}

type observerFunc func(ctx context.Context, r *http.Request, c trace.Completion)

func (f observerFunc) RequestCompleted(ctx context.Context, r *http.Request, c trace.Completion) {
	f(ctx, r, c)
}

func (s *Server) metricsObserver() trace.Observer {
	return observerFunc(func(_ context.Context, r *http.Request, c trace.Completion) {
		s.metrics.RecordHTTPRequest(r.Method, c.Route, c.Status, c.Duration.Seconds())
	})
}

// withDetection logs probing requests; they are still served.
func (s *Server) withDetection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.detector.DetectSuspiciousRequest(r) {
			s.logger.WithComponent(log.ComponentSecurity).WarnContext(r.Context(), "Suspicious request",
				log.FieldMethod, r.Method,
				log.FieldPath, r.URL.Path,
				log.FieldClientIP, s.detector.ExtractClientIP(r))
		}
		next.ServeHTTP(w, r)
	})
}

// render executes name into a buffer so a failing template never leaves a
// half-written response behind.
func (s *Server) render(ctx context.Context, name string, data any) ([]byte, error) {
	start := time.Now()
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.metrics.RecordTemplateRenderError(name)
		s.structured.LogError(ctx, "Template execution failed", err, log.ComponentTemplate, log.OpRender)
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	s.metrics.RecordTemplateRender(name, time.Since(start).Seconds())
	return buf.Bytes(), nil
}

// Shutdown stops accepting requests, marks the server unready and drains.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.ready.Store(false)
		s.limiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}
