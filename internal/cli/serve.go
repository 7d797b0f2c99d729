package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"pasika/internal/core"
	apphttp "pasika/internal/http"
	"pasika/internal/i18n"
	"pasika/internal/log"
	"pasika/internal/metrics"
	"pasika/internal/middleware/ratelimit"
)

// ServeCommand starts the dashboard HTTP server.
func ServeCommand(app *App) *cobra.Command {
	var rl ratelimit.Config

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return Serve(ctx, app, rl)
		},
	}

	def := ratelimit.DefaultConfig()
	cmd.Flags().IntVar(&rl.Requests, "form-rate", def.Requests, "Form submissions allowed per client per window")
	cmd.Flags().DurationVar(&rl.Period, "form-rate-window", def.Period, "Form rate limit window")
	rl.CleanupInterval = def.CleanupInterval
	return cmd
}

// Serve runs the server until ctx is cancelled, then drains it within the
// configured shutdown timeout.
func Serve(ctx context.Context, app *App, rl ratelimit.Config) error {
	cfg, logger := app.Config, app.Logger

	ds, cleanup, err := LoadDataset(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := cleanup(); err != nil {
			logger.Error("Backend cleanup failed", log.FieldError, err)
		}
	}()

	bundle, err := i18n.Load()
	if err != nil {
		return fmt.Errorf("load translations: %w", err)
	}

	m, err := metrics.NewDashboardMetrics(prometheus.NewRegistry())
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}
	totals := core.ComputeFleetTotals(ds.Apiaries())
	m.SetDataset(len(ds.Apiaries()), len(ds.Hives()), len(ds.Harvests()), len(ds.Tasks()), totals.TotalHoney)

	srv, err := apphttp.NewServer(cfg.Addr(), apphttp.Deps{
		Dataset:     ds,
		Bundle:      bundle,
		DefaultLang: cfg.DefaultTag(),
		Logger:      logger,
		Metrics:     m,
		RateLimit:   rl,
	})
	if err != nil {
		return err
	}

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting pasika server",
			log.FieldPort, cfg.Port,
			log.FieldBackend, cfg.DataBackend,
			log.FieldLocale, cfg.DefaultTag().String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on %s: %w", cfg.Addr(), err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down", log.FieldOperation, log.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("Server stopped gracefully")
	return nil
}
