// Package cli wires configuration, logging and the dataset backend into the
// pasika commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"pasika/internal/backend"
	"pasika/internal/config"
	"pasika/internal/core"
	"pasika/internal/log"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger builds the process logger from cfg and makes it the default.
func SetupLogger(cfg *config.Config, out io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = os.Stdout
	}
	logger := log.New(log.Config{Level: level, Component: log.ComponentApp, Output: out})
	log.SetDefault(logger)
	return logger, nil
}

// LoadAndValidateConfig loads configuration from the environment and
// validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDataset opens the configured backend, loads the dataset once and
// validates it. The returned cleanup is never nil.
func LoadDataset(ctx context.Context, cfg *config.Config, logger *log.Logger) (core.Dataset, backend.CleanupFunc, error) {
	noop := func() error { return nil }

	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return core.Dataset{}, noop, err
	}
	result, err := backend.NewFactory(logger.Logger.With(log.FieldComponent, log.ComponentBackend)).CreateBackend(ctx, bcfg)
	if err != nil {
		return core.Dataset{}, noop, err
	}
	cleanup := result.Cleanup
	if cleanup == nil {
		cleanup = noop
	}

	ds, err := result.Source.Load(ctx)
	if err != nil {
		_ = cleanup()
		return core.Dataset{}, noop, fmt.Errorf("load dataset: %w", err)
	}
	if err := ds.Validate(); err != nil {
		_ = cleanup()
		return core.Dataset{}, noop, fmt.Errorf("invalid dataset: %w", err)
	}

	log.NewStructuredLogger(logger).LogDatasetLoaded(ctx, string(bcfg.Type),
		len(ds.Apiaries()), len(ds.Hives()), len(ds.Harvests()), len(ds.Tasks()))
	return ds, cleanup, nil
}
