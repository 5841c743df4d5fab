// Package app assembles the application from configuration: logger,
// persistence substrate, store, and controller.
package app

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"user-profiles/internal/adapter/kv"
	"user-profiles/internal/config"
	"user-profiles/internal/store"
	"user-profiles/internal/usecase/profile"
	"user-profiles/pkg/logger"
)

// App holds the assembled application dependencies.
type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	KV      kv.Store
	Store   *store.Store
	Usecase profile.Usecase
}

// New loads configuration from path, builds the logger, and assembles the
// application.
func New(configPath string) (*App, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := initLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return NewWithConfig(cfg, l)
}

// NewWithConfig assembles the application over an already loaded
// configuration and logger. The configured backend becomes the substrate and
// the simulation settings become the store's latency and fault probability.
func NewWithConfig(cfg *config.Config, l *zap.Logger) (*App, error) {
	kvs, err := kv.FromConfig(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage backend: %w", err)
	}

	st := store.New(kvs, l, store.Options{
		Latency:          cfg.Sim.Latency(),
		FaultProbability: cfg.Sim.FaultProbability,
	})

	return &App{
		Config:  cfg,
		Logger:  l,
		KV:      kvs,
		Store:   st,
		Usecase: profile.New(st, l),
	}, nil
}

// Close releases backend resources and flushes the logger.
func (a *App) Close() error {
	var errs []error

	if closer, ok := a.KV.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			a.Logger.Error("failed to close storage backend", zap.Error(err))
			errs = append(errs, fmt.Errorf("storage close: %w", err))
		}
	}

	if err := a.Logger.Sync(); err != nil {
		// Ignore sync errors for stdout/stderr
		if err.Error() != "sync /dev/stdout: invalid argument" &&
			err.Error() != "sync /dev/stderr: invalid argument" {
			errs = append(errs, fmt.Errorf("logger sync: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// initLogger builds the application logger from configuration.
func initLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.NewWithConfig(logger.Config{
		Level:          cfg.Logger.Level,
		Format:         cfg.Logger.Format,
		OutputPath:     cfg.Logger.OutputPath,
		EnableSampling: cfg.Logger.EnableSampling,
		ServiceName:    cfg.Logger.ServiceName,
		ServiceVersion: cfg.Logger.ServiceVersion,
		Environment:    getEnvironment(),
	})
}

// getEnvironment returns the application environment.
func getEnvironment() string {
	if env := os.Getenv("APP_ENV"); env != "" {
		return env
	}
	return "development"
}
