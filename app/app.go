// Package app wires configuration, logging, the pool and the services
// shared by every command.
package app

import (
	"context"
	"fmt"
	"io"

	"legal-roster/config"
	"legal-roster/database"
	"legal-roster/logger"
	"legal-roster/service"
	"legal-roster/storage"
)

// App holds the long-lived components of one process
type App struct {
	Config  *config.Config
	Log     logger.Logger
	Pool    database.Pool
	Records *service.RecordService
	Exports *service.ExportService
	Storage storage.Storage
}

// NewLogger builds the process logger from the meta section
func NewLogger(cfg *config.Config, w io.Writer) logger.Logger {
	return logger.New(w, cfg.Meta.LogLevel).WithField("app", cfg.Meta.LogPrefix)
}

// New validates cfg, opens the pool and builds the services. A pool that
// cannot be opened is returned as an error wrapping database.ErrConnectivity.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	pool, err := database.Open(ctx, cfg.Database.PoolConfig(), log)
	if err != nil {
		return nil, err
	}

	a, err := NewWithPool(ctx, cfg, pool, log)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return a, nil
}

// NewWithPool builds the services over an already open pool
func NewWithPool(ctx context.Context, cfg *config.Config, pool database.Pool, log logger.Logger) (*App, error) {
	store, err := storage.NewStorage(ctx, cfg.Storage.Backend())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	records := service.NewRecordServiceForPool(pool, log,
		service.WithQueryTimeout(cfg.Database.QueryTimeout),
	)

	exports := service.NewExportService(
		service.WithSnapshotSource(records),
		service.WithExportStorage(store),
		service.WithExportLogger(log.WithField("component", "export")),
	)

	return &App{
		Config:  cfg,
		Log:     log,
		Pool:    pool,
		Records: records,
		Exports: exports,
		Storage: store,
	}, nil
}

// Close releases the pool
func (a *App) Close() {
	if a.Pool != nil {
		a.Pool.Close()
		a.Log.Debug("Connection pool closed")
	}
}
