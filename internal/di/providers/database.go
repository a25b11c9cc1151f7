package providers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/foldnote/foldnote-server/internal/config"
	"github.com/foldnote/foldnote-server/internal/logger"
	"github.com/foldnote/foldnote-server/internal/store"
	"github.com/foldnote/foldnote-server/internal/store/postgres"
	"github.com/foldnote/foldnote-server/internal/store/sqlite"
)

// StoreHandle wraps the configured backend with shutdown capability.
type StoreHandle struct {
	store.Store
	Driver string
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore opens the backend selected by Storage.Driver.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()

		db, err := postgres.Open(ctx, cfg.Storage.DatabaseURL, log.Component("store"))
		if err != nil {
			return nil, err
		}
		log.Info("Database initialized", "driver", cfg.Storage.Driver)
		return &StoreHandle{Store: db, Driver: cfg.Storage.Driver}, nil

	case config.DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.Storage.DBPath), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
		db, err := sqlite.Open(cfg.Storage.DBPath, log.Component("store"))
		if err != nil {
			return nil, err
		}
		log.Info("Database initialized", "driver", cfg.Storage.Driver, "path", cfg.Storage.DBPath)
		return &StoreHandle{Store: db, Driver: cfg.Storage.Driver}, nil

	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Storage.Driver)
	}
}
