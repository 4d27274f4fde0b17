// Package backend opens the storage backend selected by configuration.
package backend

import (
	"fmt"
	"log/slog"

	"github.com/mmynk/gatherings/internal/config"
	"github.com/mmynk/gatherings/internal/storage"
	"github.com/mmynk/gatherings/internal/storage/memory"
	"github.com/mmynk/gatherings/internal/storage/sqlite"
)

// Open returns the configured store. The caller must Close it.
func Open(cfg *config.Config) (storage.Store, error) {
	switch cfg.DataBackend {
	case config.BackendSQLite:
		store, err := sqlite.New(cfg.DBPath, sqlite.WithKey(cfg.StoreKey))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize sqlite storage: %w", err)
		}
		slog.Info("Storage initialized", "backend", cfg.DataBackend, "database", cfg.DBPath, "key", cfg.StoreKey)
		return store, nil
	case config.BackendMemory:
		slog.Warn("Using in-memory storage, data is lost on exit")
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown data backend %q", cfg.DataBackend)
	}
}
