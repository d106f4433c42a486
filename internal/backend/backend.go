// Package backend opens the store selected by configuration.
package backend

import (
	"fmt"
	"log/slog"

	"github.com/mmynk/tripplanner/internal/config"
	"github.com/mmynk/tripplanner/internal/storage"
	"github.com/mmynk/tripplanner/internal/storage/rest"
	"github.com/mmynk/tripplanner/internal/storage/sqlite"
)

// Open returns the store named by cfg.StoreURL: a local SQLite file for
// sqlite://<path>, the hosted table API for http(s) URLs.
func Open(cfg *config.Config) (storage.Store, error) {
	switch cfg.StoreKind() {
	case config.StoreSQLite:
		path := cfg.SQLitePath()
		if path == "" {
			return nil, fmt.Errorf("store url %q has no database path", cfg.StoreURL)
		}
		store, err := sqlite.New(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		slog.Info("Opened SQLite store", "path", path)
		return store, nil

	case config.StoreREST:
		store, err := rest.New(cfg.StoreURL, cfg.StoreAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create table API client: %w", err)
		}
		slog.Info("Using hosted table API", "url", cfg.StoreURL)
		return store, nil

	default:
		return nil, fmt.Errorf("unsupported store url %q", cfg.StoreURL)
	}
}
