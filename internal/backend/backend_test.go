package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mmynk/tripplanner/internal/config"
	"github.com/mmynk/tripplanner/internal/storage/rest"
	"github.com/mmynk/tripplanner/internal/storage/sqlite"
)

func TestOpen(t *testing.T) {
	t.Run("sqlite", func(t *testing.T) {
		cfg := &config.Config{StoreURL: "sqlite://" + filepath.Join(t.TempDir(), "trip.db")}
		store, err := Open(cfg)
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		defer store.Close()

		if _, ok := store.(*sqlite.SQLiteStore); !ok {
			t.Errorf("expected *sqlite.SQLiteStore, got %T", store)
		}
		if err := store.Ping(context.Background()); err != nil {
			t.Errorf("Ping failed: %v", err)
		}
	})

	t.Run("rest", func(t *testing.T) {
		cfg := &config.Config{StoreURL: "https://example.supabase.co", StoreAPIKey: "anon"}
		store, err := Open(cfg)
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		defer store.Close()

		if _, ok := store.(*rest.Store); !ok {
			t.Errorf("expected *rest.Store, got %T", store)
		}
	})

	t.Run("unsupported", func(t *testing.T) {
		for _, raw := range []string{"", "postgres://db/trip", "sqlite://"} {
			if _, err := Open(&config.Config{StoreURL: raw}); err == nil {
				t.Errorf("Open(%q) should fail", raw)
			}
		}
	})
}
