// Command dumpprices writes the title and price of every itinerary event to
// a local JSON file. On a store error the file holds "ERROR: <message>".
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripplanner/internal/backend"
	"github.com/mmynk/tripplanner/internal/config"
	"github.com/mmynk/tripplanner/internal/storage"
	"github.com/mmynk/tripplanner/pkg/logging"
)

// priceRow mirrors the itinerario columns the dump selects.
type priceRow struct {
	Title string          `json:"titulo"`
	Price decimal.Decimal `json:"precio"`
}

func main() {
	out := flag.String("out", "output-prices.txt", "file to write")
	flag.Parse()

	logging.Setup()
	config.LoadEnvFiles()
	cfg := config.Load()
	if err := cfg.ValidateStore(); err != nil {
		slog.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	store, err := backend.Open(cfg)
	if err != nil {
		slog.Error("Failed to open store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := dump(ctx, store, *out); err != nil {
		slog.Error("Failed to write prices", "file", *out, "error", err)
		os.Exit(1)
	}
	slog.Info("Prices written", "file", *out)
}

// dump writes the itinerary prices to path. A failed query is recorded in
// the file instead of being returned; only file errors are returned.
func dump(ctx context.Context, store storage.CatalogStore, path string) error {
	events, err := store.ListItinerary(ctx)
	if err != nil {
		slog.Warn("Itinerary query failed", "error", err)
		return os.WriteFile(path, []byte("ERROR: "+err.Error()), 0o644)
	}

	rows := make([]priceRow, len(events))
	for i, ev := range events {
		rows[i] = priceRow{Title: ev.Title, Price: ev.Price}
	}

	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
