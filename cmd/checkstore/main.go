// Command checkstore checks that the configured store answers.
//
// It loads .env.local and .env like the server, prints what it found and
// queries the itinerary table once. The exit status is 1 on any failure.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mmynk/tripplanner/internal/backend"
	"github.com/mmynk/tripplanner/internal/config"
	"github.com/mmynk/tripplanner/internal/storage"
	"github.com/mmynk/tripplanner/internal/storage/rest"
	"github.com/mmynk/tripplanner/pkg/logging"
)

func main() {
	timeout := flag.Duration("timeout", 10*time.Second, "how long to wait for the store")
	flag.Parse()

	logging.Setup()
	config.LoadEnvFiles()
	cfg := config.Load()

	fmt.Println("--- Store check ---")
	fmt.Printf("STORE_URL: %s\n", cfg.StoreURL)
	if cfg.StoreKind() == config.StoreREST {
		fmt.Printf("STORE_API_KEY: %s\n", presence(cfg.StoreAPIKey))
	}

	if err := cfg.ValidateStore(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	store, err := backend.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := check(ctx, store, os.Stdout); err != nil {
		os.Exit(1)
	}
}

// check pings store and reports the outcome on w.
func check(ctx context.Context, store storage.Store, w io.Writer) error {
	fmt.Fprintln(w, "Connecting...")
	err := store.Ping(ctx)
	if err == nil {
		fmt.Fprintln(w, "OK: the itinerario table answers.")
		return nil
	}

	fmt.Fprintf(w, "FAILED: %v\n", err)
	var apiErr *rest.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code != "" {
			fmt.Fprintf(w, "Code: %s\n", apiErr.Code)
		}
		if apiErr.Hint != "" {
			fmt.Fprintf(w, "Hint: %s\n", apiErr.Hint)
		}
	}
	return err
}

func presence(v string) string {
	if v == "" {
		return "missing"
	}
	return "present"
}
