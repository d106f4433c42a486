package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mmynk/tripplanner/internal/calculator"
	"github.com/mmynk/tripplanner/internal/models"
	"github.com/mmynk/tripplanner/internal/storage"
)

// progressState returns itemID -> completed for userID over itemIDs.
func progressState(ctx context.Context, store storage.ProgressStore, domain models.Domain, userID string, itemIDs []string) (map[string]bool, error) {
	rows, err := store.ListProgress(ctx, domain, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s progress: %w", domain.Name, err)
	}
	return calculator.MergeProgress(itemIDs, rows), nil
}

// toggleProgress flips the caller's flag for itemID and returns the value
// written. The row is upserted on (user_id, item_id).
func toggleProgress(ctx context.Context, store storage.ProgressStore, domain models.Domain, userID, itemID string) (bool, error) {
	state, err := progressState(ctx, store, domain, userID, []string{itemID})
	if err != nil {
		return false, err
	}
	next := calculator.Toggle(state[itemID])
	err = store.UpsertProgress(ctx, domain, &models.Progress{
		UserID:    userID,
		ItemID:    itemID,
		Completed: next,
		UpdatedAt: time.Now().Unix(),
	})
	if err != nil {
		return false, fmt.Errorf("failed to write %s progress: %w", domain.Name, err)
	}
	return next, nil
}
