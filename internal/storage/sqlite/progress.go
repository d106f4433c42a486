package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/mmynk/tripplanner/internal/models"
)

// ListProgress returns the progress rows of userID in the domain.
func (s *SQLiteStore) ListProgress(ctx context.Context, domain models.Domain, userID string) ([]*models.Progress, error) {
	table, err := progressTable(domain)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id, item_id, completado, updated_at FROM "+table+" WHERE user_id = ?",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", table, err)
	}
	defer rows.Close()

	progress := []*models.Progress{}
	for rows.Next() {
		p := &models.Progress{}
		var completed int
		if err := rows.Scan(&p.UserID, &p.ItemID, &completed, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		p.Completed = completed != 0
		progress = append(progress, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", table, err)
	}
	return progress, nil
}

// UpsertProgress writes one (user, item) row, updating it in place on conflict.
func (s *SQLiteStore) UpsertProgress(ctx context.Context, domain models.Domain, p *models.Progress) error {
	table, err := progressTable(domain)
	if err != nil {
		return err
	}
	if p.UpdatedAt == 0 {
		p.UpdatedAt = time.Now().Unix()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO `+table+` (user_id, item_id, completado, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, item_id) DO UPDATE SET
			completado = excluded.completado,
			updated_at = excluded.updated_at`,
		p.UserID, p.ItemID, boolToInt(p.Completed), p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert %s: %w", table, err)
	}
	return nil
}
