package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/mmynk/tripplanner/internal/models"
)

type progressRow struct {
	UserID     string     `json:"user_id"`
	ItemID     string     `json:"item_id"`
	Completado bool       `json:"completado"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

func (s *Store) ListProgress(ctx context.Context, domain models.Domain, userID string) ([]*models.Progress, error) {
	var rows []progressRow
	q := url.Values{"select": {"*"}, "user_id": {eq(userID)}}
	if err := s.do(ctx, http.MethodGet, domain.ProgressTable, q, nil, "", &rows); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", domain.ProgressTable, err)
	}
	progress := make([]*models.Progress, 0, len(rows))
	for _, r := range rows {
		progress = append(progress, &models.Progress{
			UserID:    r.UserID,
			ItemID:    r.ItemID,
			Completed: r.Completado,
			UpdatedAt: unixOf(r.UpdatedAt),
		})
	}
	return progress, nil
}

// UpsertProgress inserts or merges the (user_id, item_id) row.
func (s *Store) UpsertProgress(ctx context.Context, domain models.Domain, p *models.Progress) error {
	if p.UpdatedAt == 0 {
		p.UpdatedAt = time.Now().Unix()
	}
	row := progressRow{
		UserID:     p.UserID,
		ItemID:     p.ItemID,
		Completado: p.Completed,
		UpdatedAt:  timeOf(p.UpdatedAt),
	}
	q := url.Values{"on_conflict": {"user_id,item_id"}}
	if err := s.do(ctx, http.MethodPost, domain.ProgressTable, q, row, preferMergeDupes, nil); err != nil {
		return fmt.Errorf("failed to upsert %s: %w", domain.ProgressTable, err)
	}
	return nil
}
