package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tripplanner/internal/models"
)

const itineraryColumns = "id, fecha, hora, titulo, descripcion, ubicacion, precio, created_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItineraryEvent(row rowScanner) (*models.ItineraryEvent, error) {
	ev := &models.ItineraryEvent{}
	if err := row.Scan(
		&ev.ID,
		&ev.Date,
		&ev.Time,
		&ev.Title,
		&ev.Description,
		&ev.Location,
		&ev.Price,
		&ev.CreatedAt,
	); err != nil {
		return nil, err
	}
	return ev, nil
}

// ListItinerary returns every event by date, then time.
func (s *SQLiteStore) ListItinerary(ctx context.Context) ([]*models.ItineraryEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+itineraryColumns+" FROM itinerario ORDER BY fecha ASC, hora ASC, created_at ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list itinerary: %w", err)
	}
	defer rows.Close()

	events := []*models.ItineraryEvent{}
	for rows.Next() {
		ev, err := scanItineraryEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan itinerary event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating itinerary: %w", err)
	}
	return events, nil
}

// GetItineraryEvent retrieves one event by ID.
func (s *SQLiteStore) GetItineraryEvent(ctx context.Context, id string) (*models.ItineraryEvent, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+itineraryColumns+" FROM itinerario WHERE id = ?", id)
	ev, err := scanItineraryEvent(row)
	if err != nil {
		return nil, notFound(err, "itinerary event")
	}
	return ev, nil
}

// CreateItineraryEvent inserts an event, generating ID and CreatedAt when unset.
func (s *SQLiteStore) CreateItineraryEvent(ctx context.Context, ev *models.ItineraryEvent) error {
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	if ev.CreatedAt == 0 {
		ev.CreatedAt = time.Now().Unix()
	}
	// hora is ordered as text
	ev.Time = models.NormalizeClock(ev.Time)

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO itinerario ("+itineraryColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		ev.ID, ev.Date, ev.Time, ev.Title, ev.Description, ev.Location, ev.Price.String(), ev.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert itinerary event: %w", err)
	}
	return nil
}

// UpdateItineraryEvent replaces the editable fields of an event.
func (s *SQLiteStore) UpdateItineraryEvent(ctx context.Context, ev *models.ItineraryEvent) error {
	ev.Time = models.NormalizeClock(ev.Time)
	res, err := s.db.ExecContext(ctx, `
		UPDATE itinerario
		SET fecha = ?, hora = ?, titulo = ?, descripcion = ?, ubicacion = ?, precio = ?
		WHERE id = ?`,
		ev.Date, ev.Time, ev.Title, ev.Description, ev.Location, ev.Price.String(), ev.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update itinerary event: %w", err)
	}
	return expectOne(res, "itinerary event")
}

// DeleteItineraryEvent removes an event. Progress rows go with it.
func (s *SQLiteStore) DeleteItineraryEvent(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM itinerario WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete itinerary event: %w", err)
	}
	return expectOne(res, "itinerary event")
}

const placeColumns = "id, nombre, descripcion, categoria, prioridad, created_at"

func scanPlace(row rowScanner) (*models.Place, error) {
	p := &models.Place{}
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Priority, &p.CreatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

// ListPlaces returns places by priority (highest first), then name.
func (s *SQLiteStore) ListPlaces(ctx context.Context) ([]*models.Place, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+placeColumns+" FROM lugares ORDER BY prioridad DESC, nombre ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list places: %w", err)
	}
	defer rows.Close()

	places := []*models.Place{}
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan place: %w", err)
		}
		places = append(places, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating places: %w", err)
	}
	return places, nil
}

// GetPlace retrieves one place by ID.
func (s *SQLiteStore) GetPlace(ctx context.Context, id string) (*models.Place, error) {
	p, err := scanPlace(s.db.QueryRowContext(ctx, "SELECT "+placeColumns+" FROM lugares WHERE id = ?", id))
	if err != nil {
		return nil, notFound(err, "place")
	}
	return p, nil
}

// CreatePlace inserts a place, generating ID and CreatedAt when unset.
func (s *SQLiteStore) CreatePlace(ctx context.Context, p *models.Place) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt == 0 {
		p.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO lugares ("+placeColumns+") VALUES (?, ?, ?, ?, ?, ?)",
		p.ID, p.Name, p.Description, p.Category, p.Priority, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert place: %w", err)
	}
	return nil
}

func (s *SQLiteStore) UpdatePlace(ctx context.Context, p *models.Place) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE lugares SET nombre = ?, descripcion = ?, categoria = ?, prioridad = ? WHERE id = ?",
		p.Name, p.Description, p.Category, p.Priority, p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update place: %w", err)
	}
	return expectOne(res, "place")
}

func (s *SQLiteStore) DeletePlace(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM lugares WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete place: %w", err)
	}
	return expectOne(res, "place")
}

const packingColumns = "id, item, categoria, empacado, created_at"

func scanPackingItem(row rowScanner) (*models.PackingItem, error) {
	item := &models.PackingItem{}
	var packed int
	if err := row.Scan(&item.ID, &item.Name, &item.Category, &packed, &item.CreatedAt); err != nil {
		return nil, err
	}
	item.Packed = packed != 0
	return item, nil
}

// ListPackingItems returns the packing list by category, then name.
func (s *SQLiteStore) ListPackingItems(ctx context.Context) ([]*models.PackingItem, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+packingColumns+" FROM equipaje ORDER BY categoria ASC, item ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list packing items: %w", err)
	}
	defer rows.Close()

	items := []*models.PackingItem{}
	for rows.Next() {
		item, err := scanPackingItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan packing item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating packing items: %w", err)
	}
	return items, nil
}

func (s *SQLiteStore) GetPackingItem(ctx context.Context, id string) (*models.PackingItem, error) {
	item, err := scanPackingItem(s.db.QueryRowContext(ctx, "SELECT "+packingColumns+" FROM equipaje WHERE id = ?", id))
	if err != nil {
		return nil, notFound(err, "packing item")
	}
	return item, nil
}

// CreatePackingItems inserts a batch of items in one transaction.
func (s *SQLiteStore) CreatePackingItems(ctx context.Context, items []*models.PackingItem) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO equipaje ("+packingColumns+") VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare packing insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, item := range items {
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		if item.CreatedAt == 0 {
			item.CreatedAt = now
		}
		if _, err := stmt.ExecContext(ctx, item.ID, item.Name, item.Category, boolToInt(item.Packed), item.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert packing item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdatePackingItem replaces name, category and the shared packed flag.
func (s *SQLiteStore) UpdatePackingItem(ctx context.Context, item *models.PackingItem) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE equipaje SET item = ?, categoria = ?, empacado = ? WHERE id = ?",
		item.Name, item.Category, boolToInt(item.Packed), item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update packing item: %w", err)
	}
	return expectOne(res, "packing item")
}

func (s *SQLiteStore) DeletePackingItem(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM equipaje WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete packing item: %w", err)
	}
	return expectOne(res, "packing item")
}
