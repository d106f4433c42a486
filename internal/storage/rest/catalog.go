package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/tripplanner/internal/models"
)

type itineraryRow struct {
	ID          string          `json:"id"`
	Fecha       string          `json:"fecha"`
	Hora        *string         `json:"hora"`
	Titulo      string          `json:"titulo"`
	Descripcion string          `json:"descripcion"`
	Ubicacion   string          `json:"ubicacion"`
	Precio      decimal.Decimal `json:"precio"`
	CreatedAt   *time.Time      `json:"created_at,omitempty"`
}

func itineraryRowOf(ev *models.ItineraryEvent) itineraryRow {
	row := itineraryRow{
		ID:          ev.ID,
		Fecha:       ev.Date,
		Titulo:      ev.Title,
		Descripcion: ev.Description,
		Ubicacion:   ev.Location,
		Precio:      ev.Price,
		CreatedAt:   timeOf(ev.CreatedAt),
	}
	if ev.Time != "" {
		hora := ev.Time
		row.Hora = &hora
	}
	return row
}

func (r itineraryRow) model() *models.ItineraryEvent {
	ev := &models.ItineraryEvent{
		ID:          r.ID,
		Date:        r.Fecha,
		Title:       r.Titulo,
		Description: r.Descripcion,
		Location:    r.Ubicacion,
		Price:       r.Precio,
		CreatedAt:   unixOf(r.CreatedAt),
	}
	if r.Hora != nil {
		// time columns come back as HH:MM:SS
		ev.Time = trimSeconds(*r.Hora)
	}
	return ev
}

func trimSeconds(clock string) string {
	if len(clock) == len("15:04:05") && clock[5] == ':' {
		return clock[:5]
	}
	return clock
}

func (s *Store) ListItinerary(ctx context.Context) ([]*models.ItineraryEvent, error) {
	var rows []itineraryRow
	q := url.Values{"select": {"*"}, "order": {"fecha.asc,hora.asc.nullsfirst"}}
	if err := s.do(ctx, http.MethodGet, "itinerario", q, nil, "", &rows); err != nil {
		return nil, fmt.Errorf("failed to list itinerary: %w", err)
	}
	events := make([]*models.ItineraryEvent, 0, len(rows))
	for _, r := range rows {
		events = append(events, r.model())
	}
	return events, nil
}

func (s *Store) GetItineraryEvent(ctx context.Context, id string) (*models.ItineraryEvent, error) {
	var rows []itineraryRow
	if err := s.do(ctx, http.MethodGet, "itinerario", byID(id), nil, "", &rows); err != nil {
		return nil, fmt.Errorf("failed to get itinerary event: %w", err)
	}
	row, err := first(rows, "itinerary event")
	if err != nil {
		return nil, err
	}
	return row.model(), nil
}

func (s *Store) CreateItineraryEvent(ctx context.Context, ev *models.ItineraryEvent) error {
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	var rows []itineraryRow
	if err := s.do(ctx, http.MethodPost, "itinerario", nil, itineraryRowOf(ev), preferRepresentation, &rows); err != nil {
		return fmt.Errorf("failed to insert itinerary event: %w", err)
	}
	if row, err := first(rows, "itinerary event"); err == nil {
		ev.CreatedAt = unixOf(row.CreatedAt)
	}
	return nil
}

func (s *Store) UpdateItineraryEvent(ctx context.Context, ev *models.ItineraryEvent) error {
	row := itineraryRowOf(ev)
	row.CreatedAt = nil
	var rows []itineraryRow
	if err := s.do(ctx, http.MethodPatch, "itinerario", byID(ev.ID), row, preferRepresentation, &rows); err != nil {
		return fmt.Errorf("failed to update itinerary event: %w", err)
	}
	_, err := first(rows, "itinerary event")
	return err
}

func (s *Store) DeleteItineraryEvent(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "itinerario", id, "itinerary event")
}

type placeRow struct {
	ID          string     `json:"id"`
	Nombre      string     `json:"nombre"`
	Descripcion string     `json:"descripcion"`
	Categoria   string     `json:"categoria"`
	Prioridad   int        `json:"prioridad"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

func placeRowOf(p *models.Place) placeRow {
	return placeRow{
		ID:          p.ID,
		Nombre:      p.Name,
		Descripcion: p.Description,
		Categoria:   p.Category,
		Prioridad:   p.Priority,
		CreatedAt:   timeOf(p.CreatedAt),
	}
}

func (r placeRow) model() *models.Place {
	return &models.Place{
		ID:          r.ID,
		Name:        r.Nombre,
		Description: r.Descripcion,
		Category:    r.Categoria,
		Priority:    r.Prioridad,
		CreatedAt:   unixOf(r.CreatedAt),
	}
}

func (s *Store) ListPlaces(ctx context.Context) ([]*models.Place, error) {
	var rows []placeRow
	q := url.Values{"select": {"*"}, "order": {"prioridad.desc,nombre.asc"}}
	if err := s.do(ctx, http.MethodGet, "lugares", q, nil, "", &rows); err != nil {
		return nil, fmt.Errorf("failed to list places: %w", err)
	}
	places := make([]*models.Place, 0, len(rows))
	for _, r := range rows {
		places = append(places, r.model())
	}
	return places, nil
}

func (s *Store) GetPlace(ctx context.Context, id string) (*models.Place, error) {
	var rows []placeRow
	if err := s.do(ctx, http.MethodGet, "lugares", byID(id), nil, "", &rows); err != nil {
		return nil, fmt.Errorf("failed to get place: %w", err)
	}
	row, err := first(rows, "place")
	if err != nil {
		return nil, err
	}
	return row.model(), nil
}

func (s *Store) CreatePlace(ctx context.Context, p *models.Place) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	var rows []placeRow
	if err := s.do(ctx, http.MethodPost, "lugares", nil, placeRowOf(p), preferRepresentation, &rows); err != nil {
		return fmt.Errorf("failed to insert place: %w", err)
	}
	if row, err := first(rows, "place"); err == nil {
		p.CreatedAt = unixOf(row.CreatedAt)
	}
	return nil
}

func (s *Store) UpdatePlace(ctx context.Context, p *models.Place) error {
	row := placeRowOf(p)
	row.CreatedAt = nil
	var rows []placeRow
	if err := s.do(ctx, http.MethodPatch, "lugares", byID(p.ID), row, preferRepresentation, &rows); err != nil {
		return fmt.Errorf("failed to update place: %w", err)
	}
	_, err := first(rows, "place")
	return err
}

func (s *Store) DeletePlace(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "lugares", id, "place")
}

type packingRow struct {
	ID        string     `json:"id"`
	Item      string     `json:"item"`
	Categoria string     `json:"categoria"`
	Empacado  bool       `json:"empacado"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

func packingRowOf(i *models.PackingItem) packingRow {
	return packingRow{
		ID:        i.ID,
		Item:      i.Name,
		Categoria: i.Category,
		Empacado:  i.Packed,
		CreatedAt: timeOf(i.CreatedAt),
	}
}

func (r packingRow) model() *models.PackingItem {
	return &models.PackingItem{
		ID:        r.ID,
		Name:      r.Item,
		Category:  r.Categoria,
		Packed:    r.Empacado,
		CreatedAt: unixOf(r.CreatedAt),
	}
}

func (s *Store) ListPackingItems(ctx context.Context) ([]*models.PackingItem, error) {
	var rows []packingRow
	q := url.Values{"select": {"*"}, "order": {"categoria.asc,item.asc"}}
	if err := s.do(ctx, http.MethodGet, "equipaje", q, nil, "", &rows); err != nil {
		return nil, fmt.Errorf("failed to list packing items: %w", err)
	}
	items := make([]*models.PackingItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, r.model())
	}
	return items, nil
}

func (s *Store) GetPackingItem(ctx context.Context, id string) (*models.PackingItem, error) {
	var rows []packingRow
	if err := s.do(ctx, http.MethodGet, "equipaje", byID(id), nil, "", &rows); err != nil {
		return nil, fmt.Errorf("failed to get packing item: %w", err)
	}
	row, err := first(rows, "packing item")
	if err != nil {
		return nil, err
	}
	return row.model(), nil
}

// CreatePackingItems posts the whole batch as one JSON array.
func (s *Store) CreatePackingItems(ctx context.Context, items []*models.PackingItem) error {
	if len(items) == 0 {
		return nil
	}
	body := make([]packingRow, 0, len(items))
	for _, item := range items {
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		body = append(body, packingRowOf(item))
	}

	var rows []packingRow
	if err := s.do(ctx, http.MethodPost, "equipaje", nil, body, preferRepresentation, &rows); err != nil {
		return fmt.Errorf("failed to insert packing items: %w", err)
	}
	created := make(map[string]int64, len(rows))
	for _, r := range rows {
		created[r.ID] = unixOf(r.CreatedAt)
	}
	for _, item := range items {
		if ts, ok := created[item.ID]; ok {
			item.CreatedAt = ts
		}
	}
	return nil
}

func (s *Store) UpdatePackingItem(ctx context.Context, item *models.PackingItem) error {
	row := packingRowOf(item)
	row.CreatedAt = nil
	var rows []packingRow
	if err := s.do(ctx, http.MethodPatch, "equipaje", byID(item.ID), row, preferRepresentation, &rows); err != nil {
		return fmt.Errorf("failed to update packing item: %w", err)
	}
	_, err := first(rows, "packing item")
	return err
}

func (s *Store) DeletePackingItem(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "equipaje", id, "packing item")
}

// deleteByID removes one row and reports storage.ErrNotFound when nothing matched.
func (s *Store) deleteByID(ctx context.Context, table, id, what string) error {
	var rows []struct {
		ID string `json:"id"`
	}
	q := byID(id)
	q.Set("select", "id")
	if err := s.do(ctx, http.MethodDelete, table, q, nil, preferRepresentation, &rows); err != nil {
		return fmt.Errorf("failed to delete %s: %w", what, err)
	}
	_, err := first(rows, what)
	return err
}
