// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/tripplanner/internal/models"
)

// ErrNotFound is returned when a row addressed by id (or email) does not exist.
var ErrNotFound = errors.New("not found")

// CatalogStore holds the admin-curated planning lists.
// List methods return rows in display order:
//   - itinerario: fecha asc, hora asc
//   - lugares: prioridad desc, nombre asc
//   - equipaje: categoria asc, item asc
type CatalogStore interface {
	ListItinerary(ctx context.Context) ([]*models.ItineraryEvent, error)
	GetItineraryEvent(ctx context.Context, id string) (*models.ItineraryEvent, error)
	// CreateItineraryEvent persists a new event. ID and CreatedAt are filled
	// in when empty.
	CreateItineraryEvent(ctx context.Context, event *models.ItineraryEvent) error
	UpdateItineraryEvent(ctx context.Context, event *models.ItineraryEvent) error
	DeleteItineraryEvent(ctx context.Context, id string) error

	ListPlaces(ctx context.Context) ([]*models.Place, error)
	GetPlace(ctx context.Context, id string) (*models.Place, error)
	CreatePlace(ctx context.Context, place *models.Place) error
	UpdatePlace(ctx context.Context, place *models.Place) error
	DeletePlace(ctx context.Context, id string) error

	ListPackingItems(ctx context.Context) ([]*models.PackingItem, error)
	GetPackingItem(ctx context.Context, id string) (*models.PackingItem, error)
	// CreatePackingItems inserts a batch in one call.
	CreatePackingItems(ctx context.Context, items []*models.PackingItem) error
	UpdatePackingItem(ctx context.Context, item *models.PackingItem) error
	DeletePackingItem(ctx context.Context, id string) error
}

// ProgressStore holds per-user completion rows for personally tracked domains.
type ProgressStore interface {
	// ListProgress returns every progress row of userID in the domain.
	ListProgress(ctx context.Context, domain models.Domain, userID string) ([]*models.Progress, error)

	// UpsertProgress writes the row keyed by (UserID, ItemID): the existing
	// row is updated in place, otherwise a new one is inserted.
	UpsertProgress(ctx context.Context, domain models.Domain, progress *models.Progress) error
}

// ExpenseStore holds manually entered expenses.
type ExpenseStore interface {
	// ListExpenses returns rows owned by userID plus rows with no owner,
	// newest first.
	ListExpenses(ctx context.Context, userID string) ([]*models.Expense, error)
	GetExpense(ctx context.Context, id string) (*models.Expense, error)
	CreateExpense(ctx context.Context, expense *models.Expense) error
	UpdateExpense(ctx context.Context, expense *models.Expense) error
	DeleteExpense(ctx context.Context, id string) error
}

// UserStore holds accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, userID, hash string) error
}

// Store defines every table operation the planner needs.
// This abstraction allows swapping the local SQLite database for the hosted
// table service without changing the service layer.
type Store interface {
	CatalogStore
	ProgressStore
	ExpenseStore
	UserStore

	// Ping checks connectivity and that the itinerary table answers.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
