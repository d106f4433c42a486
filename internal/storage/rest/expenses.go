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

type expenseRow struct {
	ID          string                 `json:"id"`
	Categoria   models.ExpenseCategory `json:"categoria"`
	Monto       decimal.Decimal        `json:"monto"`
	Descripcion string                 `json:"descripcion"`
	Fecha       string                 `json:"fecha"`
	Tipo        models.ExpenseKind     `json:"tipo"`
	UserID      *string                `json:"user_id"`
	CreatedAt   *time.Time             `json:"created_at,omitempty"`
}

func expenseRowOf(e *models.Expense) expenseRow {
	row := expenseRow{
		ID:          e.ID,
		Categoria:   e.Category,
		Monto:       e.Amount,
		Descripcion: e.Description,
		Fecha:       e.Date,
		Tipo:        e.Kind,
		CreatedAt:   timeOf(e.CreatedAt),
	}
	if e.UserID != "" {
		owner := e.UserID
		row.UserID = &owner
	}
	return row
}

func (r expenseRow) model() *models.Expense {
	e := &models.Expense{
		ID:          r.ID,
		Category:    r.Categoria,
		Amount:      r.Monto,
		Description: r.Descripcion,
		Date:        r.Fecha,
		Kind:        r.Tipo,
		CreatedAt:   unixOf(r.CreatedAt),
	}
	if e.Kind == "" {
		e.Kind = models.KindPersonal
	}
	if r.UserID != nil {
		e.UserID = *r.UserID
	}
	return e
}

// ListExpenses returns rows owned by userID or without owner, newest first.
func (s *Store) ListExpenses(ctx context.Context, userID string) ([]*models.Expense, error) {
	var rows []expenseRow
	q := url.Values{
		"select": {"*"},
		"or":     {fmt.Sprintf("(user_id.eq.%s,user_id.is.null)", userID)},
		"order":  {"fecha.desc,created_at.desc"},
	}
	if err := s.do(ctx, http.MethodGet, "gastos", q, nil, "", &rows); err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	expenses := make([]*models.Expense, 0, len(rows))
	for _, r := range rows {
		expenses = append(expenses, r.model())
	}
	return expenses, nil
}

func (s *Store) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	var rows []expenseRow
	if err := s.do(ctx, http.MethodGet, "gastos", byID(id), nil, "", &rows); err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	row, err := first(rows, "expense")
	if err != nil {
		return nil, err
	}
	return row.model(), nil
}

func (s *Store) CreateExpense(ctx context.Context, e *models.Expense) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Kind == "" {
		e.Kind = models.KindPersonal
	}
	var rows []expenseRow
	if err := s.do(ctx, http.MethodPost, "gastos", nil, expenseRowOf(e), preferRepresentation, &rows); err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	if row, err := first(rows, "expense"); err == nil {
		e.CreatedAt = unixOf(row.CreatedAt)
	}
	return nil
}

// UpdateExpense patches the editable fields; the owner column is left alone.
func (s *Store) UpdateExpense(ctx context.Context, e *models.Expense) error {
	patch := map[string]any{
		"categoria":   e.Category,
		"monto":       e.Amount,
		"descripcion": e.Description,
		"fecha":       e.Date,
		"tipo":        e.Kind,
	}
	var rows []expenseRow
	if err := s.do(ctx, http.MethodPatch, "gastos", byID(e.ID), patch, preferRepresentation, &rows); err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	_, err := first(rows, "expense")
	return err
}

func (s *Store) DeleteExpense(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "gastos", id, "expense")
}
