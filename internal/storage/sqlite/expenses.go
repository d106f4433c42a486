package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tripplanner/internal/models"
)

const expenseColumns = "id, categoria, monto, descripcion, fecha, tipo, user_id, created_at"

func scanExpense(row rowScanner) (*models.Expense, error) {
	e := &models.Expense{}
	var owner sql.NullString
	if err := row.Scan(
		&e.ID,
		&e.Category,
		&e.Amount,
		&e.Description,
		&e.Date,
		&e.Kind,
		&owner,
		&e.CreatedAt,
	); err != nil {
		return nil, err
	}
	e.UserID = owner.String
	return e, nil
}

// ownerValue stores an empty owner as NULL.
func ownerValue(userID string) sql.NullString {
	return sql.NullString{String: userID, Valid: userID != ""}
}

// ListExpenses returns rows owned by userID plus unowned rows, newest first.
func (s *SQLiteStore) ListExpenses(ctx context.Context, userID string) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+expenseColumns+" FROM gastos WHERE user_id = ? OR user_id IS NULL ORDER BY fecha DESC, created_at DESC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []*models.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}
	return expenses, nil
}

func (s *SQLiteStore) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	e, err := scanExpense(s.db.QueryRowContext(ctx, "SELECT "+expenseColumns+" FROM gastos WHERE id = ?", id))
	if err != nil {
		return nil, notFound(err, "expense")
	}
	return e, nil
}

// CreateExpense inserts an expense, generating ID and CreatedAt when unset.
func (s *SQLiteStore) CreateExpense(ctx context.Context, e *models.Expense) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt == 0 {
		e.CreatedAt = time.Now().Unix()
	}
	if e.Kind == "" {
		e.Kind = models.KindPersonal
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO gastos ("+expenseColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		e.ID, e.Category, e.Amount.String(), e.Description, e.Date, e.Kind, ownerValue(e.UserID), e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return nil
}

// UpdateExpense replaces the editable fields. The owner never changes.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, e *models.Expense) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE gastos SET categoria = ?, monto = ?, descripcion = ?, fecha = ?, tipo = ? WHERE id = ?",
		e.Category, e.Amount.String(), e.Description, e.Date, e.Kind, e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	return expectOne(res, "expense")
}

func (s *SQLiteStore) DeleteExpense(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM gastos WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return expectOne(res, "expense")
}
