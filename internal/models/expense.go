package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ExpenseKind separates personal spending from group spending.
type ExpenseKind string

const (
	KindPersonal ExpenseKind = "personal"
	KindGroup    ExpenseKind = "grupal"
)

// ParseExpenseKind parses a kind, defaulting to personal when empty.
func ParseExpenseKind(s string) (ExpenseKind, error) {
	switch ExpenseKind(strings.TrimSpace(s)) {
	case "", KindPersonal:
		return KindPersonal, nil
	case KindGroup:
		return KindGroup, nil
	default:
		return "", fmt.Errorf("invalid expense kind %q", s)
	}
}

// ExpenseCategory is a budget bucket.
type ExpenseCategory string

const (
	CategoryTransport  ExpenseCategory = "transporte"
	CategoryLodging    ExpenseCategory = "alojamiento"
	CategoryFood       ExpenseCategory = "comida"
	CategoryActivities ExpenseCategory = "actividades"
	CategoryShopping   ExpenseCategory = "compras"
	CategoryOther      ExpenseCategory = "otro"
)

// ExpenseCategories lists every bucket in display order.
var ExpenseCategories = []ExpenseCategory{
	CategoryTransport,
	CategoryLodging,
	CategoryFood,
	CategoryActivities,
	CategoryShopping,
	CategoryOther,
}

var ErrEmptyDescription = errors.New("description is required")

// Expense is a manually entered budget record.
type Expense struct {
	ID          string
	Category    ExpenseCategory
	Amount      decimal.Decimal
	Description string

	// Date is the day of the expense (YYYY-MM-DD).
	Date string

	Kind ExpenseKind

	// UserID is the owner. Empty for rows created before per-user
	// attribution; those are shared with everyone.
	UserID string

	CreatedAt int64
}

// Validate checks category, amount, description, date and kind.
func (e *Expense) Validate() error {
	valid := false
	for _, c := range ExpenseCategories {
		if e.Category == c {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid expense category %q", e.Category)
	}
	if e.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}
	if _, err := ParseDate(e.Date); err != nil {
		return err
	}
	if _, err := ParseExpenseKind(string(e.Kind)); err != nil {
		return err
	}
	return nil
}

// Shared reports whether the row has no owner.
func (e *Expense) Shared() bool {
	return e.UserID == ""
}

// VisibleTo reports whether userID may see the row: its own rows and shared ones.
func (e *Expense) VisibleTo(userID string) bool {
	return e.Shared() || e.UserID == userID
}
