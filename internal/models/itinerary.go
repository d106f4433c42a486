package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyTitle     = errors.New("title is required")
	ErrNegativeAmount = errors.New("amount cannot be negative")
	ErrTitleTooLong   = errors.New("title too long (max 200 characters)")
)

// ItineraryEvent is one scheduled activity of the trip.
type ItineraryEvent struct {
	// ID is the unique identifier (UUID format).
	ID string

	// Date is the day of the activity (YYYY-MM-DD).
	Date string

	// Time is the optional start time (HH:MM).
	Time string

	Title       string
	Description string
	Location    string

	// Price is the per-person cost. Events with a positive price show up in
	// the budget ledger.
	Price decimal.Decimal

	// CreatedAt is the Unix timestamp when the event was created.
	CreatedAt int64
}

// Validate checks the fields an admin must provide and normalizes Time.
func (e *ItineraryEvent) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrEmptyTitle
	}
	if len(e.Title) > 200 {
		return ErrTitleTooLong
	}
	if _, err := Moment(e.Date, e.Time); err != nil {
		return err
	}
	e.Time = NormalizeClock(e.Time)
	if e.Price.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}

// Priced reports whether the event carries a cost.
func (e *ItineraryEvent) Priced() bool {
	return e.Price.IsPositive()
}
