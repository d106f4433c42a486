package models

import (
	"errors"
	"fmt"
	"strings"
)

const (
	MinPriority = 1
	MaxPriority = 5
)

// PlaceCategories are the accepted values of Place.Category.
var PlaceCategories = []string{"playa", "restaurante", "actividad", "turistico", "naturaleza", "otro"}

var ErrEmptyName = errors.New("name is required")

// Place is a place worth visiting during the trip.
type Place struct {
	ID          string
	Name        string
	Description string
	Category    string

	// Priority ranks places for display, highest first (1..5).
	Priority int

	CreatedAt int64
}

// Validate checks name, category and priority.
func (p *Place) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if !contains(PlaceCategories, p.Category) {
		return fmt.Errorf("invalid place category %q", p.Category)
	}
	if p.Priority < MinPriority || p.Priority > MaxPriority {
		return fmt.Errorf("invalid priority %d: must be between %d and %d", p.Priority, MinPriority, MaxPriority)
	}
	return nil
}

// IsPlaceCategory reports whether c is one of PlaceCategories.
func IsPlaceCategory(c string) bool {
	return contains(PlaceCategories, c)
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
