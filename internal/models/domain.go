package models

import "fmt"

// Tracking says where per-item completion state lives for a planning domain.
type Tracking string

const (
	// TrackPersonal keeps one progress row per (user, item).
	TrackPersonal Tracking = "personal"
	// TrackShared keeps a single flag on the catalog row for all users.
	TrackShared Tracking = "shared"
)

// Domain describes one planning list.
type Domain struct {
	// Name is the short identifier used in logs and change events.
	Name string

	// Table is the catalog table.
	Table string

	// ProgressTable holds (user_id, item_id) -> completed rows.
	// Only read when Tracking is TrackPersonal.
	ProgressTable string

	Tracking Tracking
}

var (
	ItineraryDomain = Domain{
		Name:          "itinerary",
		Table:         "itinerario",
		ProgressTable: "itinerario_progreso",
		Tracking:      TrackPersonal,
	}

	PlacesDomain = Domain{
		Name:          "places",
		Table:         "lugares",
		ProgressTable: "lugares_progreso",
		Tracking:      TrackPersonal,
	}

	// PackingDomain is shared by default: the packed flag lives on the
	// equipaje row. Deployments can switch it to personal tracking.
	PackingDomain = Domain{
		Name:          "packing",
		Table:         "equipaje",
		ProgressTable: "equipaje_progreso",
		Tracking:      TrackShared,
	}
)

// WithTracking returns a copy of d using the given tracking mode.
func (d Domain) WithTracking(t Tracking) Domain {
	d.Tracking = t
	return d
}

// Personal reports whether completion is tracked per user.
func (d Domain) Personal() bool {
	return d.Tracking == TrackPersonal
}

// ParseTracking parses "personal" or "shared".
func ParseTracking(s string) (Tracking, error) {
	switch Tracking(s) {
	case TrackPersonal, TrackShared:
		return Tracking(s), nil
	default:
		return "", fmt.Errorf("invalid tracking mode %q: must be %q or %q", s, TrackPersonal, TrackShared)
	}
}

// ProgressTables lists every progress table known to the stores.
func ProgressTables() []string {
	return []string{
		ItineraryDomain.ProgressTable,
		PlacesDomain.ProgressTable,
		PackingDomain.ProgressTable,
	}
}
