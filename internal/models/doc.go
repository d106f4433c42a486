// Package models defines the core domain records of the trip planner.
//
// # Catalogs
//
// Each planning list is a single admin-curated catalog shared by every user:
//   - ItineraryEvent: a dated activity, optionally priced (table itinerario)
//   - Place: a place worth visiting, ranked by priority (table lugares)
//   - PackingItem: a packing checklist entry (table equipaje)
//
// # Progress
//
// Completion state ("done", "visited", "packed") is tracked per Domain.
// Personal domains keep one Progress row per (user, item) in a separate
// table; a missing row reads as not completed. Shared domains keep the flag
// on the catalog row itself, so every user sees the same state.
//
// # Expenses
//
// Expense rows are entered by hand and owned by the user who created them.
// Rows with no owner predate per-user attribution and are visible to all.
// Priced itinerary events are projected into the budget ledger at read time
// (see package calculator) and are never stored as expenses.
package models
