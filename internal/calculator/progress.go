package calculator

import "github.com/mmynk/tripplanner/internal/models"

// Completion is the "N of M completed" figure of one list.
type Completion struct {
	Completed int
	Total     int
	Percent   float64
}

// MergeProgress left-joins a catalog with one user's progress rows and
// returns item id -> completed for every catalog id.
// Items without a row read as false. Rows for ids outside the catalog are
// dropped.
func MergeProgress(itemIDs []string, rows []*models.Progress) map[string]bool {
	lookup := make(map[string]bool, len(rows))
	for _, row := range rows {
		lookup[row.ItemID] = row.Completed
	}

	state := make(map[string]bool, len(itemIDs))
	for _, id := range itemIDs {
		state[id] = lookup[id]
	}
	return state
}

// SummarizeCompletion counts completed ids against the whole catalog.
func SummarizeCompletion(itemIDs []string, state map[string]bool) Completion {
	done := 0
	for _, id := range itemIDs {
		if state[id] {
			done++
		}
	}
	return Completion{
		Completed: done,
		Total:     len(itemIDs),
		Percent:   PercentComplete(done, len(itemIDs)),
	}
}

// PercentComplete returns completed/total*100, and 0 for an empty catalog.
func PercentComplete(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

// Toggle returns the value to write when flipping an item whose effective
// state is current.
func Toggle(current bool) bool {
	return !current
}
