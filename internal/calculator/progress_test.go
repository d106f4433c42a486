package calculator

import (
	"math"
	"testing"

	"github.com/mmynk/tripplanner/internal/models"
)

func TestMergeProgress(t *testing.T) {
	catalog := []string{"a", "b", "c"}
	rows := []*models.Progress{
		{UserID: "u1", ItemID: "a", Completed: true},
		{UserID: "u1", ItemID: "b", Completed: false},
		{UserID: "u1", ItemID: "gone", Completed: true},
	}

	state := MergeProgress(catalog, rows)

	if len(state) != len(catalog) {
		t.Fatalf("expected %d entries, got %d", len(catalog), len(state))
	}
	if !state["a"] {
		t.Error("a should be completed")
	}
	if state["b"] {
		t.Error("b should not be completed")
	}
	if state["c"] {
		t.Error("c has no row and should read as not completed")
	}
	if _, ok := state["gone"]; ok {
		t.Error("rows outside the catalog must be dropped")
	}
}

func TestSummarizeCompletion(t *testing.T) {
	tests := []struct {
		name        string
		catalog     []string
		state       map[string]bool
		wantDone    int
		wantPercent float64
	}{
		{
			name:        "empty catalog is zero percent",
			catalog:     nil,
			state:       map[string]bool{},
			wantDone:    0,
			wantPercent: 0,
		},
		{
			name:        "one of four",
			catalog:     []string{"a", "b", "c", "d"},
			state:       map[string]bool{"a": true},
			wantDone:    1,
			wantPercent: 25,
		},
		{
			name:        "all completed",
			catalog:     []string{"a", "b"},
			state:       map[string]bool{"a": true, "b": true},
			wantDone:    2,
			wantPercent: 100,
		},
		{
			name:        "state for unknown ids is ignored",
			catalog:     []string{"a"},
			state:       map[string]bool{"x": true},
			wantDone:    0,
			wantPercent: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SummarizeCompletion(tt.catalog, tt.state)
			if got.Completed != tt.wantDone {
				t.Errorf("Completed = %d, want %d", got.Completed, tt.wantDone)
			}
			if got.Total != len(tt.catalog) {
				t.Errorf("Total = %d, want %d", got.Total, len(tt.catalog))
			}
			if math.IsNaN(got.Percent) || math.Abs(got.Percent-tt.wantPercent) > 0.0001 {
				t.Errorf("Percent = %v, want %v", got.Percent, tt.wantPercent)
			}
		})
	}
}

func TestToggleTwiceRestoresState(t *testing.T) {
	for _, start := range []bool{true, false} {
		if got := Toggle(Toggle(start)); got != start {
			t.Errorf("Toggle(Toggle(%v)) = %v", start, got)
		}
	}
}
