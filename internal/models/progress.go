package models

// Progress is one user's completion flag for one catalog item.
// There is at most one row per (UserID, ItemID); toggling off updates the
// flag instead of deleting the row.
type Progress struct {
	UserID    string
	ItemID    string
	Completed bool

	// UpdatedAt is the Unix timestamp of the last write.
	UpdatedAt int64
}
