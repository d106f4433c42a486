package api

type PackingItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Packed    bool   `json:"packed"`
	CreatedAt int64  `json:"createdAt"`
}

type ListPackingItemsRequest struct {
	Category string `json:"category,omitempty"`
}

type ListPackingItemsResponse struct {
	Items      []*PackingItem `json:"items"`
	Completion *Completion    `json:"completion"`
	// Tracking is "shared" or "personal".
	Tracking string `json:"tracking"`
}

type CreatePackingItemRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

type CreatePackingItemResponse struct {
	Item *PackingItem `json:"item"`
}

type UpdatePackingItemRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

type UpdatePackingItemResponse struct {
	Item *PackingItem `json:"item"`
}

type DeletePackingItemRequest struct {
	ID string `json:"id"`
}

type DeletePackingItemResponse struct{}

type TogglePackingItemRequest struct {
	ID       string `json:"id"`
	Category string `json:"category,omitempty"`
}

type TogglePackingItemResponse struct {
	Items      []*PackingItem `json:"items"`
	Completion *Completion    `json:"completion"`
	Tracking   string         `json:"tracking"`
}

type PackingSuggestion struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

type ListPackingSuggestionsRequest struct{}

type ListPackingSuggestionsResponse struct {
	Suggestions []*PackingSuggestion `json:"suggestions"`
}

type SuggestedItem struct {
	Category string `json:"category"`
	Name     string `json:"name"`
}

type AddSuggestedPackingItemsRequest struct {
	Items []*SuggestedItem `json:"items"`
}

type AddSuggestedPackingItemsResponse struct {
	// Added counts new rows; names already on the list are skipped.
	Added      int32          `json:"added"`
	Items      []*PackingItem `json:"items"`
	Completion *Completion    `json:"completion"`
}
