package api

// Place is a place to visit with the caller's visited flag.
type Place struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	Priority    int32  `json:"priority"`
	CreatedAt   int64  `json:"createdAt"`
	Completed   bool   `json:"completed"`
}

// ListPlacesRequest filters by category; empty or "todos" lists everything.
type ListPlacesRequest struct {
	Category string `json:"category,omitempty"`
}

// ListPlacesResponse counts completion over the whole list, not the filtered view.
type ListPlacesResponse struct {
	Places     []*Place    `json:"places"`
	Completion *Completion `json:"completion"`
}

type CreatePlaceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	Priority    int32  `json:"priority"`
}

type CreatePlaceResponse struct {
	Place *Place `json:"place"`
}

type UpdatePlaceRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	Priority    int32  `json:"priority"`
}

type UpdatePlaceResponse struct {
	Place *Place `json:"place"`
}

type DeletePlaceRequest struct {
	ID string `json:"id"`
}

type DeletePlaceResponse struct{}

type TogglePlaceRequest struct {
	ID string `json:"id"`
	// Category keeps the caller's filter for the re-fetched list.
	Category string `json:"category,omitempty"`
}

type TogglePlaceResponse struct {
	Places     []*Place    `json:"places"`
	Completion *Completion `json:"completion"`
}
