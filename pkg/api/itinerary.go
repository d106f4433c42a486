package api

import "github.com/shopspring/decimal"

// Event is an itinerary entry with the caller's completion flag.
type Event struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Time        string          `json:"time,omitempty"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Location    string          `json:"location,omitempty"`
	Price       decimal.Decimal `json:"price"`
	CreatedAt   int64           `json:"createdAt"`
	Completed   bool            `json:"completed"`
}

type ListEventsRequest struct{}

type ListEventsResponse struct {
	Events     []*Event    `json:"events"`
	Completion *Completion `json:"completion"`
}

type CreateEventRequest struct {
	Date        string          `json:"date"`
	Time        string          `json:"time,omitempty"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Location    string          `json:"location,omitempty"`
	Price       decimal.Decimal `json:"price"`
}

type CreateEventResponse struct {
	Event *Event `json:"event"`
}

type UpdateEventRequest struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Time        string          `json:"time,omitempty"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Location    string          `json:"location,omitempty"`
	Price       decimal.Decimal `json:"price"`
}

type UpdateEventResponse struct {
	Event *Event `json:"event"`
}

type DeleteEventRequest struct {
	ID string `json:"id"`
}

type DeleteEventResponse struct{}

type ToggleEventRequest struct {
	ID string `json:"id"`
}

// ToggleEventResponse carries the re-fetched list after the write.
type ToggleEventResponse struct {
	Events     []*Event    `json:"events"`
	Completion *Completion `json:"completion"`
}
