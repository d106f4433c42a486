package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// ItineraryServiceName is the fully-qualified name of the ItineraryService service.
const ItineraryServiceName = "trip.v1.ItineraryService"

const (
	ItineraryServiceListEventsProcedure  = "/trip.v1.ItineraryService/ListEvents"
	ItineraryServiceCreateEventProcedure = "/trip.v1.ItineraryService/CreateEvent"
	ItineraryServiceUpdateEventProcedure = "/trip.v1.ItineraryService/UpdateEvent"
	ItineraryServiceDeleteEventProcedure = "/trip.v1.ItineraryService/DeleteEvent"
	ItineraryServiceToggleEventProcedure = "/trip.v1.ItineraryService/ToggleEvent"
)

// ItineraryServiceHandler is implemented by the server.
type ItineraryServiceHandler interface {
	ListEvents(context.Context, *connect.Request[ListEventsRequest]) (*connect.Response[ListEventsResponse], error)
	CreateEvent(context.Context, *connect.Request[CreateEventRequest]) (*connect.Response[CreateEventResponse], error)
	UpdateEvent(context.Context, *connect.Request[UpdateEventRequest]) (*connect.Response[UpdateEventResponse], error)
	DeleteEvent(context.Context, *connect.Request[DeleteEventRequest]) (*connect.Response[DeleteEventResponse], error)
	ToggleEvent(context.Context, *connect.Request[ToggleEventRequest]) (*connect.Response[ToggleEventResponse], error)
}

// NewItineraryServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewItineraryServiceHandler(svc ItineraryServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(ItineraryServiceListEventsProcedure, connect.NewUnaryHandler(ItineraryServiceListEventsProcedure, svc.ListEvents, opts...))
	mux.Handle(ItineraryServiceCreateEventProcedure, connect.NewUnaryHandler(ItineraryServiceCreateEventProcedure, svc.CreateEvent, opts...))
	mux.Handle(ItineraryServiceUpdateEventProcedure, connect.NewUnaryHandler(ItineraryServiceUpdateEventProcedure, svc.UpdateEvent, opts...))
	mux.Handle(ItineraryServiceDeleteEventProcedure, connect.NewUnaryHandler(ItineraryServiceDeleteEventProcedure, svc.DeleteEvent, opts...))
	mux.Handle(ItineraryServiceToggleEventProcedure, connect.NewUnaryHandler(ItineraryServiceToggleEventProcedure, svc.ToggleEvent, opts...))
	return "/" + ItineraryServiceName + "/", mux
}

// ItineraryServiceClient is a client for the trip.v1.ItineraryService service.
type ItineraryServiceClient interface {
	ListEvents(context.Context, *connect.Request[ListEventsRequest]) (*connect.Response[ListEventsResponse], error)
	CreateEvent(context.Context, *connect.Request[CreateEventRequest]) (*connect.Response[CreateEventResponse], error)
	UpdateEvent(context.Context, *connect.Request[UpdateEventRequest]) (*connect.Response[UpdateEventResponse], error)
	DeleteEvent(context.Context, *connect.Request[DeleteEventRequest]) (*connect.Response[DeleteEventResponse], error)
	ToggleEvent(context.Context, *connect.Request[ToggleEventRequest]) (*connect.Response[ToggleEventResponse], error)
}

// NewItineraryServiceClient constructs a client for the trip.v1.ItineraryService service.
func NewItineraryServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ItineraryServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &itineraryServiceClient{
		listEvents:  connect.NewClient[ListEventsRequest, ListEventsResponse](httpClient, baseURL+ItineraryServiceListEventsProcedure, opts...),
		createEvent: connect.NewClient[CreateEventRequest, CreateEventResponse](httpClient, baseURL+ItineraryServiceCreateEventProcedure, opts...),
		updateEvent: connect.NewClient[UpdateEventRequest, UpdateEventResponse](httpClient, baseURL+ItineraryServiceUpdateEventProcedure, opts...),
		deleteEvent: connect.NewClient[DeleteEventRequest, DeleteEventResponse](httpClient, baseURL+ItineraryServiceDeleteEventProcedure, opts...),
		toggleEvent: connect.NewClient[ToggleEventRequest, ToggleEventResponse](httpClient, baseURL+ItineraryServiceToggleEventProcedure, opts...),
	}
}

type itineraryServiceClient struct {
	listEvents  *connect.Client[ListEventsRequest, ListEventsResponse]
	createEvent *connect.Client[CreateEventRequest, CreateEventResponse]
	updateEvent *connect.Client[UpdateEventRequest, UpdateEventResponse]
	deleteEvent *connect.Client[DeleteEventRequest, DeleteEventResponse]
	toggleEvent *connect.Client[ToggleEventRequest, ToggleEventResponse]
}

func (c *itineraryServiceClient) ListEvents(ctx context.Context, req *connect.Request[ListEventsRequest]) (*connect.Response[ListEventsResponse], error) {
	return c.listEvents.CallUnary(ctx, req)
}

func (c *itineraryServiceClient) CreateEvent(ctx context.Context, req *connect.Request[CreateEventRequest]) (*connect.Response[CreateEventResponse], error) {
	return c.createEvent.CallUnary(ctx, req)
}

func (c *itineraryServiceClient) UpdateEvent(ctx context.Context, req *connect.Request[UpdateEventRequest]) (*connect.Response[UpdateEventResponse], error) {
	return c.updateEvent.CallUnary(ctx, req)
}

func (c *itineraryServiceClient) DeleteEvent(ctx context.Context, req *connect.Request[DeleteEventRequest]) (*connect.Response[DeleteEventResponse], error) {
	return c.deleteEvent.CallUnary(ctx, req)
}

func (c *itineraryServiceClient) ToggleEvent(ctx context.Context, req *connect.Request[ToggleEventRequest]) (*connect.Response[ToggleEventResponse], error) {
	return c.toggleEvent.CallUnary(ctx, req)
}
