package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// PlaceServiceName is the fully-qualified name of the PlaceService service.
const PlaceServiceName = "trip.v1.PlaceService"

const (
	PlaceServiceListPlacesProcedure  = "/trip.v1.PlaceService/ListPlaces"
	PlaceServiceCreatePlaceProcedure = "/trip.v1.PlaceService/CreatePlace"
	PlaceServiceUpdatePlaceProcedure = "/trip.v1.PlaceService/UpdatePlace"
	PlaceServiceDeletePlaceProcedure = "/trip.v1.PlaceService/DeletePlace"
	PlaceServiceTogglePlaceProcedure = "/trip.v1.PlaceService/TogglePlace"
)

// PlaceServiceHandler is implemented by the server.
type PlaceServiceHandler interface {
	ListPlaces(context.Context, *connect.Request[ListPlacesRequest]) (*connect.Response[ListPlacesResponse], error)
	CreatePlace(context.Context, *connect.Request[CreatePlaceRequest]) (*connect.Response[CreatePlaceResponse], error)
	UpdatePlace(context.Context, *connect.Request[UpdatePlaceRequest]) (*connect.Response[UpdatePlaceResponse], error)
	DeletePlace(context.Context, *connect.Request[DeletePlaceRequest]) (*connect.Response[DeletePlaceResponse], error)
	TogglePlace(context.Context, *connect.Request[TogglePlaceRequest]) (*connect.Response[TogglePlaceResponse], error)
}

// NewPlaceServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewPlaceServiceHandler(svc PlaceServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(PlaceServiceListPlacesProcedure, connect.NewUnaryHandler(PlaceServiceListPlacesProcedure, svc.ListPlaces, opts...))
	mux.Handle(PlaceServiceCreatePlaceProcedure, connect.NewUnaryHandler(PlaceServiceCreatePlaceProcedure, svc.CreatePlace, opts...))
	mux.Handle(PlaceServiceUpdatePlaceProcedure, connect.NewUnaryHandler(PlaceServiceUpdatePlaceProcedure, svc.UpdatePlace, opts...))
	mux.Handle(PlaceServiceDeletePlaceProcedure, connect.NewUnaryHandler(PlaceServiceDeletePlaceProcedure, svc.DeletePlace, opts...))
	mux.Handle(PlaceServiceTogglePlaceProcedure, connect.NewUnaryHandler(PlaceServiceTogglePlaceProcedure, svc.TogglePlace, opts...))
	return "/" + PlaceServiceName + "/", mux
}

// PlaceServiceClient is a client for the trip.v1.PlaceService service.
type PlaceServiceClient interface {
	ListPlaces(context.Context, *connect.Request[ListPlacesRequest]) (*connect.Response[ListPlacesResponse], error)
	CreatePlace(context.Context, *connect.Request[CreatePlaceRequest]) (*connect.Response[CreatePlaceResponse], error)
	UpdatePlace(context.Context, *connect.Request[UpdatePlaceRequest]) (*connect.Response[UpdatePlaceResponse], error)
	DeletePlace(context.Context, *connect.Request[DeletePlaceRequest]) (*connect.Response[DeletePlaceResponse], error)
	TogglePlace(context.Context, *connect.Request[TogglePlaceRequest]) (*connect.Response[TogglePlaceResponse], error)
}

// NewPlaceServiceClient constructs a client for the trip.v1.PlaceService service.
func NewPlaceServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) PlaceServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &placeServiceClient{
		listPlaces:  connect.NewClient[ListPlacesRequest, ListPlacesResponse](httpClient, baseURL+PlaceServiceListPlacesProcedure, opts...),
		createPlace: connect.NewClient[CreatePlaceRequest, CreatePlaceResponse](httpClient, baseURL+PlaceServiceCreatePlaceProcedure, opts...),
		updatePlace: connect.NewClient[UpdatePlaceRequest, UpdatePlaceResponse](httpClient, baseURL+PlaceServiceUpdatePlaceProcedure, opts...),
		deletePlace: connect.NewClient[DeletePlaceRequest, DeletePlaceResponse](httpClient, baseURL+PlaceServiceDeletePlaceProcedure, opts...),
		togglePlace: connect.NewClient[TogglePlaceRequest, TogglePlaceResponse](httpClient, baseURL+PlaceServiceTogglePlaceProcedure, opts...),
	}
}

type placeServiceClient struct {
	listPlaces  *connect.Client[ListPlacesRequest, ListPlacesResponse]
	createPlace *connect.Client[CreatePlaceRequest, CreatePlaceResponse]
	updatePlace *connect.Client[UpdatePlaceRequest, UpdatePlaceResponse]
	deletePlace *connect.Client[DeletePlaceRequest, DeletePlaceResponse]
	togglePlace *connect.Client[TogglePlaceRequest, TogglePlaceResponse]
}

func (c *placeServiceClient) ListPlaces(ctx context.Context, req *connect.Request[ListPlacesRequest]) (*connect.Response[ListPlacesResponse], error) {
	return c.listPlaces.CallUnary(ctx, req)
}

func (c *placeServiceClient) CreatePlace(ctx context.Context, req *connect.Request[CreatePlaceRequest]) (*connect.Response[CreatePlaceResponse], error) {
	return c.createPlace.CallUnary(ctx, req)
}

func (c *placeServiceClient) UpdatePlace(ctx context.Context, req *connect.Request[UpdatePlaceRequest]) (*connect.Response[UpdatePlaceResponse], error) {
	return c.updatePlace.CallUnary(ctx, req)
}

func (c *placeServiceClient) DeletePlace(ctx context.Context, req *connect.Request[DeletePlaceRequest]) (*connect.Response[DeletePlaceResponse], error) {
	return c.deletePlace.CallUnary(ctx, req)
}

func (c *placeServiceClient) TogglePlace(ctx context.Context, req *connect.Request[TogglePlaceRequest]) (*connect.Response[TogglePlaceResponse], error) {
	return c.togglePlace.CallUnary(ctx, req)
}
