package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// PackingServiceName is the fully-qualified name of the PackingService service.
const PackingServiceName = "trip.v1.PackingService"

const (
	PackingServiceListPackingItemsProcedure         = "/trip.v1.PackingService/ListPackingItems"
	PackingServiceCreatePackingItemProcedure        = "/trip.v1.PackingService/CreatePackingItem"
	PackingServiceUpdatePackingItemProcedure        = "/trip.v1.PackingService/UpdatePackingItem"
	PackingServiceDeletePackingItemProcedure        = "/trip.v1.PackingService/DeletePackingItem"
	PackingServiceTogglePackingItemProcedure        = "/trip.v1.PackingService/TogglePackingItem"
	PackingServiceListPackingSuggestionsProcedure   = "/trip.v1.PackingService/ListPackingSuggestions"
	PackingServiceAddSuggestedPackingItemsProcedure = "/trip.v1.PackingService/AddSuggestedPackingItems"
)

// PackingServiceHandler is implemented by the server.
type PackingServiceHandler interface {
	ListPackingItems(context.Context, *connect.Request[ListPackingItemsRequest]) (*connect.Response[ListPackingItemsResponse], error)
	CreatePackingItem(context.Context, *connect.Request[CreatePackingItemRequest]) (*connect.Response[CreatePackingItemResponse], error)
	UpdatePackingItem(context.Context, *connect.Request[UpdatePackingItemRequest]) (*connect.Response[UpdatePackingItemResponse], error)
	DeletePackingItem(context.Context, *connect.Request[DeletePackingItemRequest]) (*connect.Response[DeletePackingItemResponse], error)
	TogglePackingItem(context.Context, *connect.Request[TogglePackingItemRequest]) (*connect.Response[TogglePackingItemResponse], error)
	ListPackingSuggestions(context.Context, *connect.Request[ListPackingSuggestionsRequest]) (*connect.Response[ListPackingSuggestionsResponse], error)
	AddSuggestedPackingItems(context.Context, *connect.Request[AddSuggestedPackingItemsRequest]) (*connect.Response[AddSuggestedPackingItemsResponse], error)
}

// NewPackingServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewPackingServiceHandler(svc PackingServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(PackingServiceListPackingItemsProcedure, connect.NewUnaryHandler(PackingServiceListPackingItemsProcedure, svc.ListPackingItems, opts...))
	mux.Handle(PackingServiceCreatePackingItemProcedure, connect.NewUnaryHandler(PackingServiceCreatePackingItemProcedure, svc.CreatePackingItem, opts...))
	mux.Handle(PackingServiceUpdatePackingItemProcedure, connect.NewUnaryHandler(PackingServiceUpdatePackingItemProcedure, svc.UpdatePackingItem, opts...))
	mux.Handle(PackingServiceDeletePackingItemProcedure, connect.NewUnaryHandler(PackingServiceDeletePackingItemProcedure, svc.DeletePackingItem, opts...))
	mux.Handle(PackingServiceTogglePackingItemProcedure, connect.NewUnaryHandler(PackingServiceTogglePackingItemProcedure, svc.TogglePackingItem, opts...))
	mux.Handle(PackingServiceListPackingSuggestionsProcedure, connect.NewUnaryHandler(PackingServiceListPackingSuggestionsProcedure, svc.ListPackingSuggestions, opts...))
	mux.Handle(PackingServiceAddSuggestedPackingItemsProcedure, connect.NewUnaryHandler(PackingServiceAddSuggestedPackingItemsProcedure, svc.AddSuggestedPackingItems, opts...))
	return "/" + PackingServiceName + "/", mux
}

// PackingServiceClient is a client for the trip.v1.PackingService service.
type PackingServiceClient interface {
	ListPackingItems(context.Context, *connect.Request[ListPackingItemsRequest]) (*connect.Response[ListPackingItemsResponse], error)
	CreatePackingItem(context.Context, *connect.Request[CreatePackingItemRequest]) (*connect.Response[CreatePackingItemResponse], error)
	UpdatePackingItem(context.Context, *connect.Request[UpdatePackingItemRequest]) (*connect.Response[UpdatePackingItemResponse], error)
	DeletePackingItem(context.Context, *connect.Request[DeletePackingItemRequest]) (*connect.Response[DeletePackingItemResponse], error)
	TogglePackingItem(context.Context, *connect.Request[TogglePackingItemRequest]) (*connect.Response[TogglePackingItemResponse], error)
	ListPackingSuggestions(context.Context, *connect.Request[ListPackingSuggestionsRequest]) (*connect.Response[ListPackingSuggestionsResponse], error)
	AddSuggestedPackingItems(context.Context, *connect.Request[AddSuggestedPackingItemsRequest]) (*connect.Response[AddSuggestedPackingItemsResponse], error)
}

// NewPackingServiceClient constructs a client for the trip.v1.PackingService service.
func NewPackingServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) PackingServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &packingServiceClient{
		listPackingItems:         connect.NewClient[ListPackingItemsRequest, ListPackingItemsResponse](httpClient, baseURL+PackingServiceListPackingItemsProcedure, opts...),
		createPackingItem:        connect.NewClient[CreatePackingItemRequest, CreatePackingItemResponse](httpClient, baseURL+PackingServiceCreatePackingItemProcedure, opts...),
		updatePackingItem:        connect.NewClient[UpdatePackingItemRequest, UpdatePackingItemResponse](httpClient, baseURL+PackingServiceUpdatePackingItemProcedure, opts...),
		deletePackingItem:        connect.NewClient[DeletePackingItemRequest, DeletePackingItemResponse](httpClient, baseURL+PackingServiceDeletePackingItemProcedure, opts...),
		togglePackingItem:        connect.NewClient[TogglePackingItemRequest, TogglePackingItemResponse](httpClient, baseURL+PackingServiceTogglePackingItemProcedure, opts...),
		listPackingSuggestions:   connect.NewClient[ListPackingSuggestionsRequest, ListPackingSuggestionsResponse](httpClient, baseURL+PackingServiceListPackingSuggestionsProcedure, opts...),
		addSuggestedPackingItems: connect.NewClient[AddSuggestedPackingItemsRequest, AddSuggestedPackingItemsResponse](httpClient, baseURL+PackingServiceAddSuggestedPackingItemsProcedure, opts...),
	}
}

type packingServiceClient struct {
	listPackingItems         *connect.Client[ListPackingItemsRequest, ListPackingItemsResponse]
	createPackingItem        *connect.Client[CreatePackingItemRequest, CreatePackingItemResponse]
	updatePackingItem        *connect.Client[UpdatePackingItemRequest, UpdatePackingItemResponse]
	deletePackingItem        *connect.Client[DeletePackingItemRequest, DeletePackingItemResponse]
	togglePackingItem        *connect.Client[TogglePackingItemRequest, TogglePackingItemResponse]
	listPackingSuggestions   *connect.Client[ListPackingSuggestionsRequest, ListPackingSuggestionsResponse]
	addSuggestedPackingItems *connect.Client[AddSuggestedPackingItemsRequest, AddSuggestedPackingItemsResponse]
}

func (c *packingServiceClient) ListPackingItems(ctx context.Context, req *connect.Request[ListPackingItemsRequest]) (*connect.Response[ListPackingItemsResponse], error) {
	return c.listPackingItems.CallUnary(ctx, req)
}

func (c *packingServiceClient) CreatePackingItem(ctx context.Context, req *connect.Request[CreatePackingItemRequest]) (*connect.Response[CreatePackingItemResponse], error) {
	return c.createPackingItem.CallUnary(ctx, req)
}

func (c *packingServiceClient) UpdatePackingItem(ctx context.Context, req *connect.Request[UpdatePackingItemRequest]) (*connect.Response[UpdatePackingItemResponse], error) {
	return c.updatePackingItem.CallUnary(ctx, req)
}

func (c *packingServiceClient) DeletePackingItem(ctx context.Context, req *connect.Request[DeletePackingItemRequest]) (*connect.Response[DeletePackingItemResponse], error) {
	return c.deletePackingItem.CallUnary(ctx, req)
}

func (c *packingServiceClient) TogglePackingItem(ctx context.Context, req *connect.Request[TogglePackingItemRequest]) (*connect.Response[TogglePackingItemResponse], error) {
	return c.togglePackingItem.CallUnary(ctx, req)
}

func (c *packingServiceClient) ListPackingSuggestions(ctx context.Context, req *connect.Request[ListPackingSuggestionsRequest]) (*connect.Response[ListPackingSuggestionsResponse], error) {
	return c.listPackingSuggestions.CallUnary(ctx, req)
}

func (c *packingServiceClient) AddSuggestedPackingItems(ctx context.Context, req *connect.Request[AddSuggestedPackingItemsRequest]) (*connect.Response[AddSuggestedPackingItemsResponse], error) {
	return c.addSuggestedPackingItems.CallUnary(ctx, req)
}
