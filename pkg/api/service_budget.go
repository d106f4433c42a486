package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// BudgetServiceName is the fully-qualified name of the BudgetService service.
const BudgetServiceName = "trip.v1.BudgetService"

const (
	BudgetServiceGetBudgetProcedure     = "/trip.v1.BudgetService/GetBudget"
	BudgetServiceCreateExpenseProcedure = "/trip.v1.BudgetService/CreateExpense"
	BudgetServiceUpdateExpenseProcedure = "/trip.v1.BudgetService/UpdateExpense"
	BudgetServiceDeleteExpenseProcedure = "/trip.v1.BudgetService/DeleteExpense"
)

// BudgetServiceHandler is implemented by the server.
type BudgetServiceHandler interface {
	GetBudget(context.Context, *connect.Request[GetBudgetRequest]) (*connect.Response[GetBudgetResponse], error)
	CreateExpense(context.Context, *connect.Request[CreateExpenseRequest]) (*connect.Response[CreateExpenseResponse], error)
	UpdateExpense(context.Context, *connect.Request[UpdateExpenseRequest]) (*connect.Response[UpdateExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error)
}

// NewBudgetServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewBudgetServiceHandler(svc BudgetServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(BudgetServiceGetBudgetProcedure, connect.NewUnaryHandler(BudgetServiceGetBudgetProcedure, svc.GetBudget, opts...))
	mux.Handle(BudgetServiceCreateExpenseProcedure, connect.NewUnaryHandler(BudgetServiceCreateExpenseProcedure, svc.CreateExpense, opts...))
	mux.Handle(BudgetServiceUpdateExpenseProcedure, connect.NewUnaryHandler(BudgetServiceUpdateExpenseProcedure, svc.UpdateExpense, opts...))
	mux.Handle(BudgetServiceDeleteExpenseProcedure, connect.NewUnaryHandler(BudgetServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...))
	return "/" + BudgetServiceName + "/", mux
}

// BudgetServiceClient is a client for the trip.v1.BudgetService service.
type BudgetServiceClient interface {
	GetBudget(context.Context, *connect.Request[GetBudgetRequest]) (*connect.Response[GetBudgetResponse], error)
	CreateExpense(context.Context, *connect.Request[CreateExpenseRequest]) (*connect.Response[CreateExpenseResponse], error)
	UpdateExpense(context.Context, *connect.Request[UpdateExpenseRequest]) (*connect.Response[UpdateExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error)
}

// NewBudgetServiceClient constructs a client for the trip.v1.BudgetService service.
func NewBudgetServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BudgetServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &budgetServiceClient{
		getBudget:     connect.NewClient[GetBudgetRequest, GetBudgetResponse](httpClient, baseURL+BudgetServiceGetBudgetProcedure, opts...),
		createExpense: connect.NewClient[CreateExpenseRequest, CreateExpenseResponse](httpClient, baseURL+BudgetServiceCreateExpenseProcedure, opts...),
		updateExpense: connect.NewClient[UpdateExpenseRequest, UpdateExpenseResponse](httpClient, baseURL+BudgetServiceUpdateExpenseProcedure, opts...),
		deleteExpense: connect.NewClient[DeleteExpenseRequest, DeleteExpenseResponse](httpClient, baseURL+BudgetServiceDeleteExpenseProcedure, opts...),
	}
}

type budgetServiceClient struct {
	getBudget     *connect.Client[GetBudgetRequest, GetBudgetResponse]
	createExpense *connect.Client[CreateExpenseRequest, CreateExpenseResponse]
	updateExpense *connect.Client[UpdateExpenseRequest, UpdateExpenseResponse]
	deleteExpense *connect.Client[DeleteExpenseRequest, DeleteExpenseResponse]
}

func (c *budgetServiceClient) GetBudget(ctx context.Context, req *connect.Request[GetBudgetRequest]) (*connect.Response[GetBudgetResponse], error) {
	return c.getBudget.CallUnary(ctx, req)
}

func (c *budgetServiceClient) CreateExpense(ctx context.Context, req *connect.Request[CreateExpenseRequest]) (*connect.Response[CreateExpenseResponse], error) {
	return c.createExpense.CallUnary(ctx, req)
}

func (c *budgetServiceClient) UpdateExpense(ctx context.Context, req *connect.Request[UpdateExpenseRequest]) (*connect.Response[UpdateExpenseResponse], error) {
	return c.updateExpense.CallUnary(ctx, req)
}

func (c *budgetServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}
