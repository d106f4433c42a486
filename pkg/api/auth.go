package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// AuthServiceName is the fully-qualified name of the AuthService service.
const AuthServiceName = "trip.v1.AuthService"

const (
	AuthServiceSignUpProcedure               = "/trip.v1.AuthService/SignUp"
	AuthServiceSignInProcedure               = "/trip.v1.AuthService/SignIn"
	AuthServiceSignOutProcedure              = "/trip.v1.AuthService/SignOut"
	AuthServiceGetSessionProcedure           = "/trip.v1.AuthService/GetSession"
	AuthServiceRequestPasswordResetProcedure = "/trip.v1.AuthService/RequestPasswordReset"
	AuthServiceResetPasswordProcedure        = "/trip.v1.AuthService/ResetPassword"
)

type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
}

type SignUpRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName,omitempty"`
}

type SignUpResponse struct {
	Token     string `json:"token"`
	User      *User  `json:"user"`
	ExpiresAt int64  `json:"expiresAt"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInResponse struct {
	Token     string `json:"token"`
	User      *User  `json:"user"`
	ExpiresAt int64  `json:"expiresAt"`
}

type SignOutRequest struct{}

type SignOutResponse struct{}

type GetSessionRequest struct{}

type GetSessionResponse struct {
	SignedIn  bool  `json:"signedIn"`
	User      *User `json:"user,omitempty"`
	ExpiresAt int64 `json:"expiresAt,omitempty"`
}

type RequestPasswordResetRequest struct {
	Email string `json:"email"`
}

type RequestPasswordResetResponse struct{}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

type ResetPasswordResponse struct{}

// AuthServiceHandler is implemented by the server.
type AuthServiceHandler interface {
	SignUp(context.Context, *connect.Request[SignUpRequest]) (*connect.Response[SignUpResponse], error)
	SignIn(context.Context, *connect.Request[SignInRequest]) (*connect.Response[SignInResponse], error)
	SignOut(context.Context, *connect.Request[SignOutRequest]) (*connect.Response[SignOutResponse], error)
	GetSession(context.Context, *connect.Request[GetSessionRequest]) (*connect.Response[GetSessionResponse], error)
	RequestPasswordReset(context.Context, *connect.Request[RequestPasswordResetRequest]) (*connect.Response[RequestPasswordResetResponse], error)
	ResetPassword(context.Context, *connect.Request[ResetPasswordRequest]) (*connect.Response[ResetPasswordResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(AuthServiceSignUpProcedure, connect.NewUnaryHandler(AuthServiceSignUpProcedure, svc.SignUp, opts...))
	mux.Handle(AuthServiceSignInProcedure, connect.NewUnaryHandler(AuthServiceSignInProcedure, svc.SignIn, opts...))
	mux.Handle(AuthServiceSignOutProcedure, connect.NewUnaryHandler(AuthServiceSignOutProcedure, svc.SignOut, opts...))
	mux.Handle(AuthServiceGetSessionProcedure, connect.NewUnaryHandler(AuthServiceGetSessionProcedure, svc.GetSession, opts...))
	mux.Handle(AuthServiceRequestPasswordResetProcedure, connect.NewUnaryHandler(AuthServiceRequestPasswordResetProcedure, svc.RequestPasswordReset, opts...))
	mux.Handle(AuthServiceResetPasswordProcedure, connect.NewUnaryHandler(AuthServiceResetPasswordProcedure, svc.ResetPassword, opts...))
	return "/" + AuthServiceName + "/", mux
}

// AuthServiceClient is a client for the trip.v1.AuthService service.
type AuthServiceClient interface {
	SignUp(context.Context, *connect.Request[SignUpRequest]) (*connect.Response[SignUpResponse], error)
	SignIn(context.Context, *connect.Request[SignInRequest]) (*connect.Response[SignInResponse], error)
	SignOut(context.Context, *connect.Request[SignOutRequest]) (*connect.Response[SignOutResponse], error)
	GetSession(context.Context, *connect.Request[GetSessionRequest]) (*connect.Response[GetSessionResponse], error)
	RequestPasswordReset(context.Context, *connect.Request[RequestPasswordResetRequest]) (*connect.Response[RequestPasswordResetResponse], error)
	ResetPassword(context.Context, *connect.Request[ResetPasswordRequest]) (*connect.Response[ResetPasswordResponse], error)
}

// NewAuthServiceClient constructs a client for the trip.v1.AuthService
// service. baseURL is the server root, e.g. http://localhost:8080.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &authServiceClient{
		signUp:               connect.NewClient[SignUpRequest, SignUpResponse](httpClient, baseURL+AuthServiceSignUpProcedure, opts...),
		signIn:               connect.NewClient[SignInRequest, SignInResponse](httpClient, baseURL+AuthServiceSignInProcedure, opts...),
		signOut:              connect.NewClient[SignOutRequest, SignOutResponse](httpClient, baseURL+AuthServiceSignOutProcedure, opts...),
		getSession:           connect.NewClient[GetSessionRequest, GetSessionResponse](httpClient, baseURL+AuthServiceGetSessionProcedure, opts...),
		requestPasswordReset: connect.NewClient[RequestPasswordResetRequest, RequestPasswordResetResponse](httpClient, baseURL+AuthServiceRequestPasswordResetProcedure, opts...),
		resetPassword:        connect.NewClient[ResetPasswordRequest, ResetPasswordResponse](httpClient, baseURL+AuthServiceResetPasswordProcedure, opts...),
	}
}

type authServiceClient struct {
	signUp               *connect.Client[SignUpRequest, SignUpResponse]
	signIn               *connect.Client[SignInRequest, SignInResponse]
	signOut              *connect.Client[SignOutRequest, SignOutResponse]
	getSession           *connect.Client[GetSessionRequest, GetSessionResponse]
	requestPasswordReset *connect.Client[RequestPasswordResetRequest, RequestPasswordResetResponse]
	resetPassword        *connect.Client[ResetPasswordRequest, ResetPasswordResponse]
}

func (c *authServiceClient) SignUp(ctx context.Context, req *connect.Request[SignUpRequest]) (*connect.Response[SignUpResponse], error) {
	return c.signUp.CallUnary(ctx, req)
}

func (c *authServiceClient) SignIn(ctx context.Context, req *connect.Request[SignInRequest]) (*connect.Response[SignInResponse], error) {
	return c.signIn.CallUnary(ctx, req)
}

func (c *authServiceClient) SignOut(ctx context.Context, req *connect.Request[SignOutRequest]) (*connect.Response[SignOutResponse], error) {
	return c.signOut.CallUnary(ctx, req)
}

func (c *authServiceClient) GetSession(ctx context.Context, req *connect.Request[GetSessionRequest]) (*connect.Response[GetSessionResponse], error) {
	return c.getSession.CallUnary(ctx, req)
}

func (c *authServiceClient) RequestPasswordReset(ctx context.Context, req *connect.Request[RequestPasswordResetRequest]) (*connect.Response[RequestPasswordResetResponse], error) {
	return c.requestPasswordReset.CallUnary(ctx, req)
}

func (c *authServiceClient) ResetPassword(ctx context.Context, req *connect.Request[ResetPasswordRequest]) (*connect.Response[ResetPasswordResponse], error) {
	return c.resetPassword.CallUnary(ctx, req)
}
