package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/tripplanner/internal/auth"
	"github.com/mmynk/tripplanner/internal/middleware"
	"github.com/mmynk/tripplanner/internal/models"
	"github.com/mmynk/tripplanner/internal/storage"
	"github.com/mmynk/tripplanner/pkg/api"
)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	authenticator auth.Authenticator
	users         storage.UserStore
	jwtManager    *auth.JWTManager
	revoked       *auth.RevocationList
	mailer        auth.Mailer
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	authenticator auth.Authenticator,
	users storage.UserStore,
	jwtManager *auth.JWTManager,
	revoked *auth.RevocationList,
	mailer auth.Mailer,
	logger *slog.Logger,
) *AuthService {
	if mailer == nil {
		mailer = auth.LogMailer{}
	}
	return &AuthService{
		authenticator: authenticator,
		users:         users,
		jwtManager:    jwtManager,
		revoked:       revoked,
		mailer:        mailer,
		logger:        logger,
	}
}

// SignUp creates a new account and signs it in.
func (s *AuthService) SignUp(ctx context.Context, req *connect.Request[api.SignUpRequest]) (*connect.Response[api.SignUpResponse], error) {
	s.logger.Info("SignUp request", "email", req.Msg.Email)

	// Validate input
	if req.Msg.Email == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidEmail)
	}

	// Register user
	user, err := s.authenticator.Register(ctx, req.Msg.Email, req.Msg.DisplayName, req.Msg.Password)
	if err != nil {
		s.logger.Error("Registration failed", "email", req.Msg.Email, "error", err)
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			return nil, connect.NewError(connect.CodeAlreadyExists, err)
		case errors.Is(err, auth.ErrWeakPassword), errors.Is(err, auth.ErrInvalidEmail):
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	token, expiresAt, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User registered successfully", "user_id", user.ID, "email", user.Email, "role", user.Role)
	return connect.NewResponse(&api.SignUpResponse{
		Token:     token,
		User:      toAPIUser(user),
		ExpiresAt: expiresAt,
	}), nil
}

// SignIn authenticates a user and returns a session token.
func (s *AuthService) SignIn(ctx context.Context, req *connect.Request[api.SignInRequest]) (*connect.Response[api.SignInResponse], error) {
	s.logger.Info("SignIn request", "email", req.Msg.Email)

	// Validate input
	if req.Msg.Email == "" || req.Msg.Password == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	// Authenticate user
	user, err := s.authenticator.Authenticate(ctx, req.Msg.Email, req.Msg.Password)
	if err != nil {
		s.logger.Warn("SignIn failed", "email", req.Msg.Email, "error", err)
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
	}

	token, expiresAt, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User signed in successfully", "user_id", user.ID, "email", user.Email)
	return connect.NewResponse(&api.SignInResponse{
		Token:     token,
		User:      toAPIUser(user),
		ExpiresAt: expiresAt,
	}), nil
}

// SignOut revokes the caller's token until it expires.
func (s *AuthService) SignOut(ctx context.Context, req *connect.Request[api.SignOutRequest]) (*connect.Response[api.SignOutResponse], error) {
	session, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}

	s.revoked.Revoke(session.TokenID, session.ExpiresAt)

	s.logger.Info("User signed out", "user_id", session.UserID)
	return connect.NewResponse(&api.SignOutResponse{}), nil
}

// GetSession reports who is signed in. Anonymous callers get SignedIn false
// rather than an error.
func (s *AuthService) GetSession(ctx context.Context, req *connect.Request[api.GetSessionRequest]) (*connect.Response[api.GetSessionResponse], error) {
	session := middleware.GetSession(ctx)
	if session == nil {
		return connect.NewResponse(&api.GetSessionResponse{}), nil
	}

	user, err := s.users.GetUserByID(ctx, session.UserID)
	if errors.Is(err, storage.ErrNotFound) {
		// account removed after the token was issued
		s.logger.Warn("Session for unknown user", "user_id", session.UserID)
		return connect.NewResponse(&api.GetSessionResponse{}), nil
	}
	if err != nil {
		s.logger.Error("Failed to load session user", "user_id", session.UserID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	// the token role wins: it was fixed when the session was issued
	apiUser := toAPIUser(user)
	apiUser.Role = string(session.Role)

	return connect.NewResponse(&api.GetSessionResponse{
		SignedIn:  true,
		User:      apiUser,
		ExpiresAt: session.ExpiresAt.Unix(),
	}), nil
}

// RequestPasswordReset mails a reset token. The response is the same
// whether or not the email belongs to an account.
func (s *AuthService) RequestPasswordReset(ctx context.Context, req *connect.Request[api.RequestPasswordResetRequest]) (*connect.Response[api.RequestPasswordResetResponse], error) {
	email := auth.NormalizeEmail(req.Msg.Email)
	if email == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidEmail)
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		s.logger.Info("Password reset for unknown email", "email", email)
		return connect.NewResponse(&api.RequestPasswordResetResponse{}), nil
	}
	if err != nil {
		s.logger.Error("Password reset lookup failed", "email", email, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	token, err := s.jwtManager.GenerateReset(user)
	if err != nil {
		s.logger.Error("Failed to generate reset token", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if err := s.mailer.SendPasswordReset(ctx, user.Email, token); err != nil {
		s.logger.Error("Failed to send reset mail", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("Password reset issued", "user_id", user.ID)
	return connect.NewResponse(&api.RequestPasswordResetResponse{}), nil
}

// ResetPassword sets a new password using a reset token. Each token works once.
func (s *AuthService) ResetPassword(ctx context.Context, req *connect.Request[api.ResetPasswordRequest]) (*connect.Response[api.ResetPasswordResponse], error) {
	claims, err := s.jwtManager.ValidateReset(req.Msg.Token)
	if err != nil || s.revoked.IsRevoked(claims.ID) {
		s.logger.Warn("Invalid reset token", "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidToken)
	}

	if err := s.authenticator.SetCredential(ctx, claims.UserID, req.Msg.NewPassword); err != nil {
		s.logger.Error("Password reset failed", "user_id", claims.UserID, "error", err)
		switch {
		case errors.Is(err, auth.ErrWeakPassword):
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		case errors.Is(err, storage.ErrNotFound):
			return nil, connect.NewError(connect.CodeNotFound, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	s.revoked.Revoke(claims.ID, expiresAt)

	s.logger.Info("Password reset completed", "user_id", claims.UserID)
	return connect.NewResponse(&api.ResetPasswordResponse{}), nil
}

// issue signs a session token for user.
func (s *AuthService) issue(user *models.User) (string, int64, error) {
	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return "", 0, connect.NewError(connect.CodeInternal, err)
	}
	claims, err := s.jwtManager.Validate(token)
	if err != nil {
		return "", 0, connect.NewError(connect.CodeInternal, err)
	}
	return token, claims.ExpiresAt.Unix(), nil
}
