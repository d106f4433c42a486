package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tripplanner/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// SessionKey is the context key for the signed-in session.
const SessionKey contextKey = "session"

// WithSession returns ctx carrying s.
func WithSession(ctx context.Context, s *auth.Session) context.Context {
	return context.WithValue(ctx, SessionKey, s)
}

// GetSession extracts the session from the context.
// Returns nil when nobody is signed in.
func GetSession(ctx context.Context) *auth.Session {
	s, _ := ctx.Value(SessionKey).(*auth.Session)
	return s
}

// GetUserID extracts the user ID from the context.
// Returns empty string if not found.
func GetUserID(ctx context.Context) string {
	if s := GetSession(ctx); s != nil {
		return s.UserID
	}
	return ""
}

// bearerToken parses an "Authorization: Bearer <token>" header value.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", auth.ErrMissingToken
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", auth.ErrInvalidToken
	}
	return parts[1], nil
}

// resolveSession validates the bearer token of header and builds the session.
func resolveSession(jwtManager *auth.JWTManager, revoked *auth.RevocationList, header string) (*auth.Session, error) {
	token, err := bearerToken(header)
	if err != nil {
		return nil, err
	}
	claims, err := jwtManager.Validate(token)
	if err != nil {
		return nil, err
	}
	if revoked != nil && revoked.IsRevoked(claims.ID) {
		return nil, auth.ErrInvalidToken
	}
	return auth.SessionFromClaims(claims), nil
}

// RequireAuth returns a middleware that validates session tokens and
// requires authentication. The resolved session is added to the request
// context. Signed-out tokens are refused.
func RequireAuth(jwtManager *auth.JWTManager, revoked *auth.RevocationList) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			session, err := resolveSession(jwtManager, revoked, req.Header().Get("Authorization"))
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}
			return next(WithSession(ctx, session), req)
		}
	}
}

// OptionalAuth returns a middleware that resolves the session if a valid
// token is present, but allows anonymous requests.
func OptionalAuth(jwtManager *auth.JWTManager, revoked *auth.RevocationList) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if header := req.Header().Get("Authorization"); header != "" {
				// invalid tokens are ignored here
				if session, err := resolveSession(jwtManager, revoked, header); err == nil {
					ctx = WithSession(ctx, session)
				}
			}
			return next(ctx, req)
		}
	}
}
