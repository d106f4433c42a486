package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/mmynk/tripplanner/internal/models"
)

// ErrForbidden is returned when a session lacks the role or ownership an
// operation requires.
var ErrForbidden = errors.New("operation not permitted for this session")

// RoleKey is the metadata key holding the account role.
const RoleKey = "role"

// Session is the signed-in identity of one request.
// A nil *Session means nobody is signed in; every mutating operation must be
// refused for it.
type Session struct {
	UserID string
	Email  string
	Role   models.Role

	// TokenID is the jti of the session token, used by sign-out.
	TokenID   string
	ExpiresAt time.Time
}

// ResolveRole reads the role out of identity metadata. Anything other than
// an explicit admin role resolves to a plain user.
func ResolveRole(metadata map[string]any) models.Role {
	if metadata == nil {
		return models.RoleUser
	}
	raw, ok := metadata[RoleKey].(string)
	if !ok {
		return models.RoleUser
	}
	return RoleFromString(raw)
}

// RoleFromString parses a stored role, defaulting to user.
func RoleFromString(s string) models.Role {
	if models.Role(strings.ToLower(strings.TrimSpace(s))) == models.RoleAdmin {
		return models.RoleAdmin
	}
	return models.RoleUser
}

// RoleMetadata builds the metadata map carried in session tokens.
func RoleMetadata(role models.Role) map[string]any {
	return map[string]any{RoleKey: string(role)}
}

// SessionFromClaims turns validated token claims into a session.
func SessionFromClaims(claims *Claims) *Session {
	s := &Session{
		UserID:  claims.UserID,
		Email:   claims.Email,
		Role:    ResolveRole(claims.Metadata),
		TokenID: claims.ID,
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s
}

// IsAdmin reports whether the session carries the admin role.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == models.RoleAdmin
}

// CanModify reports whether the session may edit a row owned by ownerID.
// Rows without an owner are shared and only admins may change them.
func (s *Session) CanModify(ownerID string) bool {
	if s == nil {
		return false
	}
	if s.IsAdmin() {
		return true
	}
	return ownerID != "" && ownerID == s.UserID
}
