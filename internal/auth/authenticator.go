package auth

import (
	"context"

	"github.com/mmynk/tripplanner/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// Service code only depends on this, so password sign-in can sit next to
// other methods later without touching the handlers.
type Authenticator interface {
	// Register creates a new account. The role is decided by the
	// implementation at creation time and never changes afterwards.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies the credentials and returns the account.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error

	// SetCredential replaces the credential of userID.
	SetCredential(ctx context.Context, userID, credential string) error
}
