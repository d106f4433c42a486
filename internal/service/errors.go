package service

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/tripplanner/internal/auth"
	"github.com/mmynk/tripplanner/internal/middleware"
	"github.com/mmynk/tripplanner/internal/storage"
)

// requireSession returns the caller's session or an Unauthenticated error.
func requireSession(ctx context.Context) (*auth.Session, error) {
	session := middleware.GetSession(ctx)
	if session == nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return session, nil
}

// requireAdmin returns the caller's session if it carries the admin role.
func requireAdmin(ctx context.Context) (*auth.Session, error) {
	session, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}
	if !session.IsAdmin() {
		return nil, connect.NewError(connect.CodePermissionDenied, auth.ErrForbidden)
	}
	return session, nil
}

// storeError maps a store failure to a Connect error.
func storeError(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewError(connect.CodeNotFound, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}

func invalidArgument(err error) error {
	return connect.NewError(connect.CodeInvalidArgument, err)
}
