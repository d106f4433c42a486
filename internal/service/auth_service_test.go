package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/tripplanner/pkg/api"
)

func TestSignUpAndSession(t *testing.T) {
	env := setupTestServer(t, envOptions{})
	ctx := context.Background()

	admin, err := env.auth.SignUp(ctx, connect.NewRequest(&api.SignUpRequest{
		Email:    "Admin@Example.com",
		Password: "password123",
	}))
	if err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}
	if admin.Msg.User.Role != "admin" {
		t.Errorf("expected admin role from ADMIN_EMAILS, got %q", admin.Msg.User.Role)
	}
	if admin.Msg.User.DisplayName != "admin" {
		t.Errorf("expected display name from email, got %q", admin.Msg.User.DisplayName)
	}

	user, err := env.auth.SignUp(ctx, connect.NewRequest(&api.SignUpRequest{
		Email:       "ana@example.com",
		Password:    "password123",
		DisplayName: "Ana",
	}))
	if err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}
	if user.Msg.User.Role != "user" {
		t.Errorf("expected user role, got %q", user.Msg.User.Role)
	}
	if user.Msg.Token == "" || user.Msg.ExpiresAt == 0 {
		t.Error("expected token and expiry")
	}

	t.Run("duplicate email", func(t *testing.T) {
		_, err := env.auth.SignUp(ctx, connect.NewRequest(&api.SignUpRequest{
			Email:    "ANA@example.com",
			Password: "password123",
		}))
		assertCode(t, err, connect.CodeAlreadyExists)
	})

	t.Run("weak password", func(t *testing.T) {
		_, err := env.auth.SignUp(ctx, connect.NewRequest(&api.SignUpRequest{
			Email:    "bea@example.com",
			Password: "short",
		}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("sign in", func(t *testing.T) {
		resp, err := env.auth.SignIn(ctx, connect.NewRequest(&api.SignInRequest{
			Email:    "ana@example.com",
			Password: "password123",
		}))
		if err != nil {
			t.Fatalf("SignIn failed: %v", err)
		}
		if resp.Msg.User.ID != user.Msg.User.ID {
			t.Errorf("signed in as %s, want %s", resp.Msg.User.ID, user.Msg.User.ID)
		}

		_, err = env.auth.SignIn(ctx, connect.NewRequest(&api.SignInRequest{
			Email:    "ana@example.com",
			Password: "wrong-password",
		}))
		assertCode(t, err, connect.CodeUnauthenticated)
	})

	t.Run("get session", func(t *testing.T) {
		anon, err := env.auth.GetSession(ctx, connect.NewRequest(&api.GetSessionRequest{}))
		if err != nil {
			t.Fatalf("GetSession failed: %v", err)
		}
		if anon.Msg.SignedIn {
			t.Error("anonymous caller should not be signed in")
		}

		resp, err := env.auth.GetSession(ctx, as(user.Msg.Token, &api.GetSessionRequest{}))
		if err != nil {
			t.Fatalf("GetSession failed: %v", err)
		}
		if !resp.Msg.SignedIn || resp.Msg.User.DisplayName != "Ana" || resp.Msg.User.Role != "user" {
			t.Errorf("unexpected session %+v", resp.Msg.User)
		}
	})
}

func TestSignOutRevokesToken(t *testing.T) {
	env := setupTestServer(t, envOptions{})
	ctx := context.Background()
	_, token := env.user(t, "ana@example.com", "user")

	if _, err := env.itinerary.ListEvents(ctx, as(token, &api.ListEventsRequest{})); err != nil {
		t.Fatalf("ListEvents before sign out failed: %v", err)
	}

	if _, err := env.auth.SignOut(ctx, as(token, &api.SignOutRequest{})); err != nil {
		t.Fatalf("SignOut failed: %v", err)
	}

	_, err := env.itinerary.ListEvents(ctx, as(token, &api.ListEventsRequest{}))
	assertCode(t, err, connect.CodeUnauthenticated)

	resp, err := env.auth.GetSession(ctx, as(token, &api.GetSessionRequest{}))
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if resp.Msg.SignedIn {
		t.Error("revoked token should read as signed out")
	}

	_, err = env.auth.SignOut(ctx, connect.NewRequest(&api.SignOutRequest{}))
	assertCode(t, err, connect.CodeUnauthenticated)
}

func TestPasswordReset(t *testing.T) {
	env := setupTestServer(t, envOptions{})
	ctx := context.Background()

	if _, err := env.auth.SignUp(ctx, connect.NewRequest(&api.SignUpRequest{
		Email:    "ana@example.com",
		Password: "password123",
	})); err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}

	t.Run("unknown email looks the same", func(t *testing.T) {
		if _, err := env.auth.RequestPasswordReset(ctx, connect.NewRequest(&api.RequestPasswordResetRequest{
			Email: "nobody@example.com",
		})); err != nil {
			t.Fatalf("RequestPasswordReset failed: %v", err)
		}
		if env.mailer.token("nobody@example.com") != "" {
			t.Error("no mail should be sent for an unknown email")
		}
	})

	if _, err := env.auth.RequestPasswordReset(ctx, connect.NewRequest(&api.RequestPasswordResetRequest{
		Email: " ANA@example.com ",
	})); err != nil {
		t.Fatalf("RequestPasswordReset failed: %v", err)
	}
	resetToken := env.mailer.token("ana@example.com")
	if resetToken == "" {
		t.Fatal("expected a reset token to be mailed")
	}

	t.Run("reset token is not a session", func(t *testing.T) {
		_, err := env.itinerary.ListEvents(ctx, as(resetToken, &api.ListEventsRequest{}))
		assertCode(t, err, connect.CodeUnauthenticated)
	})

	t.Run("weak new password", func(t *testing.T) {
		_, err := env.auth.ResetPassword(ctx, connect.NewRequest(&api.ResetPasswordRequest{
			Token:       resetToken,
			NewPassword: "short",
		}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})

	if _, err := env.auth.ResetPassword(ctx, connect.NewRequest(&api.ResetPasswordRequest{
		Token:       resetToken,
		NewPassword: "new-password-456",
	})); err != nil {
		t.Fatalf("ResetPassword failed: %v", err)
	}

	if _, err := env.auth.SignIn(ctx, connect.NewRequest(&api.SignInRequest{
		Email:    "ana@example.com",
		Password: "new-password-456",
	})); err != nil {
		t.Errorf("SignIn with new password failed: %v", err)
	}

	t.Run("token works once", func(t *testing.T) {
		_, err := env.auth.ResetPassword(ctx, connect.NewRequest(&api.ResetPasswordRequest{
			Token:       resetToken,
			NewPassword: "another-password-789",
		}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := env.auth.ResetPassword(ctx, connect.NewRequest(&api.ResetPasswordRequest{
			Token:       "not-a-token",
			NewPassword: "another-password-789",
		}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})
}
