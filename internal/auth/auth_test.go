package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mmynk/tripplanner/internal/models"
	"github.com/mmynk/tripplanner/internal/storage"
)

type memUsers struct {
	byID map[string]*models.User
}

func newMemUsers() *memUsers {
	return &memUsers{byID: make(map[string]*models.User)}
}

func (m *memUsers) CreateUser(_ context.Context, user *models.User) error {
	m.byID[user.ID] = user
	return nil
}

func (m *memUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *memUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) UpdatePasswordHash(_ context.Context, userID, hash string) error {
	u, ok := m.byID[userID]
	if !ok {
		return storage.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func TestResolveRole(t *testing.T) {
	tests := []struct {
		name     string
		metadata map[string]any
		want     models.Role
	}{
		{name: "nil metadata", metadata: nil, want: models.RoleUser},
		{name: "missing key", metadata: map[string]any{"theme": "dark"}, want: models.RoleUser},
		{name: "admin", metadata: map[string]any{"role": "admin"}, want: models.RoleAdmin},
		{name: "admin mixed case", metadata: map[string]any{"role": " Admin "}, want: models.RoleAdmin},
		{name: "unknown role", metadata: map[string]any{"role": "owner"}, want: models.RoleUser},
		{name: "non-string role", metadata: map[string]any{"role": 1}, want: models.RoleUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveRole(tt.metadata); got != tt.want {
				t.Errorf("ResolveRole() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSessionCanModify(t *testing.T) {
	var anonymous *Session
	user := &Session{UserID: "u1", Role: models.RoleUser}
	admin := &Session{UserID: "a1", Role: models.RoleAdmin}

	if anonymous.CanModify("u1") || anonymous.IsAdmin() {
		t.Error("nil session must not modify anything")
	}
	if !user.CanModify("u1") {
		t.Error("owner should modify own row")
	}
	if user.CanModify("u2") {
		t.Error("user should not modify someone else's row")
	}
	if user.CanModify("") {
		t.Error("user should not modify a shared row")
	}
	if !admin.CanModify("") || !admin.CanModify("u2") {
		t.Error("admin should modify any row")
	}
}

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret-key-that-is-long-enough", time.Hour)
	user := models.NewUser("ana@example.com", "Ana", "hash", models.RoleAdmin)

	token, err := m.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	session := SessionFromClaims(claims)
	if session.UserID != user.ID || session.Email != user.Email {
		t.Errorf("unexpected session identity %+v", session)
	}
	if !session.IsAdmin() {
		t.Error("role should survive the round trip")
	}
	if session.TokenID == "" || session.ExpiresAt.IsZero() {
		t.Error("expected token id and expiry")
	}

	if _, err := m.ValidateReset(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("session token accepted as reset token: %v", err)
	}

	reset, err := m.GenerateReset(user)
	if err != nil {
		t.Fatalf("GenerateReset failed: %v", err)
	}
	if _, err := m.Validate(reset); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("reset token accepted as session: %v", err)
	}
	if _, err := m.ValidateReset(reset); err != nil {
		t.Errorf("ValidateReset failed: %v", err)
	}
}

func TestJWTRejectsOtherSecret(t *testing.T) {
	a := NewJWTManager("first-secret-key-that-is-long-enough", time.Hour)
	b := NewJWTManager("second-secret-key-that-is-long-enough", time.Hour)
	token, err := a.Generate(models.NewUser("x@example.com", "X", "h", models.RoleUser))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := b.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestRevocationList(t *testing.T) {
	l := NewRevocationList()
	now := time.Date(2026, 3, 30, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.Revoke("t1", now.Add(time.Hour))
	l.Revoke("", now.Add(time.Hour))

	if !l.IsRevoked("t1") {
		t.Error("t1 should be revoked")
	}
	if l.IsRevoked("t2") {
		t.Error("t2 was never revoked")
	}
	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1", l.Len())
	}

	now = now.Add(2 * time.Hour)
	if l.IsRevoked("t1") {
		t.Error("expired ids should be forgotten")
	}
	if l.Len() != 0 {
		t.Errorf("Len() = %d, want 0", l.Len())
	}
}

func TestPasswordAuthenticator(t *testing.T) {
	ctx := context.Background()
	users := newMemUsers()
	a := NewPasswordAuthenticator(users, []string{" Admin@Example.com "})

	admin, err := a.Register(ctx, "ADMIN@example.com", "", "password123")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if admin.Role != models.RoleAdmin {
		t.Errorf("expected admin role, got %s", admin.Role)
	}
	if admin.Email != "admin@example.com" || admin.DisplayName != "admin" {
		t.Errorf("unexpected normalized account %q/%q", admin.Email, admin.DisplayName)
	}

	user, err := a.Register(ctx, "bea@example.com", "Bea", "password123")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Role != models.RoleUser {
		t.Errorf("expected user role, got %s", user.Role)
	}

	if _, err := a.Register(ctx, "bea@example.com", "Bea", "password123"); !errors.Is(err, ErrEmailExists) {
		t.Errorf("expected ErrEmailExists, got %v", err)
	}
	if _, err := a.Register(ctx, "new@example.com", "", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Errorf("expected ErrWeakPassword, got %v", err)
	}
	if _, err := a.Register(ctx, "not-an-email", "", "password123"); !errors.Is(err, ErrInvalidEmail) {
		t.Errorf("expected ErrInvalidEmail, got %v", err)
	}
	if strings.Contains(user.PasswordHash, "password123") {
		t.Error("password stored in clear text")
	}

	if _, err := a.Authenticate(ctx, "Bea@Example.com", "password123"); err != nil {
		t.Errorf("Authenticate failed: %v", err)
	}
	if _, err := a.Authenticate(ctx, "bea@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := a.Authenticate(ctx, "nobody@example.com", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}

	if err := a.SetCredential(ctx, user.ID, "another-password"); err != nil {
		t.Fatalf("SetCredential failed: %v", err)
	}
	if _, err := a.Authenticate(ctx, "bea@example.com", "another-password"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
}
