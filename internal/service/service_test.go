package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/tripplanner/internal/auth"
	"github.com/mmynk/tripplanner/internal/calculator"
	"github.com/mmynk/tripplanner/internal/middleware"
	"github.com/mmynk/tripplanner/internal/models"
	"github.com/mmynk/tripplanner/internal/storage/sqlite"
	"github.com/mmynk/tripplanner/pkg/api"
)

const (
	testSecret     = "test-secret-key-with-at-least-32-chars"
	testAdminEmail = "admin@example.com"
)

// captureMailer records reset tokens instead of sending them.
type captureMailer struct {
	mu     sync.Mutex
	tokens map[string]string
}

func (m *captureMailer) SendPasswordReset(ctx context.Context, email, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tokens == nil {
		m.tokens = make(map[string]string)
	}
	m.tokens[email] = token
	return nil
}

func (m *captureMailer) token(email string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tokens[email]
}

type testEnv struct {
	store  *sqlite.SQLiteStore
	jwt    *auth.JWTManager
	mailer *captureMailer

	auth      api.AuthServiceClient
	itinerary api.ItineraryServiceClient
	places    api.PlaceServiceClient
	packing   api.PackingServiceClient
	budget    api.BudgetServiceClient
}

type envOptions struct {
	tracking models.Tracking
	lodging  decimal.Decimal
}

// setupTestServer serves every service over a temp SQLite database with the
// production auth interceptors.
func setupTestServer(t *testing.T, opts envOptions) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if opts.tracking == "" {
		opts.tracking = models.TrackShared
	}

	jwtManager := auth.NewJWTManager(testSecret, time.Hour)
	revoked := auth.NewRevocationList()
	mailer := &captureMailer{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	required := connect.WithInterceptors(middleware.RequireAuth(jwtManager, revoked))
	optional := connect.WithInterceptors(middleware.OptionalAuth(jwtManager, revoked))

	authSvc := NewAuthService(
		auth.NewPasswordAuthenticator(store, []string{testAdminEmail}),
		store, jwtManager, revoked, mailer, logger,
	)
	budgetSvc := NewBudgetService(store, BudgetConfig{
		Ceiling: decimal.NewFromInt(3000000),
		Lodging: calculator.LodgingEstimate{Amount: opts.lodging, Date: "2026-03-30"},
	}, nil)

	mux := http.NewServeMux()
	mux.Handle(api.NewAuthServiceHandler(authSvc, optional))
	mux.Handle(api.NewItineraryServiceHandler(NewItineraryService(store, nil), required))
	mux.Handle(api.NewPlaceServiceHandler(NewPlaceService(store, nil), required))
	mux.Handle(api.NewPackingServiceHandler(NewPackingService(store, opts.tracking, nil), required))
	mux.Handle(api.NewBudgetServiceHandler(budgetSvc, required))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testEnv{
		store:     store,
		jwt:       jwtManager,
		mailer:    mailer,
		auth:      api.NewAuthServiceClient(http.DefaultClient, server.URL),
		itinerary: api.NewItineraryServiceClient(http.DefaultClient, server.URL),
		places:    api.NewPlaceServiceClient(http.DefaultClient, server.URL),
		packing:   api.NewPackingServiceClient(http.DefaultClient, server.URL),
		budget:    api.NewBudgetServiceClient(http.DefaultClient, server.URL),
	}
}

// user creates an account directly in the store and returns a session token.
func (e *testEnv) user(t *testing.T, email string, role models.Role) (*models.User, string) {
	t.Helper()
	u := models.NewUser(email, email, "unused", role)
	if err := e.store.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	token, err := e.jwt.Generate(u)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return u, token
}

// as wraps msg in a request carrying token.
func as[T any](token string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	if token != "" {
		req.Header().Set("Authorization", "Bearer "+token)
	}
	return req
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected connect error, got %T: %v", err, err)
	}
	if connectErr.Code() != want {
		t.Errorf("expected code %v, got %v (%s)", want, connectErr.Code(), connectErr.Message())
	}
}
