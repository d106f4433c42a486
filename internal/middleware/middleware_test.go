package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/tripplanner/internal/auth"
	"github.com/mmynk/tripplanner/internal/models"
)

type ping struct{}

func call(t *testing.T, interceptor connect.UnaryInterceptorFunc, header string) (*auth.Session, error) {
	t.Helper()
	var seen *auth.Session
	next := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		seen = GetSession(ctx)
		return connect.NewResponse(&ping{}), nil
	}
	req := connect.NewRequest(&ping{})
	if header != "" {
		req.Header().Set("Authorization", header)
	}
	_, err := interceptor(next)(context.Background(), req)
	return seen, err
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr error
	}{
		{header: "", wantErr: auth.ErrMissingToken},
		{header: "Bearer abc", want: "abc"},
		{header: "Basic abc", wantErr: auth.ErrInvalidToken},
		{header: "Bearer", wantErr: auth.ErrInvalidToken},
		{header: "Bearer a b", wantErr: auth.ErrInvalidToken},
	}
	for _, tt := range tests {
		got, err := bearerToken(tt.header)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("bearerToken(%q) error = %v, want %v", tt.header, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("bearerToken(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestRequireAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("middleware-test-secret-0123456789", time.Hour)
	revoked := auth.NewRevocationList()
	user := models.NewUser("ana@example.com", "Ana", "hash", models.RoleAdmin)
	token, err := jwtManager.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	interceptor := RequireAuth(jwtManager, revoked)

	if _, err := call(t, interceptor, ""); connect.CodeOf(err) != connect.CodeUnauthenticated {
		t.Errorf("missing token: got %v", err)
	}
	if _, err := call(t, interceptor, "Bearer garbage"); connect.CodeOf(err) != connect.CodeUnauthenticated {
		t.Errorf("bad token: got %v", err)
	}

	session, err := call(t, interceptor, "Bearer "+token)
	if err != nil {
		t.Fatalf("valid token rejected: %v", err)
	}
	if session == nil || session.UserID != user.ID || !session.IsAdmin() {
		t.Fatalf("unexpected session %+v", session)
	}

	revoked.Revoke(session.TokenID, session.ExpiresAt)
	if _, err := call(t, interceptor, "Bearer "+token); connect.CodeOf(err) != connect.CodeUnauthenticated {
		t.Errorf("revoked token accepted: %v", err)
	}
}

func TestOptionalAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("middleware-test-secret-0123456789", time.Hour)
	interceptor := OptionalAuth(jwtManager, nil)

	session, err := call(t, interceptor, "")
	if err != nil || session != nil {
		t.Errorf("anonymous call: session=%v err=%v", session, err)
	}

	session, err = call(t, interceptor, "Bearer garbage")
	if err != nil || session != nil {
		t.Errorf("invalid token should be ignored: session=%v err=%v", session, err)
	}

	token, _ := jwtManager.Generate(models.NewUser("bea@example.com", "Bea", "hash", models.RoleUser))
	session, err = call(t, interceptor, "Bearer "+token)
	if err != nil || session == nil || session.IsAdmin() {
		t.Errorf("valid token: session=%+v err=%v", session, err)
	}
}

func TestMetricsInterceptor(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	ok := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return connect.NewResponse(&ping{}), nil
	}
	denied := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, connect.NewError(connect.CodePermissionDenied, auth.ErrForbidden)
	}

	ctx := context.Background()
	m.Interceptor()(ok)(ctx, connect.NewRequest(&ping{}))
	m.Interceptor()(ok)(ctx, connect.NewRequest(&ping{}))
	m.Interceptor()(denied)(ctx, connect.NewRequest(&ping{}))

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	counts := map[string]float64{}
	for _, family := range families {
		if family.GetName() != "tripplanner_rpc_requests_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "code" {
					counts[label.GetValue()] = metric.GetCounter().GetValue()
				}
			}
		}
	}

	if counts["ok"] != 2 {
		t.Errorf("ok count = %v, want 2", counts["ok"])
	}
	if counts["permission_denied"] != 1 {
		t.Errorf("permission_denied count = %v, want 1", counts["permission_denied"])
	}
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		code connect.Code
		want slog.Level
	}{
		{connect.CodeInvalidArgument, slog.LevelWarn},
		{connect.CodePermissionDenied, slog.LevelWarn},
		{connect.CodeFailedPrecondition, slog.LevelWarn},
		{connect.CodeInternal, slog.LevelError},
		{connect.CodeUnknown, slog.LevelError},
	}
	for _, tt := range tests {
		if got := levelFor(tt.code); got != tt.want {
			t.Errorf("levelFor(%v) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestLoggingInterceptor(t *testing.T) {
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })

	session := &auth.Session{UserID: "u1", Role: models.RoleUser}
	ctx := WithSession(context.Background(), session)
	failing := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, connect.NewError(connect.CodePermissionDenied, auth.ErrForbidden)
	}

	_, err := LoggingInterceptor()(failing)(ctx, connect.NewRequest(&ping{}))
	if connect.CodeOf(err) != connect.CodePermissionDenied {
		t.Fatalf("error should pass through, got %v", err)
	}

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected one JSON record, got %q: %v", buf.String(), err)
	}
	checks := map[string]any{
		"level":   "WARN",
		"msg":     "RPC error",
		"user_id": "u1",
		"role":    "user",
		"code":    "permission_denied",
		"error":   auth.ErrForbidden.Error(),
	}
	for key, want := range checks {
		if record[key] != want {
			t.Errorf("%s = %v, want %v", key, record[key], want)
		}
	}
}
